package export

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// CurrentWeekStart resolves the start of the current schedule week from the
// configured recurrence rule (the anchor of day index 0 in the shift grid).
func CurrentWeekStart(weekRule string, now time.Time) (time.Time, error) {
	rule, err := rrule.StrToRRule(weekRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week rule: %w", err)
	}

	// Anchor the rule far enough back that Before always finds an occurrence.
	rule.DTStart(now.AddDate(0, 0, -14).Truncate(24 * time.Hour))

	start := rule.Before(now, true)
	if start.IsZero() {
		return time.Time{}, fmt.Errorf("week rule %q yields no occurrence before %s", weekRule, now.Format("2006-01-02"))
	}
	return start, nil
}

// DateForDay maps a grid day index (0-6) within the week starting at
// weekStart to a concrete date.
func DateForDay(weekStart time.Time, day int) time.Time {
	return weekStart.AddDate(0, 0, day)
}

// DayLabel renders a grid day index with its concrete date, e.g.
// "Wed 2026-09-02".
func DayLabel(weekStart time.Time, day int) string {
	if day < 0 || day > 6 {
		return fmt.Sprintf("day %d", day)
	}
	return DateForDay(weekStart, day).Format("Mon 2006-01-02")
}
