package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harbourview/swapctl/pkg/core/model"
)

func sampleSwaps() []model.SwapRequest {
	targetDay := 4
	targetShift := 2
	return []model.SwapRequest{
		{
			ID:                    "swap-1",
			SwapType:              model.SwapTypeAuto,
			Status:                model.StatusPotentialAssignment,
			Urgency:               model.UrgencyHigh,
			RequestingStaff:       model.StaffRef{ID: "staff-1", FullName: "Mika Tanaka"},
			AssignedStaff:         &model.StaffRef{ID: "staff-2", FullName: "Lena Ortiz"},
			OriginalDay:           2,
			OriginalShift:         1,
			AssignedStaffRoleName: "Bartender",
			OriginalShiftRoleName: "Chef",
			Reason:                "family event",
			CreatedAt:             time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:              "swap-2",
			SwapType:        model.SwapTypeSpecific,
			Status:          model.StatusPending,
			Urgency:         model.UrgencyNormal,
			RequestingStaff: model.StaffRef{ID: "staff-3", FullName: "Jo Park"},
			TargetStaff:     &model.StaffRef{ID: "staff-4", FullName: "Sam Reyes"},
			OriginalDay:     0,
			OriginalShift:   0,
			TargetDay:       &targetDay,
			TargetShift:     &targetShift,
		},
	}
}

func TestCurrentWeekStart(t *testing.T) {
	// Saturday 2026-08-29; the Monday-anchored rule resolves to 2026-08-24
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	start, err := CurrentWeekStart("FREQ=WEEKLY;BYDAY=MO", now)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2026-08-24", start.Format("2006-01-02"))
}

func TestCurrentWeekStart_InvalidRule(t *testing.T) {
	_, err := CurrentWeekStart("FREQ=NONSENSE", time.Now())
	assert.Error(t, err)
}

func TestDayLabel(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // Monday
	assert.Equal(t, "Wed 2026-08-26", DayLabel(weekStart, 2))
	assert.Equal(t, "Sun 2026-08-30", DayLabel(weekStart, 6))
	assert.Equal(t, "day 9", DayLabel(weekStart, 9))
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	require.NoError(t, WriteCSV(path, sampleSwaps(), weekStart))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, reportHeader, rows[0])
	assert.Equal(t, "swap-1", rows[1][0])
	assert.Equal(t, "Lena Ortiz", rows[1][5])
	assert.Contains(t, rows[1][6], "Wed 2026-08-26")
	assert.Contains(t, rows[1][8], "mismatch")

	assert.Equal(t, "swap-2", rows[2][0])
	assert.Contains(t, rows[2][7], "Fri 2026-08-28")
	assert.Equal(t, "ok", rows[2][8])
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	require.NoError(t, WriteXLSX(path, sampleSwaps(), weekStart))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Swap Requests")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "swap-1", rows[1][0])
	assert.Equal(t, "swap-2", rows[2][0])
}

func TestSaveServerReport(t *testing.T) {
	dir := t.TempDir()

	path, err := SaveServerReport(dir, []byte("id,status\n"), "text/csv; charset=utf-8")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".csv"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,status\n", string(data))
}

func TestSaveServerReport_UnknownContentType(t *testing.T) {
	path, err := SaveServerReport(t.TempDir(), []byte{0x1}, "application/octet-stream")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".bin"))
}
