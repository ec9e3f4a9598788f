package store

import (
	"sort"

	"github.com/harbourview/swapctl/pkg/core/model"
)

// The filters below recompute a display-only subset of the summary from the
// loaded list (the analytics view). The backend's summary stays
// authoritative for everything shown as an official count.

// PendingSwaps returns the loaded swaps still in the pending state.
func (s *Store) PendingSwaps() []model.SwapRequest {
	return s.filter(func(sw *model.SwapRequest) bool {
		return sw.Status == model.StatusPending
	})
}

// UrgentSwaps returns loaded swaps with high or emergency urgency that are
// still active, sorted most urgent first.
func (s *Store) UrgentSwaps() []model.SwapRequest {
	urgent := s.filter(func(sw *model.SwapRequest) bool {
		return sw.Status.IsActive() && sw.Urgency.Rank() >= model.UrgencyHigh.Rank()
	})
	sort.SliceStable(urgent, func(i, j int) bool {
		return urgent[i].Urgency.Rank() > urgent[j].Urgency.Rank()
	})
	return urgent
}

// RoleMismatches returns loaded swaps whose assigned staff role differs from
// the role the original shift requires.
func (s *Store) RoleMismatches() []model.SwapRequest {
	return s.filter(func(sw *model.SwapRequest) bool {
		return sw.RoleMismatch()
	})
}

// LocalCounts is the analytics subset recomputed client-side for display.
type LocalCounts struct {
	Total      int
	Pending    int
	Active     int
	Urgent     int
	Mismatches int
}

// CountByStatus groups the loaded swaps by status.
func (s *Store) CountByStatus() map[model.SwapStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[model.SwapStatus]int, len(s.swaps))
	for i := range s.swaps {
		counts[s.swaps[i].Status]++
	}
	return counts
}

// LocalSummary recomputes display-only counts from the loaded list.
func (s *Store) LocalSummary() LocalCounts {
	s.mu.Lock()
	defer s.mu.Unlock()

	var counts LocalCounts
	counts.Total = len(s.swaps)
	for i := range s.swaps {
		sw := &s.swaps[i]
		if sw.Status == model.StatusPending {
			counts.Pending++
		}
		if sw.Status.IsActive() {
			counts.Active++
			if sw.Urgency.Rank() >= model.UrgencyHigh.Rank() {
				counts.Urgent++
			}
		}
		if sw.RoleMismatch() {
			counts.Mismatches++
		}
	}
	return counts
}

func (s *Store) filter(keep func(*model.SwapRequest) bool) []model.SwapRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]model.SwapRequest, 0, len(s.swaps))
	for i := range s.swaps {
		if keep(&s.swaps[i]) {
			matched = append(matched, s.swaps[i])
		}
	}
	return matched
}
