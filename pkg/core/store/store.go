package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
)

// Client defines the swap API operations the store depends on.
type Client interface {
	GetFacilitySwaps(ctx context.Context, facilityID string, filters *swapapi.SwapFilters) ([]model.SwapRequest, error)
	GetFacilitySwapSummary(ctx context.Context, facilityID string) (*model.SwapSummary, error)
	GetMySwapRequests(ctx context.Context, status model.SwapStatus, limit int) ([]model.SwapRequest, error)
	CreateSwapRequest(ctx context.Context, req *swapapi.CreateSwapRequest) (*model.SwapRequest, error)
	ManagerSwapDecision(ctx context.Context, swapID string, req *swapapi.ManagerDecisionRequest) (*model.SwapRequest, error)
	RespondToPotentialAssignment(ctx context.Context, swapID string, req *swapapi.PotentialAssignmentResponse) (*model.SwapRequest, error)
	RespondToSwap(ctx context.Context, swapID string, req *swapapi.SwapResponse) (*model.SwapRequest, error)
	ManagerFinalApproval(ctx context.Context, swapID string, req *swapapi.FinalApprovalRequest) (*model.SwapRequest, error)
	RetryAutoAssignment(ctx context.Context, swapID string, req *swapapi.RetryAssignmentRequest) (*model.SwapRequest, error)
	CancelSwap(ctx context.Context, swapID string, req *swapapi.CancelSwapRequest) (*model.SwapRequest, error)
	UpdateSwap(ctx context.Context, swapID string, req *swapapi.UpdateSwapRequest) (*model.SwapRequest, error)
	BulkApproveSwaps(ctx context.Context, req *swapapi.BulkApprovalRequest) (*model.BulkApprovalResult, error)
}

// ErrOperationInProgress is returned when a mutating operation is triggered
// while another one has not settled yet.
var ErrOperationInProgress = errors.New("another swap operation is still in progress")

// ErrOverrideReasonRequired is returned when a role override is requested
// without a justification. The call is rejected before any network traffic.
var ErrOverrideReasonRequired = errors.New("role override requires a justification")

// Store fetches and holds the current swap list and summary for one scope:
// a facility (manager view) or the caller's own requests (staff view, empty
// facilityID). The backend is the only source of truth. Every confirmed
// mutation is followed by a full reload of list and summary; nothing is
// patched locally, and a concurrent edit by another manager is only
// observed at the next reload (last reload wins, no version tokens).
type Store struct {
	client   Client
	notifier Notifier
	logger   *zap.Logger

	facilityID string

	mu          sync.Mutex
	swaps       []model.SwapRequest
	summary     *model.SwapSummary
	lastFilters *swapapi.SwapFilters
	lastError   string
	busy        bool
}

// New creates a store. facilityID may be empty for the personal (staff) scope.
func New(client Client, notifier Notifier, logger *zap.Logger, facilityID string) *Store {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Store{
		client:     client,
		notifier:   notifier,
		logger:     logger,
		facilityID: facilityID,
	}
}

// FacilityID returns the store's scope, empty for the personal scope.
func (s *Store) FacilityID() string { return s.facilityID }

// Swaps returns the swap list as of the last successful load.
func (s *Store) Swaps() []model.SwapRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.swaps
}

// Summary returns the facility summary as of the last successful load.
// Always nil for the personal scope.
func (s *Store) Summary() *model.SwapSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// LastError returns the message of the last failed load, empty when the
// last load succeeded.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Load fetches the swap list (and, for the facility scope, the summary).
// A fetch failure is recorded in LastError and empties the store instead of
// being returned, so callers can render an empty or error state.
func (s *Store) Load(ctx context.Context, filters *swapapi.SwapFilters) {
	s.mu.Lock()
	s.lastFilters = filters
	facilityID := s.facilityID
	s.mu.Unlock()

	if facilityID == "" {
		s.loadPersonal(ctx, filters)
		return
	}
	s.loadFacility(ctx, facilityID, filters)
}

func (s *Store) loadFacility(ctx context.Context, facilityID string, filters *swapapi.SwapFilters) {
	// List and summary are independent; fetch them concurrently.
	var (
		wg         sync.WaitGroup
		swaps      []model.SwapRequest
		summary    *model.SwapSummary
		swapErr    error
		summaryErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		swaps, swapErr = s.client.GetFacilitySwaps(ctx, facilityID, filters)
	}()
	go func() {
		defer wg.Done()
		summary, summaryErr = s.client.GetFacilitySwapSummary(ctx, facilityID)
	}()
	wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()

	if swapErr != nil || summaryErr != nil {
		err := swapErr
		if err == nil {
			err = summaryErr
		}
		s.logger.Warn("Failed to load facility swaps",
			zap.String("facility_id", facilityID),
			zap.Error(err))
		s.swaps = nil
		s.summary = nil
		s.lastError = err.Error()
		return
	}

	s.swaps = swaps
	s.summary = summary
	s.lastError = ""
	s.logger.Debug("Loaded facility swaps",
		zap.String("facility_id", facilityID),
		zap.Int("count", len(swaps)))
}

func (s *Store) loadPersonal(ctx context.Context, filters *swapapi.SwapFilters) {
	var status model.SwapStatus
	var limit int
	if filters != nil {
		status = filters.Status
		limit = filters.Limit
	}

	swaps, err := s.client.GetMySwapRequests(ctx, status, limit)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Staff never see an aggregate facility summary.
	s.summary = nil

	if err != nil {
		s.logger.Warn("Failed to load my swap requests", zap.Error(err))
		s.swaps = nil
		s.lastError = err.Error()
		return
	}

	s.swaps = swaps
	s.lastError = ""
	s.logger.Debug("Loaded my swap requests", zap.Int("count", len(swaps)))
}

// mutate runs one network call, notifies the outcome, and on success
// reloads the full list before returning. The error is returned to the
// caller after notification so modal-style callers can branch on it.
func (s *Store) mutate(ctx context.Context, failMsg, okMsg string, call func(ctx context.Context) error) error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrOperationInProgress
	}
	s.busy = true
	filters := s.lastFilters
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	if err := call(ctx); err != nil {
		s.notifier.Error(fmt.Sprintf("%s: %v", failMsg, err))
		return err
	}

	s.notifier.Success(okMsg)
	s.Load(ctx, filters)
	return nil
}

// CreateSwapRequest creates a swap request and reloads.
func (s *Store) CreateSwapRequest(ctx context.Context, req *swapapi.CreateSwapRequest) error {
	return s.mutate(ctx, "Failed to create swap request", "Swap request created",
		func(ctx context.Context) error {
			_, err := s.client.CreateSwapRequest(ctx, req)
			return err
		})
}

// ApproveSwap submits the first-stage manager decision and reloads.
func (s *Store) ApproveSwap(ctx context.Context, swapID string, approved bool, notes string) error {
	okMsg := "Swap approved"
	if !approved {
		okMsg = "Swap declined"
	}
	return s.mutate(ctx, "Failed to submit decision", okMsg,
		func(ctx context.Context) error {
			_, err := s.client.ManagerSwapDecision(ctx, swapID, &swapapi.ManagerDecisionRequest{
				Approved: approved,
				Notes:    notes,
			})
			return err
		})
}

// ManagerFinalApproval submits the final execution gate decision. When a
// role override is requested the justification must be non-empty; a missing
// justification is rejected here, before any round trip.
func (s *Store) ManagerFinalApproval(ctx context.Context, swapID string, approved bool, notes string, overrideRole bool, overrideReason string) error {
	if overrideRole && strings.TrimSpace(overrideReason) == "" {
		s.notifier.Error("Role override requires a justification")
		return ErrOverrideReasonRequired
	}

	okMsg := "Final approval recorded"
	if !approved {
		okMsg = "Final decline recorded"
	}
	return s.mutate(ctx, "Failed to submit final approval", okMsg,
		func(ctx context.Context) error {
			_, err := s.client.ManagerFinalApproval(ctx, swapID, &swapapi.FinalApprovalRequest{
				Approved:                 approved,
				Notes:                    notes,
				OverrideRoleVerification: overrideRole,
				RoleOverrideReason:       overrideReason,
			})
			return err
		})
}

// RespondToPotentialAssignment submits an auto-swap candidate's answer and reloads.
func (s *Store) RespondToPotentialAssignment(ctx context.Context, swapID string, accepted bool, notes string) error {
	okMsg := "Assignment accepted"
	if !accepted {
		okMsg = "Assignment declined"
	}
	return s.mutate(ctx, "Failed to respond to assignment", okMsg,
		func(ctx context.Context) error {
			_, err := s.client.RespondToPotentialAssignment(ctx, swapID, &swapapi.PotentialAssignmentResponse{
				Accepted:              accepted,
				Notes:                 notes,
				AvailabilityConfirmed: accepted,
			})
			return err
		})
}

// RespondToSwap submits a specific-swap target's answer and reloads.
func (s *Store) RespondToSwap(ctx context.Context, swapID string, accepted bool, notes string) error {
	okMsg := "Swap accepted"
	if !accepted {
		okMsg = "Swap declined"
	}
	return s.mutate(ctx, "Failed to respond to swap", okMsg,
		func(ctx context.Context) error {
			_, err := s.client.RespondToSwap(ctx, swapID, &swapapi.SwapResponse{
				Accepted:            accepted,
				Notes:               notes,
				ConfirmAvailability: accepted,
			})
			return err
		})
}

// RetryAutoAssignment re-runs the backend's assignment search and reloads.
// This is a business operation, not a transport retry.
func (s *Store) RetryAutoAssignment(ctx context.Context, swapID string, avoidStaffIDs []string) error {
	return s.mutate(ctx, "Failed to retry auto assignment", "Assignment search restarted",
		func(ctx context.Context) error {
			_, err := s.client.RetryAutoAssignment(ctx, swapID, &swapapi.RetryAssignmentRequest{
				AvoidStaffIDs: avoidStaffIDs,
			})
			return err
		})
}

// CancelSwapRequest cancels a swap and reloads.
func (s *Store) CancelSwapRequest(ctx context.Context, swapID string, reason string) error {
	return s.mutate(ctx, "Failed to cancel swap", "Swap request cancelled",
		func(ctx context.Context) error {
			_, err := s.client.CancelSwap(ctx, swapID, &swapapi.CancelSwapRequest{Reason: reason})
			return err
		})
}

// UpdateSwapRequest patches a pending swap and reloads.
func (s *Store) UpdateSwapRequest(ctx context.Context, swapID string, patch *swapapi.UpdateSwapRequest) error {
	return s.mutate(ctx, "Failed to update swap", "Swap request updated",
		func(ctx context.Context) error {
			_, err := s.client.UpdateSwap(ctx, swapID, patch)
			return err
		})
}

// BulkApprove submits one batched decision, reports the backend's breakdown
// and reloads. A breakdown with role verification failures is surfaced as a
// warning, not a plain success.
func (s *Store) BulkApprove(ctx context.Context, swapIDs []string, approved bool, notes string, ignoreRoleMismatches bool, roleOverrideReason string) (*model.BulkApprovalResult, error) {
	if ignoreRoleMismatches && strings.TrimSpace(roleOverrideReason) == "" {
		s.notifier.Error("Role override requires a justification")
		return nil, ErrOverrideReasonRequired
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrOperationInProgress
	}
	s.busy = true
	filters := s.lastFilters
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	result, err := s.client.BulkApproveSwaps(ctx, &swapapi.BulkApprovalRequest{
		SwapIDs:              swapIDs,
		Approved:             approved,
		Notes:                notes,
		IgnoreRoleMismatches: ignoreRoleMismatches,
		RoleOverrideReason:   roleOverrideReason,
	})
	if err != nil {
		s.notifier.Error(fmt.Sprintf("Bulk approval failed: %v", err))
		return nil, err
	}

	if result.RoleVerificationFailures > 0 {
		s.notifier.Warning(fmt.Sprintf(
			"Bulk approval finished: %d succeeded, %d blocked by role verification",
			result.Successful, result.RoleVerificationFailures))
	} else {
		s.notifier.Success(fmt.Sprintf("Bulk approval finished: %d succeeded", result.Successful))
	}

	s.Load(ctx, filters)
	return result, nil
}
