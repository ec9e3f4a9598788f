package swapapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harbourview/swapctl/pkg/core/model"
)

// GetFacilitySwaps lists swap requests for a facility, optionally filtered.
func (c *Client) GetFacilitySwaps(ctx context.Context, facilityID string, filters *SwapFilters) ([]model.SwapRequest, error) {
	query := url.Values{}
	if filters != nil {
		if filters.Status != "" {
			query.Set("status", string(filters.Status))
		}
		if filters.Urgency != "" {
			query.Set("urgency", string(filters.Urgency))
		}
		if filters.SwapType != "" {
			query.Set("swap_type", string(filters.SwapType))
		}
		if filters.Limit > 0 {
			query.Set("limit", strconv.Itoa(filters.Limit))
		}
	}

	var swaps []model.SwapRequest
	path := fmt.Sprintf("/facilities/%s/swaps", url.PathEscape(facilityID))
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &swaps); err != nil {
		return nil, fmt.Errorf("failed to fetch facility swaps: %w", err)
	}
	return swaps, nil
}

// GetFacilitySwapSummary fetches the server-computed aggregate counts.
func (c *Client) GetFacilitySwapSummary(ctx context.Context, facilityID string) (*model.SwapSummary, error) {
	var summary model.SwapSummary
	path := fmt.Sprintf("/facilities/%s/swaps/summary", url.PathEscape(facilityID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &summary); err != nil {
		return nil, fmt.Errorf("failed to fetch swap summary: %w", err)
	}
	return &summary, nil
}

// GetMySwapRequests lists the caller's own swap requests. Staff have no
// facility scope, so there is no summary counterpart.
func (c *Client) GetMySwapRequests(ctx context.Context, status model.SwapStatus, limit int) ([]model.SwapRequest, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var swaps []model.SwapRequest
	if err := c.doJSON(ctx, http.MethodGet, "/swaps/my", query, nil, &swaps); err != nil {
		return nil, fmt.Errorf("failed to fetch my swap requests: %w", err)
	}
	return swaps, nil
}

// CreateSwapRequest creates a swap request. The backend sends any
// notifications requested in the payload.
func (c *Client) CreateSwapRequest(ctx context.Context, req *CreateSwapRequest) (*model.SwapRequest, error) {
	var created model.SwapRequest
	if err := c.doJSON(ctx, http.MethodPost, "/swaps", nil, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create swap request: %w", err)
	}
	return &created, nil
}

// ManagerSwapDecision submits the first-stage manager approval or decline.
func (c *Client) ManagerSwapDecision(ctx context.Context, swapID string, req *ManagerDecisionRequest) (*model.SwapRequest, error) {
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/manager-decision", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to submit manager decision: %w", err)
	}
	return &updated, nil
}

// RespondToPotentialAssignment submits an auto-swap candidate's response.
func (c *Client) RespondToPotentialAssignment(ctx context.Context, swapID string, req *PotentialAssignmentResponse) (*model.SwapRequest, error) {
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/potential-assignment/respond", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to respond to potential assignment: %w", err)
	}
	return &updated, nil
}

// RespondToSwap submits a specific-swap target's response.
func (c *Client) RespondToSwap(ctx context.Context, swapID string, req *SwapResponse) (*model.SwapRequest, error) {
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/respond", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to respond to swap: %w", err)
	}
	return &updated, nil
}

// ManagerFinalApproval submits the final execution gate decision.
func (c *Client) ManagerFinalApproval(ctx context.Context, swapID string, req *FinalApprovalRequest) (*model.SwapRequest, error) {
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/final-approval", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to submit final approval: %w", err)
	}
	return &updated, nil
}

// RetryAutoAssignment asks the backend to re-run its assignment search.
func (c *Client) RetryAutoAssignment(ctx context.Context, swapID string, req *RetryAssignmentRequest) (*model.SwapRequest, error) {
	if req == nil {
		req = &RetryAssignmentRequest{}
	}
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/retry-auto-assignment", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to retry auto assignment: %w", err)
	}
	return &updated, nil
}

// CancelSwap cancels a swap on behalf of its requester.
func (c *Client) CancelSwap(ctx context.Context, swapID string, req *CancelSwapRequest) (*model.SwapRequest, error) {
	if req == nil {
		req = &CancelSwapRequest{}
	}
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s/cancel", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPost, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to cancel swap: %w", err)
	}
	return &updated, nil
}

// UpdateSwap patches mutable fields of a pending swap.
func (c *Client) UpdateSwap(ctx context.Context, swapID string, req *UpdateSwapRequest) (*model.SwapRequest, error) {
	var updated model.SwapRequest
	path := fmt.Sprintf("/swaps/%s", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodPut, path, nil, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update swap: %w", err)
	}
	return &updated, nil
}

// BulkApproveSwaps submits one batched first-stage decision and returns the
// backend's success/failure breakdown.
func (c *Client) BulkApproveSwaps(ctx context.Context, req *BulkApprovalRequest) (*model.BulkApprovalResult, error) {
	var result model.BulkApprovalResult
	if err := c.doJSON(ctx, http.MethodPost, "/swaps/bulk-approve", nil, req, &result); err != nil {
		return nil, fmt.Errorf("failed to bulk approve swaps: %w", err)
	}
	return &result, nil
}

// CheckRoleCompatibility runs a compatibility pre-check for one staff/shift
// combination.
func (c *Client) CheckRoleCompatibility(ctx context.Context, req *RoleCompatibilityQuery) (*model.RoleCompatibility, error) {
	var result model.RoleCompatibility
	if err := c.doJSON(ctx, http.MethodPost, "/swaps/role-compatibility", nil, req, &result); err != nil {
		return nil, fmt.Errorf("failed to check role compatibility: %w", err)
	}
	return &result, nil
}

// GetSwapWorkflowStatus fetches the backend's workflow projection for one swap.
func (c *Client) GetSwapWorkflowStatus(ctx context.Context, swapID string) (*model.WorkflowStatus, error) {
	var status model.WorkflowStatus
	path := fmt.Sprintf("/swaps/%s/workflow-status", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &status); err != nil {
		return nil, fmt.Errorf("failed to fetch workflow status: %w", err)
	}
	return &status, nil
}

// GetAvailableSwapActions lists the actions the backend currently accepts
// for one swap.
func (c *Client) GetAvailableSwapActions(ctx context.Context, swapID string) ([]model.SwapAction, error) {
	var actions []model.SwapAction
	path := fmt.Sprintf("/swaps/%s/available-actions", url.PathEscape(swapID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &actions); err != nil {
		return nil, fmt.Errorf("failed to fetch available actions: %w", err)
	}
	return actions, nil
}

// ExportSwapReport asks the backend to render a report and returns the raw
// blob plus its content type.
func (c *Client) ExportSwapReport(ctx context.Context, cfg *ExportConfig) ([]byte, string, error) {
	blob, contentType, err := c.doBlob(ctx, http.MethodPost, "/swaps/export", cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to export swap report: %w", err)
	}
	return blob, contentType, nil
}
