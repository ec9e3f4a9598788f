package swapapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/core/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithHTTP(server.Client(), server.URL, zap.NewNop()), server
}

func TestGetFacilitySwaps_PassesFilters(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]model.SwapRequest{
			{ID: "swap-1", Status: model.StatusPending, SwapType: model.SwapTypeAuto},
		})
	})

	swaps, err := client.GetFacilitySwaps(context.Background(), "fac-001", &SwapFilters{
		Status:  model.StatusPending,
		Urgency: model.UrgencyHigh,
		Limit:   25,
	})
	require.NoError(t, err)

	assert.Equal(t, "/facilities/fac-001/swaps", gotPath)
	assert.Contains(t, gotQuery, "status=pending")
	assert.Contains(t, gotQuery, "urgency=high")
	assert.Contains(t, gotQuery, "limit=25")
	require.Len(t, swaps, 1)
	assert.Equal(t, "swap-1", swaps[0].ID)
}

func TestGetMySwapRequests(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swaps/my", r.URL.Path)
		json.NewEncoder(w).Encode([]model.SwapRequest{{ID: "swap-9"}})
	})

	swaps, err := client.GetMySwapRequests(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, swaps, 1)
	assert.Equal(t, "swap-9", swaps[0].ID)
}

func TestCreateSwapRequest_SetsRequestIDHeader(t *testing.T) {
	var gotRequestID string
	var gotBody CreateSwapRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(model.SwapRequest{ID: "swap-new", Status: model.StatusPending})
	})

	created, err := client.CreateSwapRequest(context.Background(), &CreateSwapRequest{
		SwapType:      model.SwapTypeAuto,
		Urgency:       model.UrgencyHigh,
		FacilityID:    "fac-001",
		OriginalDay:   2,
		OriginalShift: 1,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, model.SwapTypeAuto, gotBody.SwapType)
	assert.Equal(t, 2, gotBody.OriginalDay)
	assert.Equal(t, "swap-new", created.ID)
}

func TestCreateSwapRequest_ValidatedBeforeDispatch(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	// specific swap without a target staff id must never reach the wire
	_, err := client.CreateSwapRequest(context.Background(), &CreateSwapRequest{
		SwapType:   model.SwapTypeSpecific,
		Urgency:    model.UrgencyNormal,
		FacilityID: "fac-001",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request payload")
	assert.Equal(t, 0, calls)
}

func TestFinalApproval_OverrideWithoutReasonRejected(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.ManagerFinalApproval(context.Background(), "swap-1", &FinalApprovalRequest{
		Approved:                 true,
		OverrideRoleVerification: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request payload")
	assert.Equal(t, 0, calls)
}

func TestBulkApproveSwaps_DecodesBreakdown(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swaps/bulk-approve", r.URL.Path)
		json.NewEncoder(w).Encode(model.BulkApprovalResult{
			Successful:               2,
			RoleVerificationFailures: 1,
			FailedSwapIDs:            []string{"b"},
		})
	})

	result, err := client.BulkApproveSwaps(context.Background(), &BulkApprovalRequest{
		SwapIDs:  []string{"a", "b", "c"},
		Approved: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 1, result.RoleVerificationFailures)
	assert.Equal(t, []string{"b"}, result.FailedSwapIDs)
}

func TestAPIError_DecodedFromJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "STALE_STATUS",
			"message": "swap is no longer pending",
		})
	})

	_, err := client.ManagerSwapDecision(context.Background(), "swap-1", &ManagerDecisionRequest{Approved: true})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "STALE_STATUS", apiErr.Code)
	assert.Contains(t, apiErr.Message, "no longer pending")
}

func TestAPIError_PlainTextBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	})

	_, err := client.GetSwapWorkflowStatus(context.Background(), "swap-1")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "internal server error", apiErr.Message)
}

func TestExportSwapReport_ReturnsBlob(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/swaps/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,status\nswap-1,pending\n"))
	})

	blob, contentType, err := client.ExportSwapReport(context.Background(), &ExportConfig{
		FacilityID: "fac-001",
		Format:     "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Contains(t, string(blob), "swap-1")
}
