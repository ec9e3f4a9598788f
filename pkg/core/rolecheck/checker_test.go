package rolecheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
)

type mockCompatClient struct {
	calls  int
	result *model.RoleCompatibility
	err    error
}

func (m *mockCompatClient) CheckRoleCompatibility(ctx context.Context, req *swapapi.RoleCompatibilityQuery) (*model.RoleCompatibility, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func query() *swapapi.RoleCompatibilityQuery {
	return &swapapi.RoleCompatibilityQuery{
		FacilityID:          "fac-001",
		ZoneID:              "zone-bar",
		StaffID:             "staff-42",
		OriginalShiftDay:    2,
		OriginalShiftNumber: 1,
	}
}

func TestCheck_MemoizesIdenticalQueries(t *testing.T) {
	mock := &mockCompatClient{result: &model.RoleCompatibility{Compatible: true, StaffRoleName: "Bartender"}}
	checker := NewChecker(mock, zap.NewNop())
	ctx := context.Background()

	first, err := checker.Check(ctx, query())
	require.NoError(t, err)
	second, err := checker.Check(ctx, query())
	require.NoError(t, err)

	// Two identical queries, exactly one network call
	assert.Equal(t, 1, mock.calls)
	assert.Same(t, first, second)
	assert.Equal(t, 1, checker.CachedLen())
}

func TestCheck_DifferentKeyFieldsMiss(t *testing.T) {
	mock := &mockCompatClient{result: &model.RoleCompatibility{Compatible: true}}
	checker := NewChecker(mock, zap.NewNop())
	ctx := context.Background()

	_, err := checker.Check(ctx, query())
	require.NoError(t, err)

	other := query()
	other.OriginalShiftNumber = 2
	_, err = checker.Check(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, 2, mock.calls)
	assert.Equal(t, 2, checker.CachedLen())
}

func TestCheck_ErrorsAreNotCached(t *testing.T) {
	mock := &mockCompatClient{err: errors.New("backend down")}
	checker := NewChecker(mock, zap.NewNop())
	ctx := context.Background()

	_, err := checker.Check(ctx, query())
	require.Error(t, err)
	assert.Equal(t, 0, checker.CachedLen())

	mock.err = nil
	mock.result = &model.RoleCompatibility{Compatible: false, RequiresOverride: true}
	result, err := checker.Check(ctx, query())
	require.NoError(t, err)
	assert.True(t, result.RequiresOverride)
	assert.Equal(t, 2, mock.calls)
}

func TestClearCache_ForcesRefetch(t *testing.T) {
	mock := &mockCompatClient{result: &model.RoleCompatibility{Compatible: true}}
	checker := NewChecker(mock, zap.NewNop())
	ctx := context.Background()

	_, err := checker.Check(ctx, query())
	require.NoError(t, err)
	require.Equal(t, 1, mock.calls)

	checker.ClearCache()
	assert.Equal(t, 0, checker.CachedLen())

	_, err = checker.Check(ctx, query())
	require.NoError(t, err)
	assert.Equal(t, 2, mock.calls)
}
