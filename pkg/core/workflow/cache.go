package workflow

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/core/model"
)

// StatusClient defines the swap API operations the cache depends on.
type StatusClient interface {
	GetSwapWorkflowStatus(ctx context.Context, swapID string) (*model.WorkflowStatus, error)
	GetAvailableSwapActions(ctx context.Context, swapID string) ([]model.SwapAction, error)
}

// Entry pairs a swap's workflow projection with the actions the backend
// currently accepts for it.
type Entry struct {
	Status  *model.WorkflowStatus
	Actions []model.SwapAction
}

// Cache lazily holds per-swap workflow projections. Entries are populated
// by RefreshActive after each list reload; a fetch failure for one swap id
// is logged and skipped so the other ids still populate.
type Cache struct {
	client StatusClient
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]Entry
}

// NewCache creates an empty workflow status cache.
func NewCache(client StatusClient, logger *zap.Logger) *Cache {
	return &Cache{
		client:  client,
		logger:  logger,
		entries: make(map[string]Entry),
	}
}

// RefreshActive fetches workflow status and available actions for every
// swap that is not in a terminal state. Fetches run as independent
// requests, never as an all-or-nothing batch.
func (c *Cache) RefreshActive(ctx context.Context, swaps []model.SwapRequest) {
	var wg sync.WaitGroup

	for i := range swaps {
		if !swaps[i].Status.IsActive() {
			continue
		}

		wg.Add(1)
		go func(swapID string) {
			defer wg.Done()
			c.refreshOne(ctx, swapID)
		}(swaps[i].ID)
	}

	wg.Wait()
}

func (c *Cache) refreshOne(ctx context.Context, swapID string) {
	status, err := c.client.GetSwapWorkflowStatus(ctx, swapID)
	if err != nil {
		c.logger.Warn("Failed to fetch workflow status",
			zap.String("swap_id", swapID),
			zap.Error(err))
		return
	}

	actions, err := c.client.GetAvailableSwapActions(ctx, swapID)
	if err != nil {
		c.logger.Warn("Failed to fetch available actions",
			zap.String("swap_id", swapID),
			zap.Error(err))
		return
	}

	c.mu.Lock()
	c.entries[swapID] = Entry{Status: status, Actions: actions}
	c.mu.Unlock()
}

// Get returns the cached entry for a swap id, if present.
func (c *Cache) Get(swapID string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[swapID]
	return entry, ok
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}
