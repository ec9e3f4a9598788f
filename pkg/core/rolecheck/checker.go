package rolecheck

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/harbourview/swapctl/pkg/clients/swapapi"
	"github.com/harbourview/swapctl/pkg/core/model"
)

// CompatibilityClient defines the swap API operation the checker depends on.
type CompatibilityClient interface {
	CheckRoleCompatibility(ctx context.Context, req *swapapi.RoleCompatibilityQuery) (*model.RoleCompatibility, error)
}

// Checker memoizes role-compatibility pre-checks keyed by the full query.
// Role assignments change rarely within one session, so entries are never
// invalidated automatically; ClearCache is the only reset. Staleness is an
// accepted trade-off, not a correctness guarantee.
type Checker struct {
	client CompatibilityClient
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]*model.RoleCompatibility
}

// NewChecker creates a checker with an empty cache.
func NewChecker(client CompatibilityClient, logger *zap.Logger) *Checker {
	return &Checker{
		client: client,
		logger: logger,
		cache:  make(map[string]*model.RoleCompatibility),
	}
}

// Check returns the compatibility result for the query, from cache when an
// identical query already ran this session.
func (c *Checker) Check(ctx context.Context, query *swapapi.RoleCompatibilityQuery) (*model.RoleCompatibility, error) {
	key := cacheKey(query)

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		c.logger.Debug("Role compatibility cache hit", zap.String("key", key))
		return cached, nil
	}
	c.mu.Unlock()

	result, err := c.client.CheckRoleCompatibility(ctx, query)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = result
	c.mu.Unlock()

	return result, nil
}

// CachedLen returns the number of memoized results.
func (c *Checker) CachedLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// ClearCache drops every memoized result, forcing the next identical query
// to re-fetch.
func (c *Checker) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]*model.RoleCompatibility)
}

func cacheKey(q *swapapi.RoleCompatibilityQuery) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d",
		q.FacilityID, q.ZoneID, q.StaffID, q.OriginalShiftDay, q.OriginalShiftNumber)
}
