// Package memo provides the caller-side memoization layer for engine
// invocations. The engine itself is pure and safe to call repeatedly; this
// cache only avoids redundant recomputation when unrelated caller state
// changes between renders.
package memo

import (
	"encoding/json"
	"fmt"
	"hash/fnv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cdenuyl/tax-planning-pro/internal/calculation"
	"github.com/cdenuyl/tax-planning-pro/internal/config"
	"github.com/cdenuyl/tax-planning-pro/internal/domain"
)

// DefaultCacheSize bounds how many distinct input snapshots stay cached.
const DefaultCacheSize = 64

// Calculator memoizes CalculationEngine.Calculate keyed by a hash of the
// full input snapshot. Because the engine is deterministic, a hash
// collision is the only way to return a wrong result, so the full
// canonical key is kept alongside the entry and compared on every hit.
type Calculator struct {
	engine *calculation.CalculationEngine
	cache  *lru.Cache[uint64, *entry]
}

type entry struct {
	key    string
	result *domain.CalculationResult
}

// NewCalculator wraps an engine in a memoizing layer.
func NewCalculator(engine *calculation.CalculationEngine) (*Calculator, error) {
	cache, err := lru.New[uint64, *entry](DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Calculator{engine: engine, cache: cache}, nil
}

// Calculate returns the cached result for an identical snapshot, or runs
// the engine and caches. The returned result must be treated as read-only
// by callers; the engine never mutates a result after returning it.
func (c *Calculator) Calculate(snapshot *config.Snapshot) *domain.CalculationResult {
	key, sum, err := snapshotKey(snapshot)
	if err != nil {
		// An unkeyable snapshot just skips the cache.
		return c.engine.Calculate(&snapshot.Household, snapshot.IncomeSources, snapshot.Deductions, snapshot.Settings)
	}

	if cached, ok := c.cache.Get(sum); ok && cached.key == key {
		return cached.result
	}

	result := c.engine.Calculate(&snapshot.Household, snapshot.IncomeSources, snapshot.Deductions, snapshot.Settings)
	c.cache.Add(sum, &entry{key: key, result: result})
	return result
}

// Len reports how many snapshots are cached.
func (c *Calculator) Len() int {
	return c.cache.Len()
}

// Purge empties the cache.
func (c *Calculator) Purge() {
	c.cache.Purge()
}

// snapshotKey canonicalizes the snapshot as JSON and hashes it. JSON field
// order is fixed by the struct definitions, so equal snapshots produce
// equal keys.
func snapshotKey(snapshot *config.Snapshot) (string, uint64, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", 0, err
	}
	h := fnv.New64a()
	_, _ = h.Write(data)
	return string(data), h.Sum64(), nil
}
