// FILE: vislog/src/internal/filter/chain.go
package filter

import (
	"vislog/src/internal/config"
	"vislog/src/internal/core"

	"github.com/lixenwraith/log"
)

// Chain accepts a record only if every criterion accepts it
type Chain struct {
	criteria []Criterion
	logger   *log.Logger

	// Statistics
	totalProcessed uint64
	totalPassed    uint64
}

// NewChain builds the criteria for the supplied filter options
func NewChain(cfg config.FilterConfig, timeFormat string, logger *log.Logger) (*Chain, error) {
	criteria, err := BuildCriteria(cfg, timeFormat)
	if err != nil {
		return nil, err
	}

	chain := NewChainFrom(criteria, logger)

	logger.Debug("msg", "Filter chain created",
		"component", "filter_chain",
		"criteria", cfg.Supplied())
	return chain, nil
}

// NewChainFrom wraps already built criteria, evaluated in the given order
func NewChainFrom(criteria []Criterion, logger *log.Logger) *Chain {
	return &Chain{
		criteria: criteria,
		logger:   logger,
	}
}

// Apply runs a record through all criteria, stopping at the first rejection
func (c *Chain) Apply(rec core.Record) bool {
	c.totalProcessed++

	for _, criterion := range c.criteria {
		if !criterion.Accept(rec) {
			c.logger.Debug("msg", "Record filtered out",
				"component", "filter_chain",
				"criterion", criterion.Name(),
				"pid", rec.PID,
				"tid", rec.TID)
			return false
		}
	}

	c.totalPassed++
	return true
}

// Len returns the number of criteria
func (c *Chain) Len() int {
	return len(c.criteria)
}

// GetStats returns counters for the chain
func (c *Chain) GetStats() map[string]any {
	names := make([]string, len(c.criteria))
	for i, criterion := range c.criteria {
		names[i] = criterion.Name()
	}

	return map[string]any{
		"criteria":        names,
		"total_processed": c.totalProcessed,
		"total_passed":    c.totalPassed,
	}
}
