package retention

import (
	"context"
	"fmt"
	"time"

	"helios-hq/lantern/pkg/audit"
	"helios-hq/lantern/pkg/logger"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to retain records.
	// 0 means keep records forever (no age-based pruning).
	RetentionDays int

	// MaxRecords is the maximum number of records to keep.
	// 0 means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables scheduling.
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: 90,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention policies on audit records.
type Pruner struct {
	storage audit.Storage
	config  *Config
	log     *logger.Logger
}

// NewPruner creates a retention pruner. log may be nil.
func NewPruner(storage audit.Storage, config *Config, log *logger.Logger) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pruner{storage: storage, config: config, log: log}
}

// Prune deletes records older than the retention period or exceeding the
// maximum record count, in that order, and returns the total deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -p.config.RetentionDays)
		deleted, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by age failed: %w", err)
		}
		totalDeleted += deleted
		if p.log != nil && deleted > 0 {
			p.log.Info("pruned audit records by age", logger.F{
				"deleted_count":  deleted,
				"retention_days": p.config.RetentionDays,
			})
		}
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.storage.DeleteOldest(ctx, p.config.MaxRecords)
		if err != nil {
			return totalDeleted, fmt.Errorf("prune by count failed: %w", err)
		}
		totalDeleted += deleted
		if p.log != nil && deleted > 0 {
			p.log.Info("pruned audit records by count", logger.F{
				"deleted_count": deleted,
				"max_records":   p.config.MaxRecords,
			})
		}
	}

	return totalDeleted, nil
}
