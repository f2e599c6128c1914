package retention

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"helios-hq/lantern/pkg/logger"
)

// Scheduler runs the pruner at intervals described by a cron expression,
// e.g. "0 3 * * *" for daily at 3 AM.
type Scheduler struct {
	pruner  *Pruner
	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewScheduler creates a retention scheduler over the given pruner.
func NewScheduler(pruner *Pruner) *Scheduler {
	return &Scheduler{
		pruner: pruner,
		cron:   cron.New(),
	}
}

// Start begins scheduled pruning based on the pruner's PruneSchedule. An
// empty schedule is a no-op. The scheduler stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	schedule := s.pruner.config.PruneSchedule
	if schedule == "" {
		return nil
	}
	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}

	if _, err := s.cron.AddFunc(schedule, func() {
		s.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule pruning: %w", err)
	}

	s.cron.Start()
	s.running = true

	if s.pruner.log != nil {
		s.pruner.log.Info("audit retention scheduler started", logger.F{
			"schedule":       schedule,
			"retention_days": s.pruner.config.RetentionDays,
			"max_records":    s.pruner.config.MaxRecords,
		})
	}

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop halts scheduled pruning. Jobs already running complete normally.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
}

func (s *Scheduler) runPruning(ctx context.Context) {
	deleted, err := s.pruner.Prune(ctx)
	if err != nil {
		if s.pruner.log != nil {
			s.pruner.log.Warn("scheduled audit pruning failed", logger.F{"error": err})
		}
		return
	}
	if s.pruner.log != nil && deleted > 0 {
		s.pruner.log.Info("scheduled audit pruning complete", logger.F{"deleted_count": deleted})
	}
}
