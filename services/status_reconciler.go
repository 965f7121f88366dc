package services

import (
	"context"
	"time"

	"github.com/rpupo63/hackathon-platform-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// StatusReconciler periodically moves hackathons between upcoming, ongoing
// and past according to their start and end dates.
type StatusReconciler struct {
	repo     *database.HackathonRepo
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewStatusReconciler(repo *database.HackathonRepo, interval time.Duration) *StatusReconciler {
	return &StatusReconciler{
		repo:     repo,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   log.With().Str("service", "statusReconciler").Logger(),
	}
}

// RunOnce performs a single reconciliation pass and returns how many
// hackathons changed status.
func (s *StatusReconciler) RunOnce(ctx context.Context) (int64, error) {
	moved, err := s.repo.AdvanceStatuses(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		s.logger.Info().Int64("moved", moved).Msg("hackathon statuses advanced")
	}
	return moved, nil
}

// Run reconciles immediately and then on every tick until ctx is done. A
// failed pass is logged and retried on the next tick. A non-positive interval
// disables the reconciler.
func (s *StatusReconciler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info().Msg("status reconciliation disabled")
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if _, err := s.RunOnce(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error().Err(err).Msg("status reconciliation failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
