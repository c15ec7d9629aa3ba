package service

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/spotbulle/pitchmatch/internal/domain"
	"github.com/spotbulle/pitchmatch/internal/logger"
)

// SchedulerProfileStore lists the profiles eligible for rematching.
type SchedulerProfileStore interface {
	ListWithEmbeddings(ctx context.Context) ([]domain.AstroProfile, error)
}

// Rematcher is the matching pass triggered by the sweep.
type Rematcher interface {
	Run(ctx context.Context, userID string) ([]domain.Match, error)
}

// Scheduler runs the periodic rematch sweep: every embedded profile is
// rescored against the pool so new arrivals surface in existing users'
// match lists without manual triggers.
type Scheduler struct {
	cron     *cron.Cron
	profiles SchedulerProfileStore
	matcher  Rematcher
	spec     string
}

// NewScheduler creates the sweep scheduler. spec is a standard 5-field
// cron expression.
func NewScheduler(profiles SchedulerProfileStore, matcher Rematcher, spec string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		profiles: profiles,
		matcher:  matcher,
		spec:     spec,
	}
}

// Start registers the sweep job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.Sweep(context.Background())
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	logger.Info("Rematch scheduler started: spec=%s", s.spec)
	return nil
}

// Stop stops the cron loop, waiting for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep rescores every profile that has an embedding. Individual
// failures are logged and the sweep continues.
func (s *Scheduler) Sweep(ctx context.Context) {
	ctx = logger.SetStage(ctx, "rematch")

	profiles, err := s.profiles.ListWithEmbeddings(ctx)
	if err != nil {
		logger.CtxError(ctx, "Rematch sweep failed to list profiles: %v", err)
		return
	}

	failed := 0
	for i := range profiles {
		if _, err := s.matcher.Run(ctx, profiles[i].UserID); err != nil {
			logger.CtxWarn(ctx, "Rematch failed: user_id=%s, error=%v", profiles[i].UserID, err)
			failed++
		}
	}

	logger.With(logger.Fields{
		logger.FieldCount: len(profiles),
		"failed":          failed,
	}).Info(ctx, "Rematch sweep completed")
}
