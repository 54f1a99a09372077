// Package scheduler runs periodic database maintenance for the API server.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/sadopc/calendr/internal/store"
)

// Maintainer is the store surface the job needs.
type Maintainer interface {
	Maintain(ctx context.Context) (store.Orphans, error)
}

type Scheduler struct {
	schedule cron.Schedule
	spec     string
	target   Maintainer
	log      *slog.Logger
}

// New parses spec as a standard five-field cron expression or a descriptor
// such as "@every 6h".
func New(spec string, target Maintainer, logger *slog.Logger) (*Scheduler, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse maintenance schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{schedule: sched, spec: spec, target: target, log: logger}, nil
}

// RunOnce performs a single maintenance pass and logs what it found.
func (s *Scheduler) RunOnce(ctx context.Context) {
	o, err := s.target.Maintain(ctx)
	if err != nil {
		s.log.Error("maintenance failed", "err", err)
		return
	}
	if o.Events+o.Appointments+o.Tasks > 0 {
		s.log.Warn("orphaned rows found",
			"events", o.Events,
			"appointments", o.Appointments,
			"tasks", o.Tasks,
		)
		return
	}
	s.log.Debug("maintenance complete")
}

// Run blocks until ctx is cancelled, firing RunOnce on schedule. A job in
// flight is allowed to finish before Run returns.
func (s *Scheduler) Run(ctx context.Context) error {
	c := cron.New()
	c.Schedule(s.schedule, cron.FuncJob(func() { s.RunOnce(ctx) }))
	c.Start()
	s.log.Info("maintenance scheduled", "spec", s.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
