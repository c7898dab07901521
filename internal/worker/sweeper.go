// Package worker runs the periodic lifecycle sweeps: quote expiry, stale
// checkout expiry, balance scheduling and completion of elapsed events.
package worker

import (
	"context"
	"time"

	"event_marketplace/internal/usecase"

	"github.com/rs/zerolog"
)

// Job is one sweep. Run reports how many entities it changed.
type Job struct {
	Name string
	Run  func(ctx context.Context) (int, error)
}

// Jobs returns the sweeps backed by the given use cases, in the order they
// run on each tick.
func Jobs(quotes usecase.IQuoteUseCase, bookings usecase.IBookingUseCase, payments usecase.IPaymentUseCase) []Job {
	return []Job{
		{Name: "expire_quotes", Run: quotes.ExpireStale},
		{Name: "expire_payment_sessions", Run: payments.ExpireStaleSessions},
		{Name: "schedule_balances", Run: bookings.ScheduleDueBalances},
		{Name: "complete_bookings", Run: bookings.CompleteElapsed},
	}
}

type Sweeper struct {
	interval time.Duration
	jobs     []Job
	log      zerolog.Logger
}

func NewSweeper(interval time.Duration, log zerolog.Logger, jobs ...Job) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{
		interval: interval,
		jobs:     jobs,
		log:      log.With().Str("component", "sweeper").Logger(),
	}
}

// Run sweeps once immediately and then on every interval until ctx ends.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.Tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Tick runs every job once. A failing job is logged and does not stop the
// others.
func (s *Sweeper) Tick(ctx context.Context) {
	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return
		}
		started := time.Now()
		n, err := job.Run(ctx)
		if err != nil {
			s.log.Error().Err(err).Str("job", job.Name).Int("changed", n).Msg("sweep failed")
			continue
		}
		ev := s.log.Debug()
		if n > 0 {
			ev = s.log.Info()
		}
		ev.Str("job", job.Name).Int("changed", n).Dur("took", time.Since(started)).Msg("sweep done")
	}
}
