package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/Roulette/internal/domain"
)

// Reaper periodically force-closes sessions older than MaxAge. It is a
// safety net for sessions whose termination events never arrived (both
// peers hard-crashed, transport anomaly), not the primary cleanup path.
type Reaper struct {
	Match    *Matchmaker
	Interval time.Duration
	MaxAge   time.Duration

	// OnReaped runs outside the matchmaker lock, once per destroyed
	// session, so the orchestrator can notify both members.
	OnReaped func(*domain.Session)
}

// Run blocks until ctx is done. Start it with go; its lifetime is tied
// to the service context, not a bare timer.
func (r *Reaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()
	log.Info().Str("module", "app.reaper").Dur("interval", r.Interval).
		Dur("max_age", r.MaxAge).Msg("reaper started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reaper").Msg("reaper stopped")
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Reaper) sweep() {
	stale := r.Match.SweepStale(r.MaxAge)
	if len(stale) == 0 {
		return
	}
	log.Info().Str("module", "app.reaper").Int("reaped", len(stale)).Msg("swept stale sessions")
	if r.OnReaped == nil {
		return
	}
	for _, sess := range stale {
		r.OnReaped(sess)
	}
}
