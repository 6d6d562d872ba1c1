// Package maintenance hosts background housekeeping tasks for the user store.
package maintenance

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermanager/user-management-api/internal/api/metrics"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

const defaultSweepInterval = 10 * time.Minute

// Sweeper periodically clears expired password-reset token pairs from user
// records. Consumption and expiry checks are already enforced at read time;
// the sweeper only keeps stale token/expiry pairs from lingering in storage.
type Sweeper struct {
	users    ports.UserRepository
	interval time.Duration
	log      zerolog.Logger
}

// NewSweeper creates a Sweeper. If interval <= 0, defaultSweepInterval is used.
func NewSweeper(users ports.UserRepository, interval time.Duration, log zerolog.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &Sweeper{users: users, interval: interval, log: log}
}

// Start launches the sweep loop in a goroutine. It stops when ctx is
// cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("reset token sweeper stopped")
			return
		case <-ticker.C:
			n, err := s.users.ClearExpiredResetTokens(ctx, time.Now().UTC())
			if err != nil {
				s.log.Warn().Err(err).Msg("reset token sweep failed")
				continue
			}
			if n > 0 {
				metrics.ResetTokensSweptTotal.Add(float64(n))
				s.log.Info().Int64("cleared", n).Msg("expired reset tokens cleared")
			}
		}
	}
}
