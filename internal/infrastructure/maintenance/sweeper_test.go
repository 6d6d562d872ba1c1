package maintenance

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/usermanager/user-management-api/internal/core/domain"
	"github.com/usermanager/user-management-api/internal/core/ports"
)

// sweepUserRepo implements only the call the sweeper makes; everything else
// fails loudly if reached.
type sweepUserRepo struct {
	calls   atomic.Int64
	cleared int64
	err     error
}

func (r *sweepUserRepo) ClearExpiredResetTokens(_ context.Context, _ time.Time) (int64, error) {
	r.calls.Add(1)
	return r.cleared, r.err
}

func (r *sweepUserRepo) Create(context.Context, *domain.User) (*domain.User, error) {
	panic("not implemented")
}
func (r *sweepUserRepo) FindByID(context.Context, string) (*domain.User, error) {
	panic("not implemented")
}
func (r *sweepUserRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	panic("not implemented")
}
func (r *sweepUserRepo) Update(context.Context, *domain.User) error { panic("not implemented") }
func (r *sweepUserRepo) Delete(context.Context, string) error       { panic("not implemented") }
func (r *sweepUserRepo) ListClientIDs(context.Context, string) ([]string, error) {
	panic("not implemented")
}
func (r *sweepUserRepo) CountClients(context.Context, string) (int64, error) {
	panic("not implemented")
}
func (r *sweepUserRepo) SetResetToken(context.Context, string, string, time.Time) error {
	panic("not implemented")
}
func (r *sweepUserRepo) ConsumeResetToken(context.Context, string, string, string, time.Time) error {
	panic("not implemented")
}

var _ ports.UserRepository = (*sweepUserRepo)(nil)

func TestSweeper_ClearsOnTick(t *testing.T) {
	repo := &sweepUserRepo{cleared: 2}
	s := NewSweeper(repo, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	deadline := time.After(2 * time.Second)
	for repo.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("sweeper never ran")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
}

func TestSweeper_KeepsRunningAfterError(t *testing.T) {
	repo := &sweepUserRepo{err: errors.New("store unavailable")}
	s := NewSweeper(repo, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	deadline := time.After(2 * time.Second)
	for repo.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("sweeper stopped after an error, %d calls", repo.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSweeper_DefaultInterval(t *testing.T) {
	s := NewSweeper(&sweepUserRepo{}, 0, zerolog.Nop())
	if s.interval != defaultSweepInterval {
		t.Fatalf("interval = %v, want %v", s.interval, defaultSweepInterval)
	}
}
