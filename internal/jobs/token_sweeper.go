package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// StaleTokenStore deletes refresh tokens that can no longer be used
type StaleTokenStore interface {
	DeleteStale(ctx context.Context, cutoff time.Time) (int, error)
}

// TokenSweeper periodically removes refresh tokens that are expired or were
// revoked longer than the retention period ago. Revoked tokens are kept for
// a while so a replayed token is still recognised as reuse.
type TokenSweeper struct {
	tokens     StaleTokenStore
	interval   time.Duration
	retention  time.Duration
	startDelay time.Duration
	now        func() time.Time
	stopCh     chan struct{}
	wg         sync.WaitGroup
	running    bool
	mu         sync.Mutex
}

// NewTokenSweeper creates a new sweeper job
func NewTokenSweeper(tokens StaleTokenStore, interval, retention time.Duration) *TokenSweeper {
	if interval == 0 {
		interval = time.Hour
	}
	return &TokenSweeper{
		tokens:     tokens,
		interval:   interval,
		retention:  retention,
		startDelay: 5 * time.Second,
		now:        time.Now,
	}
}

// Start begins the sweeper loop. A stopped sweeper can be started again.
func (s *TokenSweeper) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	stop := make(chan struct{})
	s.stopCh = stop
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(stop)
	slog.Info("token sweeper started", slog.Duration("interval", s.interval))
}

// Stop gracefully stops the sweeper and waits for an in-flight sweep
func (s *TokenSweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	stop := s.stopCh
	s.mu.Unlock()

	close(stop)
	s.wg.Wait()
	slog.Info("token sweeper stopped")
}

func (s *TokenSweeper) run(stop <-chan struct{}) {
	defer s.wg.Done()

	// Let the server finish starting before the first sweep
	select {
	case <-time.After(s.startDelay):
		s.sweep()
	case <-stop:
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-stop:
			return
		}
	}
}

func (s *TokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if _, err := s.RunOnce(ctx); err != nil {
		slog.Error("token sweep failed", slog.String("error", err.Error()))
	}
}

// RunOnce performs one sweep and returns how many tokens were deleted
func (s *TokenSweeper) RunOnce(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.tokens.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Info("swept refresh tokens", slog.Int("deleted", n))
	}
	return n, nil
}

// IsRunning returns whether the sweeper is running
func (s *TokenSweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
