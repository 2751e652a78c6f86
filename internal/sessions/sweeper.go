package sessions

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Sweeper periodically evicts sessions idle for longer than timeout.
type Sweeper struct {
	store    *Store
	timeout  time.Duration
	interval time.Duration
	onEvict  func(id string)
	logger   *slog.Logger
	now      func() time.Time
}

func NewSweeper(store *Store, timeout, interval time.Duration, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		store:    store,
		timeout:  timeout,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// OnEvict registers a callback invoked for each evicted session id.
func (s *Sweeper) OnEvict(fn func(id string)) {
	s.onEvict = fn
}

// Sweep runs a single eviction pass and returns the removed ids.
// A panic inside the pass is logged and swallowed.
func (s *Sweeper) Sweep() (removed []string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session sweep panicked", "error", r)
		}
	}()

	cutoff := s.now().Add(-s.timeout)
	removed = s.store.Expire(cutoff)
	if len(removed) == 0 {
		return removed
	}

	s.logger.Info("cleaned up sessions", "count", len(removed), "session_ids", removed)
	if s.onEvict != nil {
		for _, id := range removed {
			s.onEvict(id)
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled. Wait on the returned
// WaitGroup to know the loop has exited.
func (s *Sweeper) Run(ctx context.Context) *sync.WaitGroup {
	ticker := time.NewTicker(s.interval)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				s.logger.Debug("session sweeper stopped")
				return
			}
		}
	}()

	return wg
}
