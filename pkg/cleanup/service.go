// Package cleanup runs the change log's retention policy: periodically
// pruning change units older than a configured age so the SQLite file
// doesn't grow without bound.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/jjgarcianorway/anna/pkg/changelog"
)

// Config bounds how long change units are kept and how often the prune
// sweep runs.
type Config struct {
	ChangeUnitRetention time.Duration
	Interval            time.Duration
}

// DefaultConfig keeps 90 days of change history, checked hourly.
func DefaultConfig() Config {
	return Config{
		ChangeUnitRetention: 90 * 24 * time.Hour,
		Interval:            time.Hour,
	}
}

// Service periodically prunes change units older than cfg.ChangeUnitRetention
// from the change log store.
type Service struct {
	cfg   Config
	store *changelog.Store

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a retention Service bound to store.
func NewService(cfg Config, store *changelog.Store) *Service {
	return &Service{cfg: cfg, store: store}
}

// Start launches the background prune loop.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("change log retention started",
		"retention", s.cfg.ChangeUnitRetention, "interval", s.cfg.Interval)
}

// Stop signals the prune loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("change log retention stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.pruneOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pruneOnce(ctx)
		}
	}
}

func (s *Service) pruneOnce(ctx context.Context) {
	cutoff := time.Now().Add(-s.cfg.ChangeUnitRetention)
	n, err := s.store.PruneOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("change log retention: prune failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("change log retention: pruned old change units", "count", n, "cutoff", cutoff)
	}
}
