package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/ports"
	"phishshield/pkg/platform/circuit"
	"phishshield/pkg/platform/sentinel"
)

// Guarded wraps a remote cache with a circuit breaker. While the breaker is
// open, calls return sentinel.ErrUnavailable without touching the backend.
type Guarded struct {
	next    ports.AssessmentCache
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// NewGuarded wraps next. A nil logger discards breaker transitions.
func NewGuarded(next ports.AssessmentCache, breaker *circuit.Breaker, logger *slog.Logger) *Guarded {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Guarded{next: next, breaker: breaker, logger: logger}
}

func (g *Guarded) Get(ctx context.Context, key string) (*urlrisk.Analysis, error) {
	if !g.breaker.Allow() {
		return nil, sentinel.ErrUnavailable
	}
	analysis, err := g.next.Get(ctx, key)
	g.observe(ctx, err)
	return analysis, err
}

func (g *Guarded) Set(ctx context.Context, key string, analysis *urlrisk.Analysis, ttl time.Duration) error {
	if !g.breaker.Allow() {
		return sentinel.ErrUnavailable
	}
	err := g.next.Set(ctx, key, analysis, ttl)
	g.observe(ctx, err)
	return err
}

func (g *Guarded) observe(ctx context.Context, err error) {
	if err == nil || errors.Is(err, sentinel.ErrNotFound) {
		if _, change := g.breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "assessment cache recovered", "breaker", g.breaker.Name())
		}
		return
	}
	if _, change := g.breaker.RecordFailure(); change.Opened {
		g.logger.WarnContext(ctx, "assessment cache bypassed after repeated failures",
			"breaker", g.breaker.Name(),
			"error", err,
		)
	}
}
