// Package ports declares the infrastructure the analysis service depends on.
// Stores and publishers implement these without the service knowing whether
// they are backed by memory, Redis, Postgres or Kafka.
package ports

import (
	"context"
	"time"

	"phishshield/internal/urlrisk"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports-mocks.go -package=mocks

// Assessment is one served analysis together with its caller-facing verdict.
type Assessment struct {
	ID         string            `json:"id"`
	RequestID  string            `json:"request_id,omitempty"`
	Analysis   *urlrisk.Analysis `json:"analysis"`
	Level      urlrisk.RiskLevel `json:"risk_level"`
	IsPhishing bool              `json:"is_phishing"`
	Cached     bool              `json:"cached"`
	AnalyzedAt time.Time         `json:"analyzed_at"`
}

// AssessmentCache stores engine output by cache key.
// Get returns sentinel.ErrNotFound on a miss.
type AssessmentCache interface {
	Get(ctx context.Context, key string) (*urlrisk.Analysis, error)
	Set(ctx context.Context, key string, analysis *urlrisk.Analysis, ttl time.Duration) error
}

// HistoryStore records served assessments, newest first on read.
type HistoryStore interface {
	Append(ctx context.Context, assessment *Assessment) error
	Recent(ctx context.Context, limit int) ([]*Assessment, error)
}

// AlertPublisher forwards high-risk assessments to downstream consumers.
type AlertPublisher interface {
	PublishHighRisk(ctx context.Context, assessment *Assessment) error
}
