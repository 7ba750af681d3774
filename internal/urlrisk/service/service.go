package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/metrics"
	"phishshield/internal/urlrisk/ports"
	dErrors "phishshield/pkg/domain-errors"
	"phishshield/pkg/platform/sentinel"
	"phishshield/pkg/requestcontext"
)

const (
	// MaxURLLength bounds a single input URL in characters.
	MaxURLLength = 2048

	DefaultCacheTTL         = 10 * time.Minute
	DefaultAlertThreshold   = urlrisk.HighRiskThreshold
	DefaultBatchLimit       = 50
	DefaultBatchConcurrency = 8
	DefaultRecentLimit      = 20
	MaxRecentLimit          = 500
)

var tracer = otel.Tracer("phishshield/internal/urlrisk/service")

// Analyzer is the scoring engine. *urlrisk.Engine satisfies it.
type Analyzer interface {
	AnalyzeURL(raw string) *urlrisk.Analysis
}

// Service wraps the engine with caching, history, alerting and metrics.
// Cache, history and publisher are optional; their failures are logged and
// counted but never change the assessment returned to the caller.
type Service struct {
	analyzer  Analyzer
	cache     ports.AssessmentCache
	history   ports.HistoryStore
	publisher ports.AlertPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger

	cacheTTL         time.Duration
	alertThreshold   float64
	batchLimit       int
	batchConcurrency int
}

// Option configures a Service.
type Option func(*Service)

func WithCache(cache ports.AssessmentCache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func WithHistory(history ports.HistoryStore) Option {
	return func(s *Service) { s.history = history }
}

// WithPublisher sends assessments scoring at or above threshold to publisher.
func WithPublisher(publisher ports.AlertPublisher, threshold float64) Option {
	return func(s *Service) {
		s.publisher = publisher
		s.alertThreshold = threshold
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithBatchLimits caps batch size and the number of concurrent analyses.
func WithBatchLimits(limit, concurrency int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.batchLimit = limit
		}
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
	}
}

// New builds a Service around analyzer.
func New(analyzer Analyzer, opts ...Option) *Service {
	s := &Service{
		analyzer:         analyzer,
		logger:           slog.New(slog.DiscardHandler),
		cacheTTL:         DefaultCacheTTL,
		alertThreshold:   DefaultAlertThreshold,
		batchLimit:       DefaultBatchLimit,
		batchConcurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// BatchLimit returns the maximum number of URLs accepted by AnalyzeBatch.
func (s *Service) BatchLimit() int {
	return s.batchLimit
}

// ValidateURL checks the caller-facing input constraints.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return dErrors.New(dErrors.CodeValidation, "url is required")
	}
	if utf8.RuneCountInString(raw) > MaxURLLength {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("url must be at most %d characters", MaxURLLength))
	}
	return nil
}

// Analyze scores one URL.
func (s *Service) Analyze(ctx context.Context, raw string) (*ports.Assessment, error) {
	if err := ValidateURL(raw); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "urlrisk.Analyze")
	defer span.End()
	start := time.Now()

	analysis, cached := s.lookup(ctx, raw)
	if analysis == nil {
		analysis = s.analyzer.AnalyzeURL(raw)
		s.store(ctx, raw, analysis)
	}

	score := analysis.Assessment.Score
	assessment := &ports.Assessment{
		ID:         uuid.NewString(),
		RequestID:  requestcontext.RequestID(ctx),
		Analysis:   analysis,
		Level:      urlrisk.LevelFor(score),
		IsPhishing: urlrisk.IsPhishing(score),
		Cached:     cached,
		AnalyzedAt: requestcontext.Now(ctx),
	}

	s.record(ctx, assessment)
	if !cached {
		s.alert(ctx, assessment)
	}

	span.SetAttributes(
		attribute.Float64("urlrisk.score", score),
		attribute.String("urlrisk.level", string(assessment.Level)),
		attribute.Bool("urlrisk.cached", cached),
		attribute.Bool("urlrisk.malformed", analysis.Assessment.Malformed),
	)
	s.metrics.ObserveAnalysis(string(assessment.Level), cached, score, time.Since(start))

	return assessment, nil
}

// AnalyzeBatch scores urls concurrently and returns results in input order.
// All inputs are validated before any analysis starts.
func (s *Service) AnalyzeBatch(ctx context.Context, urls []string) ([]*ports.Assessment, error) {
	if len(urls) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "urls must not be empty")
	}
	if len(urls) > s.batchLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("at most %d urls per batch", s.batchLimit))
	}
	for i, raw := range urls {
		if err := ValidateURL(raw); err != nil {
			msg := err.Error()
			if de, ok := dErrors.As(err); ok {
				msg = de.Message
			}
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("urls[%d]: %s", i, msg))
		}
	}

	ctx, span := tracer.Start(ctx, "urlrisk.AnalyzeBatch")
	defer span.End()
	span.SetAttributes(attribute.Int("urlrisk.batch_size", len(urls)))
	s.metrics.ObserveBatchSize(len(urls))

	// one timestamp for the whole batch
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))

	results := make([]*ports.Assessment, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, raw := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a, err := s.Analyze(gctx, raw)
			if err != nil {
				return err
			}
			results[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "batch analysis timed out")
		}
		if errors.Is(err, context.Canceled) {
			return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "batch analysis cancelled")
		}
		return nil, err
	}
	return results, nil
}

// Recent returns up to limit of the newest recorded assessments. A limit of
// zero selects DefaultRecentLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]*ports.Assessment, error) {
	if limit == 0 {
		limit = DefaultRecentLimit
	}
	if limit < 0 || limit > MaxRecentLimit {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("limit must be between 1 and %d", MaxRecentLimit))
	}
	if s.history == nil {
		return []*ports.Assessment{}, nil
	}
	records, err := s.history.Recent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read analysis history")
	}
	return records, nil
}

func (s *Service) lookup(ctx context.Context, raw string) (*urlrisk.Analysis, bool) {
	if s.cache == nil {
		return nil, false
	}
	analysis, err := s.cache.Get(ctx, CacheKey(raw))
	switch {
	case err == nil && analysis != nil:
		s.metrics.IncrementCacheLookup("hit")
		return analysis, true
	case err == nil, errors.Is(err, sentinel.ErrNotFound):
		s.metrics.IncrementCacheLookup("miss")
	case errors.Is(err, sentinel.ErrUnavailable):
		s.metrics.IncrementCacheLookup("bypass")
	default:
		s.metrics.IncrementCacheLookup("error")
		s.warn(ctx, "cache", "assessment cache read failed", err)
	}
	return nil, false
}

func (s *Service) store(ctx context.Context, raw string, analysis *urlrisk.Analysis) {
	// malformed input is cheap to re-analyse
	if s.cache == nil || analysis.Assessment.Malformed {
		return
	}
	if err := s.cache.Set(ctx, CacheKey(raw), analysis, s.cacheTTL); err != nil && !errors.Is(err, sentinel.ErrUnavailable) {
		s.warn(ctx, "cache", "assessment cache write failed", err)
	}
}

func (s *Service) record(ctx context.Context, assessment *ports.Assessment) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, assessment); err != nil {
		s.warn(ctx, "history", "failed to record analysis", err)
	}
}

func (s *Service) alert(ctx context.Context, assessment *ports.Assessment) {
	if s.publisher == nil || assessment.Analysis.Assessment.Malformed ||
		assessment.Analysis.Assessment.Score < s.alertThreshold {
		return
	}
	if err := s.publisher.PublishHighRisk(ctx, assessment); err != nil {
		s.metrics.IncrementAlert("error")
		s.warn(ctx, "publisher", "failed to publish high-risk alert", err)
		return
	}
	s.metrics.IncrementAlert("ok")
	s.logger.InfoContext(ctx, "high-risk alert published",
		"request_id", assessment.RequestID,
		"assessment_id", assessment.ID,
		"score", assessment.Analysis.Assessment.Score,
	)
}

func (s *Service) warn(ctx context.Context, component, msg string, err error) {
	s.metrics.IncrementSideEffectFailure(component)
	s.logger.WarnContext(ctx, msg,
		"component", component,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
