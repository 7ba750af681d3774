package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"phishshield/internal/urlrisk/ports"
	"phishshield/pkg/platform/httputil"
	"phishshield/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks Service

// Service defines the analysis operations exposed over HTTP.
type Service interface {
	Analyze(ctx context.Context, raw string) (*ports.Assessment, error)
	AnalyzeBatch(ctx context.Context, urls []string) ([]*ports.Assessment, error)
	Recent(ctx context.Context, limit int) ([]*ports.Assessment, error)
}

// Handler wires URL analysis endpoints to the analysis service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a URL analysis handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the public analysis endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/url/analyze", h.HandleAnalyze)
	r.Post("/url/analyze/batch", h.HandleAnalyzeBatch)
}

// RegisterAdmin mounts operator endpoints. Callers guard r with the admin
// token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/url/history", h.HandleHistory)
}

// HandleAnalyze handles POST /url/analyze requests.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[AnalyzeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Analyze(ctx, req.URL)
	if err != nil {
		h.logger.ErrorContext(ctx, "url analysis failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "url analyzed",
		"request_id", requestID,
		"host", result.Analysis.Host,
		"score", result.Analysis.Assessment.Score,
		"risk_level", result.Level,
		"cached", result.Cached,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(result))
}

// HandleAnalyzeBatch handles POST /url/analyze/batch requests.
func (h *Handler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results, err := h.service.AnalyzeBatch(ctx, req.URLs)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch url analysis failed",
			"request_id", requestID,
			"batch_size", len(req.URLs),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "url batch analyzed",
		"request_id", requestID,
		"batch_size", len(results),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	items := fromAssessments(results)
	httputil.WriteJSON(w, http.StatusOK, &BatchResponse{Results: items, Count: len(items)})
}

// HandleHistory handles GET /url/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records, err := h.service.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read analysis history",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	items := fromAssessments(records)
	httputil.WriteJSON(w, http.StatusOK, &HistoryResponse{Analyses: items, Count: len(items)})
}
