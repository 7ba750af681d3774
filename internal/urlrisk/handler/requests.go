package handler

import (
	"strconv"
	"strings"

	"phishshield/internal/urlrisk/service"
	dErrors "phishshield/pkg/domain-errors"
)

// AnalyzeRequest is the HTTP request body for POST /url/analyze.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// Validate implements httputil.Validatable.
func (r *AnalyzeRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return service.ValidateURL(r.URL)
}

// BatchRequest is the HTTP request body for POST /url/analyze/batch.
type BatchRequest struct {
	URLs []string `json:"urls"`
}

// Validate checks presence only; per-URL and size limits are enforced by the
// service so they follow its configuration.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.URLs) == 0 {
		return dErrors.New(dErrors.CodeValidation, "urls must not be empty")
	}
	return nil
}

// parseLimit reads the optional ?limit= query value. Empty means zero, which
// lets the service apply its default.
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, dErrors.New(dErrors.CodeValidation, "limit must be a positive integer")
	}
	return limit, nil
}
