package handler

import (
	"time"

	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/ports"
)

// AnalyzeResponse is the HTTP response for one analysed URL.
type AnalyzeResponse struct {
	ID                string                        `json:"id"`
	URL               string                        `json:"url"`
	Host              string                        `json:"host"`
	BaseDomain        string                        `json:"base_domain"`
	RegistrableDomain string                        `json:"registrable_domain"`
	Score             float64                       `json:"score"`
	RiskLevel         string                        `json:"risk_level"`
	IsPhishing        bool                          `json:"is_phishing"`
	Factors           []string                      `json:"factors"`
	Features          urlrisk.Features              `json:"features"`
	Typosquat         *urlrisk.TyposquatMatch       `json:"typosquat,omitempty"`
	Homograph         *urlrisk.HomographFinding     `json:"homograph,omitempty"`
	Impersonation     *urlrisk.ImpersonationFinding `json:"impersonation,omitempty"`
	Malformed         bool                          `json:"malformed,omitempty"`
	Cached            bool                          `json:"cached"`
	AnalyzedAt        time.Time                     `json:"analyzed_at"`
}

// BatchResponse is the HTTP response for POST /url/analyze/batch.
type BatchResponse struct {
	Results []*AnalyzeResponse `json:"results"`
	Count   int                `json:"count"`
}

// HistoryResponse is the HTTP response for GET /url/history.
type HistoryResponse struct {
	Analyses []*AnalyzeResponse `json:"analyses"`
	Count    int                `json:"count"`
}

// FromAssessment converts a service assessment to an HTTP response.
func FromAssessment(a *ports.Assessment) *AnalyzeResponse {
	analysis := a.Analysis
	factors := analysis.Assessment.Factors
	if factors == nil {
		factors = []string{}
	}
	return &AnalyzeResponse{
		ID:                a.ID,
		URL:               analysis.URL,
		Host:              analysis.Host,
		BaseDomain:        analysis.BaseDomain,
		RegistrableDomain: analysis.Registrable,
		Score:             analysis.Assessment.Score,
		RiskLevel:         string(a.Level),
		IsPhishing:        a.IsPhishing,
		Factors:           factors,
		Features:          analysis.Features,
		Typosquat:         analysis.Typosquat,
		Homograph:         analysis.Homograph,
		Impersonation:     analysis.Impersonation,
		Malformed:         analysis.Assessment.Malformed,
		Cached:            a.Cached,
		AnalyzedAt:        a.AnalyzedAt,
	}
}

func fromAssessments(in []*ports.Assessment) []*AnalyzeResponse {
	out := make([]*AnalyzeResponse, 0, len(in))
	for _, a := range in {
		if a != nil && a.Analysis != nil {
			out = append(out, FromAssessment(a))
		}
	}
	return out
}
