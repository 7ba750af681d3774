// Package urlrisk scores a single URL for phishing risk.
//
// The engine is a deterministic, side-effect-free pipeline:
//
//	Parse → ExtractFeatures
//	      → DetectTyposquat / DetectHomograph / DetectImpersonation
//	      → Score
//
// Reference data comes from an immutable registry.Registry supplied at
// construction. An Engine holds no mutable state and is safe for concurrent use.
package urlrisk

import (
	"phishshield/internal/urlrisk/registry"
)

// Engine analyses URLs against a fixed registry.
type Engine struct {
	reg *registry.Registry
}

// New returns an engine bound to reg. A nil reg selects registry.Default().
func New(reg *registry.Registry) *Engine {
	if reg == nil {
		reg = registry.Default()
	}
	return &Engine{reg: reg}
}

// Registry returns the reference data the engine scores against.
func (e *Engine) Registry() *registry.Registry {
	return e.reg
}

// AnalyzeURL runs the full pipeline on raw. It never fails: unparseable input,
// and any panic raised while analysing it, yield a zero score with the single
// factor FactorUnparseable.
func (e *Engine) AnalyzeURL(raw string) (analysis *Analysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = unparseable(raw)
		}
	}()

	parsed, err := Parse(raw)
	if err != nil {
		return unparseable(raw)
	}

	features := ExtractFeatures(parsed, e.reg)

	var typo *TyposquatMatch
	if !parsed.IsIP {
		typo = DetectTyposquat(parsed.UnicodeHost, parsed.BaseDomain, e.reg)
	}
	homo := DetectHomograph(parsed.UnicodeHost, e.reg)
	imp := DetectImpersonation(parsed, e.reg)

	return &Analysis{
		URL:           parsed.Normalized,
		Host:          parsed.Host,
		BaseDomain:    parsed.BaseDomain,
		Registrable:   parsed.Registrable,
		Features:      features,
		Typosquat:     typo,
		Homograph:     homo,
		Impersonation: imp,
		Assessment:    Score(features, typo, homo, imp),
	}
}

func unparseable(raw string) *Analysis {
	return &Analysis{
		URL: raw,
		Assessment: RiskAssessment{
			Score:     0,
			Factors:   []string{FactorUnparseable},
			Malformed: true,
		},
	}
}
