package urlrisk

import (
	"strings"

	"phishshield/internal/urlrisk/lexical"
	"phishshield/internal/urlrisk/registry"
)

// DetectHomograph scans host (in its Unicode form) for confusable runes. It
// returns nil when none are present. A finding is returned even when the
// normalized host matches no trusted brand and uses a single script.
func DetectHomograph(host string, reg *registry.Registry) *HomographFinding {
	var positions []ConfusablePosition
	idx := 0
	for _, r := range host {
		if canonical, ok := reg.LookupConfusable(r); ok {
			positions = append(positions, ConfusablePosition{
				Index:     idx,
				Original:  string(r),
				Canonical: string(canonical),
			})
		}
		idx++
	}
	if len(positions) == 0 {
		return nil
	}

	normalized := reg.Normalize(host)
	scripts := lexical.Profile(host)
	finding := &HomographFinding{
		ConfusablePositions: positions,
		NormalizedDomain:    normalized,
		MixedScript:         scripts.Mixed(),
		Scripts:             scripts,
	}

	firstLabel, _, _ := strings.Cut(normalized, ".")
	if target, ok := reg.TrustedByLabel(firstLabel); ok {
		finding.MatchedBrand = target
		return finding
	}
	if baseLabel := registry.BareLabel(baseDomain(normalized)); baseLabel != firstLabel {
		if target, ok := reg.TrustedByLabel(baseLabel); ok {
			finding.MatchedBrand = target
		}
	}
	return finding
}
