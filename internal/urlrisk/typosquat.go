package urlrisk

import (
	"github.com/agnivade/levenshtein"

	"phishshield/internal/urlrisk/lexical"
	"phishshield/internal/urlrisk/registry"
)

// maxTyposquatDistance is the largest edit distance still reported as a typosquat.
const maxTyposquatDistance = 2

// DetectTyposquat compares the bare label of baseDomain with every trusted
// domain. Precedence: exact trusted match (no finding), confusable-character
// substitution, TLD swap, then the closest edit distance in (0, 2]. Distances
// are measured on the label as written; confusable normalisation only feeds
// the char_substitution check.
func DetectTyposquat(host, baseDomain string, reg *registry.Registry) *TyposquatMatch {
	if reg.IsTrusted(host) || reg.IsTrusted(baseDomain) {
		return nil
	}

	bare := registry.BareLabel(baseDomain)
	normalized := reg.Normalize(bare)

	if normalized != bare {
		if target, ok := reg.TrustedByLabel(normalized); ok {
			return &TyposquatMatch{TargetDomain: target, EditDistance: 0, EditType: EditCharSubstitution}
		}
	}
	if target, ok := reg.TrustedByLabel(bare); ok {
		return &TyposquatMatch{TargetDomain: target, EditDistance: 0, EditType: EditTLDSwap}
	}

	var (
		best      registry.TrustedDomain
		bestDist  = maxTyposquatDistance + 1
		bestFound bool
	)
	for _, trusted := range reg.TrustedDomains() {
		d := levenshtein.ComputeDistance(bare, trusted.Label)
		if d > 0 && d < bestDist {
			best, bestDist, bestFound = trusted, d, true
		}
	}
	if !bestFound {
		return nil
	}

	match := &TyposquatMatch{TargetDomain: best.Domain, EditDistance: bestDist}
	match.EditType, match.KeyboardAdjacent = classifyEdit([]rune(bare), []rune(best.Label))
	return match
}

// classifyEdit names the dominant edit turning target into candidate. For a
// single-character substitution it also reports keyboard adjacency.
func classifyEdit(candidate, target []rune) (EditType, bool) {
	switch {
	case len(candidate) > len(target):
		return EditInsertion, false
	case len(candidate) < len(target):
		return EditOmission, false
	}

	var diffs []int
	for i := range candidate {
		if candidate[i] != target[i] {
			diffs = append(diffs, i)
		}
	}
	if len(diffs) == 2 && diffs[1] == diffs[0]+1 &&
		candidate[diffs[0]] == target[diffs[1]] && candidate[diffs[1]] == target[diffs[0]] {
		return EditTransposition, false
	}
	if len(diffs) == 1 {
		i := diffs[0]
		return EditSubstitution, lexical.KeyboardAdjacent(candidate[i], target[i])
	}
	return EditSubstitution, false
}
