package urlrisk

import (
	"fmt"
	"math"
	"strings"

	pstrings "phishshield/pkg/platform/strings"
)

// Signal weights. The running total is clamped to 1.0 once, after every
// signal has been added.
const (
	weightVeryLongURL         = 0.15
	weightLongURL             = 0.08
	weightNoHTTPS             = 0.10
	weightIPHost              = 0.30
	weightAtSymbol            = 0.25
	weightRedirectMarker      = 0.15
	weightHyphen              = 0.05
	weightUnderscore          = 0.08
	weightPathTraversal       = 0.10
	weightPerKeyword          = 0.04
	maxKeywordWeight          = 0.20
	weightSuspiciousTLD       = 0.15
	weightManySubdomains      = 0.15
	weightSomeSubdomains      = 0.08
	weightNonStandardPort     = 0.10
	weightPunycode            = 0.20
	weightTyposquatClose      = 0.40
	weightTyposquatFar        = 0.30
	weightHomographBrand      = 0.50
	weightHomographMixed      = 0.35
	weightHomographPlain      = 0.25
	weightBrandInSubdomain    = 0.35
	weightBrandInPath         = 0.20
	weightBrandInDomain       = 0.20
	weightDeceptivePattern    = 0.15
	veryLongURLThreshold      = 100
	longURLThreshold          = 75
	manySubdomainsThreshold   = 3
	someSubdomainsThreshold   = 2
	closeTyposquatMaxDistance = 1
)

// FactorUnparseable is the single factor reported for input that cannot be
// parsed as a URL.
const FactorUnparseable = "unparseable-url"

type accumulator struct {
	total   float64
	factors []string
}

func (a *accumulator) add(weight float64, factor string) {
	a.total += weight
	a.factors = append(a.factors, factor)
}

// Score combines features and detector findings into a RiskAssessment.
// Pure domain logic - no I/O.
func Score(f Features, typo *TyposquatMatch, homo *HomographFinding, imp *ImpersonationFinding) RiskAssessment {
	var acc accumulator

	switch {
	case f.URLLength > veryLongURLThreshold:
		acc.add(weightVeryLongURL, fmt.Sprintf("Very long URL (%d characters)", f.URLLength))
	case f.URLLength > longURLThreshold:
		acc.add(weightLongURL, fmt.Sprintf("Long URL (%d characters)", f.URLLength))
	}
	if !f.UsesHTTPS {
		acc.add(weightNoHTTPS, "Does not use HTTPS")
	}
	if f.IsIPHost {
		acc.add(weightIPHost, "Uses an IP address instead of a domain name")
	}
	if f.HasAtSymbol {
		acc.add(weightAtSymbol, "Contains '@' symbol")
	}
	if f.HasRedirectMarker {
		acc.add(weightRedirectMarker, "Contains redirect marker '//'")
	}
	if f.HasHyphenInHost {
		acc.add(weightHyphen, "Hyphen in domain name")
	}
	if f.HasUnderscoreInHost {
		acc.add(weightUnderscore, "Underscore in domain name")
	}
	if f.HasPathTraversal {
		acc.add(weightPathTraversal, "Suspicious path structure ('/.' or '//')")
	}
	if n := len(f.KeywordHits); n > 0 {
		acc.add(math.Min(maxKeywordWeight, weightPerKeyword*float64(n)),
			"Suspicious keywords: "+strings.Join(f.KeywordHits, ", "))
	}
	if f.SuspiciousTLD != "" {
		acc.add(weightSuspiciousTLD, "Suspicious top-level domain: ."+f.SuspiciousTLD)
	}
	switch {
	case f.SubdomainCount > manySubdomainsThreshold:
		acc.add(weightManySubdomains, fmt.Sprintf("Excessive subdomains (%d)", f.SubdomainCount))
	case f.SubdomainCount > someSubdomainsThreshold:
		acc.add(weightSomeSubdomains, fmt.Sprintf("Multiple subdomains (%d)", f.SubdomainCount))
	}
	if f.NonStandardPort {
		acc.add(weightNonStandardPort, "Uses a non-standard port")
	}
	if f.IsPunycode {
		acc.add(weightPunycode, "Punycode-encoded domain")
	}

	if typo != nil {
		weight := weightTyposquatFar
		if typo.EditDistance <= closeTyposquatMaxDistance {
			weight = weightTyposquatClose
		}
		acc.add(weight, typosquatFactor(typo))
	}

	if homo != nil {
		switch {
		case homo.MatchedBrand != "":
			acc.add(weightHomographBrand, "Homograph attack imitating "+homo.MatchedBrand)
		case homo.MixedScript:
			acc.add(weightHomographMixed, "Domain mixes Latin with look-alike scripts")
		default:
			acc.add(weightHomographPlain, "Domain contains look-alike Unicode characters")
		}
	}

	if imp != nil {
		if len(imp.BrandsInSubdomain) > 0 {
			acc.add(weightBrandInSubdomain, "Brand name in subdomain: "+strings.Join(imp.BrandsInSubdomain, ", "))
		}
		if len(imp.BrandsInPath) > 0 {
			acc.add(weightBrandInPath, "Brand name in URL path: "+strings.Join(imp.BrandsInPath, ", "))
		}
		if len(imp.BrandsInDomain) > 0 {
			acc.add(weightBrandInDomain, "Brand name embedded in domain: "+strings.Join(imp.BrandsInDomain, ", "))
		}
		if imp.DeceptivePattern != "" {
			acc.add(weightDeceptivePattern, deceptivePatternFactor(imp.DeceptivePattern))
		}
	}

	return RiskAssessment{
		Score:   roundScore(math.Min(1.0, acc.total)),
		Factors: nonNil(pstrings.DedupeAndTrim(acc.factors)),
	}
}

func typosquatFactor(m *TyposquatMatch) string {
	switch m.EditType {
	case EditCharSubstitution:
		return "Domain uses look-alike characters to imitate " + m.TargetDomain
	case EditTLDSwap:
		return "Domain reuses the name of " + m.TargetDomain + " under a different TLD"
	case EditInsertion, EditOmission, EditTransposition, EditSubstitution:
		factor := fmt.Sprintf("Possible typosquat of %s (%s, edit distance %d)", m.TargetDomain, m.EditType, m.EditDistance)
		if m.KeyboardAdjacent {
			factor += ", adjacent-key typo"
		}
		return factor
	default:
		return "Possible typosquat of " + m.TargetDomain
	}
}

func deceptivePatternFactor(p DeceptivePattern) string {
	switch p {
	case PatternSecurityKeywordPrefix:
		return "Security keyword used as a domain prefix"
	case PatternEmbeddedTLD:
		return "Top-level domain embedded inside the hostname"
	case PatternLoginPagePath:
		return "Path mimics a login page"
	case PatternAtRedirect:
		return "'@' hides the real destination host"
	default:
		return "Deceptive URL structure"
	}
}

func roundScore(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
