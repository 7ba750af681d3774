package urlrisk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secure() Features {
	return Features{UsesHTTPS: true}
}

func TestScoreWeights(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *Features)
		typo   *TyposquatMatch
		homo   *HomographFinding
		imp    *ImpersonationFinding
		score  float64
	}{
		{name: "nothing fired", score: 0},
		{name: "length at threshold", mutate: func(f *Features) { f.URLLength = 75 }, score: 0},
		{name: "long url", mutate: func(f *Features) { f.URLLength = 76 }, score: 0.08},
		{name: "very long url", mutate: func(f *Features) { f.URLLength = 101 }, score: 0.15},
		{name: "no https", mutate: func(f *Features) { f.UsesHTTPS = false }, score: 0.10},
		{name: "ip host", mutate: func(f *Features) { f.IsIPHost = true }, score: 0.30},
		{name: "at symbol", mutate: func(f *Features) { f.HasAtSymbol = true }, score: 0.25},
		{name: "redirect marker", mutate: func(f *Features) { f.HasRedirectMarker = true }, score: 0.15},
		{name: "hyphen", mutate: func(f *Features) { f.HasHyphenInHost = true }, score: 0.05},
		{name: "underscore", mutate: func(f *Features) { f.HasUnderscoreInHost = true }, score: 0.08},
		{name: "path traversal", mutate: func(f *Features) { f.HasPathTraversal = true }, score: 0.10},
		{name: "two keywords", mutate: func(f *Features) { f.KeywordHits = []string{"login", "verify"} }, score: 0.08},
		{
			name:   "keyword weight is capped",
			mutate: func(f *Features) { f.KeywordHits = []string{"a", "b", "c", "d", "e", "f", "g"} },
			score:  0.20,
		},
		{name: "suspicious tld", mutate: func(f *Features) { f.SuspiciousTLD = "tk" }, score: 0.15},
		{name: "three subdomains", mutate: func(f *Features) { f.SubdomainCount = 3 }, score: 0.08},
		{name: "four subdomains", mutate: func(f *Features) { f.SubdomainCount = 4 }, score: 0.15},
		{name: "two subdomains", mutate: func(f *Features) { f.SubdomainCount = 2 }, score: 0},
		{name: "non-standard port", mutate: func(f *Features) { f.NonStandardPort = true }, score: 0.10},
		{name: "punycode", mutate: func(f *Features) { f.IsPunycode = true }, score: 0.20},
		{
			name:  "close typosquat",
			typo:  &TyposquatMatch{TargetDomain: "amazon.com", EditDistance: 1, EditType: EditSubstitution},
			score: 0.40,
		},
		{
			name:  "far typosquat",
			typo:  &TyposquatMatch{TargetDomain: "amazon.com", EditDistance: 2, EditType: EditTransposition},
			score: 0.30,
		},
		{
			name:  "tld swap",
			typo:  &TyposquatMatch{TargetDomain: "paypal.com", EditType: EditTLDSwap},
			score: 0.40,
		},
		{name: "homograph with brand", homo: &HomographFinding{MatchedBrand: "paypal.com", MixedScript: true}, score: 0.50},
		{name: "mixed script homograph", homo: &HomographFinding{MixedScript: true}, score: 0.35},
		{name: "plain homograph", homo: &HomographFinding{}, score: 0.25},
		{name: "brand in subdomain", imp: &ImpersonationFinding{BrandsInSubdomain: []string{"paypal"}}, score: 0.35},
		{name: "brand in path", imp: &ImpersonationFinding{BrandsInPath: []string{"paypal"}}, score: 0.20},
		{name: "brand in domain", imp: &ImpersonationFinding{BrandsInDomain: []string{"paypal"}}, score: 0.20},
		{name: "deceptive pattern", imp: &ImpersonationFinding{DeceptivePattern: PatternEmbeddedTLD}, score: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := secure()
			if tt.mutate != nil {
				tt.mutate(&f)
			}
			got := Score(f, tt.typo, tt.homo, tt.imp)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			if tt.score == 0 {
				assert.Empty(t, got.Factors)
				assert.NotNil(t, got.Factors)
			} else {
				assert.Len(t, got.Factors, 1)
			}
		})
	}
}

func TestScoreClampsOnlyAtTheEnd(t *testing.T) {
	f := Features{
		URLLength:           150,
		IsIPHost:            true,
		HasAtSymbol:         true,
		HasRedirectMarker:   true,
		HasHyphenInHost:     true,
		HasUnderscoreInHost: true,
		HasPathTraversal:    true,
		KeywordHits:         []string{"login", "verify", "secure", "account", "update", "banking"},
		SuspiciousTLD:       "tk",
		SubdomainCount:      5,
		NonStandardPort:     true,
		IsPunycode:          true,
	}
	typo := &TyposquatMatch{TargetDomain: "paypal.com", EditDistance: 0, EditType: EditCharSubstitution}
	homo := &HomographFinding{MatchedBrand: "paypal.com"}
	imp := &ImpersonationFinding{
		BrandsInSubdomain: []string{"paypal"},
		BrandsInPath:      []string{"paypal"},
		BrandsInDomain:    []string{"paypal"},
		DeceptivePattern:  PatternAtRedirect,
	}

	got := Score(f, typo, homo, imp)
	assert.Equal(t, 1.0, got.Score)
	assert.Len(t, got.Factors, 19, "one factor per triggered condition")
	assert.Equal(t, "Very long URL (150 characters)", got.Factors[0])
	assert.Equal(t, "'@' hides the real destination host", got.Factors[len(got.Factors)-1])
}

func TestScoreFactorsAreDeterministic(t *testing.T) {
	f := Features{URLLength: 80, HasHyphenInHost: true, KeywordHits: []string{"login"}}
	typo := &TyposquatMatch{TargetDomain: "amazon.com", EditDistance: 1, EditType: EditSubstitution, KeyboardAdjacent: true}

	first := Score(f, typo, nil, nil)
	second := Score(f, typo, nil, nil)
	require.Equal(t, first, second)
	assert.Equal(t, []string{
		"Long URL (80 characters)",
		"Does not use HTTPS",
		"Hyphen in domain name",
		"Suspicious keywords: login",
		"Possible typosquat of amazon.com (substitution, edit distance 1), adjacent-key typo",
	}, first.Factors)
	assert.InDelta(t, 0.67, first.Score, 1e-9)
}

func TestScoreRoundsToFourDecimals(t *testing.T) {
	got := Score(Features{IsIPHost: true, KeywordHits: []string{"login"}}, nil, nil, nil)
	// 0.10 + 0.30 + 0.04 accumulates float error before rounding
	assert.Equal(t, 0.44, got.Score)
}
