package urlrisk

import (
	"strings"
	"unicode/utf8"

	"phishshield/internal/urlrisk/registry"
)

// ExtractFeatures computes the structural features of p. Pure domain logic - no I/O.
func ExtractFeatures(p *ParsedURL, reg *registry.Registry) Features {
	lowerURL := strings.ToLower(p.Normalized)

	f := Features{
		URLLength:           utf8.RuneCountInString(p.Normalized),
		UsesHTTPS:           p.Scheme == "https",
		IsIPHost:            p.IsIP,
		HasAtSymbol:         strings.Contains(p.Normalized, "@"),
		HasRedirectMarker:   hasRedirectMarker(p.Normalized),
		HasHyphenInHost:     strings.Contains(p.Host, "-"),
		HasUnderscoreInHost: strings.Contains(p.Host, "_"),
		HasPathTraversal:    strings.Contains(p.Path, "/.") || strings.Contains(p.Path, "//"),
		HasEqualsSign:       strings.Contains(p.Normalized, "="),
		HasAmpersand:        strings.Contains(p.Normalized, "&"),
		NonStandardPort:     !isStandardPort(p.Port),
		IsPunycode:          strings.Contains(p.Host, "xn--"),
	}

	for _, kw := range reg.SuspiciousKeywords() {
		if strings.Contains(lowerURL, kw) {
			f.KeywordHits = append(f.KeywordHits, kw)
		}
	}

	if !p.IsIP {
		if i := strings.LastIndexByte(p.Host, '.'); i >= 0 {
			if tld := p.Host[i+1:]; reg.IsSuspiciousTLD(tld) {
				f.SuspiciousTLD = tld
			}
		}
		if dots := strings.Count(p.Host, "."); dots > 1 {
			f.SubdomainCount = dots - 1
		}
	}
	return f
}

// hasRedirectMarker reports a "//" anywhere after the scheme separator.
func hasRedirectMarker(normalized string) bool {
	rest := normalized
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	return strings.Contains(rest, "//")
}
