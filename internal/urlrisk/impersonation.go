package urlrisk

import (
	"regexp"
	"strings"

	"phishshield/internal/urlrisk/registry"
)

var (
	securityKeywordPrefix = regexp.MustCompile(`(?:^|[.-])(?:secure|security|login|signin|verify|verification|account|update|banking|auth|confirm|webscr)[-_]`)
	embeddedTLD           = regexp.MustCompile(`\.(?:com|net|org|gov|edu)(?:-|\.[^.]+\.)`)
	loginPagePath         = regexp.MustCompile(`/(?:login|signin|sign-in|logon|verify|account|webscr|secure)[a-z0-9_-]*\.(?:php|html?|aspx?|jsp|cgi)`)
)

// deceptivePatterns is evaluated in order; the first match wins.
var deceptivePatterns = []struct {
	pattern DeceptivePattern
	match   func(p *ParsedURL) bool
}{
	{PatternSecurityKeywordPrefix, func(p *ParsedURL) bool { return securityKeywordPrefix.MatchString(p.Host) }},
	{PatternEmbeddedTLD, func(p *ParsedURL) bool { return embeddedTLD.MatchString(p.Host) }},
	{PatternLoginPagePath, func(p *ParsedURL) bool { return loginPagePath.MatchString(p.Path) }},
	{PatternAtRedirect, func(p *ParsedURL) bool { return strings.Contains(p.Normalized, "@") }},
}

// DetectImpersonation looks for brand tokens placed where they do not belong:
// in subdomains, in the path of an untrusted domain, or spliced into an
// untrusted domain's primary label. It also records the first deceptive
// structural pattern found. It returns nil when nothing fired.
func DetectImpersonation(p *ParsedURL, reg *registry.Registry) *ImpersonationFinding {
	finding := &ImpersonationFinding{}
	brands := reg.BrandTokens()

	primary := registry.BareLabel(p.BaseDomain)
	if !p.IsIP {
		subdomains := subdomainLabels(p.Host)
		for _, brand := range brands {
			if brand == primary {
				continue
			}
			for _, label := range subdomains {
				if strings.Contains(label, brand) {
					finding.BrandsInSubdomain = append(finding.BrandsInSubdomain, brand)
					break
				}
			}
		}
	}

	if !reg.IsTrusted(p.BaseDomain) {
		for _, brand := range brands {
			if strings.Contains(p.Path, brand) {
				finding.BrandsInPath = append(finding.BrandsInPath, brand)
			}
			if !p.IsIP && brand != primary && strings.Contains(primary, brand) {
				finding.BrandsInDomain = append(finding.BrandsInDomain, brand)
			}
		}
	}

	for _, dp := range deceptivePatterns {
		if dp.match(p) {
			finding.DeceptivePattern = dp.pattern
			break
		}
	}

	if finding.empty() {
		return nil
	}
	return finding
}
