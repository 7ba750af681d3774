// Package registry holds the immutable reference data the URL analysis engine
// scores against: trusted domains, brand tokens, the confusable-character map,
// suspicious TLDs and suspicious keywords.
//
// A Registry is built once (from defaults or a file), validated, and then only
// read. It is safe for concurrent use.
package registry

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"phishshield/internal/urlrisk/lexical"
	dErrors "phishshield/pkg/domain-errors"
	pstrings "phishshield/pkg/platform/strings"
)

// Config is the serialised form of a registry. Nil sections fall back to the
// built-in defaults; an explicitly empty list stays empty.
type Config struct {
	TrustedDomains     []string          `json:"trustedDomains,omitempty" yaml:"trustedDomains,omitempty"`
	BrandTokens        []string          `json:"brandTokens,omitempty" yaml:"brandTokens,omitempty"`
	ConfusableMap      map[string]string `json:"confusableMap,omitempty" yaml:"confusableMap,omitempty"`
	SuspiciousTLDs     []string          `json:"suspiciousTlds,omitempty" yaml:"suspiciousTlds,omitempty"`
	SuspiciousKeywords []string          `json:"suspiciousKeywords,omitempty" yaml:"suspiciousKeywords,omitempty"`
}

// TrustedDomain pairs a trusted domain with its bare label (the domain with
// its final label removed, e.g. "paypal" for "paypal.com").
type TrustedDomain struct {
	Domain string
	Label  string
}

// Registry is the validated, read-only reference data set.
type Registry struct {
	trusted      []TrustedDomain
	trustedSet   map[string]struct{}
	labelToFirst map[string]string
	brands       []string
	confusables  lexical.Confusables
	tlds         []string
	tldSet       map[string]struct{}
	keywords     []string
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := New(Config{})
	if err != nil {
		panic(fmt.Sprintf("built-in registry is invalid: %v", err))
	}
	return reg
})

// Default returns the registry built from the built-in reference lists.
func Default() *Registry {
	return defaultRegistry()
}

// New validates cfg and builds a registry from it. Every validation failure
// carries dErrors.CodeInvariantViolation.
func New(cfg Config) (*Registry, error) {
	trusted := cfg.TrustedDomains
	if trusted == nil {
		trusted = defaultTrustedDomains
	}
	brands := cfg.BrandTokens
	if brands == nil {
		brands = defaultBrandTokens
	}
	tlds := cfg.SuspiciousTLDs
	if tlds == nil {
		tlds = defaultSuspiciousTLDs
	}
	keywords := cfg.SuspiciousKeywords
	if keywords == nil {
		keywords = defaultSuspiciousKeywords
	}

	confusables := cloneConfusables(defaultConfusables)
	if cfg.ConfusableMap != nil {
		parsed, err := parseConfusables(cfg.ConfusableMap)
		if err != nil {
			return nil, err
		}
		confusables = parsed
	}
	if err := validateConfusables(confusables); err != nil {
		return nil, err
	}

	reg := &Registry{
		trustedSet:   make(map[string]struct{}),
		labelToFirst: make(map[string]string),
		brands:       pstrings.DedupeAndTrimLower(cloneStrings(brands)),
		confusables:  confusables,
		tldSet:       make(map[string]struct{}),
		keywords:     pstrings.DedupeAndTrimLower(cloneStrings(keywords)),
	}

	for _, domain := range pstrings.DedupeAndTrimLower(cloneStrings(trusted)) {
		domain = strings.TrimSuffix(domain, ".")
		if err := validateDomain(domain); err != nil {
			return nil, err
		}
		if _, dup := reg.trustedSet[domain]; dup {
			continue
		}
		label := BareLabel(domain)
		reg.trusted = append(reg.trusted, TrustedDomain{Domain: domain, Label: label})
		reg.trustedSet[domain] = struct{}{}
		if _, seen := reg.labelToFirst[label]; !seen {
			reg.labelToFirst[label] = domain
		}
	}

	for _, tld := range pstrings.DedupeAndTrimLower(cloneStrings(tlds)) {
		tld = strings.TrimPrefix(tld, ".")
		if tld == "" || strings.Contains(tld, ".") {
			return nil, dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("suspicious tld %q must be a single label", tld))
		}
		if _, dup := reg.tldSet[tld]; dup {
			continue
		}
		reg.tlds = append(reg.tlds, tld)
		reg.tldSet[tld] = struct{}{}
	}

	return reg, nil
}

// BareLabel strips the final label from domain: "paypal.com" → "paypal",
// "bbc.co.uk" → "bbc.co". A domain without a dot is returned unchanged.
func BareLabel(domain string) string {
	if i := strings.LastIndexByte(domain, '.'); i > 0 {
		return domain[:i]
	}
	return domain
}

func validateDomain(domain string) error {
	if domain == "" || !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") || strings.ContainsAny(domain, " /@:") {
		return dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("trusted domain %q is not a valid hostname", domain))
	}
	return nil
}

func parseConfusables(raw map[string]string) (lexical.Confusables, error) {
	out := make(lexical.Confusables, len(raw))
	for k, v := range raw {
		if utf8.RuneCountInString(k) != 1 {
			return nil, dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("confusable key %q must be a single code point", k))
		}
		if utf8.RuneCountInString(v) != 1 {
			return nil, dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("confusable value %q for key %q must be a single character", v, k))
		}
		key, _ := utf8.DecodeRuneInString(k)
		val, _ := utf8.DecodeRuneInString(v)
		out[key] = val
	}
	return out, nil
}

func validateConfusables(c lexical.Confusables) error {
	values := make(map[rune]struct{}, len(c))
	for key, val := range c {
		if !isCanonical(val) {
			return dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("confusable %q maps to %q, want a lowercase ASCII letter or digit", key, val))
		}
		values[val] = struct{}{}
	}
	for key := range c {
		if _, ok := values[key]; ok {
			return dErrors.New(dErrors.CodeInvariantViolation,
				fmt.Sprintf("confusable %q appears both as a key and as a canonical value", key))
		}
	}
	return nil
}

func isCanonical(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// TrustedDomains returns the trusted domains in registry order.
func (r *Registry) TrustedDomains() []TrustedDomain {
	out := make([]TrustedDomain, len(r.trusted))
	copy(out, r.trusted)
	return out
}

// IsTrusted reports whether domain is on the trusted list (exact match).
func (r *Registry) IsTrusted(domain string) bool {
	_, ok := r.trustedSet[domain]
	return ok
}

// TrustedByLabel returns the first trusted domain whose bare label is label.
func (r *Registry) TrustedByLabel(label string) (string, bool) {
	domain, ok := r.labelToFirst[label]
	return domain, ok
}

// BrandTokens returns the brand tokens in registry order.
func (r *Registry) BrandTokens() []string {
	return cloneStrings(r.brands)
}

// Confusables returns a copy of the confusable-character map.
func (r *Registry) Confusables() lexical.Confusables {
	return cloneConfusables(r.confusables)
}

// Normalize maps confusable runes in text to their canonical form.
func (r *Registry) Normalize(text string) string {
	return r.confusables.Normalize(text)
}

// LookupConfusable returns the canonical character for ch, if ch is confusable.
func (r *Registry) LookupConfusable(ch rune) (rune, bool) {
	return r.confusables.Lookup(ch)
}

// IsSuspiciousTLD reports whether tld (without a leading dot) is flagged.
func (r *Registry) IsSuspiciousTLD(tld string) bool {
	_, ok := r.tldSet[tld]
	return ok
}

// SuspiciousTLDs returns the flagged TLDs in registry order.
func (r *Registry) SuspiciousTLDs() []string {
	return cloneStrings(r.tlds)
}

// SuspiciousKeywords returns the keywords in registry order.
func (r *Registry) SuspiciousKeywords() []string {
	return cloneStrings(r.keywords)
}

// Config returns the registry in its serialisable form.
func (r *Registry) Config() Config {
	cfg := Config{
		TrustedDomains:     make([]string, 0, len(r.trusted)),
		BrandTokens:        cloneStrings(r.brands),
		ConfusableMap:      make(map[string]string, len(r.confusables)),
		SuspiciousTLDs:     cloneStrings(r.tlds),
		SuspiciousKeywords: cloneStrings(r.keywords),
	}
	for _, t := range r.trusted {
		cfg.TrustedDomains = append(cfg.TrustedDomains, t.Domain)
	}
	for k, v := range r.confusables {
		cfg.ConfusableMap[string(k)] = string(v)
	}
	return cfg
}
