package urlrisk

import "phishshield/internal/urlrisk/lexical"

// EditType classifies how a look-alike domain differs from the trusted one.
type EditType string

const (
	EditInsertion        EditType = "insertion"
	EditOmission         EditType = "omission"
	EditTransposition    EditType = "transposition"
	EditSubstitution     EditType = "substitution"
	EditCharSubstitution EditType = "char_substitution"
	EditTLDSwap          EditType = "tld_swap"
)

// DeceptivePattern names a structural trick used to make a URL look legitimate.
type DeceptivePattern string

const (
	PatternSecurityKeywordPrefix DeceptivePattern = "security_keyword_prefix"
	PatternEmbeddedTLD           DeceptivePattern = "embedded_tld"
	PatternLoginPagePath         DeceptivePattern = "login_page_path"
	PatternAtRedirect            DeceptivePattern = "at_redirect"
)

// ParsedURL is the decomposed, normalised form of an input URL.
type ParsedURL struct {
	Raw         string
	Normalized  string
	Scheme      string
	Host        string // lowercase, no trailing dot
	UnicodeHost string // punycode labels decoded
	Port        string
	Path        string // lowercase
	BaseDomain  string // last two labels of UnicodeHost
	Registrable string // public-suffix eTLD+1, empty when unknown
	IsIP        bool
}

// Features are the structural observations made on a URL. Every field is a
// pure function of the parsed URL and the registry.
type Features struct {
	URLLength           int      `json:"url_length"`
	UsesHTTPS           bool     `json:"uses_https"`
	IsIPHost            bool     `json:"is_ip_host"`
	HasAtSymbol         bool     `json:"has_at_symbol"`
	HasRedirectMarker   bool     `json:"has_redirect_marker"`
	HasHyphenInHost     bool     `json:"has_hyphen_in_host"`
	HasUnderscoreInHost bool     `json:"has_underscore_in_host"`
	HasPathTraversal    bool     `json:"has_path_traversal"`
	HasEqualsSign       bool     `json:"has_equals_sign"`
	HasAmpersand        bool     `json:"has_ampersand"`
	KeywordHits         []string `json:"keyword_hits,omitempty"`
	SuspiciousTLD       string   `json:"suspicious_tld,omitempty"`
	SubdomainCount      int      `json:"subdomain_count"`
	NonStandardPort     bool     `json:"non_standard_port"`
	IsPunycode          bool     `json:"is_punycode"`
}

// TyposquatMatch describes a near-miss of a trusted domain.
type TyposquatMatch struct {
	TargetDomain     string   `json:"target_domain"`
	EditDistance     int      `json:"edit_distance"`
	EditType         EditType `json:"edit_type"`
	KeyboardAdjacent bool     `json:"keyboard_adjacent,omitempty"`
}

// ConfusablePosition is one confusable rune found in a host.
type ConfusablePosition struct {
	Index     int    `json:"index"`
	Original  string `json:"original"`
	Canonical string `json:"canonical"`
}

// HomographFinding is reported when a host contains confusable characters.
type HomographFinding struct {
	ConfusablePositions []ConfusablePosition  `json:"confusable_positions"`
	NormalizedDomain    string                `json:"normalized_domain"`
	MatchedBrand        string                `json:"matched_brand,omitempty"`
	MixedScript         bool                  `json:"mixed_script"`
	Scripts             lexical.ScriptProfile `json:"scripts"`
}

// ImpersonationFinding collects brand tokens used outside their own domain.
type ImpersonationFinding struct {
	BrandsInSubdomain []string         `json:"brands_in_subdomain,omitempty"`
	BrandsInPath      []string         `json:"brands_in_path,omitempty"`
	BrandsInDomain    []string         `json:"brands_in_domain,omitempty"`
	DeceptivePattern  DeceptivePattern `json:"deceptive_pattern,omitempty"`
}

func (f *ImpersonationFinding) empty() bool {
	return len(f.BrandsInSubdomain) == 0 && len(f.BrandsInPath) == 0 &&
		len(f.BrandsInDomain) == 0 && f.DeceptivePattern == ""
}

// RiskAssessment is the scored verdict. Score is a magnitude in [0, 1]; callers
// decide thresholds.
type RiskAssessment struct {
	Score     float64  `json:"score"`
	Factors   []string `json:"factors"`
	Malformed bool     `json:"malformed,omitempty"`
}

// Analysis bundles everything the engine derived from one URL.
type Analysis struct {
	URL           string                `json:"url"`
	Host          string                `json:"host,omitempty"`
	BaseDomain    string                `json:"base_domain,omitempty"`
	Registrable   string                `json:"registrable_domain,omitempty"`
	Features      Features              `json:"features"`
	Typosquat     *TyposquatMatch       `json:"typosquat,omitempty"`
	Homograph     *HomographFinding     `json:"homograph,omitempty"`
	Impersonation *ImpersonationFinding `json:"impersonation,omitempty"`
	Assessment    RiskAssessment        `json:"assessment"`
}
