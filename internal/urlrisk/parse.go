package urlrisk

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/text/unicode/norm"

	dErrors "phishshield/pkg/domain-errors"
)

// ErrMalformedURL is wrapped by every Parse failure.
var ErrMalformedURL = errors.New("malformed url")

func malformed(reason string) error {
	return dErrors.Wrap(ErrMalformedURL, dErrors.CodeValidation, reason)
}

// Parse decomposes raw into a ParsedURL. Input without an http:// or https://
// prefix is treated as http://<input>.
func Parse(raw string) (*ParsedURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, malformed("url is empty")
	}

	normalized := norm.NFC.String(trimmed)
	lower := strings.ToLower(normalized)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		normalized = "http://" + normalized
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return nil, malformed("url cannot be parsed")
	}
	host := strings.TrimSuffix(strings.ToLower(u.Hostname()), ".")
	if host == "" {
		return nil, malformed("url has no host")
	}

	p := &ParsedURL{
		Raw:         raw,
		Normalized:  normalized,
		Scheme:      strings.ToLower(u.Scheme),
		Host:        host,
		UnicodeHost: host,
		Port:        u.Port(),
		Path:        strings.ToLower(u.Path),
		IsIP:        isIPHost(host),
	}

	if p.IsIP {
		p.BaseDomain = host
		return p, nil
	}

	if strings.Contains(host, "xn--") {
		if decoded, err := idna.Punycode.ToUnicode(host); err == nil {
			p.UnicodeHost = decoded
		}
	}
	p.BaseDomain = baseDomain(p.UnicodeHost)

	if ascii, err := idna.Punycode.ToASCII(host); err == nil {
		if etld1, err := publicsuffix.EffectiveTLDPlusOne(ascii); err == nil {
			p.Registrable = etld1
		}
	}
	return p, nil
}

// baseDomain returns the last two labels of host, or host itself when it has
// fewer than two.
func baseDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// subdomainLabels returns every label before the last two.
func subdomainLabels(host string) []string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return nil
	}
	return labels[:len(labels)-2]
}

func isIPHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	// single decimal dword such as http://3232235777/
	if len(host) == 0 || len(host) > 10 {
		return false
	}
	for i := 0; i < len(host); i++ {
		if host[i] < '0' || host[i] > '9' {
			return false
		}
	}
	return true
}

func isStandardPort(port string) bool {
	return port == "" || port == "80" || port == "443"
}
