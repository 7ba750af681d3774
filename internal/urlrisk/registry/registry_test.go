package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "phishshield/pkg/domain-errors"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.NotNil(t, reg)

	t.Run("trusted domains keep order and expose bare labels", func(t *testing.T) {
		trusted := reg.TrustedDomains()
		require.NotEmpty(t, trusted)
		assert.Equal(t, TrustedDomain{Domain: "google.com", Label: "google"}, trusted[0])
		assert.True(t, reg.IsTrusted("paypal.com"))
		assert.False(t, reg.IsTrusted("www.paypal.com"))
	})

	t.Run("label lookup returns first trusted domain", func(t *testing.T) {
		domain, ok := reg.TrustedByLabel("wikipedia")
		require.True(t, ok)
		assert.Equal(t, "wikipedia.org", domain)

		_, ok = reg.TrustedByLabel("stackoverflow")
		assert.False(t, ok)
	})

	t.Run("confusables never map ascii digits", func(t *testing.T) {
		_, ok := reg.LookupConfusable('0')
		assert.False(t, ok)
		assert.Equal(t, "paypal", reg.Normalize("pаypаl"))
	})

	t.Run("suspicious tlds", func(t *testing.T) {
		assert.True(t, reg.IsSuspiciousTLD("tk"))
		assert.False(t, reg.IsSuspiciousTLD("com"))
	})

	t.Run("accessors return copies", func(t *testing.T) {
		brands := reg.BrandTokens()
		brands[0] = "mutated"
		assert.NotEqual(t, "mutated", reg.BrandTokens()[0])
	})

	t.Run("same instance on every call", func(t *testing.T) {
		assert.Same(t, reg, Default())
	})
}

func TestNew(t *testing.T) {
	t.Run("nil sections fall back to defaults", func(t *testing.T) {
		reg, err := New(Config{TrustedDomains: []string{"Example.COM", "example.com."}})
		require.NoError(t, err)
		assert.Equal(t, []TrustedDomain{{Domain: "example.com", Label: "example"}}, reg.TrustedDomains())
		assert.Equal(t, defaultBrandTokens, reg.BrandTokens())
	})

	t.Run("empty list stays empty", func(t *testing.T) {
		reg, err := New(Config{SuspiciousKeywords: []string{}})
		require.NoError(t, err)
		assert.Empty(t, reg.SuspiciousKeywords())
	})

	t.Run("tlds lose leading dot", func(t *testing.T) {
		reg, err := New(Config{SuspiciousTLDs: []string{".TK", "zip"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"tk", "zip"}, reg.SuspiciousTLDs())
	})

	invalid := []struct {
		name string
		cfg  Config
	}{
		{name: "domain without dot", cfg: Config{TrustedDomains: []string{"localhost"}}},
		{name: "domain with path", cfg: Config{TrustedDomains: []string{"example.com/login"}}},
		{name: "multi-label tld", cfg: Config{SuspiciousTLDs: []string{"co.uk"}}},
		{name: "multi-rune key", cfg: Config{ConfusableMap: map[string]string{"аа": "a"}}},
		{name: "uppercase value", cfg: Config{ConfusableMap: map[string]string{"а": "A"}}},
		{name: "non-ascii value", cfg: Config{ConfusableMap: map[string]string{"а": "о"}}},
		{name: "key is also a value", cfg: Config{ConfusableMap: map[string]string{"а": "a", "a": "b"}}},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}

func TestBareLabel(t *testing.T) {
	assert.Equal(t, "paypal", BareLabel("paypal.com"))
	assert.Equal(t, "bbc.co", BareLabel("bbc.co.uk"))
	assert.Equal(t, "localhost", BareLabel("localhost"))
}

func TestConfigRoundTrip(t *testing.T) {
	original, err := New(Config{
		TrustedDomains: []string{"paypal.com", "amazon.com"},
		ConfusableMap:  map[string]string{"а": "a"},
	})
	require.NoError(t, err)

	rebuilt, err := New(original.Config())
	require.NoError(t, err)
	assert.Equal(t, original.TrustedDomains(), rebuilt.TrustedDomains())
	assert.Equal(t, original.Confusables(), rebuilt.Confusables())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("yaml document", func(t *testing.T) {
		path := write("registry.yaml", `
trustedDomains:
  - acme.com
  - acme-bank.com
brandTokens: [acme]
confusableMap:
  "а": a
suspiciousTlds: [".zip"]
`)
		reg, err := LoadFile(path)
		require.NoError(t, err)
		assert.True(t, reg.IsTrusted("acme-bank.com"))
		assert.Equal(t, []string{"acme"}, reg.BrandTokens())
		assert.Equal(t, []string{"zip"}, reg.SuspiciousTLDs())
		assert.Equal(t, defaultSuspiciousKeywords, reg.SuspiciousKeywords())
	})

	t.Run("json document", func(t *testing.T) {
		path := write("registry.json", `{"trustedDomains": ["acme.com"], "suspiciousKeywords": ["wire"]}`)
		reg, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"wire"}, reg.SuspiciousKeywords())
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		reg, err := LoadFile(write("empty.yaml", ""))
		require.NoError(t, err)
		assert.Len(t, reg.TrustedDomains(), len(defaultTrustedDomains))
	})

	t.Run("unknown section fails schema", func(t *testing.T) {
		_, err := LoadFile(write("extra.json", `{"allowList": ["x.com"]}`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("confusable value outside ascii fails schema", func(t *testing.T) {
		_, err := LoadFile(write("bad-map.json", `{"confusableMap": {"а": "о"}}`))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadFile(write("registry.toml", ""))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
