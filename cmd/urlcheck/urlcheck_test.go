package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phishshield/internal/urlrisk"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeCommand(t *testing.T) {
	t.Run("json output per url", func(t *testing.T) {
		out, err := execute(t, "", "analyze", "--json", "https://amaz0n.com", "https://google.com")
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)

		var first result
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
		assert.Equal(t, "https://amaz0n.com", first.URL)
		assert.InDelta(t, 0.40, first.Score, 1e-9)
		assert.Equal(t, urlrisk.RiskMedium, first.RiskLevel)
		assert.False(t, first.IsPhishing)
		require.NotNil(t, first.Analysis.Typosquat)
		assert.Equal(t, "amazon.com", first.Analysis.Typosquat.TargetDomain)

		var second result
		require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
		assert.Equal(t, urlrisk.RiskLow, second.RiskLevel)
	})

	t.Run("urls from stdin skip blanks and comments", func(t *testing.T) {
		out, err := execute(t, "# suspects\n\nhttps://amaz0n.com\n", "analyze")
		require.NoError(t, err)
		assert.Contains(t, out, "https://amaz0n.com")
		assert.Contains(t, out, "score 0.40")
		assert.Contains(t, out, "MEDIUM")
	})

	t.Run("no urls", func(t *testing.T) {
		_, err := execute(t, "", "analyze")
		require.Error(t, err)
	})

	t.Run("empty argument is rejected", func(t *testing.T) {
		_, err := execute(t, "", "analyze", "")
		require.Error(t, err)
	})

	t.Run("custom registry", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "registry.yaml")
		require.NoError(t, os.WriteFile(path, []byte("trustedDomains:\n  - acme.com\n"), 0o600))

		out, err := execute(t, "", "analyze", "--json", "--registry", path, "https://acrne.com")
		require.NoError(t, err)

		var r result
		require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &r))
		require.NotNil(t, r.Analysis.Typosquat)
		assert.Equal(t, "acme.com", r.Analysis.Typosquat.TargetDomain)
	})
}

func TestRegistryValidateCommand(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"trustedDomains": ["acme.com"]}`), 0o600))
	out, err := execute(t, "", "registry", "validate", valid)
	require.NoError(t, err)
	assert.Contains(t, out, "ok (1 trusted domains")

	_, err = execute(t, "", "registry", "validate", filepath.Join(dir, "registry.txt"))
	require.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("trustedDomains: 42\n"), 0o600))
	_, err = execute(t, "", "registry", "validate", broken)
	require.Error(t, err)
}
