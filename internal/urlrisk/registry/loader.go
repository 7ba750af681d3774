package registry

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	dErrors "phishshield/pkg/domain-errors"
)

//go:embed schema/registry.schema.json
var schemaJSON string

var schemaLoader = gojsonschema.NewStringLoader(schemaJSON)

// LoadFile reads a registry document (.json, .yaml or .yml) from path,
// validates it against the registry schema and builds a Registry.
func LoadFile(path string) (*Registry, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest,
			fmt.Sprintf("unsupported registry file extension %q", filepath.Ext(path)))
	}
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied config path
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Registry from a JSON or YAML document. JSON is accepted as a
// YAML subset so a single decoder serves both.
func Parse(data []byte) (*Registry, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "registry document is not valid JSON or YAML")
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "registry schema validation failed")
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			"registry document does not match schema: "+strings.Join(problems, "; "))
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "decoding registry document")
	}
	return New(cfg)
}
