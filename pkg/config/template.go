package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all settings with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# vellum configuration
# See: https://github.com/yaklabco/vellum

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Inspect command options
# inspect:
#   spans: range
#   languages: false
#   max_depth: 0

# Backups when editing in place
# backups:
#   enabled: true
#   mode: sidecar
`)

	return buf.Bytes()
}

// generateFullTemplate creates a full template with all settings documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# vellum configuration - Full Template
# See: https://github.com/yaklabco/vellum
#
# This template includes all available settings with their defaults.
# Uncomment and modify settings as needed.

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Inspect command options
inspect:
  # Span annotations on tree nodes: none, range, or number
  spans: range

  # Detect languages of fenced code blocks
  languages: false

  # Limit tree depth in output (0 = unlimited)
  max_depth: 0

# Backups when editing in place
backups:
  enabled: true

  # Backup storage: sidecar (a .vellum.bak next to the file) or none
  mode: sidecar
`)

	return buf.Bytes()
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := map[string]any{
		"flavor": "commonmark",
		"inspect": map[string]any{
			"spans":     "range",
			"languages": false,
			"max_depth": 0,
		},
	}

	if opts.Full {
		cfg["backups"] = map[string]any{
			"enabled": true,
			"mode":    "sidecar",
		}
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}
