package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/vellum/pkg/config"
)

func TestNewConfig(t *testing.T) {
	cfg := config.NewConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, config.SpanDetailRange, cfg.Inspect.Spans)
	assert.False(t, cfg.Inspect.Languages)
	assert.Equal(t, 0, cfg.Inspect.MaxDepth)
	assert.True(t, cfg.Backups.Enabled)
	assert.Equal(t, "sidecar", cfg.Backups.Mode)
	assert.Equal(t, config.FormatText, cfg.Format)
}

func TestFlavorIsValid(t *testing.T) {
	tests := []struct {
		flavor config.Flavor
		want   bool
	}{
		{config.FlavorCommonMark, true},
		{config.FlavorGFM, true},
		{config.Flavor("markdown"), false},
		{config.Flavor(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.flavor), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.flavor.IsValid())
		})
	}
}

func TestSpanDetailIsValid(t *testing.T) {
	tests := []struct {
		detail config.SpanDetail
		want   bool
	}{
		{config.SpanDetailNone, true},
		{config.SpanDetailRange, true},
		{config.SpanDetailNumber, true},
		{config.SpanDetail("full"), false},
		{config.SpanDetail(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.detail), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.IsValid())
		})
	}
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("minimal yaml", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)
		assert.Contains(t, string(data), "flavor: commonmark")
		assert.Contains(t, string(data), "# vellum configuration")
	})

	t.Run("full yaml documents every setting", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)
		assert.Contains(t, string(data), "spans: range")
		assert.Contains(t, string(data), "languages: false")
		assert.Contains(t, string(data), "max_depth: 0")
		assert.Contains(t, string(data), "mode: sidecar")
	})

	t.Run("json is valid and loadable", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var parsed map[string]any
		require.NoError(t, json.Unmarshal(data, &parsed))
		assert.Equal(t, "commonmark", parsed["flavor"])
	})

	t.Run("minimal template parses as config", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	})

	t.Run("full template parses as config", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
		assert.Equal(t, config.SpanDetailRange, cfg.Inspect.Spans)
		assert.True(t, cfg.Backups.Enabled)
	})
}
