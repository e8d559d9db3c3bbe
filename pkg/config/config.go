// Package config defines core configuration types for vellum.
// These types are pure data structures with no external dependencies on Viper or other config loaders.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is a known value.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat specifies the output format for inspect and lines reports.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SpanDetail controls how much span information tree output carries.
type SpanDetail string

const (
	// SpanDetailNone omits span annotations.
	SpanDetailNone SpanDetail = "none"
	// SpanDetailRange shows byte ranges (default).
	SpanDetailRange SpanDetail = "range"
	// SpanDetailNumber shows raw span numbers alongside byte ranges.
	SpanDetailNumber SpanDetail = "number"
)

// IsValid returns true if the span detail is valid.
func (s SpanDetail) IsValid() bool {
	switch s {
	case SpanDetailNone, SpanDetailRange, SpanDetailNumber:
		return true
	default:
		return false
	}
}

// InspectConfig holds options for the inspect command.
type InspectConfig struct {
	// Spans controls span annotations on tree nodes.
	Spans SpanDetail `mapstructure:"spans" yaml:"spans"`

	// Languages enables language detection for fenced code blocks.
	// Off by default; enable via config or --languages.
	Languages bool `mapstructure:"languages" yaml:"languages"`

	// MaxDepth limits tree depth in output. 0 means unlimited.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// BackupsConfig controls backup behavior when writing edits back to disk.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar", "xdg", etc.
}

// Config is the root configuration structure for vellum.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor"`

	// Inspect holds options for the inspect command.
	Inspect InspectConfig `mapstructure:"inspect" yaml:"inspect"`

	// Backups configures backup behavior when editing in place.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Write applies edits to the file in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// Diff shows edits as a unified diff without applying them.
	Diff bool `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Flavor: FlavorCommonMark,
		Inspect: InspectConfig{
			Spans:     SpanDetailRange,
			Languages: false,
			MaxDepth:  0, // 0 means unlimited
		},
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
	}
}
