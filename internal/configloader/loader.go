// Package configloader resolves vellum configuration from its layered
// sources. It discovers files XDG-style, merges them in precedence order,
// applies VELLUM_* environment overrides, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/vellum/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	// If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// fileLayer is one file-backed configuration source. Layers are merged
// lowest precedence first.
type fileLayer struct {
	name string
	path string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (VELLUM_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.vellum.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/vellum/config.yaml)
//  6. System config (/etc/vellum/config.yaml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	if opts.ExplicitPath != "" {
		paths.Explicit = opts.ExplicitPath
	}

	layers := make([]fileLayer, 0, 4)
	if !opts.IgnoreSystemConfig && paths.System != "" {
		layers = append(layers, fileLayer{name: "system", path: paths.System})
	}
	if !opts.IgnoreUserConfig && paths.User != "" {
		layers = append(layers, fileLayer{name: "user", path: paths.User})
	}
	if !opts.IgnoreProjectConfig && paths.Project != "" {
		layers = append(layers, fileLayer{name: "project", path: paths.Project})
	}
	if opts.ExplicitPath != "" {
		layers = append(layers, fileLayer{name: "explicit", path: opts.ExplicitPath})
	}

	cfg := config.NewConfig()
	loaded := make([]string, 0, len(layers))
	for _, layer := range layers {
		fileCfg, err := readConfigFile(layer.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, fileCfg)
		loaded = append(loaded, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	result := &LoadResult{
		Config:     cfg,
		Paths:      paths,
		LoadedFrom: loaded,
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	return result, nil
}

// readConfigFile parses one YAML configuration file.
func readConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return config.FromYAML(content)
}
