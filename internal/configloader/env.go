package configloader

import (
	"fmt"
	"os"
	"strconv"

	"github.com/yaklabco/vellum/pkg/config"
)

// envVarPrefix is the prefix for all vellum environment variables.
const envVarPrefix = "VELLUM_"

// envSetter parses one raw environment value and applies it to the config.
// name is the full variable name, for error messages.
type envSetter func(cfg *config.Config, raw, name string) error

// envSetters maps variable names (without the VELLUM_ prefix) to their
// typed appliers.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envSetters = map[string]envSetter{
	"FLAVOR": stringSetter(func(c *config.Config, v string) {
		c.Flavor = config.Flavor(v)
	}),
	"FORMAT": stringSetter(func(c *config.Config, v string) {
		c.Format = config.OutputFormat(v)
	}),
	"INSPECT_SPANS": stringSetter(func(c *config.Config, v string) {
		c.Inspect.Spans = config.SpanDetail(v)
	}),
	"INSPECT_LANGUAGES": boolSetter(func(c *config.Config, v bool) {
		c.Inspect.Languages = v
	}),
	"INSPECT_MAX_DEPTH": intSetter(func(c *config.Config, v int) {
		c.Inspect.MaxDepth = v
	}),
	"BACKUPS_ENABLED": boolSetter(func(c *config.Config, v bool) {
		c.Backups.Enabled = v
	}),
	"BACKUPS_MODE": stringSetter(func(c *config.Config, v string) {
		c.Backups.Mode = v
	}),
	"NO_BACKUPS": boolSetter(func(c *config.Config, v bool) {
		c.NoBackups = v
	}),
}

func stringSetter(apply func(*config.Config, string)) envSetter {
	return func(cfg *config.Config, raw, _ string) error {
		apply(cfg, raw)
		return nil
	}
}

func boolSetter(apply func(*config.Config, bool)) envSetter {
	return func(cfg *config.Config, raw, name string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, raw)
		}
		apply(cfg, v)
		return nil
	}
}

func intSetter(apply func(*config.Config, int)) envSetter {
	return func(cfg *config.Config, raw, name string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", name, raw)
		}
		apply(cfg, v)
		return nil
	}
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Variables are prefixed with VELLUM_ (e.g., VELLUM_FLAVOR); unset and
// empty variables are ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for suffix, set := range envSetters {
		name := envVarPrefix + suffix
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := set(cfg, raw, name); err != nil {
			return err
		}
	}

	return nil
}
