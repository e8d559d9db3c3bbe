package configloader

import "github.com/yaklabco/vellum/pkg/config"

// overlay overwrites *dst with v when v is non-zero. Zero values in an
// override layer leave the lower layer untouched.
func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// merge combines two configurations, with override taking precedence over
// base. Because false is the bool zero value, boolean fields follow a
// true-wins rule: --write or --languages on the CLI can enable a setting,
// but a higher layer cannot unset what a lower layer enabled.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	overlay(&result.Flavor, override.Flavor)
	overlay(&result.Format, override.Format)
	overlay(&result.Inspect.Spans, override.Inspect.Spans)
	overlay(&result.Inspect.MaxDepth, override.Inspect.MaxDepth)
	overlay(&result.Inspect.Languages, override.Inspect.Languages)
	overlay(&result.Write, override.Write)
	overlay(&result.Diff, override.Diff)
	overlay(&result.NoBackups, override.NoBackups)
	overlay(&result.Backups.Mode, override.Backups.Mode)
	overlay(&result.Backups.Enabled, override.Backups.Enabled)

	return &result
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	merged := configs[0]
	for _, cfg := range configs[1:] {
		merged = merge(merged, cfg)
	}
	return merged
}
