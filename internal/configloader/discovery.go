package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the system-wide config path (e.g., /etc/vellum/config.yaml).
	System string

	// User is the user-level config path (e.g., ~/.config/vellum/config.yaml).
	User string

	// Project is the project-level config path (e.g., ./.vellum.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// projectFileNames are the project config file names, in preference order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectFileNames = []string{
	".vellum.yml",
	".vellum.yaml",
	"vellum.yml",
	"vellum.yaml",
}

// vcsMarkers mark a repository root during the upward search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations: the
// machine-wide directory, the XDG user directory, and the project tree
// upward from workDir. Missing files are empty strings, not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  probeConfigDir(systemConfigDir()),
		User:    probeConfigDir(userConfigDir()),
		Project: project,
	}, nil
}

// systemConfigDir returns the machine-wide configuration directory.
func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "vellum")
	}
	return "/etc/vellum"
}

// userConfigDir returns the per-user configuration directory, honoring
// XDG_CONFIG_HOME when set.
func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "vellum")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "vellum")
}

// probeConfigDir returns the first config file present in dir, or "".
func probeConfigDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); isRegularFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config
// file. The search ends at the first hit, a VCS root, the home directory,
// or the filesystem root, whichever comes first. A miss returns "" without
// error. A directory that is itself a VCS root is still searched before
// the walk stops.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	// A failed home lookup only disables the home-directory boundary.
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectFileNames {
			if path := filepath.Join(dir, name); isRegularFile(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// isVCSRoot reports whether dir contains a version control marker directory.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// isRegularFile reports whether path exists and is not a directory.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
