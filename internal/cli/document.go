package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/vellum/internal/configloader"
	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/internal/ui/pretty"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/fsutil"
	goldmarkparser "github.com/yaklabco/vellum/pkg/parser/goldmark"
	"github.com/yaklabco/vellum/pkg/syntax"
)

// errConfigLoad marks configuration resolution failures so the exit
// code can distinguish them from runtime errors.
var errConfigLoad = errors.New("failed to load configuration")

// commandContext returns the command's context, falling back to
// context.Background when Cobra has none attached.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the final configuration for a command: config files
// and environment variables merged under the CLI-provided overrides.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errConfigLoad, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// loadDocument reads a file and parses it into a snapshot whose spans
// carry the file's interned identity. The returned stamp preserves the
// file's mode and modification time for later rewrites.
func loadDocument(ctx context.Context, path string, flavor config.Flavor) (*document.Snapshot, *fsutil.Stamp, error) {
	content, stamp, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}

	parser := goldmarkparser.New(string(flavor))
	doc := document.New(syntax.Intern(absPath), string(content), parser)
	return doc, stamp, nil
}

// commandStyles builds terminal styles honoring the persistent --color
// flag for the command's output writer.
func commandStyles(cmd *cobra.Command) *pretty.Styles {
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
}

// terminalWidth reports the width of the terminal behind writer, or zero
// when the writer is not a terminal.
func terminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return 0
}
