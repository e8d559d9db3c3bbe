package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new vellum configuration file",
		Long: `Create a new .vellum.yml configuration file in the current directory
with sensible defaults. The file can be customized to pick a Markdown
flavor, tune inspect output, and configure backup behavior.

Examples:
  vellum init                     Create minimal .vellum.yml
  vellum init --full              Create full config with all options documented
  vellum init --format json       Create .vellum.json instead
  vellum init --output custom.yml  Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with all options documented")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .vellum.yml or .vellum.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	if flags.format != "yaml" && flags.format != "json" {
		return fmt.Errorf("invalid format %q: must be yaml or json", flags.format)
	}

	absPath, err := resolveInitPath(flags)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", absPath)
		}
		logger.Warn("overwriting existing file", logging.FieldOutput, absPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", absPath, err)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, 0); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldOutput, absPath)

	if flags.full {
		logger.Info("full template documents every option")
	}

	logger.Info("customize your configuration by editing the file")

	return nil
}

// resolveInitPath returns the absolute destination for the generated
// file, defaulting to .vellum.yml or .vellum.json in the working
// directory.
func resolveInitPath(flags *initFlags) (string, error) {
	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".vellum.yml"
		if flags.format == "json" {
			outputPath = ".vellum.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return absPath, nil
}
