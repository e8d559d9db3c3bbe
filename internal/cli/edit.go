package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/editscript"
	"github.com/yaklabco/vellum/pkg/fsutil"
)

type editFlags struct {
	replace []string
	with    []string
	flavor  string
}

func newEditCommand() *cobra.Command {
	var cfg config.Config
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit FILE",
		Short: "Apply byte-range replacements to a document",
		Long: `Apply one or more byte-range replacements to a Markdown document.

Each --replace takes a START:END byte range and pairs with the --with
value at the same position; use --with "" to delete a range. Edits are
validated against the document (in bounds, on character boundaries,
non-overlapping) and applied in ascending order, updating the syntax
tree and line table incrementally at every step.

By default the edited document prints to stdout. --write saves it back
atomically, creating a backup first unless backups are disabled; the
write is refused if the file changed on disk since it was read.
--diff prints the change as a unified diff instead of the document.

Examples:
  vellum edit doc.md --replace 0:5 --with "# Hi"     # Print edited text
  vellum edit doc.md --replace 3:3 --with "new "     # Insert at offset 3
  vellum edit doc.md --replace 10:20 --with "" --diff
  vellum edit doc.md --replace 0:5 --with "# Hi" --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], &cfg, flags)
		},
	}

	addEditFlags(cmd, &cfg, flags)

	return cmd
}

func runEdit(cmd *cobra.Command, path string, cfg *config.Config, flags *editFlags) error {
	logger := logging.Default()

	if len(flags.replace) == 0 {
		return fmt.Errorf("no edits: provide at least one --replace START:END")
	}
	if len(flags.with) != len(flags.replace) {
		return fmt.Errorf("%d --replace flags but %d --with flags: each range needs replacement text (use --with \"\" to delete)",
			len(flags.replace), len(flags.with))
	}

	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}

	finalCfg, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	doc, stamp, err := loadDocument(ctx, path, finalCfg.Flavor)
	if err != nil {
		return err
	}
	original := doc.Text()

	edits := make([]editscript.Edit, 0, len(flags.replace))
	for i, spec := range flags.replace {
		edit, err := editscript.ParseSpec(spec)
		if err != nil {
			return err
		}
		edit.Text = flags.with[i]
		edits = append(edits, edit)
	}

	prepared, err := editscript.Prepare(edits, original)
	if err != nil {
		return fmt.Errorf("invalid edits: %w", err)
	}

	results := editscript.Apply(doc, prepared)
	for _, r := range results {
		logger.Debug("applied edit",
			logging.FieldRange, r.Edit.Spec(),
			logging.FieldAffected, r.Affected.String(),
		)
	}

	modified := doc.Text()
	logger.Info("edited document",
		logging.FieldPath, path,
		logging.FieldEdits, len(results),
		logging.FieldBytes, len(modified),
		logging.FieldLines, doc.LenLines(),
		logging.FieldWrite, finalCfg.Write,
	)

	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	if finalCfg.Diff {
		diff := editscript.GenerateDiff(path, original, modified)
		if !diff.HasChanges() {
			fmt.Fprintln(out, styles.Warning.Render("edits produced no changes"))
		} else {
			fmt.Fprint(out, styles.FormatDiff(diff))
			fmt.Fprint(out, styles.FormatDiffStat(diff))
		}
	}

	if finalCfg.Write {
		return writeEdited(cmd, path, modified, stamp, finalCfg)
	}

	if !finalCfg.Diff {
		fmt.Fprint(out, modified)
	}

	return nil
}

// writeEdited saves the modified document back to its file, creating a
// backup first when backups are enabled.
func writeEdited(cmd *cobra.Command, path, modified string, stamp *fsutil.Stamp, cfg *config.Config) error {
	logger := logging.Default()
	ctx := commandContext(cmd)

	changed, err := fsutil.Modified(ctx, stamp)
	if err != nil {
		return fmt.Errorf("check for external changes: %w", err)
	}
	if changed {
		return fmt.Errorf("%s changed on disk since it was read; refusing to overwrite", path)
	}

	backups := cfg.Backups.Enabled && !cfg.NoBackups
	if backups {
		created, err := fsutil.CreateBackup(ctx, path, fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupMode(cfg.Backups.Mode),
		})
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		if created {
			logger.Debug("created backup", logging.FieldPath, fsutil.BackupPath(path, fsutil.BackupMode(cfg.Backups.Mode)))
		}
	} else {
		styles := commandStyles(cmd)
		fmt.Fprintln(cmd.ErrOrStderr(),
			styles.Warning.Render("backups disabled; the original content will not be preserved"))
	}

	if err := fsutil.WriteAtomic(ctx, path, []byte(modified), stamp.Mode); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logger.Info("wrote file", logging.FieldPath, path, logging.FieldBytes, len(modified))
	return nil
}

func addEditFlags(cmd *cobra.Command, cfg *config.Config, flags *editFlags) {
	cmd.Flags().StringArrayVar(&flags.replace, "replace", nil, "byte range START:END to replace (repeatable)")
	cmd.Flags().StringArrayVar(&flags.with, "with", nil, "replacement text for the matching --replace (repeatable)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&cfg.Write, "write", false, "write the edited document back to the file")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "show the change as a unified diff")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when writing")
}
