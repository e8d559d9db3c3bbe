package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/internal/ui/pretty"
	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/runner"
)

// ErrParseErrors is returned when --strict statistics find parse errors.
var ErrParseErrors = errors.New("parse errors found")

type statsFlags struct {
	jsonOut   bool
	flavor    string
	sortBy    string
	ascending bool
	kinds     bool
	languages bool
	strict    bool
	jobs      int
	exclude   []string
}

func newStatsCommand() *cobra.Command {
	var cfg config.Config
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats PATH [PATH...]",
		Short: "Report document statistics",
		Long: `Report statistics for one or more Markdown documents: text measures
(bytes, UTF-16 code units, lines), tree measures (nodes, leaves, depth),
code block languages, and parse errors with their positions.

Directories are walked for .md and .markdown files; explicitly named
files are analyzed regardless of extension. A single document prints a
full summary; multiple documents print one table row each.

Examples:
  vellum stats README.md                 # Full summary for one file
  vellum stats README.md --kinds         # Add a node kind breakdown
  vellum stats docs/                     # One row per discovered document
  vellum stats docs/ --exclude 'vendor/**'
  vellum stats README.md --json          # Machine-readable report
  vellum stats --strict docs/            # Exit nonzero on parse errors`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, &cfg, flags)
		},
	}

	addStatsFlags(cmd, flags)

	return cmd
}

func runStats(cmd *cobra.Command, paths []string, cfg *config.Config, flags *statsFlags) error {
	logger := logging.Default()

	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}

	finalCfg, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("invalid sort field %q: must be count, alpha, or bytes", flags.sortBy)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	opts := analysis.DefaultOptions()
	opts.IncludeByKind = flags.kinds
	opts.SortBy = sortBy
	opts.SortDesc = !flags.ascending
	opts.WorkingDir = workDir

	ctx := logging.WithLogger(commandContext(cmd), logger)
	result, err := runner.Run(ctx, runner.Options{
		Paths:        paths,
		WorkingDir:   workDir,
		ExcludeGlobs: flags.exclude,
		Jobs:         flags.jobs,
		Flavor:       string(finalCfg.Flavor),
		Analysis:     opts,
	})
	if err != nil {
		return err
	}
	if err := result.FirstError(); err != nil {
		return err
	}

	logger.Debug("analyzed documents",
		"discovered", result.Stats.FilesDiscovered,
		logging.FieldBytes, result.Stats.BytesTotal,
		logging.FieldErrors, result.Stats.ParseErrorsTotal,
	)

	reports := result.Reports()
	if len(reports) == 0 {
		styles := commandStyles(cmd)
		fmt.Fprintln(cmd.OutOrStdout(), styles.Dim.Render("no documents found"))
		return nil
	}

	if flags.jsonOut {
		err = writeStatsJSON(cmd, reports)
	} else if len(reports) == 1 {
		err = writeStatsSummary(cmd, reports[0], flags)
	} else {
		err = writeStatsTable(cmd, result)
	}
	if err != nil {
		return err
	}

	if flags.strict && ExitCodeFromReports(reports) != ExitSuccess {
		return ErrParseErrors
	}
	return nil
}

func writeStatsJSON(cmd *cobra.Command, reports []*analysis.Report) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")

	if len(reports) == 1 {
		if err := encoder.Encode(reports[0]); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return nil
	}
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("encode reports: %w", err)
	}
	return nil
}

func writeStatsSummary(cmd *cobra.Command, report *analysis.Report, flags *statsFlags) error {
	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	if report.Totals.HasErrors() {
		fmt.Fprintln(out, styles.FormatFileHeader(report.Path, report.Totals.Errors))
		for _, entry := range report.Errors {
			fmt.Fprint(out, styles.FormatParseError(report.Path, entry))
		}
	}

	fmt.Fprint(out, styles.FormatSummary(report))

	formatter := pretty.NewTableFormatter(styles, terminalWidth(out))

	if flags.kinds && len(report.ByKind) > 0 {
		fmt.Fprintln(out)
		cols := []pretty.Column{
			{Header: "KIND"},
			{Header: "COUNT", RightAlign: true},
			{Header: "BYTES", RightAlign: true},
		}
		rows := make([]pretty.Row, 0, len(report.ByKind))
		for _, ka := range report.ByKind {
			rows = append(rows, pretty.Row{Cells: []string{
				ka.Kind,
				strconv.Itoa(ka.Count),
				strconv.Itoa(ka.Bytes),
			}})
		}
		fmt.Fprint(out, formatter.FormatTable(cols, rows))
	}

	if flags.languages && len(report.Languages) > 0 {
		fmt.Fprintln(out)
		cols := []pretty.Column{
			{Header: "LANGUAGE"},
			{Header: "BLOCKS", RightAlign: true},
			{Header: "BYTES", RightAlign: true},
			{Header: "DETECTED", RightAlign: true},
		}
		rows := make([]pretty.Row, 0, len(report.Languages))
		for _, la := range report.Languages {
			rows = append(rows, pretty.Row{Cells: []string{
				la.Language,
				strconv.Itoa(la.Blocks),
				strconv.Itoa(la.Bytes),
				strconv.Itoa(la.Detected),
			}})
		}
		fmt.Fprint(out, formatter.FormatTable(cols, rows))
	}

	return nil
}

func writeStatsTable(cmd *cobra.Command, result *runner.Result) error {
	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	cols := []pretty.Column{
		{Header: "FILE", Shrink: true, TruncateLeft: true, MinWidth: 20},
		{Header: "BYTES", RightAlign: true},
		{Header: "LINES", RightAlign: true},
		{Header: "NODES", RightAlign: true},
		{Header: "ERRORS", RightAlign: true},
	}

	reports := result.Reports()
	rows := make([]pretty.Row, 0, len(reports))
	for _, report := range reports {
		row := pretty.Row{Cells: []string{
			report.Path,
			strconv.Itoa(report.Totals.Bytes),
			strconv.Itoa(report.Totals.Lines),
			strconv.Itoa(report.Totals.Nodes),
			strconv.Itoa(report.Totals.Errors),
		}}
		if report.Totals.HasErrors() {
			row.Style = styles.Failure
		}
		rows = append(rows, row)
	}

	formatter := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, formatter.FormatTable(cols, rows))

	line := fmt.Sprintf("%d documents, %d bytes, %d parse errors",
		result.Stats.FilesProcessed, result.Stats.BytesTotal, result.Stats.ParseErrorsTotal)
	if result.HasParseErrors() {
		fmt.Fprintln(out, styles.Error.Render(line))
	} else {
		fmt.Fprintln(out, styles.Dim.Render(line))
	}

	return nil
}

func addStatsFlags(cmd *cobra.Command, flags *statsFlags) {
	cmd.Flags().BoolVar(&flags.jsonOut, "json", false, "output reports as JSON")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count", "breakdown order: count, alpha, bytes")
	cmd.Flags().BoolVar(&flags.ascending, "asc", false, "sort breakdowns ascending")
	cmd.Flags().BoolVar(&flags.kinds, "kinds", false, "include a node kind breakdown")
	cmd.Flags().BoolVar(&flags.languages, "languages", false, "include a code block language breakdown")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit nonzero when any document has parse errors")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "concurrent workers, 0 for one per CPU")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "glob patterns to skip during directory walks")
}
