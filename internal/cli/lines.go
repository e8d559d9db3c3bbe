package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/internal/ui/pretty"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/document"
)

type linesFlags struct {
	format string
	flavor string
}

func newLinesCommand() *cobra.Command {
	var cfg config.Config
	flags := &linesFlags{}

	cmd := &cobra.Command{
		Use:   "lines FILE",
		Short: "Show the line table of a document",
		Long: `Show where each line of a document starts, as byte and UTF-16
code unit offsets.

Lines split after "\n", after a lone "\r", and after "\r\n", which
counts as one terminator. Offsets are zero-based; the LINE column is
one-based for display.

Examples:
  vellum lines README.md                # Aligned offset table
  vellum lines README.md --format json  # Machine-readable offsets`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLines(cmd, args[0], &cfg, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")

	return cmd
}

func runLines(cmd *cobra.Command, path string, cfg *config.Config, flags *linesFlags) error {
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}

	finalCfg, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	doc, _, err := loadDocument(commandContext(cmd), path, finalCfg.Flavor)
	if err != nil {
		return err
	}

	logging.Default().Debug("indexed line table",
		logging.FieldPath, path,
		logging.FieldLines, doc.LenLines(),
		logging.FieldBytes, doc.LenBytes(),
		logging.FieldUTF16, doc.LenUTF16(),
	)

	if config.OutputFormat(flags.format) == config.FormatJSON {
		return writeLinesJSON(cmd, doc)
	}

	return writeLinesTable(cmd, doc)
}

func writeLinesTable(cmd *cobra.Command, doc *document.Snapshot) error {
	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	cols := []pretty.Column{
		{Header: "LINE", RightAlign: true},
		{Header: "BYTE", RightAlign: true},
		{Header: "UTF-16", RightAlign: true},
	}

	lines := doc.Lines()
	rows := make([]pretty.Row, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, pretty.Row{Cells: []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(line.ByteOffset),
			strconv.Itoa(line.UTF16Offset),
		}})
	}

	formatter := pretty.NewTableFormatter(styles, terminalWidth(out))
	fmt.Fprint(out, formatter.FormatTable(cols, rows))

	fmt.Fprintln(out, styles.Dim.Render(fmt.Sprintf("%d lines, %d bytes, %d UTF-16 units",
		doc.LenLines(), doc.LenBytes(), doc.LenUTF16())))

	return nil
}

// lineEntry is the JSON shape of one line table entry. Offsets and the
// line index are zero-based.
type lineEntry struct {
	Line  int `json:"line"`
	Byte  int `json:"byte"`
	UTF16 int `json:"utf16"`
}

func writeLinesJSON(cmd *cobra.Command, doc *document.Snapshot) error {
	lines := doc.Lines()
	entries := make([]lineEntry, 0, len(lines))
	for i, line := range lines {
		entries = append(entries, lineEntry{Line: i, Byte: line.ByteOffset, UTF16: line.UTF16Offset})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode lines: %w", err)
	}
	return nil
}
