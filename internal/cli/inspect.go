package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
	"github.com/yaklabco/vellum/internal/ui/pretty"
	"github.com/yaklabco/vellum/pkg/analysis"
	"github.com/yaklabco/vellum/pkg/config"
	"github.com/yaklabco/vellum/pkg/document"
	"github.com/yaklabco/vellum/pkg/syntax"
)

type inspectFlags struct {
	format  string
	flavor  string
	spans   string
	text    bool
	maxText int
}

func newInspectCommand() *cobra.Command {
	var cfg config.Config
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the syntax tree of a Markdown document",
		Long:  inspectLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], &cfg, flags)
		},
	}

	addInspectFlags(cmd, &cfg, flags)

	return cmd
}

const inspectLongDescription = `Show the syntax tree of a Markdown document.

The tree is lossless: concatenating its leaves reproduces the file
byte for byte, and malformed constructs appear as error nodes instead
of failing the parse.

Examples:
  vellum inspect README.md                 # Tree with byte ranges
  vellum inspect README.md --text          # Include quoted leaf text
  vellum inspect README.md --spans number  # Include raw span numbers
  vellum inspect README.md --languages     # Label code block languages
  vellum inspect README.md --format json   # Machine-readable tree`

func runInspect(cmd *cobra.Command, path string, cfg *config.Config, flags *inspectFlags) error {
	logger := logging.Default()

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("spans") {
		cfg.Inspect.Spans = config.SpanDetail(flags.spans)
	}

	finalCfg, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	if !finalCfg.Inspect.Spans.IsValid() {
		return fmt.Errorf("invalid span detail %q: must be none, range, or number", finalCfg.Inspect.Spans)
	}

	doc, _, err := loadDocument(commandContext(cmd), path, finalCfg.Flavor)
	if err != nil {
		return err
	}

	logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldSpans, finalCfg.Inspect.Spans,
		logging.FieldBytes, doc.LenBytes(),
		logging.FieldNodes, doc.Root().Descendants(),
	)

	if config.OutputFormat(flags.format) == config.FormatJSON {
		return writeTreeJSON(cmd.OutOrStdout(), doc, finalCfg.Inspect)
	}

	return writeTreeText(cmd, path, doc, finalCfg.Inspect, flags)
}

func writeTreeText(cmd *cobra.Command, path string, doc *document.Snapshot, inspectCfg config.InspectConfig, flags *inspectFlags) error {
	styles := commandStyles(cmd)
	out := cmd.OutOrStdout()

	opts := pretty.TreeOptions{
		Offsets:   inspectCfg.Spans != config.SpanDetailNone,
		Spans:     inspectCfg.Spans == config.SpanDetailNumber,
		Text:      flags.text,
		MaxText:   flags.maxText,
		MaxDepth:  inspectCfg.MaxDepth,
		Languages: inspectCfg.Languages,
	}

	fmt.Fprint(out, styles.FormatTree(doc, opts))

	report := analysis.Analyze(doc, analysis.Options{IncludeErrors: true})
	if report.Totals.HasErrors() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, styles.FormatFileHeader(path, report.Totals.Errors))
		for _, entry := range report.Errors {
			fmt.Fprint(out, styles.FormatParseError(path, entry))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, styles.FormatSummaryOneLine(report))

	return nil
}

// treeNode is the JSON shape of one syntax tree node.
type treeNode struct {
	Kind     string      `json:"kind"`
	Len      int         `json:"len"`
	Span     uint64      `json:"span,omitempty"`
	Text     string      `json:"text,omitempty"`
	Message  string      `json:"message,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

func writeTreeJSON(out io.Writer, doc *document.Snapshot, inspectCfg config.InspectConfig) error {
	includeSpans := inspectCfg.Spans == config.SpanDetailNumber

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(buildTreeNode(doc.Root(), includeSpans)); err != nil {
		return fmt.Errorf("encode tree: %w", err)
	}
	return nil
}

func buildTreeNode(n *syntax.Node, includeSpans bool) *treeNode {
	node := &treeNode{
		Kind:    n.Kind().String(),
		Len:     n.Len(),
		Message: n.Message(),
	}
	if includeSpans {
		node.Span = n.Span().Number()
	}
	if n.IsLeaf() {
		node.Text = n.Text()
		return node
	}
	for _, c := range n.Children() {
		node.Children = append(node.Children, buildTreeNode(c, includeSpans))
	}
	return node
}

func addInspectFlags(cmd *cobra.Command, cfg *config.Config, flags *inspectFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.spans, "spans", "range", "span annotations: none, range, number")
	cmd.Flags().BoolVar(&flags.text, "text", false, "show quoted leaf text")
	cmd.Flags().IntVar(&flags.maxText, "max-text", 0, "truncate leaf text beyond this length (0 = default)")
	cmd.Flags().IntVar(&cfg.Inspect.MaxDepth, "max-depth", 0, "limit tree depth in output (0 = unlimited)")
	cmd.Flags().BoolVar(&cfg.Inspect.Languages, "languages", false, "label code blocks with their language")
}
