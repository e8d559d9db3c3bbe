// Package cli provides the Cobra command structure for vellum.
package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/ui/pretty"
)

// helpTheme holds the lipgloss styles applied to rendered command help.
// The zero theme renders everything unstyled.
type helpTheme struct {
	Command    lipgloss.Style
	Heading    lipgloss.Style
	Subcommand lipgloss.Style
	Flag       lipgloss.Style
	FlagType   lipgloss.Style
	Example    lipgloss.Style
	Muted      lipgloss.Style
}

func newHelpTheme(colorEnabled bool) helpTheme {
	plain := lipgloss.NewStyle()
	theme := helpTheme{
		Command:    plain,
		Heading:    plain,
		Subcommand: plain,
		Flag:       plain,
		FlagType:   plain,
		Example:    plain,
		Muted:      plain,
	}
	if !colorEnabled {
		return theme
	}

	theme.Command = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	theme.Heading = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	theme.Subcommand = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	theme.Flag = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	theme.FlagType = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	theme.Example = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	theme.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return theme
}

// usageTemplate is the styled replacement for Cobra's default usage block.
// It is shared by both the usage and help renderers.
const usageTemplate = `{{ head "Usage:" }}{{ if .Runnable }}
  {{ cmd .UseLine }}{{ end }}{{ if .HasAvailableSubCommands }}
  {{ cmd .CommandPath }} [command]{{ end }}
{{- if .Aliases }}

{{ head "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end }}
{{- if .HasExample }}

{{ head "Examples:" }}
{{ example .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ head "Available Commands:" }}
{{- range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ sub (pad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ head "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ head "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ cmd (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

// helpTemplate prepends the command banner and long description to the
// usage block.
const helpTemplate = `{{ if or .Runnable .HasSubCommands }}{{ cmd .CommandPath }}{{ with .Version }} {{ dim . }}{{ end }}

{{ end }}{{ with or .Long .Short }}{{ trim . }}

{{ end }}` + usageTemplate

// flagLineRE splits a pflag usage line into indent, flag spec, gap, and
// description, e.g. "      -o, --output string   destination path".
var flagLineRE = regexp.MustCompile(`^(\s*)(-\S(?:.*?\S)?)(\s{2,})(\S.*)$`)

func (t helpTheme) funcs() template.FuncMap {
	return template.FuncMap{
		"cmd":     t.Command.Render,
		"head":    t.Heading.Render,
		"sub":     t.Subcommand.Render,
		"dim":     t.Muted.Render,
		"example": t.Example.Render,
		"flags":   t.renderFlagUsages,
		"join":    strings.Join,
		"pad": func(s string, width int) string {
			return fmt.Sprintf("%-*s", width, s)
		},
		"trim": func(s string) string {
			return strings.TrimRight(s, " \t\n")
		},
	}
}

// renderFlagUsages colorizes each line of a pflag FlagUsages block while
// preserving pflag's own column alignment. The styles insert zero-width
// escape sequences, so the original gap between spec and description is
// kept intact.
func (t helpTheme) renderFlagUsages(v any) string {
	set, ok := v.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}

	lines := strings.Split(strings.TrimRight(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		match := flagLineRE.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		lines[i] = match[1] + t.renderFlagSpec(match[2]) + match[3] + match[4]
	}

	return strings.Join(lines, "\n")
}

// renderFlagSpec colors the dash-prefixed names in a flag spec such as
// "-o, --output string" and dims the value type that follows them.
func (t helpTheme) renderFlagSpec(spec string) string {
	words := strings.Fields(spec)
	for i, word := range words {
		name, hadComma := strings.CutSuffix(word, ",")
		if !strings.HasPrefix(name, "-") {
			words[i] = t.FlagType.Render(word)
			continue
		}
		words[i] = t.Flag.Render(name)
		if hadComma {
			words[i] += ","
		}
	}
	return strings.Join(words, " ")
}

// decorateHelp installs styled usage and help rendering on cmd. Cobra
// propagates both functions to subcommands, so installing at the root
// covers the whole tree.
func decorateHelp(cmd *cobra.Command, colorMode string, out io.Writer) {
	theme := newHelpTheme(pretty.IsColorEnabled(colorMode, out))
	funcs := theme.funcs()

	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.New("help").Funcs(funcs).Parse(helpTemplate))

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := usage.Execute(c.OutOrStdout(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := help.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}
