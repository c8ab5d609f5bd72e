package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdxor/internal/ui/pretty"
)

// minFlagGap is the run of spaces pflag puts between a flag and its description.
const minFlagGap = 2

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailingWhitespaces . }}

{{end}}` + usageTemplate

// HelpFormatter renders Cobra help and usage text with the shared output styles.
// Styles are resolved when help is rendered, after the --color flag is parsed.
type HelpFormatter struct {
	styles *pretty.Styles
}

// NewHelpFormatter creates a help formatter with fixed styles. A nil styles
// value resolves styles from each command's --color flag.
func NewHelpFormatter(styles *pretty.Styles) *HelpFormatter {
	return &HelpFormatter{styles: styles}
}

// ApplyToCommand installs the styled help and usage functions on cmd.
// Subcommands inherit them.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return h.render(command, "usage", usageTemplate)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := h.render(command, "help", helpTemplate); err != nil {
			command.PrintErrln(err)
		}
	})
}

func (h *HelpFormatter) render(cmd *cobra.Command, name, text string) error {
	styles := h.styles
	if styles == nil {
		out := cmd.OutOrStdout()
		styles = pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
	}

	tmpl, err := template.New(name).Funcs(helpFuncs(styles)).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(cmd.OutOrStdout(), cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

func helpFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading":                 styles.SummaryTitle.Render,
		"command":                 styles.FilePath.Render,
		"subcommand":              styles.NodeKind.Render,
		"dim":                     styles.Dim.Render,
		"flags":                   func(set *pflag.FlagSet) string { return styleFlagUsages(styles, set) },
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// styleFlagUsages colors flag names in pflag's usage listing.
func styleFlagUsages(styles *pretty.Styles, set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = styleFlagLine(styles, line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine styles one "  -f, --flag type   description" line.
func styleFlagLine(styles *pretty.Styles, line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, ok := splitFlagLine(trimmed)
	if !ok {
		return line
	}

	tokens := strings.Fields(flagPart)
	for i, token := range tokens {
		if !strings.HasPrefix(token, "-") {
			tokens[i] = styles.Attr.Render(token)
			continue
		}
		name, comma := strings.CutSuffix(token, ",")
		tokens[i] = styles.Bold.Render(name)
		if comma {
			tokens[i] += ","
		}
	}

	return indent + strings.Join(tokens, " ") + "   " + desc
}

// splitFlagLine splits a flag line at the first gap of minFlagGap or more spaces.
func splitFlagLine(line string) (string, string, bool) {
	gapStart := -1
	for idx, char := range line {
		if char == ' ' {
			if gapStart < 0 {
				gapStart = idx
			}
			continue
		}
		if gapStart >= 0 && idx-gapStart >= minFlagGap {
			return line[:gapStart], line[idx:], true
		}
		gapStart = -1
	}
	return "", "", false
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
