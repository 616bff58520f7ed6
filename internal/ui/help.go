// ABOUTME: Custom help template for Cobra commands with lipgloss styling
// ABOUTME: Styles usage, flags and examples for the root command and its subcommands
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	helpHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo)
	helpCommandStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	helpDescStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
)

// SetupHelpTemplate installs the styled help and usage output on cmd and its subcommands
func SetupHelpTemplate(cmd *cobra.Command) {
	cobra.AddTemplateFunc("styleHeading", helpHeadingStyle.Render)
	cobra.AddTemplateFunc("styleCommand", helpCommandStyle.Render)
	cobra.AddTemplateFunc("styleDesc", helpDescStyle.Render)
	cobra.AddTemplateFunc("styleExample", styleExample)

	cmd.SetHelpTemplate(helpTemplate)
	cmd.SetUsageTemplate(usageTemplate)
}

// styleExample mutes "# comment" lines and highlights command lines
func styleExample(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
		case strings.HasPrefix(trimmed, "#"):
			lines[i] = helpDescStyle.Render(line)
		default:
			lines[i] = helpCommandStyle.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

const helpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}{{.UsageString}}`

const usageTemplate = `{{styleHeading "Usage:"}}{{if .Runnable}}
  {{styleCommand .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{styleCommand .CommandPath}} {{styleDesc "[command]"}}{{end}}{{if .HasExample}}

{{styleHeading "Examples:"}}
{{styleExample .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{styleHeading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{styleCommand (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{styleHeading "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{styleHeading "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{styleCommand (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
`
