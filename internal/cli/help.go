// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(primaryColor).
				MarginTop(1)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Italic(true)
)

// StyledHelpPrinter renders kong help with the stemflow styles.
func StyledHelpPrinter(_ kong.HelpOptions) kong.HelpPrinter {
	return func(_ kong.HelpOptions, ctx *kong.Context) error {
		fmt.Fprint(ctx.Stdout, renderHelp(ctx.Model.Name, arguments(ctx.Model.Node), flags(ctx.Model.Node)))
		return nil
	}
}

type argument struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
	enum       string
}

func renderHelp(name string, args []argument, flags []flag) string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(appName))
	sb.WriteString("\n")
	sb.WriteString(SubtitleStyle.Render(appDescription))
	sb.WriteString("\n")

	sb.WriteString(helpSectionStyle.Render("Usage:"))
	sb.WriteString("\n  ")
	sb.WriteString(fmt.Sprintf("%s <model> <input> <output> [flags]", name))
	sb.WriteString("\n")

	if len(args) > 0 {
		sb.WriteString(helpSectionStyle.Render("Arguments:"))
		sb.WriteString("\n")
		for _, arg := range args {
			sb.WriteString("  ")
			sb.WriteString(helpArgStyle.Render(arg.name))
			if arg.help != "" {
				sb.WriteString("  ")
				sb.WriteString(arg.help)
			}
			sb.WriteString("\n")
		}
	}

	if len(flags) > 0 {
		sb.WriteString(helpSectionStyle.Render("Flags:"))
		sb.WriteString("\n")
		for _, f := range flags {
			sb.WriteString("  ")
			sb.WriteString(helpFlagStyle.Render(f.flags))
			if f.help != "" {
				sb.WriteString("  ")
				sb.WriteString(f.help)
			}
			if f.enum != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("[" + f.enum + "]"))
			}
			if f.defaultVal != "" {
				sb.WriteString(" ")
				sb.WriteString(helpDefaultStyle.Render("(default: " + f.defaultVal + ")"))
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func arguments(node *kong.Node) []argument {
	var args []argument
	for _, arg := range node.Positional {
		args = append(args, argument{name: arg.Summary(), help: arg.Help})
	}
	return args
}

func flags(node *kong.Node) []flag {
	out := []flag{{flags: "-h, --help", help: "Show context-sensitive help."}}

	for _, f := range node.Flags {
		if f.Name == "help" {
			continue
		}

		flagStr := "--" + f.Name
		if f.Short != 0 {
			flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}
		if !f.IsBool() && f.PlaceHolder != "" {
			flagStr += "=" + strings.ToUpper(f.PlaceHolder)
		}

		// Booleans and empty strings have no useful default to show
		defaultVal := ""
		if f.HasDefault && !f.IsBool() && f.Default != "" && f.Default != "0" {
			defaultVal = f.Default
		}

		out = append(out, flag{
			flags:      flagStr,
			help:       f.Help,
			defaultVal: defaultVal,
			enum:       strings.ReplaceAll(f.Enum, ",", "|"),
		})
	}

	return out
}
