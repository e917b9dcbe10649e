// SPDX-License-Identifier: EPL-2.0

// Package cli renders the stemflow command line output.
package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#2E8B57") // Sea green
	accentColor  = lipgloss.Color("#7FFFD4") // Aquamarine
	errorColor   = lipgloss.Color("#DC143C") // Crimson
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 2)
)

const (
	appName        = "stemflow"
	appDescription = "Split an audio file into stems with a windowed model."
)

// PrintVersion prints version information
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, TitleStyle.Render(appName))
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// Stem is one line of the summary.
type Stem struct {
	Name string
	Path string
}

// Summary describes a finished run.
type Summary struct {
	Model   string
	Device  string
	Input   string
	Stems   []Stem
	Frames  int
	Rate    int
	Elapsed time.Duration
}

// PrintSummary prints a boxed report of a finished run.
func PrintSummary(w io.Writer, s Summary) {
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("✓ Separation complete"))
	b.WriteString("\n\n")

	row := func(key, value string) {
		b.WriteString(KeyStyle.Render(fmt.Sprintf("%-9s", key+":")))
		b.WriteString(" ")
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}
	row("Model", s.Model+" on "+s.Device)
	row("Input", s.Input)
	row("Length", FormatDuration(FramesDuration(s.Frames, s.Rate)))
	row("Elapsed", FormatDuration(s.Elapsed))

	b.WriteString("\n")
	b.WriteString(KeyStyle.Render("Stems:"))
	for _, stem := range s.Stems {
		b.WriteString("\n  ")
		b.WriteString(ValueStyle.Render(stem.Name))
		b.WriteString(" ")
		b.WriteString(KeyStyle.Render(stem.Path))
	}

	fmt.Fprintln(w, BoxStyle.Render(b.String()))
}

// FramesDuration converts a frame count at rate into a duration.
func FramesDuration(frames, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(int64(frames) * int64(time.Second) / int64(rate))
}

// FormatDuration formats a duration nicely
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
