// Package output renders withpost's own terminal output.
//
// The child command owns stdout; withpost only adds a short banner before
// the command starts and a result line after it exits, both on stderr.
// Styling uses lipgloss and degrades to plain text when the writer is not
// a color terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"withpost/internal/phase"
)

// maxCommandLength bounds how much of a command the banner shows.
const maxCommandLength = 72

// styles holds the printer's lipgloss styles, bound to the renderer of the
// writer they are printed to.
type styles struct {
	phase   lipgloss.Style
	command lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		phase:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		command: r.NewStyle().Foreground(lipgloss.Color("8")),
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

// Result is what the printer needs to report a finished command.
type Result struct {
	Phase    phase.Phase
	ExitCode int
	Signaled bool
	Signal   string
	Duration time.Duration
}

// Printer writes banners and result lines.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a Printer that writes to stderr.
func NewPrinter() *Printer {
	return NewPrinterWithWriter(os.Stderr)
}

// NewPrinterWithWriter creates a Printer that writes to w. Colors are used
// only when w itself is a color terminal.
func NewPrinterWithWriter(w io.Writer) *Printer {
	return &Printer{
		out:    w,
		styles: newStyles(lipgloss.NewRenderer(w)),
	}
}

// PhaseStart prints the banner shown before a phase's command runs.
func (p *Printer) PhaseStart(ph phase.Phase, command string) {
	fmt.Fprintf(p.out, "%s %s\n",
		p.styles.phase.Render(fmt.Sprintf("▶ %s:", ph)),
		p.styles.command.Render(displayCommand(command)),
	)
}

// PhaseResult prints how a phase's command exited.
func (p *Printer) PhaseResult(r Result) {
	d := r.Duration.Round(time.Millisecond)

	switch {
	case r.Signaled:
		sig := r.Signal
		if sig == "" {
			sig = "signal"
		}
		fmt.Fprintf(p.out, "%s %s\n",
			p.styles.warning.Render(fmt.Sprintf("⚠ %s terminated by %s", r.Phase, sig)),
			fmt.Sprintf("(exit code %d, %s)", r.ExitCode, d),
		)
	case r.ExitCode == 0:
		fmt.Fprintf(p.out, "%s %s\n",
			p.styles.success.Render(fmt.Sprintf("✓ %s succeeded", r.Phase)),
			fmt.Sprintf("(%s)", d),
		)
	default:
		fmt.Fprintf(p.out, "%s %s\n",
			p.styles.failure.Render(fmt.Sprintf("✗ %s failed", r.Phase)),
			fmt.Sprintf("(exit code %d, %s)", r.ExitCode, d),
		)
	}
}

// DryRun prints what a run would do without doing it.
func (p *Printer) DryRun(ph phase.Phase, command string, markPost bool, statePath string) {
	fmt.Fprintf(p.out, "%s\n", p.styles.phase.Render("Dry run"))
	fmt.Fprintf(p.out, "  Phase:   %s\n", ph)
	fmt.Fprintf(p.out, "  Command: %s\n", displayCommand(command))
	if markPost {
		fmt.Fprintf(p.out, "  Marker:  POST=true -> %s\n", displayPath(statePath))
	} else {
		fmt.Fprintf(p.out, "  Marker:  none\n")
	}
}

// displayCommand shows the first line of command, truncated.
func displayCommand(command string) string {
	if strings.TrimSpace(command) == "" {
		return "(empty)"
	}
	first, _, multi := strings.Cut(command, "\n")
	if multi {
		first += " …"
	}
	return truncate(first, maxCommandLength)
}

func displayPath(path string) string {
	if path == "" {
		return "(unset)"
	}
	return path
}

// truncate cuts s to at most maxLen runes, never splitting a character.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}
