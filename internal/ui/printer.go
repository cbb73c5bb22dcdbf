package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled command output. This is the "run once and exit"
// rendering used by the direct CLI subcommands, as opposed to the
// interactive screen in internal/tui.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a Printer that writes to w. If w is nil, os.Stdout is
// used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box with the operation name and its
// parameters.
func (p *Printer) PrintHeader(title string, params map[string]string) {
	var lines []string
	lines = append(lines, HeaderTitleStyle.Render(strings.ToUpper(title)))
	for key, value := range params {
		lines = append(lines,
			HeaderParamKeyStyle.Render(key+":")+" "+HeaderParamValueStyle.Render(value))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	p.Println(headerBorderStyle(p.width).Render(content))
	p.Newline()
}

// PrintSuccess prints a success result with optional details.
func (p *Printer) PrintSuccess(title string, details map[string]string) {
	p.Newline()
	p.Println(SuccessTitleStyle.Render("  " + SuccessMarker + "  " + title))
	for key, value := range details {
		p.Println("  " + DetailKeyStyle.Render(key+":") + " " + DetailValueStyle.Render(value))
	}
	p.Newline()
}

// PrintFailure prints a failure result with troubleshooting tips.
func (p *Printer) PrintFailure(title string, reason string, troubleshooting []string) {
	p.Newline()
	p.Println(ErrorTitleStyle.Render("  " + FailureMarker + "  " + title))
	if reason != "" {
		p.Println(ErrorMessageStyle.Render("     " + reason))
	}
	if len(troubleshooting) > 0 {
		p.Newline()
		p.Println(TroubleshootingTitleStyle.Render("  Troubleshooting:"))
		for _, tip := range troubleshooting {
			p.Println(TroubleshootingItemStyle.Render("    • " + tip))
		}
	}
	p.Newline()
}

// PrintOutput prints raw tool output as muted diagnostic context.
func (p *Printer) PrintOutput(output string) {
	if output == "" {
		return
	}
	for _, line := range strings.Split(output, "\n") {
		p.Println(OutputStyle.Render("  " + line))
	}
}
