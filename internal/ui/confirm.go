package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Confirm prints a warning box and asks the user to type "yes". It returns
// true only for that answer; EOF or anything else cancels.
func (p *Printer) Confirm(in io.Reader, title string, warnings []string) bool {
	lines := []string{"", WarningTitleStyle.Render(fmt.Sprintf("   %s  WARNING  ─  %s", WarningMarker, title)), ""}
	for _, w := range warnings {
		lines = append(lines, ResultValueStyle.Render("   • "+w))
	}
	lines = append(lines, "")

	p.Println(boxStyle(WarningColor, p.width).Render(strings.Join(lines, "\n")))
	p.Newline()

	_, _ = fmt.Fprint(p.out, WarningTitleStyle.Render(`Type "yes" to continue: `))

	input, err := bufio.NewReader(in).ReadString('\n')
	p.Newline()
	if err != nil && input == "" {
		return false
	}
	if strings.EqualFold(strings.TrimSpace(input), "yes") {
		return true
	}

	p.Println(lipgloss.NewStyle().Foreground(MutedColor).Render("  Cancelled."))
	return false
}
