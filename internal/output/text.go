package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ossrfc/ossrfc/internal/domain"
)

var (
	styleHeadline = lipgloss.NewStyle().Bold(true)
	styleRed      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleYellow   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// WriteText renders a human readable analysis of each repository.
// Findings are grouped by severity, worst first; ignored findings are
// only counted.
func WriteText(w io.Writer, results []RepoResult) error {
	rendered := make([]string, 0, len(results))
	for _, result := range results {
		rendered = append(rendered, renderRepo(result))
	}
	_, err := fmt.Fprintln(w, strings.Join(rendered, "\n\n"))
	return err
}

func renderRepo(result RepoResult) string {
	var red, yellow, green []string
	ignored := 0
	for _, finding := range result.Analysis {
		if finding.Ignored {
			ignored++
			continue
		}
		switch finding.Severity {
		case domain.SeverityRed:
			red = append(red, styleRed.Render(
				fmt.Sprintf("🚩 %s: %s", finding.Category, finding.Indicator)))
		case domain.SeverityYellow:
			yellow = append(yellow, styleYellow.Render(
				fmt.Sprintf("⚠️ %s: %s", finding.Category, finding.Indicator)))
		case domain.SeverityGreen:
			green = append(green, styleGreen.Render(
				fmt.Sprintf("✔ %s: %s", finding.Category, finding.Indicator)))
		}
	}

	var out strings.Builder
	if len(result.Analysis) > 0 {
		out.WriteString(styleHeadline.Render(
			fmt.Sprintf("# Report for %s (%s)", result.Shortname, result.URL)))
		out.WriteString("\n")

		for _, line := range red {
			out.WriteString("\n* " + line)
		}
		for _, line := range yellow {
			out.WriteString("\n* " + line)
		}
		for _, line := range green {
			out.WriteString("\n* " + line)
		}

		if ignored > 0 {
			out.WriteString(fmt.Sprintf(
				"\n* 💡 There were %d finding(s) that you explicitly ignored", ignored))
		}
	}
	if len(result.ImpossibleChecks) > 0 {
		out.WriteString(fmt.Sprintf(
			"\n* 💡 The following checks could not be executed: %s",
			strings.Join(result.ImpossibleChecks, ", ")))
	}
	return out.String()
}
