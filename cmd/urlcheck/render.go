package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"phishshield/internal/urlrisk"
)

type styles struct {
	url     lipgloss.Style
	levels  map[urlrisk.RiskLevel]lipgloss.Style
	factor  lipgloss.Style
	summary lipgloss.Style
}

// newStyles binds colours to out so piped output stays plain.
func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		url: r.NewStyle().Bold(true),
		levels: map[urlrisk.RiskLevel]lipgloss.Style{
			urlrisk.RiskHigh:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
			urlrisk.RiskMedium: r.NewStyle().Foreground(lipgloss.Color("11")),
			urlrisk.RiskLow:    r.NewStyle().Foreground(lipgloss.Color("10")),
		},
		factor:  r.NewStyle().Faint(true).PaddingLeft(2),
		summary: r.NewStyle().PaddingLeft(2),
	}
}

func (s styles) render(r result) string {
	var b strings.Builder
	b.WriteString(s.url.Render(r.URL))
	b.WriteString("\n")

	verdict := fmt.Sprintf("score %.2f  %s", r.Score, s.levels[r.RiskLevel].Render(string(r.RiskLevel)))
	if r.IsPhishing {
		verdict += "  phishing"
	}
	b.WriteString(s.summary.Render(verdict))
	for _, f := range r.Factors {
		b.WriteString("\n")
		b.WriteString(s.factor.Render("- " + f))
	}
	return b.String()
}
