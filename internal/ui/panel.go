package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"creditflow/internal/credit"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	approved   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ECC71"))
	denied     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C678DD"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C678DD")).
			Padding(0, 1)
	verdictStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
)

// DecisionPanel renders the final decision in a bordered panel.
func DecisionPanel(dec credit.Decision) string {
	style := approved
	if dec.Decision == credit.DecisionDenied {
		style = denied
	}
	body := fmt.Sprintf("%s %s\n%s %s",
		labelStyle.Render("Decision:"), style.Render(dec.Decision),
		labelStyle.Render("Reason:"), dec.Reason,
	)
	return panelStyle.Render(titleStyle.Render("Credit Feasibility Result") + "\n" + body)
}

// ProgressLine styles one evaluator verdict line as it lands.
func ProgressLine(s string) string {
	return verdictStyle.Render(strings.ReplaceAll(s, "_", " "))
}
