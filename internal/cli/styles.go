package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"})
	cliBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"})
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symError() string   { return cliError.Render("✗") }
func symWarning() string { return cliWarn.Render("!") }

// cardStyle is the rounded frame around summary cards.
func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 1)
}

// kvPair is one key/value line inside a summary card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key/value lines for a card.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		padded := p.key + strings.Repeat(" ", width-len(p.key))
		lines[i] = cliMuted.Render(padded+":") + " " + p.value
	}
	return strings.Join(lines, "\n")
}

// renderSuccessCard renders a framed success message with detail lines.
func renderSuccessCard(title string, details ...string) string {
	lines := []string{symSuccess() + " " + cliPrimary.Render(title)}
	for _, d := range details {
		if d != "" {
			lines = append(lines, d)
		}
	}
	return cardStyle().Render(strings.Join(lines, "\n"))
}
