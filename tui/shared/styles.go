package shared

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/spotlight/config"
)

var (
	// Screen chrome
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	TabStyle       lipgloss.Style
	TabActiveStyle lipgloss.Style
	CardStyle      lipgloss.Style
	CardTitleStyle lipgloss.Style
	DimStyle       lipgloss.Style
	MutedStyle     lipgloss.Style
	AccentStyle    lipgloss.Style
	BadgeStyle     lipgloss.Style
	ButtonStyle    lipgloss.Style

	// Status bar
	StatusBarStyle lipgloss.Style

	// Help styles
	HelpKeyStyle     lipgloss.Style
	HelpDescStyle    lipgloss.Style
	HelpOverlayStyle lipgloss.Style

	// Tour overlay
	BackdropStyle       lipgloss.Style
	RingStyle           lipgloss.Style
	CalloutStyle        lipgloss.Style
	CalloutTitleStyle   lipgloss.Style
	CalloutBodyStyle    lipgloss.Style
	CalloutHintStyle    lipgloss.Style
	CalloutCounterStyle lipgloss.Style
	CalloutButtonStyle  lipgloss.Style
	CalloutPrimaryStyle lipgloss.Style

	// Error
	ErrorStyle lipgloss.Style

	// Feedback
	FeedbackSuccessStyle lipgloss.Style
	FeedbackWarningStyle lipgloss.Style
)

func init() {
	InitStyles(config.DefaultTheme())
}

// InitStyles configures all styles from a resolved theme.
func InitStyles(theme config.ThemeConfig) {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.FG))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	TabStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim)).
		Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.BG)).
		Background(lipgloss.Color(theme.Accent)).
		Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(0, 1)

	CardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	DimStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	MutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted))

	AccentStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent2))

	BadgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackSuccessFG)).
		Background(lipgloss.Color(theme.FeedbackSuccessBG)).
		Padding(0, 1)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.BG)).
		Background(lipgloss.Color(theme.Accent2)).
		Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.StatusBarFG)).
		Background(lipgloss.Color(theme.StatusBarBG)).
		Padding(0, 1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent))

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Muted)).
		Padding(1, 2)

	BackdropStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.BackdropFG))

	RingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Ring))

	CalloutStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.CalloutBorder)).
		Background(lipgloss.Color(theme.CalloutBG)).
		Foreground(lipgloss.Color(theme.CalloutFG)).
		Padding(0, 1)

	CalloutTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	CalloutBodyStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.CalloutFG))

	CalloutHintStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(lipgloss.Color(theme.ActionHintFG))

	CalloutCounterStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	CalloutButtonStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Dim))

	CalloutPrimaryStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.BG)).
		Background(lipgloss.Color(theme.Accent))

	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Error))

	FeedbackSuccessStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackSuccessFG)).
		Background(lipgloss.Color(theme.FeedbackSuccessBG)).
		Padding(0, 1)

	FeedbackWarningStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FeedbackWarningFG)).
		Background(lipgloss.Color(theme.FeedbackWarningBG)).
		Padding(0, 1)
}
