package theme

import "charm.land/lipgloss/v2"

// Styles contains all pre-built lipgloss styles for the TUI.
type Styles struct {
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	SectionTitle   lipgloss.Style
	Bar            lipgloss.Style

	ModalContainer lipgloss.Style
	ModalTitle     lipgloss.Style

	Text     lipgloss.Style
	Muted    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style

	Price    lipgloss.Style
	OldPrice lipgloss.Style
	Badge    lipgloss.Style

	Reference lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style

	Toast lipgloss.Style

	HintKey       lipgloss.Style
	HintDesc      lipgloss.Style
	HintSeparator lipgloss.Style

	ButtonNormal   lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonFocused  lipgloss.Style
}

// buildStyles constructs the pre-built styles from theme colors.
func (t *Theme) buildStyles() *Styles {
	c := lipgloss.Color
	button := lipgloss.NewStyle().Padding(0, 2).MarginLeft(1).MarginRight(1)

	return &Styles{
		HeaderTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),
		HeaderSubtitle: lipgloss.NewStyle().
			Foreground(c(t.FgMuted)),
		SectionTitle: lipgloss.NewStyle().
			Foreground(c(t.Secondary)).
			Bold(true),
		Bar: lipgloss.NewStyle().
			Background(c(t.BgMantle)).
			Padding(0, 1),

		ModalContainer: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(t.Tertiary)).
			Background(c(t.BgBase)).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(c(t.Primary)).
			Bold(true),

		Text:     lipgloss.NewStyle().Foreground(c(t.FgBase)),
		Muted:    lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		Cursor:   lipgloss.NewStyle().Foreground(c(t.Primary)).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),

		Price:    lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
		OldPrice: lipgloss.NewStyle().Foreground(c(t.BgOverlay)).Strikethrough(true),
		Badge: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Warning)).
			Padding(0, 1),

		Reference: lipgloss.NewStyle().
			Foreground(c(t.FgBright)).
			Background(c(t.BgSurface0)).
			Bold(true).
			Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(c(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(c(t.Warning)),
		Error:   lipgloss.NewStyle().Foreground(c(t.Error)),

		Toast: lipgloss.NewStyle().
			Foreground(c(t.BgBase)).
			Background(c(t.Success)).
			Padding(0, 1).
			Bold(true),

		HintKey:       lipgloss.NewStyle().Foreground(c(t.FgSubtle)).Bold(true),
		HintDesc:      lipgloss.NewStyle().Foreground(c(t.FgMuted)),
		HintSeparator: lipgloss.NewStyle().Foreground(c(t.BgSurface2)),

		ButtonNormal: button.
			Foreground(c(t.FgBase)).
			Background(c(t.BgSurface0)),
		ButtonDisabled: button.
			Foreground(c(t.BgOverlay)).
			Background(c(t.BgMantle)),
		ButtonFocused: button.
			Foreground(c(t.BgBase)).
			Background(c(t.Tertiary)).
			Bold(true),
	}
}
