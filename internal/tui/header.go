package tui

import (
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/tui/theme"
)

// ShopName is shown in the header.
const ShopName = "Takayama Shop"

// Header renders the top bar with the shop name and the login link.
type Header struct {
	loginURL   string
	discordURL string
}

// NewHeader creates a new Header component.
func NewHeader(loginURL, discordURL string) *Header {
	return &Header{loginURL: loginURL, discordURL: discordURL}
}

// Draw renders the header to the screen at the given area.
func (h *Header) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() < 1 {
		return
	}
	s := theme.Current().S()

	left := s.HeaderTitle.Render(ShopName) + s.HeaderSubtitle.Render("  Offres et services numériques exclusifs")
	right := ""
	if h.discordURL != "" {
		right = s.HeaderSubtitle.Render("Discord " + h.discordURL)
	}
	lines := []string{h.spread(left, right, area.Dx())}
	if area.Dy() > 1 && h.loginURL != "" {
		lines = append(lines, s.Muted.Render("Connexion : "+h.loginURL))
	}

	DrawStyled(scr, area, s.Bar, lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// spread puts right at the end of the line when it fits.
func (h *Header) spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2 // bar padding
	if right == "" || gap < 1 {
		return left
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
