package tui

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/tui/theme"
	"github.com/takayama/storefront/internal/tui/wizard"
)

// Footer renders the bottom bar with the hints for the current screen.
type Footer struct {
	hints []string
}

// NewFooter creates a new Footer component.
func NewFooter() *Footer {
	return &Footer{}
}

// SetHints replaces the key/description pairs.
func (f *Footer) SetHints(pairs ...string) {
	f.hints = pairs
}

// Draw renders the footer to the screen at the given area.
func (f *Footer) Draw(scr uv.Screen, area uv.Rectangle) {
	if area.Dy() < 1 {
		return
	}
	DrawStyled(scr, area, theme.Current().S().Bar, wizard.RenderHintBar(f.hints...))
}
