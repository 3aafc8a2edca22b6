package wizard

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/theme"
)

// ButtonState represents the visual state of a button.
type ButtonState int

const (
	ButtonNormal   ButtonState = iota // Normal state (enabled)
	ButtonDisabled                    // Disabled state (grayed out)
	ButtonFocused                     // Focused/highlighted state
)

// Button represents a single button in the button bar.
type Button struct {
	Label string
	State ButtonState
}

// ButtonBar manages a set of buttons with consistent styling.
type ButtonBar struct {
	buttons []Button
	width   int
}

// NewButtonBar creates a new button bar with the given buttons.
func NewButtonBar(buttons []Button) *ButtonBar {
	return &ButtonBar{
		buttons: buttons,
		width:   60,
	}
}

// SetWidth updates the width for the button bar.
func (b *ButtonBar) SetWidth(width int) {
	b.width = width
}

// Buttons returns the buttons in display order.
func (b *ButtonBar) Buttons() []Button {
	return b.buttons
}

// Render renders the button bar centered in its width.
func (b *ButtonBar) Render() string {
	if len(b.buttons) == 0 {
		return ""
	}

	s := theme.Current().S()
	var rendered []string
	for _, btn := range b.buttons {
		switch btn.State {
		case ButtonDisabled:
			rendered = append(rendered, s.ButtonDisabled.Render(btn.Label))
		case ButtonFocused:
			rendered = append(rendered, s.ButtonFocused.Render(btn.Label))
		default:
			rendered = append(rendered, s.ButtonNormal.Render(btn.Label))
		}
	}

	return lipgloss.Place(b.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(rendered, ""))
}

func stateFor(enabled, focused bool) ButtonState {
	switch {
	case !enabled:
		return ButtonDisabled
	case focused:
		return ButtonFocused
	default:
		return ButtonNormal
	}
}

// SessionButtons builds the navigation buttons for a session, enabled on
// the same predicates the session uses to accept the intents. The summary
// step swaps Next for the ticket button showing the price.
func SessionButtons(s *order.Session) []Button {
	if s.IsComplete() {
		return []Button{{Label: "Fermer", State: ButtonFocused}}
	}

	buttons := []Button{{Label: "← Précédent", State: stateFor(s.CanRetreat(), false)}}
	if s.Step() == order.LastEditableStep {
		label := "Générer le ticket (" + catalog.FormatPrice(s.Total()) + ")"
		return append(buttons, Button{Label: label, State: stateFor(s.CanFinalize(), true)})
	}
	return append(buttons, Button{Label: "Suivant →", State: stateFor(s.CanAdvance(), true)})
}
