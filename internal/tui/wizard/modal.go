package wizard

import (
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/tui/theme"
)

// RenderModal wraps content in the modal container with a title line.
func RenderModal(title, content string, width int) string {
	s := theme.Current().S()
	body := content
	if title != "" {
		body = s.ModalTitle.Render(title) + "\n\n" + content
	}
	return s.ModalContainer.Width(width).Render(body)
}

// DrawCentered draws rendered content in the middle of area.
func DrawCentered(scr uv.Screen, area uv.Rectangle, content string) {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	x := max((area.Dx()-w)/2, 0)
	y := max((area.Dy()-h)/2, 0)

	uv.NewStyledString(content).Draw(scr, uv.Rectangle{
		Min: uv.Position{X: area.Min.X + x, Y: area.Min.Y + y},
		Max: uv.Position{X: area.Min.X + x + w, Y: area.Min.Y + y + h},
	})
}

// ModalWidth fits a preferred modal width inside a terminal width.
func ModalWidth(preferred, termWidth int) int {
	if termWidth > 0 && preferred > termWidth-4 {
		preferred = termWidth - 4
	}
	return max(preferred, 30)
}
