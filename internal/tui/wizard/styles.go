package wizard

import (
	"strings"

	"github.com/takayama/storefront/internal/tui/theme"
)

// RenderHintBar renders key-description pairs.
// Example: RenderHintBar("↑↓", "naviguer", "esc", "fermer")
// Returns: "↑↓ naviguer • esc fermer"
func RenderHintBar(pairs ...string) string {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return ""
	}

	s := theme.Current().S()
	sep := " " + s.HintSeparator.Render("•") + " "

	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		parts = append(parts, s.HintKey.Render(pairs[i])+" "+s.HintDesc.Render(pairs[i+1]))
	}
	return strings.Join(parts, sep)
}
