package wizard

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"

	"github.com/takayama/storefront/internal/order"
)

// NextSteps is the markdown shown under an issued ticket.
func NextSteps(kind order.Kind, discordURL string) string {
	var b strings.Builder
	b.WriteString("### Prochaines étapes\n\n")
	b.WriteString("1. Rejoignez le serveur communautaire\n")
	if kind == order.KindServer {
		b.WriteString("2. Créez un ticket avec votre code de commande\n")
		b.WriteString("3. Nos équipes traiteront votre demande de serveur\n")
	} else {
		b.WriteString("2. Créez un ticket avec votre numéro de commande\n")
		b.WriteString("3. Nos équipes traiteront votre demande\n")
	}
	if discordURL != "" {
		fmt.Fprintf(&b, "\n[Rejoindre le serveur Discord](%s)\n", discordURL)
	}
	return b.String()
}

// RenderMarkdown renders markdown with glamour, falling back to the raw
// text when rendering fails.
func RenderMarkdown(content string, width int) string {
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}

	rendered, err := r.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}
