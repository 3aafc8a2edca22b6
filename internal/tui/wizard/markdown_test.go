package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/takayama/storefront/internal/order"
)

func TestNextSteps(t *testing.T) {
	server := NextSteps(order.KindServer, "https://discord.gg/x")
	assert.Contains(t, server, "code de commande")
	assert.Contains(t, server, "(https://discord.gg/x)")

	purchase := NextSteps(order.KindOrder, "")
	assert.Contains(t, purchase, "numéro de commande")
	assert.NotContains(t, purchase, "Discord")
}

func TestRenderMarkdown(t *testing.T) {
	out := RenderMarkdown("plain words", 10)
	assert.Contains(t, out, "plain")
	assert.NotEmpty(t, RenderMarkdown(NextSteps(order.KindServer, ""), 200))
}
