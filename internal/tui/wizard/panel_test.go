package wizard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/order"
)

type recorder struct {
	mu     sync.Mutex
	events []events.TicketEvent
}

func (r *recorder) TicketIssued(_ context.Context, e events.TicketEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

var (
	keySpace    = tea.KeyPressMsg{Code: tea.KeySpace}
	keyEnter    = tea.KeyPressMsg{Code: tea.KeyEnter}
	keyDown     = tea.KeyPressMsg{Code: tea.KeyDown}
	keyUp       = tea.KeyPressMsg{Code: tea.KeyUp}
	keyRight    = tea.KeyPressMsg{Code: tea.KeyRight}
	keyLeft     = tea.KeyPressMsg{Code: tea.KeyLeft}
	keyShiftTab = tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	keyCopy     = tea.KeyPressMsg{Code: 'c', Text: "c"}
)

func newTestPanel(t *testing.T) (*Panel, *recorder) {
	t.Helper()
	rec := &recorder{}
	s := order.Open(order.KindServer, order.NewGenerator())
	return NewPanel(s, Options{Announcer: rec, DiscordURL: "https://discord.gg/test"}), rec
}

func press(p *Panel, keys ...tea.KeyPressMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = p.Update(k)
	}
	return cmd
}

func TestPanel_TypeStep(t *testing.T) {
	p, _ := newTestPanel(t)

	// Nothing selected yet, so Next is refused.
	press(p, keyRight)
	assert.Equal(t, order.StepType, p.Session().Step())

	press(p, keySpace)
	assert.Equal(t, order.Community, p.Session().Config().ServerType)
	assert.Equal(t, order.StepType, p.Session().Step())

	press(p, keyDown, keyDown, keyDown)
	assert.Equal(t, 2, p.Cursor(), "cursor stops on the last type")
	press(p, keyUp)
	assert.Equal(t, 1, p.Cursor())

	press(p, keyEnter)
	assert.Equal(t, order.Gaming, p.Session().Config().ServerType)
	assert.Equal(t, order.StepBot, p.Session().Step())
	assert.Equal(t, 0, p.Cursor(), "cursor resets on a new step")
}

func TestPanel_BotStepShowsHostingOnlyWithBot(t *testing.T) {
	p, _ := newTestPanel(t)
	press(p, keyEnter)
	require.Equal(t, order.StepBot, p.Session().Step())

	assert.NotContains(t, p.View(), order.BotManaged.Label())
	press(p, keyDown)
	assert.Equal(t, 0, p.Cursor())

	press(p, keySpace)
	assert.True(t, p.Session().Config().WithBot)
	assert.Contains(t, p.View(), order.BotManaged.Label())

	press(p, keyDown, keySpace)
	assert.True(t, p.Session().Config().BotManaged)

	// Dropping the bot drops hosting and pulls the cursor back.
	press(p, keyUp, keySpace, keyDown)
	cfg := p.Session().Config()
	assert.False(t, cfg.WithBot)
	assert.False(t, cfg.BotManaged)
	assert.Equal(t, 0, p.Cursor())
}

func TestPanel_ClampsCursorWhenRowDisappears(t *testing.T) {
	p, _ := newTestPanel(t)
	press(p, keyEnter, keySpace, keyDown)
	require.Equal(t, 1, p.Cursor())

	p.Session().Toggle(order.WithBot)
	press(p, keySpace)
	assert.False(t, p.Session().Config().WithBot, "hidden row cannot be toggled")
}

func TestPanel_FullFlowIssuesTicket(t *testing.T) {
	p, rec := newTestPanel(t)

	press(p, keyDown, keyEnter)           // gaming
	press(p, keySpace, keyEnter)          // bot
	press(p, keyDown, keySpace, keyEnter) // promo
	require.Equal(t, order.StepSummary, p.Session().Step())

	view := p.View()
	assert.Contains(t, view, "Résumé de votre commande")
	assert.Contains(t, view, "Total: 18 €")
	assert.Contains(t, view, "Générer le ticket (18 €)")

	cmd := press(p, keyEnter)
	require.NotNil(t, cmd)
	assert.True(t, p.Session().IsComplete())

	msg, ok := cmd().(TicketIssuedMsg)
	require.True(t, ok)
	assert.Equal(t, order.Amount(18), msg.Total)
	assert.True(t, strings.HasPrefix(msg.Ticket.Reference, "SRV-"))

	require.Len(t, rec.events, 1)
	assert.Equal(t, msg.Ticket.Reference, rec.events[0].Reference)
	assert.Equal(t, "gaming", rec.events[0].ServerType)

	view = p.View()
	assert.Contains(t, view, "Ticket généré!")
	assert.Contains(t, view, msg.Ticket.Reference)
}

func TestPanel_CompletedIsFrozen(t *testing.T) {
	p, rec := newTestPanel(t)
	press(p, keyEnter, keyEnter, keyEnter)
	cmd := press(p, keyEnter)
	require.NotNil(t, cmd)
	cmd()
	before := p.Session().Snapshot()

	press(p, keyLeft, keyShiftTab, keySpace, keyRight, keyDown)
	assert.Equal(t, before, p.Session().Snapshot())

	cmd = press(p, keyEnter)
	require.NotNil(t, cmd)
	assert.Equal(t, CloseRequestedMsg{}, cmd())
	assert.Len(t, rec.events, 1, "no second ticket")
}

func TestPanel_BackKeys(t *testing.T) {
	p, _ := newTestPanel(t)
	press(p, keyEnter, keyEnter)
	require.Equal(t, order.StepServices, p.Session().Step())

	press(p, keyLeft)
	assert.Equal(t, order.StepBot, p.Session().Step())
	press(p, keyShiftTab)
	assert.Equal(t, order.StepType, p.Session().Step())
	press(p, keyLeft)
	assert.Equal(t, order.StepType, p.Session().Step())
}

func TestPanel_Copy(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	t.Cleanup(func() { writeClipboard = orig })

	p, _ := newTestPanel(t)
	assert.Nil(t, press(p, keyCopy), "nothing to copy before the ticket")

	press(p, keyEnter, keyEnter, keyEnter)
	press(p, keyEnter)()
	ticket, ok := p.Session().Ticket()
	require.True(t, ok)

	cmd := press(p, keyCopy)
	require.NotNil(t, cmd)
	p.Update(cmd())
	assert.Equal(t, ticket.Reference, copied)
	assert.Equal(t, "Copié!", p.Toast().Message())
}

func TestPanel_CopyFailure(t *testing.T) {
	orig := writeClipboard
	writeClipboard = func(string) error { return errors.New("no clipboard") }
	t.Cleanup(func() { writeClipboard = orig })

	p, _ := newTestPanel(t)
	press(p, keyEnter, keyEnter, keyEnter)
	press(p, keyEnter)()

	p.Update(press(p, keyCopy)())
	assert.Equal(t, "Copie impossible", p.Toast().Message())
}

func TestPanel_Reset(t *testing.T) {
	p, _ := newTestPanel(t)
	press(p, keyDown, keyEnter, keySpace)
	p.Toast().Show("x")

	p.Reset()
	assert.Equal(t, order.StepType, p.Session().Step())
	assert.Equal(t, order.Config{}, p.Session().Config())
	assert.Equal(t, 0, p.Cursor())
	assert.False(t, p.Toast().IsVisible())
}

func TestPanel_ViewShowsProgress(t *testing.T) {
	p, _ := newTestPanel(t)
	assert.Contains(t, p.View(), "Étape 1/4")
	assert.Contains(t, p.View(), "Type de serveur")

	press(p, keyEnter)
	assert.Contains(t, p.View(), "Étape 2/4")
	assert.Contains(t, p.View(), "Options du bot")
}
