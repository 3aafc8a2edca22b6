package tui

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/checkout"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/theme"
	"github.com/takayama/storefront/internal/tui/wizard"
)

const checkoutWidth = 60

// CheckoutModal is the payment form shown for catalog products.
type CheckoutModal struct {
	flow       *checkout.Flow
	generator  *order.Generator
	announcer  events.Announcer
	discordURL string

	inputs []textinput.Model
	focus  int
	toast  *wizard.Toast

	width     int
	visible   bool
	nextSteps string
}

// NewCheckoutModal creates a hidden modal.
func NewCheckoutModal(generator *order.Generator, announcer events.Announcer, discordURL string, copyAck time.Duration) *CheckoutModal {
	if announcer == nil {
		announcer = events.Nop{}
	}
	m := &CheckoutModal{
		generator:  generator,
		announcer:  announcer,
		discordURL: discordURL,
		toast:      wizard.NewToast(copyAck),
		width:      checkoutWidth,
	}
	m.inputs = make([]textinput.Model, len(checkout.Fields))
	for i, f := range checkout.Fields {
		m.inputs[i] = newCheckoutInput(f)
	}
	return m
}

func newCheckoutInput(f checkout.Field) textinput.Model {
	t := theme.Current()
	ti := textinput.New()
	ti.Prompt = ""
	ti.SetStyles(textinput.Styles{
		Focused: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgBase)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
		},
		Blurred: textinput.StyleState{
			Text:        lipgloss.NewStyle().Foreground(lipgloss.Color(t.FgMuted)),
			Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color(t.BgOverlay)),
		},
		Cursor: textinput.CursorStyle{
			Color: lipgloss.Color(t.Primary),
			Shape: tea.CursorBar,
			Blink: true,
		},
	})

	switch f {
	case checkout.CardNumber:
		ti.Placeholder = "1234 5678 9012 3456"
		ti.CharLimit = 19
	case checkout.CardHolder:
		ti.Placeholder = "Jean Dupont"
	case checkout.Expiry:
		ti.Placeholder = "MM/YY"
		ti.CharLimit = 5
	case checkout.CVV:
		ti.Placeholder = "123"
		ti.CharLimit = 4
		ti.EchoMode = textinput.EchoPassword
	}
	return ti
}

// Open starts a checkout for the product.
func (m *CheckoutModal) Open(p catalog.Product) tea.Cmd {
	m.flow = checkout.NewFlow(p, m.generator)
	m.nextSteps = ""
	m.visible = true
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	return m.focusInput(0)
}

// Close hides the modal and discards the form.
func (m *CheckoutModal) Close() {
	if m.flow != nil {
		m.flow.Reset()
	}
	m.flow = nil
	m.visible = false
}

func (m *CheckoutModal) IsVisible() bool { return m.visible }

// Flow returns the running checkout, nil when closed.
func (m *CheckoutModal) Flow() *checkout.Flow { return m.flow }

// Toast returns the copy acknowledgment.
func (m *CheckoutModal) Toast() *wizard.Toast { return m.toast }

// SetWidth sets the modal width from the terminal width.
func (m *CheckoutModal) SetWidth(termWidth int) {
	m.width = wizard.ModalWidth(checkoutWidth, termWidth)
	for i := range m.inputs {
		m.inputs[i].SetWidth(m.width - 8)
	}
}

func (m *CheckoutModal) focusInput(i int) tea.Cmd {
	m.focus = i
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	return m.inputs[i].Focus()
}

// Update handles input while the modal is visible.
func (m *CheckoutModal) Update(msg tea.Msg) tea.Cmd {
	if !m.visible || m.flow == nil {
		return nil
	}

	switch msg := msg.(type) {
	case wizard.ToastDismissMsg:
		return m.toast.Update(msg)
	case wizard.CopiedMsg:
		return m.toast.Acknowledge(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return nil
}

func (m *CheckoutModal) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.flow.Step() {
	case checkout.StepDetails:
		switch msg.String() {
		case "tab", "down":
			return m.focusInput((m.focus + 1) % len(m.inputs))
		case "shift+tab", "up":
			return m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
		case "enter":
			m.flow.Attempt()
			return nil
		}
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		field := checkout.Fields[m.focus]
		if stored := m.flow.Set(field, m.inputs[m.focus].Value()); stored != m.inputs[m.focus].Value() {
			// Separators were inserted or dropped; keep typing at the end.
			m.inputs[m.focus].SetValue(stored)
			m.inputs[m.focus].CursorEnd()
		}
		return cmd

	case checkout.StepWarning:
		switch msg.String() {
		case "enter":
			return m.confirm()
		case "backspace", "left":
			m.flow.BackToDetails()
		}

	case checkout.StepError:
		switch msg.String() {
		case "enter", "backspace", "left":
			m.flow.BackToDetails()
		}

	case checkout.StepSuccess:
		switch msg.String() {
		case "c":
			if ticket, ok := m.flow.Ticket(); ok {
				return wizard.CopyReference(ticket.Reference)
			}
		case "enter":
			return func() tea.Msg { return wizard.CloseRequestedMsg{} }
		}
	}
	return nil
}

func (m *CheckoutModal) confirm() tea.Cmd {
	if !m.flow.Confirm() {
		return nil
	}
	ticket, _ := m.flow.Ticket()
	product := m.flow.Product()
	announcer := m.announcer

	return func() tea.Msg {
		announcer.TicketIssued(context.Background(), events.TicketEvent{
			Reference: ticket.Reference,
			Kind:      ticket.Kind,
			Total:     product.Price.Amount,
			Product:   product.ID,
			IssuedAt:  time.Now(),
		})
		return wizard.TicketIssuedMsg{Ticket: ticket, Total: product.Price.Amount}
	}
}

// View renders the modal content for the current step.
func (m *CheckoutModal) View() string {
	if !m.visible || m.flow == nil {
		return ""
	}
	s := theme.Current().S()
	p := m.flow.Product()
	inner := m.width - 6

	sections := []string{s.Muted.Render(p.Title + " - " + p.Price.Label()), ""}

	switch m.flow.Step() {
	case checkout.StepDetails:
		for i, f := range checkout.Fields {
			label := s.Muted.Render(f.Label())
			if i == m.focus {
				label = s.Cursor.Render(f.Label())
			}
			sections = append(sections, label, m.inputs[i].View(), "")
		}
		bar := wizard.NewButtonBar([]wizard.Button{{Label: "Payer " + p.Price.Label(), State: wizard.ButtonFocused}})
		bar.SetWidth(inner)
		sections = append(sections, bar.Render(), "",
			wizard.RenderHintBar("tab", "champ suivant", "entrée", "payer", "esc", "fermer"))

	case checkout.StepWarning:
		sections = append(sections,
			s.Warning.Render("⚠️ Site non validé"),
			lipgloss.NewStyle().Width(inner).Render(
				"Ce site n'est pas encore validé pour les paiements réels. Veuillez ne pas entrer vos vraies informations bancaires."),
			"",
		)
		bar := wizard.NewButtonBar([]wizard.Button{
			{Label: "Retour", State: wizard.ButtonNormal},
			{Label: "Continuer (Mode Test)", State: wizard.ButtonFocused},
		})
		bar.SetWidth(inner)
		sections = append(sections, bar.Render(), "",
			wizard.RenderHintBar("entrée", "continuer", "←", "retour", "esc", "fermer"))

	case checkout.StepError:
		sections = append(sections,
			s.Error.Render("Erreur de paiement"),
			s.Text.Render("Veuillez vérifier vos informations et réessayer."),
			"",
			wizard.RenderHintBar("entrée", "retour", "esc", "fermer"),
		)

	case checkout.StepSuccess:
		ticket, _ := m.flow.Ticket()
		if m.nextSteps == "" {
			m.nextSteps = wizard.RenderMarkdown(wizard.NextSteps(order.KindOrder, m.discordURL), inner)
		}
		sections = append(sections,
			s.Success.Render("✓ Commande confirmée!"),
			s.Text.Render("Votre commande a été prise en compte."),
			"",
			s.Muted.Render("Numéro de ticket"),
			s.Reference.Render(ticket.Reference),
			"",
			m.nextSteps,
			"",
			wizard.RenderHintBar("c", "copier", "entrée", "fermer"),
		)
		if t := m.toast.View(inner); t != "" {
			sections = append(sections, t)
		}
	}
	return strings.Join(sections, "\n")
}

// Draw renders the modal centered in area.
func (m *CheckoutModal) Draw(scr uv.Screen, area uv.Rectangle) {
	if !m.visible {
		return
	}
	wizard.DrawCentered(scr, area, wizard.RenderModal("Paiement", m.View(), m.width))
}
