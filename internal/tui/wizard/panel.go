// Package wizard renders an order.Session as an interactive panel. The same
// Panel backs the storefront modal and the standalone builder.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/theme"
)

// Title is the heading hosts show above the panel.
const Title = "Créez votre serveur personnalisé"

// TicketIssuedMsg is emitted once the session is finalized and announced.
type TicketIssuedMsg struct {
	Ticket order.Ticket
	Total  order.Amount
}

// CloseRequestedMsg asks the host to dismiss the panel.
type CloseRequestedMsg struct{}

// CopiedMsg reports the outcome of CopyReference.
type CopiedMsg struct {
	Err error
}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Options configures a Panel.
type Options struct {
	Announcer  events.Announcer
	DiscordURL string
	// CopyAck is how long the copy acknowledgment stays visible.
	CopyAck time.Duration
}

// Panel is the bubbletea component driving one session.
type Panel struct {
	session   *order.Session
	keys      KeyMap
	toast     *Toast
	announcer events.Announcer
	discord   string

	cursor int
	width  int

	nextSteps      string
	nextStepsWidth int
}

// NewPanel wraps a session.
func NewPanel(s *order.Session, opts Options) *Panel {
	if opts.Announcer == nil {
		opts.Announcer = events.Nop{}
	}
	return &Panel{
		session:   s,
		keys:      DefaultKeyMap(),
		toast:     NewToast(opts.CopyAck),
		announcer: opts.Announcer,
		discord:   opts.DiscordURL,
		width:     60,
	}
}

func (p *Panel) Session() *order.Session { return p.session }

func (p *Panel) Toast() *Toast { return p.toast }

func (p *Panel) Cursor() int { return p.cursor }

// SetWidth sets the content width.
func (p *Panel) SetWidth(width int) {
	if width < 30 {
		width = 30
	}
	p.width = width
}

// Reset discards the session state, as when the host closes the panel.
func (p *Panel) Reset() {
	p.session.Reset()
	p.cursor = 0
	p.toast.Update(ToastDismissMsg{ID: p.toast.id})
}

// rows returns how many selectable lines the current step has.
func (p *Panel) rows() int {
	switch p.session.Step() {
	case order.StepType:
		return len(order.ServerTypes)
	case order.StepBot, order.StepServices:
		return len(p.visibleFields())
	default:
		return 0
	}
}

// visibleFields lists the options shown on the current step. Bot hosting
// only appears once a bot is chosen.
func (p *Panel) visibleFields() []order.Field {
	cfg := p.session.Config()
	var out []order.Field
	for _, f := range order.Fields {
		if !p.session.Editable(f) {
			continue
		}
		if f == order.BotManaged && !cfg.WithBot {
			continue
		}
		out = append(out, f)
	}
	return out
}

func (p *Panel) clampCursor() {
	if n := p.rows(); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
}

// Update handles a message and returns the follow-up command.
func (p *Panel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	case ToastDismissMsg:
		return p.toast.Update(msg)
	case CopiedMsg:
		return p.toast.Acknowledge(msg)
	}
	return nil
}

func (p *Panel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	step := p.session.Step()

	switch {
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < p.rows()-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Toggle):
		p.activate()
	case key.Matches(msg, p.keys.Confirm):
		switch step {
		case order.StepType:
			p.activate()
			p.move(p.session.Advance)
		case order.StepBot, order.StepServices:
			p.move(p.session.Advance)
		case order.StepSummary:
			return p.finalize()
		case order.StepCompleted:
			return func() tea.Msg { return CloseRequestedMsg{} }
		}
	case key.Matches(msg, p.keys.Next):
		p.move(p.session.Advance)
	case key.Matches(msg, p.keys.Back):
		p.move(p.session.Retreat)
	case key.Matches(msg, p.keys.Copy):
		if ticket, ok := p.session.Ticket(); ok {
			return CopyReference(ticket.Reference)
		}
	}
	return nil
}

// activate selects or toggles the row under the cursor.
func (p *Panel) activate() {
	switch p.session.Step() {
	case order.StepType:
		if p.cursor < len(order.ServerTypes) {
			p.session.SelectType(order.ServerTypes[p.cursor])
		}
	case order.StepBot, order.StepServices:
		fields := p.visibleFields()
		if p.cursor < len(fields) && p.session.Editable(fields[p.cursor]) {
			p.session.Toggle(fields[p.cursor])
			p.clampCursor()
		}
	}
}

func (p *Panel) move(op func() bool) {
	if op() {
		p.cursor = 0
	}
}

func (p *Panel) finalize() tea.Cmd {
	if !p.session.Finalize() {
		return nil
	}
	ticket, _ := p.session.Ticket()
	cfg := p.session.Config()
	total := p.session.Total()
	announcer := p.announcer

	return func() tea.Msg {
		announcer.TicketIssued(context.Background(), events.TicketEvent{
			Reference:  ticket.Reference,
			Kind:       ticket.Kind,
			Total:      total,
			ServerType: cfg.ServerType.String(),
			IssuedAt:   time.Now(),
		})
		return TicketIssuedMsg{Ticket: ticket, Total: total}
	}
}

// CopyReference writes a ticket reference to the system clipboard.
func CopyReference(ref string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: writeClipboard(ref)}
	}
}

// View renders the panel content, without any container.
func (p *Panel) View() string {
	if p.session.IsComplete() {
		return p.viewCompleted()
	}

	s := theme.Current().S()
	sections := []string{
		p.viewProgress(),
		"",
		s.SectionTitle.Render(stepTitle(p.session.Step())),
		"",
		p.viewStep(),
		"",
	}

	bar := NewButtonBar(SessionButtons(p.session))
	bar.SetWidth(p.width)
	sections = append(sections, bar.Render(), "", p.viewHints())

	if t := p.toast.View(p.width); t != "" {
		sections = append(sections, t)
	}
	return strings.Join(sections, "\n")
}

func stepTitle(step order.Step) string {
	switch step {
	case order.StepType:
		return "Type de serveur"
	case order.StepBot:
		return "Options du bot"
	case order.StepServices:
		return "Services additionnels"
	case order.StepSummary:
		return "Résumé de votre commande"
	default:
		return ""
	}
}

func (p *Panel) viewProgress() string {
	th := theme.Current()
	s := th.S()
	steps := int(order.LastEditableStep)
	colors := theme.Gradient(th.Tertiary, th.Primary, steps)

	current := int(p.session.Step())
	dots := make([]string, 0, steps)
	for i := 1; i <= steps; i++ {
		switch {
		case i <= current:
			dots = append(dots, lipgloss.NewStyle().Foreground(theme.HexToColor(colors[i-1])).Render("●"))
		default:
			dots = append(dots, s.Muted.Render("○"))
		}
	}
	label := s.Muted.Render(fmt.Sprintf("Étape %d/%d", current, steps))
	return strings.Join(dots, " ") + "   " + label
}

func (p *Panel) viewStep() string {
	s := theme.Current().S()
	cfg := p.session.Config()

	var lines []string
	switch p.session.Step() {
	case order.StepType:
		for i, t := range order.ServerTypes {
			mark := "○"
			style := s.Text
			if cfg.ServerType == t {
				mark = "◉"
				style = s.Selected
			}
			lines = append(lines, p.row(i, style.Render(mark+" "+t.Label())))
		}
	case order.StepBot, order.StepServices:
		for i, f := range p.visibleFields() {
			box := "[ ]"
			style := s.Text
			if cfg.Get(f) {
				box = "[x]"
				style = s.Selected
			}
			label := fmt.Sprintf("%s %s (+%s)", box, f.Label(), catalog.FormatPrice(f.Fee()))
			lines = append(lines, p.row(i, style.Render(label)))
		}
	case order.StepSummary:
		lines = append(lines, p.viewSummary()...)
	}
	return strings.Join(lines, "\n")
}

func (p *Panel) row(i int, content string) string {
	if i == p.cursor {
		return theme.Current().S().Cursor.Render("› ") + content
	}
	return "  " + content
}

func yesNo(v bool) string {
	if v {
		return "Oui"
	}
	return "Non"
}

func (p *Panel) viewSummary() []string {
	s := theme.Current().S()
	cfg := p.session.Config()

	field := func(name, value string) string {
		return s.Muted.Render(name+": ") + s.Text.Render(value)
	}

	lines := []string{
		field("Type", cfg.ServerType.Label()),
		field("Bot", yesNo(cfg.WithBot)),
	}
	if cfg.WithBot {
		lines = append(lines, field("Bot managé", yesNo(cfg.BotManaged)))
	}
	lines = append(lines,
		field("Aide boost", yesNo(cfg.BoostHelp)),
		field("Promo", yesNo(cfg.Promo)),
		s.Muted.Render(strings.Repeat("─", min(p.width, 40))),
	)
	for _, line := range order.Breakdown(cfg) {
		lines = append(lines, s.Muted.Render(fmt.Sprintf("  %s  +%s", line.Field.Label(), catalog.FormatPrice(line.Amount))))
	}
	lines = append(lines, s.Price.Render("Total: "+catalog.FormatPrice(p.session.Total())))
	return lines
}

func (p *Panel) viewHints() string {
	var pairs []string
	add := func(b key.Binding) {
		k, d := hint(b)
		pairs = append(pairs, k, d)
	}

	switch p.session.Step() {
	case order.StepType:
		add(p.keys.Up)
		pairs = append(pairs, "entrée", "choisir")
	case order.StepBot, order.StepServices:
		add(p.keys.Up)
		add(p.keys.Toggle)
		add(p.keys.Back)
		add(p.keys.Next)
	case order.StepSummary:
		add(p.keys.Back)
		pairs = append(pairs, "entrée", "générer le ticket")
	}
	pairs = append(pairs, "esc", "fermer")
	return RenderHintBar(pairs...)
}

func (p *Panel) viewCompleted() string {
	s := theme.Current().S()
	ticket, _ := p.session.Ticket()

	if p.nextSteps == "" || p.nextStepsWidth != p.width {
		p.nextSteps = RenderMarkdown(NextSteps(p.session.Kind(), p.discord), p.width)
		p.nextStepsWidth = p.width
	}

	sections := []string{
		s.Success.Render("✓ Ticket généré!"),
		"",
		s.Muted.Render("Votre code de commande :"),
		s.Reference.Render(ticket.Reference),
		"",
		s.Price.Render("Total: " + catalog.FormatPrice(p.session.Total())),
		"",
		p.nextSteps,
		"",
		RenderHintBar("c", "copier le code", "entrée", "fermer"),
	}
	if t := p.toast.View(p.width); t != "" {
		sections = append(sections, t)
	}
	return strings.Join(sections, "\n")
}
