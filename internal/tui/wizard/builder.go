package wizard

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/theme"
)

// ErrCancelled is returned when the builder is closed without a ticket.
var ErrCancelled = errors.New("wizard cancelled")

const builderWidth = 64

// Builder is a standalone program around a single Panel.
type Builder struct {
	panel  *Panel
	width  int
	height int

	ticket   *order.Ticket
	quitting bool
}

// NewBuilder creates a builder for the session.
func NewBuilder(s *order.Session, opts Options) *Builder {
	return &Builder{panel: NewPanel(s, opts)}
}

// Ticket returns the issued ticket, if any.
func (b *Builder) Ticket() *order.Ticket { return b.ticket }

func (b *Builder) Init() tea.Cmd { return nil }

func (b *Builder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.panel.SetWidth(ModalWidth(builderWidth, b.width) - 6)
		return b, nil
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			b.quitting = true
			return b, tea.Quit
		}
	case TicketIssuedMsg:
		ticket := msg.Ticket
		b.ticket = &ticket
		return b, nil
	case CloseRequestedMsg:
		b.quitting = true
		return b, tea.Quit
	}
	return b, b.panel.Update(msg)
}

func (b *Builder) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if b.quitting {
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	width, height := b.width, b.height
	if width == 0 || height == 0 {
		width, height = 80, 30
	}

	canvas := uv.NewScreenBuffer(width, height)
	modal := RenderModal(Title, b.panel.View(), ModalWidth(builderWidth, width))
	DrawCentered(canvas, canvas.Bounds(), modal)

	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// RunBuilder runs the wizard full screen and returns the issued ticket.
// Closing before finalizing returns ErrCancelled.
func RunBuilder(s *order.Session, opts Options) (*order.Ticket, error) {
	b := NewBuilder(s, opts)

	final, err := tea.NewProgram(b).Run()
	if err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	bm, ok := final.(*Builder)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if bm.ticket == nil {
		return nil, ErrCancelled
	}
	return bm.ticket, nil
}
