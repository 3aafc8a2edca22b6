// Package tui is the storefront terminal interface: the catalog screen and
// the wizard and checkout modals drawn over it.
package tui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
	"github.com/takayama/storefront/internal/tui/theme"
	"github.com/takayama/storefront/internal/tui/wizard"
)

const wizardModalWidth = 64

// Options configures the storefront App.
type Options struct {
	Catalog    *catalog.Catalog
	Generator  *order.Generator
	Announcer  events.Announcer
	DiscordURL string
	LoginURL   string
	CopyAck    time.Duration
}

// App is the main storefront model.
type App struct {
	opts Options

	header   *Header
	footer   *Footer
	list     *CatalogList
	panel    *wizard.Panel // nil unless the server wizard is open
	checkout *CheckoutModal

	layout   Layout
	width    int
	height   int
	quitting bool
	issued   []order.Ticket
}

// NewApp creates the storefront. Nil generator and announcer get defaults.
func NewApp(opts Options) *App {
	if opts.Catalog == nil {
		opts.Catalog = catalog.Default()
	}
	if opts.Generator == nil {
		opts.Generator = order.NewGenerator()
	}
	if opts.Announcer == nil {
		opts.Announcer = events.Nop{}
	}
	return &App{
		opts:     opts,
		header:   NewHeader(opts.LoginURL, opts.DiscordURL),
		footer:   NewFooter(),
		list:     NewCatalogList(opts.Catalog),
		checkout: NewCheckoutModal(opts.Generator, opts.Announcer, opts.DiscordURL, opts.CopyAck),
		layout:   CalculateLayout(80, 24),
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.layout = CalculateLayout(a.width, a.height)
		a.list.SetSize(a.layout.Main.Dx(), a.layout.Main.Dy(), a.layout.Compact)
		a.checkout.SetWidth(a.width)
		if a.panel != nil {
			a.panel.SetWidth(wizard.ModalWidth(wizardModalWidth, a.width) - 6)
		}
		return a, nil

	case tea.KeyPressMsg:
		return a, a.handleKeyPress(msg)

	case wizard.CloseRequestedMsg:
		a.closeModals()
		return a, nil

	case wizard.TicketIssuedMsg:
		a.issued = append(a.issued, msg.Ticket)
		logger.Info("tui: ticket %s issued (%d)", msg.Ticket.Reference, msg.Total)
		return a, nil
	}

	// Remaining messages (toast ticks, clipboard results) go to the open modal.
	switch {
	case a.panel != nil:
		return a, a.panel.Update(msg)
	case a.checkout.IsVisible():
		return a, a.checkout.Update(msg)
	}
	return a, nil
}

func (a *App) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		a.quitting = true
		return tea.Quit
	case "esc":
		if a.modalOpen() {
			a.closeModals()
			return nil
		}
	}

	switch {
	case a.panel != nil:
		return a.panel.Update(msg)
	case a.checkout.IsVisible():
		return a.checkout.Update(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return tea.Quit
	case "enter":
		return a.openSelected()
	}
	return a.list.Update(msg)
}

// openSelected opens the wizard for the server product and the checkout
// for everything else.
func (a *App) openSelected() tea.Cmd {
	p, ok := a.list.Selected()
	if !ok {
		return nil
	}
	if p.ConfiguresServer() {
		a.panel = wizard.NewPanel(order.Open(order.KindServer, a.opts.Generator), wizard.Options{
			Announcer:  a.opts.Announcer,
			DiscordURL: a.opts.DiscordURL,
			CopyAck:    a.opts.CopyAck,
		})
		a.panel.SetWidth(wizard.ModalWidth(wizardModalWidth, a.width) - 6)
		logger.Debug("tui: opened server wizard")
		return nil
	}
	logger.Debug("tui: opened checkout for %s", p.ID)
	return a.checkout.Open(p)
}

func (a *App) modalOpen() bool {
	return a.panel != nil || a.checkout.IsVisible()
}

// closeModals dismisses any open modal and discards its state.
func (a *App) closeModals() {
	if a.panel != nil {
		a.panel.Reset()
		a.panel = nil
	}
	a.checkout.Close()
}

// Panel returns the open wizard panel, or nil.
func (a *App) Panel() *wizard.Panel { return a.panel }

// Checkout returns the checkout modal.
func (a *App) Checkout() *CheckoutModal { return a.checkout }

// List returns the catalog list.
func (a *App) List() *CatalogList { return a.list }

// Issued returns the tickets generated during this run.
func (a *App) Issued() []order.Ticket { return a.issued }

// View renders the current view.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if a.quitting {
		// Exit alt screen for proper terminal restoration
		view.AltScreen = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	canvas := uv.NewScreenBuffer(a.width, a.height)
	a.Draw(canvas, canvas.Bounds())

	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = theme.HexToColor(theme.Current().BgCrust)
	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) {
	a.header.Draw(scr, a.layout.Header)
	a.list.Draw(scr, a.layout.Main)

	if a.modalOpen() {
		a.footer.SetHints("esc", "fermer", "ctrl+c", "quitter")
	} else {
		a.footer.SetHints("↑↓", "naviguer", "entrée", "choisir", "q", "quitter")
	}
	a.footer.Draw(scr, a.layout.Footer)

	// Draw overlays
	if a.panel != nil {
		modal := wizard.RenderModal(wizard.Title, a.panel.View(), wizard.ModalWidth(wizardModalWidth, a.width))
		wizard.DrawCentered(scr, area, modal)
	}
	a.checkout.Draw(scr, area)
}

// Run starts the storefront and blocks until the user quits. It returns
// the tickets issued during the run.
func Run(opts Options) ([]order.Ticket, error) {
	app := NewApp(opts)

	final, err := tea.NewProgram(app).Run()
	if err != nil {
		return nil, fmt.Errorf("storefront failed: %w", err)
	}
	if a, ok := final.(*App); ok {
		return a.Issued(), nil
	}
	return app.Issued(), nil
}
