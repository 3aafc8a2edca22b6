package wizard

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/tui/theme"
)

// DefaultToastDuration is used when a Toast is created with no duration.
const DefaultToastDuration = 2 * time.Second

// ToastDismissMsg is sent when a toast should be dismissed. Only the
// latest Show is dismissed; ticks from earlier ones are ignored.
type ToastDismissMsg struct {
	ID int
}

// Toast is a one-line transient notice.
type Toast struct {
	message  string
	visible  bool
	isError  bool
	duration time.Duration
	id       int
}

// NewToast creates a toast that hides itself after d.
func NewToast(d time.Duration) *Toast {
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &Toast{duration: d}
}

// Show displays msg and returns the command that dismisses it.
func (t *Toast) Show(msg string) tea.Cmd {
	return t.show(msg, false)
}

// ShowError displays msg in the error color.
func (t *Toast) ShowError(msg string) tea.Cmd {
	return t.show(msg, true)
}

func (t *Toast) show(msg string, isError bool) tea.Cmd {
	t.id++
	t.message = msg
	t.visible = true
	t.isError = isError

	id := t.id
	return tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastDismissMsg{ID: id}
	})
}

// Acknowledge shows the outcome of a clipboard copy.
func (t *Toast) Acknowledge(msg CopiedMsg) tea.Cmd {
	if msg.Err != nil {
		logger.Warn("copy to clipboard failed: %v", msg.Err)
		return t.ShowError("Copie impossible")
	}
	return t.Show("Copié!")
}

// Update handles dismiss ticks.
func (t *Toast) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(ToastDismissMsg); ok && m.ID == t.id {
		t.visible = false
		t.message = ""
	}
	return nil
}

// View renders the toast right-aligned in width, or "" when hidden.
func (t *Toast) View(width int) string {
	if !t.visible || t.message == "" {
		return ""
	}

	s := theme.Current().S()
	style := s.Toast
	if t.isError {
		style = style.Background(theme.HexToColor(theme.Current().Error))
	}
	content := style.Render(t.message)
	if lipgloss.Width(content) > width && width > 0 {
		content = style.Width(width).Render(t.message)
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(content)
}

// IsVisible returns whether the toast is currently visible.
func (t *Toast) IsVisible() bool {
	return t.visible
}

// Message returns the current toast message (empty if not visible).
func (t *Toast) Message() string {
	if !t.visible {
		return ""
	}
	return t.message
}

// Duration returns how long a message stays visible.
func (t *Toast) Duration() time.Duration {
	return t.duration
}
