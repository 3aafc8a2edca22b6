package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/tui/theme"
)

type listKeys struct {
	Up, Down, Home, End key.Binding
}

var catalogKeys = listKeys{
	Up:   key.NewBinding(key.WithKeys("up", "k")),
	Down: key.NewBinding(key.WithKeys("down", "j")),
	Home: key.NewBinding(key.WithKeys("home", "g")),
	End:  key.NewBinding(key.WithKeys("end", "G")),
}

// CatalogList shows the products grouped by category with one selected.
type CatalogList struct {
	sections []catalog.Section
	products []catalog.Product // display order

	cursor  int
	offset  int // first visible line
	width   int
	height  int
	compact bool
}

// NewCatalogList builds the list for a catalog.
func NewCatalogList(cat *catalog.Catalog) *CatalogList {
	l := &CatalogList{sections: cat.ByCategory(), width: 80, height: 20}
	for _, section := range l.sections {
		l.products = append(l.products, section.Products...)
	}
	return l
}

// SetSize updates the viewport. Compact mode drops descriptions.
func (l *CatalogList) SetSize(width, height int, compact bool) {
	l.width, l.height, l.compact = width, height, compact
	l.scrollToCursor()
}

// Cursor returns the index of the selected product in display order.
func (l *CatalogList) Cursor() int { return l.cursor }

// Selected returns the product under the cursor.
func (l *CatalogList) Selected() (catalog.Product, bool) {
	if l.cursor < 0 || l.cursor >= len(l.products) {
		return catalog.Product{}, false
	}
	return l.products[l.cursor], true
}

// Update moves the selection.
func (l *CatalogList) Update(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyPressMsg)
	if !ok || len(l.products) == 0 {
		return nil
	}
	switch {
	case key.Matches(k, catalogKeys.Up):
		l.cursor = max(l.cursor-1, 0)
	case key.Matches(k, catalogKeys.Down):
		l.cursor = min(l.cursor+1, len(l.products)-1)
	case key.Matches(k, catalogKeys.Home):
		l.cursor = 0
	case key.Matches(k, catalogKeys.End):
		l.cursor = len(l.products) - 1
	default:
		return nil
	}
	l.scrollToCursor()
	return nil
}

// render returns every line and the line span of the selected product.
// The span includes the section title for the first product of a section.
func (l *CatalogList) render() (lines []string, selStart, selEnd int) {
	s := theme.Current().S()
	idx := 0
	for i, section := range l.sections {
		if i > 0 {
			lines = append(lines, "")
		}
		title := len(lines)
		lines = append(lines, s.SectionTitle.Render(section.Category.Title()))
		for j, p := range section.Products {
			if idx == l.cursor {
				selStart = len(lines)
				if j == 0 {
					selStart = title
				}
			}
			lines = append(lines, l.renderProduct(p, idx == l.cursor)...)
			if idx == l.cursor {
				selEnd = len(lines) - 1
			}
			idx++
		}
	}
	return lines, selStart, selEnd
}

func (l *CatalogList) renderProduct(p catalog.Product, selected bool) []string {
	s := theme.Current().S()

	marker, title := "  ", s.Text.Render(p.Title)
	if selected {
		marker, title = s.Cursor.Render("› "), s.Cursor.Render(p.Title)
	}

	line := marker + title + "  " + s.Price.Render(p.Price.Label())
	if p.OriginalPrice != nil {
		line += " " + s.OldPrice.Render(p.OriginalPrice.Label())
	}
	if p.Badge != "" {
		line += " " + s.Badge.Render(p.Badge)
	}

	out := []string{line}
	if !l.compact && p.Description != "" {
		desc := lipgloss.NewStyle().MaxWidth(max(l.width-4, 1)).Render(p.Description)
		out = append(out, "    "+s.Muted.Render(desc))
	}
	return out
}

func (l *CatalogList) scrollToCursor() {
	lines, start, end := l.render()
	if l.height <= 0 {
		return
	}
	if start < l.offset {
		l.offset = start
	}
	if end >= l.offset+l.height {
		l.offset = end - l.height + 1
	}
	l.offset = max(min(l.offset, len(lines)-l.height), 0)
}

// View renders the visible lines.
func (l *CatalogList) View() string {
	lines, _, _ := l.render()
	if l.height > 0 && len(lines) > l.height {
		end := min(l.offset+l.height, len(lines))
		lines = lines[l.offset:end]
	}
	return strings.Join(lines, "\n")
}

// Draw renders the list into area.
func (l *CatalogList) Draw(scr uv.Screen, area uv.Rectangle) {
	DrawText(scr, area, l.View())
}
