package tui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/catalog"
)

func serverIndex(t *testing.T, l *CatalogList) int {
	t.Helper()
	for i, p := range l.products {
		if p.ConfiguresServer() {
			return i
		}
	}
	t.Fatal("no server product in catalog")
	return -1
}

func TestCatalogList_Navigation(t *testing.T) {
	l := NewCatalogList(catalog.Default())
	require.Len(t, l.products, 12)

	p, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, catalog.Nitro, p.Category)

	l.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.Equal(t, 0, l.Cursor())

	l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, l.Cursor())

	l.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	assert.Equal(t, 11, l.Cursor())
	p, _ = l.Selected()
	assert.Equal(t, catalog.Boost, p.Category, "boost is listed last")

	l.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 11, l.Cursor())

	l.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	assert.Equal(t, 0, l.Cursor())
}

func TestCatalogList_ServerBeforeBoost(t *testing.T) {
	l := NewCatalogList(catalog.Default())
	idx := serverIndex(t, l)
	for i := idx + 1; i < len(l.products); i++ {
		assert.Equal(t, catalog.Boost, l.products[i].Category)
	}
}

func TestCatalogList_ScrollsToCursor(t *testing.T) {
	l := NewCatalogList(catalog.Default())
	l.SetSize(80, 6, false)

	assert.LessOrEqual(t, len(strings.Split(l.View(), "\n")), 6)

	l.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	last := l.products[len(l.products)-1]
	assert.Contains(t, l.View(), last.Title)
	assert.Positive(t, l.offset)

	l.Update(tea.KeyPressMsg{Code: tea.KeyHome})
	assert.Equal(t, 0, l.offset)
	assert.Contains(t, l.View(), catalog.Nitro.Title())
}

func TestCatalogList_CompactHidesDescriptions(t *testing.T) {
	l := NewCatalogList(catalog.Default())
	first := l.products[0]
	require.NotEmpty(t, first.Description)

	l.SetSize(80, 100, true)
	assert.NotContains(t, l.View(), first.Description)

	l.SetSize(200, 100, false)
	assert.Contains(t, l.View(), first.Description)
}
