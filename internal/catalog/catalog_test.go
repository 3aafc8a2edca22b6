package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/order"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, 12, c.Len())

	sections := c.ByCategory()
	require.Len(t, sections, 4)
	var got []Category
	for _, s := range sections {
		got = append(got, s.Category)
	}
	assert.Equal(t, []Category{Nitro, Decoration, Server, Boost}, got)
	assert.Len(t, sections[0].Products, 4)
	assert.Len(t, sections[1].Products, 4)
	assert.Len(t, sections[2].Products, 1)
	assert.Len(t, sections[3].Products, 3)
}

func TestDefault_Products(t *testing.T) {
	c := Default()

	free, err := c.Get("nitro-1month")
	require.NoError(t, err)
	assert.True(t, free.Price.Free)
	assert.Equal(t, "Offre Exclusive", free.Badge)

	deco, err := c.Get("decorations")
	require.NoError(t, err)
	assert.Equal(t, order.Amount(2), deco.Price.Amount)
	require.NotNil(t, deco.OriginalPrice)
	assert.Equal(t, order.Amount(10), deco.OriginalPrice.Amount)

	server, err := c.Get("server-custom")
	require.NoError(t, err)
	assert.True(t, server.ConfiguresServer())
	assert.True(t, server.Price.From)
	assert.Equal(t, order.MinimumFee, server.Price.Amount)

	assert.False(t, deco.ConfiguresServer())
}

func TestGet_NotFound(t *testing.T) {
	_, err := Default().Get("nitro-forever")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParse_FillsIDsAndTrims(t *testing.T) {
	c, err := Parse([]byte(`
products:
  - title: "  Pack Été  "
    description: " Soleil "
    price: 4€
    category: boost
`))
	require.NoError(t, err)

	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "pack-ete", products[0].ID)
	assert.Equal(t, "Pack Été", products[0].Title)
	assert.Equal(t, "Soleil", products[0].Description)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown category", "products:\n  - {title: A, price: 1€, category: hats}\n"},
		{"duplicate id", "products:\n  - {id: a, title: A, price: 1€, category: boost}\n  - {id: a, title: B, price: 2€, category: boost}\n"},
		{"missing title", "products:\n  - {price: 1€, category: boost}\n"},
		{"bad price", "products:\n  - {title: A, price: cher, category: boost}\n"},
		{"not yaml", "products: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, c.Len())

	path := filepath.Join(t.TempDir(), "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - {id: x, title: X, price: GRATUIT, category: nitro}\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestProductsReturnsCopy(t *testing.T) {
	c := Default()
	products := c.Products()
	products[0].Title = "changed"

	first, err := c.Get(products[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "changed", first.Title)
}
