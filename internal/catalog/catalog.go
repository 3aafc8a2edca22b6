// Package catalog loads the products the storefront lists.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// ErrNotFound is returned by Get for unknown product IDs.
var ErrNotFound = errors.New("product not found")

// Category groups products on the storefront.
type Category string

const (
	Nitro      Category = "nitro"
	Decoration Category = "decoration"
	Boost      Category = "boost"
	Server     Category = "server"
)

// Categories lists every category in display order.
var Categories = []Category{Nitro, Decoration, Server, Boost}

// Title returns the section heading of the category.
func (c Category) Title() string {
	switch c {
	case Nitro:
		return "Discord Nitro"
	case Decoration:
		return "Décorations"
	case Server:
		return "Serveurs Personnalisés"
	case Boost:
		return "Discord Boost"
	default:
		return string(c)
	}
}

func (c Category) valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product is one catalog entry.
type Product struct {
	ID            string   `yaml:"id"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Price         Price    `yaml:"price"`
	OriginalPrice *Price   `yaml:"original_price,omitempty"`
	Badge         string   `yaml:"badge,omitempty"`
	Category      Category `yaml:"category"`
}

// ConfiguresServer reports whether choosing the product opens the server
// wizard instead of the checkout.
func (p Product) ConfiguresServer() bool {
	return p.Category == Server
}

// Section is one category with its products.
type Section struct {
	Category Category
	Products []Product
}

// Catalog is an immutable product list.
type Catalog struct {
	products []Product
	byID     map[string]int
}

type file struct {
	Products []Product `yaml:"products"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(f.Products)
}

// New builds a catalog after trimming text fields and filling missing IDs
// from titles.
func New(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		p.Title = strings.TrimSpace(p.Title)
		p.Description = strings.TrimSpace(p.Description)
		p.Badge = strings.TrimSpace(p.Badge)
		p.ID = strings.TrimSpace(p.ID)

		if p.Title == "" {
			return nil, fmt.Errorf("product %d: missing title", i+1)
		}
		if p.ID == "" {
			p.ID = slug.Make(p.Title)
		}
		if !p.Category.valid() {
			return nil, fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %s: duplicate id", p.ID)
		}

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

// Products returns every product in file order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Get looks a product up by ID.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.products[i], nil
}

// ByCategory groups products in display order. Empty categories are
// omitted.
func (c *Catalog) ByCategory() []Section {
	var sections []Section
	for _, cat := range Categories {
		var products []Product
		for _, p := range c.products {
			if p.Category == cat {
				products = append(products, p)
			}
		}
		if len(products) > 0 {
			sections = append(sections, Section{Category: cat, Products: products})
		}
	}
	return sections
}
