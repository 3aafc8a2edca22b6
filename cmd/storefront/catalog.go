package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/catalog"
)

var catalogFlags struct {
	json bool
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the products",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogFlags.json, "json", false, "Print the catalog as JSON")
}

type productJSON struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Badge         string `json:"badge,omitempty"`
	Category      string `json:"category"`
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		return err
	}

	if catalogFlags.json {
		return writeCatalogJSON(cmd.OutOrStdout(), cat)
	}
	writeCatalog(cmd.OutOrStdout(), cat)
	return nil
}

func writeCatalog(out io.Writer, cat *catalog.Catalog) {
	for i, section := range cat.ByCategory() {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, section.Category.Title())
		for _, p := range section.Products {
			line := fmt.Sprintf("  %-28s %-10s", p.Title, p.Price.Label())
			if p.OriginalPrice != nil {
				line += " (au lieu de " + p.OriginalPrice.Label() + ")"
			}
			if p.Badge != "" {
				line += "  [" + p.Badge + "]"
			}
			fmt.Fprintln(out, line)
		}
	}
}

func writeCatalogJSON(out io.Writer, cat *catalog.Catalog) error {
	products := make([]productJSON, 0, cat.Len())
	for _, section := range cat.ByCategory() {
		for _, p := range section.Products {
			pj := productJSON{
				ID:       p.ID,
				Title:    p.Title,
				Price:    p.Price.Label(),
				Badge:    p.Badge,
				Category: string(p.Category),
			}
			if p.OriginalPrice != nil {
				pj.OriginalPrice = p.OriginalPrice.Label()
			}
			products = append(products, pj)
		}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}
