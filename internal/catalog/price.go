package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/takayama/storefront/internal/order"
)

// Price is a product's displayed price.
type Price struct {
	Amount order.Amount
	// Free marks a price shown as "GRATUIT". Amount is zero.
	Free bool
	// From marks a starting price ("Dès 5€").
	From bool
}

const (
	freeLabel = "GRATUIT"
	fromLabel = "Dès"
)

// ParsePrice reads the labels used in catalog files: "GRATUIT", "3€",
// "3 €", "Dès 5€" or its unaccented spellings.
func ParsePrice(s string) (Price, error) {
	label := strings.TrimSpace(s)
	if strings.EqualFold(label, freeLabel) {
		return Price{Free: true}, nil
	}

	var p Price
	for _, prefix := range []string{"Dès", "Dés", "Des", "dès", "dés", "des"} {
		if rest, ok := strings.CutPrefix(label, prefix+" "); ok {
			p.From = true
			label = rest
			break
		}
	}

	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), "€"))
	n, err := strconv.Atoi(label)
	if err != nil || n < 0 {
		return Price{}, fmt.Errorf("invalid price %q", s)
	}
	p.Amount = order.Amount(n)
	return p, nil
}

// Label renders the price the way the storefront shows it.
func (p Price) Label() string {
	if p.Free {
		return freeLabel
	}
	if p.From {
		return fromLabel + " " + FormatPrice(p.Amount)
	}
	return FormatPrice(p.Amount)
}

func (p Price) String() string { return p.Label() }

func (p *Price) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var printer = message.NewPrinter(language.French)

// FormatPrice renders an amount in euros with French digit grouping, e.g.
// "18 €".
func FormatPrice(amount order.Amount) string {
	return printer.Sprintf("%d €", int(amount))
}
