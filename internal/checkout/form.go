package checkout

import (
	"strings"
	"unicode"
)

const (
	maxCardNumber = 19
	maxCVV        = 4
)

// Form holds the card fields as typed, already formatted.
type Form struct {
	CardNumber string
	CardHolder string
	Expiry     string
	CVV        string
}

// Complete reports whether every field has content.
func (f Form) Complete() bool {
	return f.CardNumber != "" && strings.TrimSpace(f.CardHolder) != "" && f.Expiry != "" && f.CVV != ""
}

// FormatCardNumber keeps digits and groups them by four, limited to 19
// characters ("1234 5678 9012 3456").
func FormatCardNumber(s string) string {
	d := digits(s)
	var b strings.Builder
	for i, r := range d {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) > maxCardNumber {
		out = out[:maxCardNumber]
	}
	return out
}

// FormatExpiry renders digits as MM/YY once two digits are typed.
func FormatExpiry(s string) string {
	d := digits(s)
	if len(d) < 2 {
		return d
	}
	if len(d) > 4 {
		d = d[:4]
	}
	return d[:2] + "/" + d[2:]
}

// FormatCVV keeps at most four digits.
func FormatCVV(s string) string {
	d := digits(s)
	if len(d) > maxCVV {
		d = d[:maxCVV]
	}
	return d
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}
