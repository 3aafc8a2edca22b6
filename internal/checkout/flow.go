// Package checkout is the simulated payment flow shown for catalog
// products. Nothing is charged and card fields never leave the Flow.
package checkout

import (
	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/order"
)

// Step is a checkout screen.
type Step int

const (
	StepDetails Step = iota
	StepWarning
	StepError
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepDetails:
		return "details"
	case StepWarning:
		return "warning"
	case StepError:
		return "error"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Field names an input of the form.
type Field int

const (
	CardNumber Field = iota
	CardHolder
	Expiry
	CVV
)

// Fields lists the inputs in tab order.
var Fields = []Field{CardNumber, CardHolder, Expiry, CVV}

// Label returns the input's caption.
func (f Field) Label() string {
	switch f {
	case CardNumber:
		return "Numéro de carte"
	case CardHolder:
		return "Titulaire de la carte"
	case Expiry:
		return "Date d'expiration"
	case CVV:
		return "CVV"
	default:
		return ""
	}
}

// Flow walks one product through details, a decline notice and a ticket.
type Flow struct {
	product   catalog.Product
	generator *order.Generator

	step   Step
	form   Form
	ticket *order.Ticket
}

// NewFlow starts a checkout for product. A nil generator uses
// order.NewGenerator().
func NewFlow(product catalog.Product, generator *order.Generator) *Flow {
	if generator == nil {
		generator = order.NewGenerator()
	}
	return &Flow{product: product, generator: generator}
}

func (f *Flow) Product() catalog.Product { return f.product }

func (f *Flow) Step() Step { return f.step }

func (f *Flow) Form() Form { return f.form }

// Ticket returns the issued ticket once the flow succeeded.
func (f *Flow) Ticket() (order.Ticket, bool) {
	if f.ticket == nil {
		return order.Ticket{}, false
	}
	return *f.ticket, true
}

// Set stores a field value, formatted the way the input displays it, and
// returns the stored value. Input is ignored outside the details step.
func (f *Flow) Set(field Field, value string) string {
	if f.step != StepDetails {
		return f.value(field)
	}
	switch field {
	case CardNumber:
		f.form.CardNumber = FormatCardNumber(value)
	case CardHolder:
		f.form.CardHolder = value
	case Expiry:
		f.form.Expiry = FormatExpiry(value)
	case CVV:
		f.form.CVV = FormatCVV(value)
	}
	return f.value(field)
}

func (f *Flow) value(field Field) string {
	switch field {
	case CardNumber:
		return f.form.CardNumber
	case CardHolder:
		return f.form.CardHolder
	case Expiry:
		return f.form.Expiry
	case CVV:
		return f.form.CVV
	}
	return ""
}

// Attempt submits the form: an incomplete form shows the error step,
// a complete one the test-mode warning.
func (f *Flow) Attempt() Step {
	if f.step != StepDetails {
		return f.step
	}
	if f.form.Complete() {
		f.step = StepWarning
	} else {
		f.step = StepError
	}
	return f.step
}

// BackToDetails returns from the warning or error step.
func (f *Flow) BackToDetails() bool {
	if f.step != StepWarning && f.step != StepError {
		return false
	}
	f.step = StepDetails
	return true
}

// Confirm accepts the warning and issues an order ticket.
func (f *Flow) Confirm() bool {
	if f.step != StepWarning {
		return false
	}
	t := f.generator.New(order.KindOrder)
	f.ticket = &t
	f.step = StepSuccess
	logger.Info("checkout: issued %s for %s", t.Reference, f.product.ID)
	return true
}

// Reset clears the form and returns to the details step.
func (f *Flow) Reset() {
	f.step = StepDetails
	f.form = Form{}
	f.ticket = nil
}
