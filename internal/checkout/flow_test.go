package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/catalog"
)

func product(t *testing.T) catalog.Product {
	t.Helper()
	p, err := catalog.Default().Get("nitro-1year")
	require.NoError(t, err)
	return p
}

func fill(f *Flow) {
	f.Set(CardNumber, "4242424242424242")
	f.Set(CardHolder, "Ada Lovelace")
	f.Set(Expiry, "1229")
	f.Set(CVV, "123")
}

func TestFlow_EmptyFieldShowsError(t *testing.T) {
	for _, missing := range Fields {
		t.Run(missing.Label(), func(t *testing.T) {
			f := NewFlow(product(t), nil)
			fill(f)
			f.Set(missing, "")

			assert.Equal(t, StepError, f.Attempt())
			assert.True(t, f.BackToDetails())
			assert.Equal(t, StepDetails, f.Step())
		})
	}
}

func TestFlow_BlankHolderIsIncomplete(t *testing.T) {
	f := NewFlow(product(t), nil)
	fill(f)
	f.Set(CardHolder, "   ")
	assert.Equal(t, StepError, f.Attempt())
}

func TestFlow_ConfirmIssuesOrderTicket(t *testing.T) {
	f := NewFlow(product(t), nil)
	fill(f)

	assert.False(t, f.Confirm())
	require.Equal(t, StepWarning, f.Attempt())
	require.True(t, f.Confirm())
	assert.Equal(t, StepSuccess, f.Step())

	ticket, ok := f.Ticket()
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(ticket.Reference, "TKY-"))
	assert.Regexp(t, `^TKY-[A-Z0-9]+-[A-Z0-9]{6}$`, ticket.Reference)
}

func TestFlow_WarningCanGoBack(t *testing.T) {
	f := NewFlow(product(t), nil)
	fill(f)
	f.Attempt()

	require.True(t, f.BackToDetails())
	assert.Equal(t, "Ada Lovelace", f.Form().CardHolder)
	assert.False(t, f.BackToDetails())
}

func TestFlow_InputIgnoredOutsideDetails(t *testing.T) {
	f := NewFlow(product(t), nil)
	fill(f)
	f.Attempt()

	assert.Equal(t, "123", f.Set(CVV, "999"))
	assert.Equal(t, "123", f.Form().CVV)
}

func TestFlow_Reset(t *testing.T) {
	f := NewFlow(product(t), nil)
	fill(f)
	f.Attempt()
	f.Confirm()

	f.Reset()
	assert.Equal(t, StepDetails, f.Step())
	assert.Equal(t, Form{}, f.Form())
	_, ok := f.Ticket()
	assert.False(t, ok)
}
