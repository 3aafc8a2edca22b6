package wizard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToast_Show(t *testing.T) {
	toast := NewToast(0)
	assert.Equal(t, DefaultToastDuration, toast.Duration())

	cmd := toast.Show("Copié!")
	assert.NotNil(t, cmd)
	assert.True(t, toast.IsVisible())
	assert.Equal(t, "Copié!", toast.Message())
	assert.True(t, strings.Contains(toast.View(40), "Copié!"))
}

func TestToast_HiddenView(t *testing.T) {
	toast := NewToast(time.Second)
	assert.Empty(t, toast.View(40))
	assert.Empty(t, toast.Message())
}

func TestToast_StaleDismissIgnored(t *testing.T) {
	toast := NewToast(time.Second)
	toast.Show("first")
	staleID := toast.id
	toast.Show("second")

	toast.Update(ToastDismissMsg{ID: staleID})
	assert.True(t, toast.IsVisible())
	assert.Equal(t, "second", toast.Message())

	toast.Update(ToastDismissMsg{ID: toast.id})
	assert.False(t, toast.IsVisible())
}

func TestToast_ShowError(t *testing.T) {
	toast := NewToast(time.Second)
	toast.ShowError("Copie impossible")
	assert.True(t, toast.isError)
	assert.Contains(t, toast.View(40), "Copie impossible")

	toast.Show("ok")
	assert.False(t, toast.isError)
}
