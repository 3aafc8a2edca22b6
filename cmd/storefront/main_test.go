package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takayama/storefront/internal/catalog"
	"github.com/takayama/storefront/internal/config"
	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/hooks"
	"github.com/takayama/storefront/internal/order"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("STOREFRONT_LOG_FILE", "")
	t.Setenv("STOREFRONT_LOG_LEVEL", "")
	return dir
}

func TestWriteCatalog(t *testing.T) {
	var buf bytes.Buffer
	writeCatalog(&buf, catalog.Default())
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "Discord Nitro\n"))
	assert.Contains(t, out, "GRATUIT")
	assert.Contains(t, out, "(au lieu de 10 €)")
	assert.Less(t, strings.Index(out, catalog.Server.Title()), strings.Index(out, catalog.Boost.Title()))
}

func TestWriteCatalogJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCatalogJSON(&buf, catalog.Default()))

	var products []productJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &products))
	require.Len(t, products, 12)
	assert.Equal(t, "nitro-1month", products[0].ID)
	assert.Equal(t, "GRATUIT", products[0].Price)
}

func TestPrintEvent(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	var buf bytes.Buffer
	printEvent(&buf, events.TicketEvent{Reference: "SRV-ABC-123456", Kind: order.KindServer, Total: 18, ServerType: "gaming", IssuedAt: at})
	printEvent(&buf, events.TicketEvent{Reference: "TKY-ABC-123456", Kind: order.KindOrder, Total: 3, Product: "nitro-1year", IssuedAt: at})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "15:04:05")
	assert.Contains(t, lines[0], "serveur gaming")
	assert.Contains(t, lines[0], "18 €")
	assert.Contains(t, lines[1], "nitro-1year")
}

func TestRunSetup(t *testing.T) {
	isolate(t)
	setupFlags.project, setupFlags.force = true, false
	t.Cleanup(func() { setupFlags.project, setupFlags.force = false, false })

	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, runSetup(cmd, nil))
	assert.Contains(t, out.String(), config.ProjectPath())
	_, err := os.Stat(config.ProjectPath())
	require.NoError(t, err)

	err = runSetup(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	setupFlags.force = true
	require.NoError(t, runSetup(cmd, nil))
}

func TestNewRuntime(t *testing.T) {
	isolate(t)
	t.Setenv("STOREFRONT_ORDER_PREFIX", "ORD")
	t.Setenv("STOREFRONT_EVENTS_ENABLED", "true")

	rt, err := newRuntime(t.Context(), true)
	require.NoError(t, err)
	t.Cleanup(rt.Close)

	assert.Equal(t, 12, rt.catalog.Len())
	assert.Equal(t, "ORD", rt.generator.Prefix(order.KindOrder))
	require.NotNil(t, rt.broker)
	assert.Empty(t, rt.broker.URL(), "in-process without a port")
	assert.DirExists(t, rt.storeDir)

	dir := rt.storeDir
	rt.Close()
	assert.NoDirExists(t, dir)
}

func TestNewRuntime_CatalogFlag(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`products:
  - title: Pack Test
    price: 4€
    category: boost
`), 0644))

	rootFlags.catalog = path
	t.Cleanup(func() { rootFlags.catalog = "" })

	rt, err := newRuntime(t.Context(), false)
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.broker)
	p, err := rt.catalog.Get("pack-test")
	require.NoError(t, err)
	assert.Equal(t, order.Amount(4), p.Price.Amount)
}

func TestNewRuntime_Hooks(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, hooks.ConfigFileName), []byte(`version: 1
hooks:
  ticket_issued:
    - command: echo {{reference}} > issued.txt
`), 0644))

	rt, err := newRuntime(t.Context(), false)
	require.NoError(t, err)
	defer rt.Close()

	require.IsType(t, events.Multi{}, rt.announcer)
	rt.announcer.TicketIssued(t.Context(), events.TicketEvent{Reference: "TKY-ABC-123456", Kind: order.KindOrder})

	data, err := os.ReadFile(filepath.Join(dir, "issued.txt"))
	require.NoError(t, err)
	assert.Equal(t, "TKY-ABC-123456\n", string(data))
}
