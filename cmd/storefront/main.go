package main

import (
	"context"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/takayama/storefront/internal/logger"
	"github.com/takayama/storefront/internal/tui/theme"
)

const (
	logoText1 = "▀█▀ ▄▀█ █▄▀ ▄▀█ █▄█ ▄▀█ █▀▄▀█ ▄▀█"
	logoText2 = " █  █▀█ █ █ █▀█  █  █▀█ █ ▀ █ █▀█"
)

// Version set via ldflags during build
var version = "dev"

var rootFlags struct {
	logLevel string
	catalog  string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Terminal storefront with a custom server configurator",
	RunE:  runShop,
}

// renderLogo colors the logo with a left-to-right gradient
func renderLogo() string {
	t := theme.Current()
	lines := []string{logoText1, logoText2}
	for i, line := range lines {
		runes := []rune(line)
		colors := theme.Gradient(t.Primary, t.Secondary, len(runes))
		var b strings.Builder
		for j, r := range runes {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[j])).Render(string(r)))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

storefront presents the Takayama Shop catalog in the terminal: Nitro offers,
profile decorations, boosts and a custom Discord server configurator.
Checkouts are simulated and tickets are only references to quote on Discord.

Running storefront without a command opens the shop.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.catalog, "catalog", "", "Catalog YAML file (default: built-in catalog)")

	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(loginURLCmd)
	rootCmd.AddCommand(setupCmd)
}
