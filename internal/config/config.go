// Package config provides centralized configuration management using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values for storefront.
type Config struct {
	LogLevel     string `mapstructure:"log_level" yaml:"log_level"`
	LogFile      string `mapstructure:"log_file" yaml:"log_file"`
	CatalogFile  string `mapstructure:"catalog_file" yaml:"catalog_file"`
	DiscordURL   string `mapstructure:"discord_url" yaml:"discord_url"`
	OrderPrefix  string `mapstructure:"order_prefix" yaml:"order_prefix"`
	ServerPrefix string `mapstructure:"server_prefix" yaml:"server_prefix"`
	// CopyAck is how long the "copied" acknowledgment stays visible, as a
	// Go duration string.
	CopyAck string `mapstructure:"copy_ack" yaml:"copy_ack"`

	Events Events `mapstructure:"events" yaml:"events"`
	MCP    MCP    `mapstructure:"mcp" yaml:"mcp"`
	Auth   Auth   `mapstructure:"auth" yaml:"auth"`
}

// Events configures ticket announcements.
type Events struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Port exposes the embedded bus to `storefront watch`. Zero keeps it
	// in-process.
	Port int `mapstructure:"port" yaml:"port"`
}

// MCP configures `storefront serve`.
type MCP struct {
	// Port is the HTTP port; zero picks a random free one.
	Port int `mapstructure:"port" yaml:"port"`
}

// Auth configures the sign-in link.
type Auth struct {
	PortalURL   string `mapstructure:"portal_url" yaml:"portal_url"`
	AppID       string `mapstructure:"app_id" yaml:"app_id"`
	RedirectURI string `mapstructure:"redirect_uri" yaml:"redirect_uri"`
}

const (
	DefaultDiscordURL = "https://discord.gg/Takayama"
	DefaultCopyAck    = 2 * time.Second
)

// envKeys are bound explicitly so nested keys and bools parse from the
// environment even when no config file mentions them.
var envKeys = []string{
	"log_level",
	"log_file",
	"catalog_file",
	"discord_url",
	"order_prefix",
	"server_prefix",
	"copy_ack",
	"events.enabled",
	"events.port",
	"mcp.port",
	"auth.portal_url",
	"auth.app_id",
	"auth.redirect_uri",
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		LogLevel:     "info",
		DiscordURL:   DefaultDiscordURL,
		OrderPrefix:  "TKY",
		ServerPrefix: "SRV",
		CopyAck:      DefaultCopyAck.String(),
		Events:       Events{Enabled: true},
		Auth: Auth{
			PortalURL:   "https://auth.manus.im",
			AppID:       "default",
			RedirectURI: "http://localhost:3000/api/oauth/callback",
		},
	}
}

// Load loads configuration with full precedence:
// CLI flags > ENV vars > project config > XDG global config > defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName("storefront")

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("catalog_file", d.CatalogFile)
	v.SetDefault("discord_url", d.DiscordURL)
	v.SetDefault("order_prefix", d.OrderPrefix)
	v.SetDefault("server_prefix", d.ServerPrefix)
	v.SetDefault("copy_ack", d.CopyAck)
	v.SetDefault("events.enabled", d.Events.Enabled)
	v.SetDefault("events.port", d.Events.Port)
	v.SetDefault("mcp.port", d.MCP.Port)
	v.SetDefault("auth.portal_url", d.Auth.PortalURL)
	v.SetDefault("auth.app_id", d.Auth.AppID)
	v.SetDefault("auth.redirect_uri", d.Auth.RedirectURI)

	// Setup ENV binding with STOREFRONT_ prefix; events.port -> STOREFRONT_EVENTS_PORT
	v.SetEnvPrefix("STOREFRONT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, key := range envKeys {
		env := "STOREFRONT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s env: %w", key, err)
		}
	}

	// Load global config first (if exists)
	globalPath := GlobalPath()
	if fileExists(globalPath) {
		v.SetConfigFile(globalPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
	}

	// Merge project config on top (if exists)
	projectPath := ProjectPath()
	if fileExists(projectPath) {
		v.SetConfigFile(projectPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("merging project config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var prefixPattern = regexp.MustCompile(`^[A-Za-z]+$`)

// Validate rejects values the shells cannot use.
func (c *Config) Validate() error {
	if c.OrderPrefix != "" && !prefixPattern.MatchString(c.OrderPrefix) {
		return fmt.Errorf("order_prefix %q: only letters are allowed", c.OrderPrefix)
	}
	if c.ServerPrefix != "" && !prefixPattern.MatchString(c.ServerPrefix) {
		return fmt.Errorf("server_prefix %q: only letters are allowed", c.ServerPrefix)
	}
	if c.CopyAck != "" {
		d, err := time.ParseDuration(c.CopyAck)
		if err != nil {
			return fmt.Errorf("copy_ack: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("copy_ack must be positive, got %s", c.CopyAck)
		}
	}
	for name, port := range map[string]int{"events.port": c.Events.Port, "mcp.port": c.MCP.Port} {
		if port < 0 || port > 65535 {
			return fmt.Errorf("%s %d out of range", name, port)
		}
	}
	return nil
}

// CopyAckDuration returns CopyAck parsed, or DefaultCopyAck when unset or
// invalid.
func (c *Config) CopyAckDuration() time.Duration {
	d, err := time.ParseDuration(c.CopyAck)
	if err != nil || d <= 0 {
		return DefaultCopyAck
	}
	return d
}

// Exists returns true if any config file exists (global or project).
func Exists() bool {
	return fileExists(GlobalPath()) || fileExists(ProjectPath())
}

// GlobalPath returns the XDG global config path.
// Returns ~/.config/storefront/storefront.yml or $XDG_CONFIG_HOME/storefront/storefront.yml.
func GlobalPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "storefront", "storefront.yml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "storefront", "storefront.yml")
}

// ProjectPath returns the project-local config path.
// Returns ./storefront.yml in the current working directory.
func ProjectPath() string {
	return "storefront.yml"
}

// WriteGlobal writes the config to the XDG global location.
func WriteGlobal(cfg *Config) error {
	path := GlobalPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return write(path, cfg)
}

// WriteProject writes the config to the project-local location.
func WriteProject(cfg *Config) error {
	return write(ProjectPath(), cfg)
}

func write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
