// Package hooks runs user commands when the storefront issues a ticket.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/logger"
)

// ConfigFileName is the name of the hooks configuration file.
const ConfigFileName = ".storefront.hooks.yml"

// LoadConfig loads the hooks configuration from workDir.
// Returns nil if the file doesn't exist (hooks are optional).
func LoadConfig(workDir string) (*Config, error) {
	configPath := filepath.Join(workDir, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("No hooks config found at %s", configPath)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse hooks config: %w", err)
	}

	logger.Debug("Loaded hooks config from %s (version: %d)", configPath, cfg.Version)
	return &cfg, nil
}

// Variables are expanded in hook commands.
type Variables struct {
	Reference  string
	Kind       string
	Total      string
	Product    string
	ServerType string
}

// VariablesFor extracts the hook variables of a ticket announcement.
func VariablesFor(e events.TicketEvent) Variables {
	return Variables{
		Reference:  e.Reference,
		Kind:       string(e.Kind),
		Total:      strconv.Itoa(int(e.Total)),
		Product:    e.Product,
		ServerType: e.ServerType,
	}
}

// Execute runs a hook command and returns its output.
// {{reference}}, {{kind}}, {{total}}, {{product}} and {{server_type}} are
// expanded before execution. A failing or timed out command is reported in
// the output; only context cancellation returns an error.
func Execute(ctx context.Context, hook *HookConfig, workDir string, vars Variables) (string, error) {
	if hook == nil || hook.Command == "" {
		return "", nil
	}

	command := expandVariables(hook.Command, vars)
	logger.Debug("Executing hook command: %s", command)

	timeout := hook.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(execCtx, "sh", "-c", command)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if execCtx.Err() == context.DeadlineExceeded {
		logger.Warn("Hook command timed out after %ds: %s", timeout, command)
		return fmt.Sprintf("[Hook timed out after %ds]\n%s", timeout, stdout.String()), nil
	}

	output := stdout.String()
	if stderr.Len() > 0 {
		output += "\n[stderr]\n" + stderr.String()
	}
	if err != nil {
		logger.Warn("Hook command failed: %v", err)
		return fmt.Sprintf("[Hook command failed: %v]\n%s", err, output), nil
	}

	logger.Debug("Hook executed successfully, output length: %d bytes", len(output))
	return output, nil
}

// expandVariables replaces {{variable}} placeholders in the command string.
// Values are shell-quoted since they end up in an sh -c line.
func expandVariables(command string, vars Variables) string {
	r := strings.NewReplacer(
		"{{reference}}", quote(vars.Reference),
		"{{kind}}", quote(vars.Kind),
		"{{total}}", quote(vars.Total),
		"{{product}}", quote(vars.Product),
		"{{server_type}}", quote(vars.ServerType),
	)
	return r.Replace(command)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Announcer runs the ticket_issued hooks for every announcement.
type Announcer struct {
	hooks   []*HookConfig
	workDir string
}

// NewAnnouncer returns an Announcer for cfg, or nil when cfg has no
// ticket_issued hooks.
func NewAnnouncer(cfg *Config, workDir string) *Announcer {
	if cfg == nil || len(cfg.Hooks.TicketIssued) == 0 {
		return nil
	}
	return &Announcer{hooks: cfg.Hooks.TicketIssued, workDir: workDir}
}

// TicketIssued runs each hook in order. Output is logged, never returned.
func (a *Announcer) TicketIssued(ctx context.Context, e events.TicketEvent) {
	vars := VariablesFor(e)
	for _, hook := range a.hooks {
		out, err := Execute(ctx, hook, a.workDir, vars)
		if err != nil {
			logger.Warn("ticket hook interrupted: %v", err)
			return
		}
		if out = strings.TrimSpace(out); out != "" {
			logger.Info("ticket hook %s: %s", e.Reference, out)
		}
	}
}
