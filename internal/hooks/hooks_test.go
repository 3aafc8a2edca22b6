package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/takayama/storefront/internal/events"
	"github.com/takayama/storefront/internal/order"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != nil {
		t.Fatalf("LoadConfig() = %+v, expected nil without a file", cfg)
	}

	data := "version: 1\nhooks:\n  ticket_issued:\n    - command: echo {{reference}}\n      timeout: 5\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Hooks.TicketIssued) != 1 || cfg.Hooks.TicketIssued[0].Timeout != 5 {
		t.Errorf("LoadConfig() = %+v", cfg.Hooks)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Error("LoadConfig() expected parse error, got nil")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	vars := Variables{Reference: "SRV-ABC-123456", Kind: "server", Total: "18", ServerType: "gaming"}

	tests := []struct {
		name     string
		hook     *HookConfig
		expected string
		prefix   bool
	}{
		{name: "nil hook", hook: nil, expected: ""},
		{name: "empty command", hook: &HookConfig{}, expected: ""},
		{
			name:     "variables expanded",
			hook:     &HookConfig{Command: "echo {{reference}} {{kind}} {{total}} {{server_type}}", Timeout: 5},
			expected: "SRV-ABC-123456 server 18 gaming\n",
		},
		{
			name:     "values are quoted",
			hook:     &HookConfig{Command: "printf '%s|' {{product}}", Timeout: 5},
			expected: "|",
		},
		{
			name:     "failure reported in output",
			hook:     &HookConfig{Command: "exit 3", Timeout: 5},
			expected: "[Hook command failed:",
			prefix:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := Execute(ctx, tt.hook, workDir, vars)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if tt.prefix {
				if !strings.HasPrefix(output, tt.expected) {
					t.Errorf("Execute() output = %q, expected prefix %q", output, tt.expected)
				}
				return
			}
			if output != tt.expected {
				t.Errorf("Execute() output = %q, expected %q", output, tt.expected)
			}
		})
	}
}

func TestExecute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Execute(ctx, &HookConfig{Command: "echo 'test'", Timeout: 5}, t.TempDir(), Variables{})
	if err == nil {
		t.Error("Execute() expected error for cancelled context, got nil")
	}
}

func TestExpandVariables_Injection(t *testing.T) {
	got := expandVariables("echo {{product}}", Variables{Product: "a'; rm -rf /'"})
	want := `echo 'a'\''; rm -rf /'\'''`
	if got != want {
		t.Errorf("expandVariables() = %q, expected %q", got, want)
	}
}

func TestNewAnnouncer(t *testing.T) {
	if a := NewAnnouncer(nil, ""); a != nil {
		t.Error("NewAnnouncer(nil) expected nil")
	}
	if a := NewAnnouncer(&Config{}, ""); a != nil {
		t.Error("NewAnnouncer(empty) expected nil")
	}
}

func TestAnnouncer_RunsHooks(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Hooks: HooksConfig{TicketIssued: []*HookConfig{
		{Command: "echo {{reference}} {{total}} > first.txt", Timeout: 5},
		{Command: "echo {{product}} > second.txt", Timeout: 5},
	}}}

	var a events.Announcer = NewAnnouncer(cfg, dir)
	a.TicketIssued(context.Background(), events.TicketEvent{
		Reference: "TKY-ABC-123456",
		Kind:      order.KindOrder,
		Total:     3,
		Product:   "nitro-1year",
		IssuedAt:  time.Now(),
	})

	for file, want := range map[string]string{
		"first.txt":  "TKY-ABC-123456 3\n",
		"second.txt": "nitro-1year\n",
	} {
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, expected %q", file, data, want)
		}
	}
}
