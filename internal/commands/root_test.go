package commands

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	apierrors "github.com/diogo/gptchat/internal/errors"
)

func TestRootCommand_Help(t *testing.T) {
	if rootCmd.Use != "gptchat" {
		t.Errorf("Expected use 'gptchat', got %s", rootCmd.Use)
	}
	if rootCmd.Short == "" || rootCmd.Long == "" {
		t.Error("descriptions should not be empty")
	}
	if rootCmd.Args == nil {
		t.Error("Args validation should be configured")
	}
}

func TestRootCommand_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
	}{
		{"model", "m"},
		{"verbose", "v"},
		{"no-color", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := rootCmd.PersistentFlags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("%s flag not found", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("shorthand = %q, want %q", flag.Shorthand, tt.shorthand)
			}
		})
	}

	if rootCmd.Flags().Lookup("version") == nil {
		t.Error("version flag not found")
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	for _, name := range []string{"history", "models", "prompt", "config"} {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		_ = rootCmd.Flags().Set("version", "false")
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "gptchat "+Version) {
		t.Errorf("unexpected version output: %q", out.String())
	}
}

func TestExecuteWrapperSuccess(t *testing.T) {
	old := rootCmd
	rootCmd = &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	defer func() { rootCmd = old }()

	// Should not call os.Exit for successful execution
	Execute()
}

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	setupHome(t)

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "credentials",
			err:  apierrors.NewCredentialError("OPENAI_API_KEY"),
			want: []string{"✗ Error: no API key provided", "Hint: Export OPENAI_API_KEY"},
		},
		{
			name: "auth",
			err:  fmt.Errorf("stream: %w", apierrors.NewAPIError(401, "chat/completions", "bad key")),
			want: []string{"HTTP Status: 401", "Endpoint: chat/completions", "Hint: Check that OPENAI_API_KEY is valid"},
		},
		{
			name: "rate limit",
			err:  apierrors.NewAPIError(429, "chat/completions", "slow down"),
			want: []string{"HTTP Status: 429", "rate limit"},
		},
		{
			name: "parse",
			err:  apierrors.NewParseError("invalid JSON", "/tmp/chat.json"),
			want: []string{"corrupted"},
		},
		{
			name: "plain",
			err:  errors.New("something odd"),
			want: []string{"✗ Error: something odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Error")
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}

	if out := formatErrorMessage(errors.New("x"), "Error"); strings.Contains(out, "Hint") {
		t.Errorf("plain errors should carry no hint: %s", out)
	}
}

func TestFormatErrorMessage_FollowsConsolePalette(t *testing.T) {
	setupHome(t)

	out := formatErrorMessage(apierrors.NewAPIError(500, "models", "boom"), "Error")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain console should produce no escape codes: %q", out)
	}
	want := "✗ Error: API error [500] at models: boom\n  HTTP Status: 500\n  Endpoint: models"
	if !strings.HasPrefix(out, want) {
		t.Errorf("output = %q, want prefix %q", out, want)
	}
}
