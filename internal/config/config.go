// Package config handles configuration, data paths and credentials for gptchat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diogo/gptchat/internal/models"
)

// Environment variables read by gptchat
const (
	EnvAPIKey  = "OPENAI_API_KEY"
	EnvBaseURL = "OPENAI_BASE_URL"
	EnvHome    = "GPTCHAT_HOME"
	EnvEditor  = "EDITOR"
	EnvVisual  = "VISUAL"
)

// File and directory names inside the data directory
const (
	configFileName  = "config.json"
	promptFileName  = "prompt.md"
	envFileName     = ".env"
	chatsDirName    = "chats"
	historyFileName = "input_history"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", "notty" or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// DefaultModel is used when the model catalog comes back empty.
	DefaultModel string `json:"default_model,omitempty"`
	// Editor overrides $EDITOR for /prompt.
	Editor string `json:"editor,omitempty"`
	// BaseURL overrides the API endpoint (OPENAI_BASE_URL wins over it).
	BaseURL string `json:"base_url,omitempty"`
	// Verbose enables [verbose] diagnostics on stderr.
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	RenderMarkdown  bool           `json:"render_markdown"`
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Verbose:         false,
		CopyToClipboard: false,
		RenderMarkdown:  true,
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the data directory path.
// $GPTCHAT_HOME takes precedence over ~/.gptchat.
func GetConfigDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", fmt.Errorf("failed to resolve %s: %w", EnvHome, err)
		}
		return abs, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".gptchat"), nil
}

// EnsureConfigDir creates the data directory and its chats subdirectory
// if they don't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory may hold an .env with the API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(configDir, chatsDirName), 0o755); err != nil {
		return "", fmt.Errorf("failed to create chats directory: %w", err)
	}

	return configDir, nil
}

func pathInConfigDir(name string) (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, name), nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	return pathInConfigDir(configFileName)
}

// GetPromptPath returns the path to the system prompt file
func GetPromptPath() (string, error) {
	return pathInConfigDir(promptFileName)
}

// GetEnvPath returns the path to the data directory's env file
func GetEnvPath() (string, error) {
	return pathInConfigDir(envFileName)
}

// GetChatsDir returns the directory holding saved chat files
func GetChatsDir() (string, error) {
	return pathInConfigDir(chatsDirName)
}

// GetInputHistoryPath returns the path of the line-editor history file
func GetInputHistoryPath() (string, error) {
	return pathInConfigDir(historyFileName)
}

// LoadConfig loads the configuration from disk
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if config doesn't exist
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, configFileName)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ResolveBaseURL returns the API endpoint override, if any.
func ResolveBaseURL(cfg Config) string {
	if u := os.Getenv(EnvBaseURL); u != "" {
		return u
	}
	return cfg.BaseURL
}

// FallbackModel returns the model to use when the catalog comes back empty.
func FallbackModel(cfg Config) string {
	if cfg.DefaultModel != "" {
		return cfg.DefaultModel
	}
	return models.DefaultModel
}
