// Package prompt loads the system prompt file and opens it for editing.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSystemPrompt is used when the prompt file does not exist.
const DefaultSystemPrompt = "You are a helpful assistant."

// commentMarker starts a line that is dropped from the prompt file.
const commentMarker = "# "

// template is written by EnsureFile for first-time users.
const template = `# System prompt for gptchat.
# Lines starting with "# " are comments and are not sent to the model.
# Edit with /prompt, then apply with /reload.

You are a helpful assistant.
`

// Load reads the prompt file at path and returns its content with comment
// lines removed. A missing file yields DefaultSystemPrompt. An empty
// result is a valid prompt.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSystemPrompt, nil
		}
		return "", fmt.Errorf("failed to read prompt file: %w", err)
	}
	return Strip(string(data)), nil
}

// Strip removes comment lines from text and trims the result.
func Strip(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), commentMarker) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, "\r"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// EnsureFile writes the starter template at path if nothing exists there.
// It reports whether a file was created.
func EnsureFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat prompt file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create prompt directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0o644); err != nil {
		return false, fmt.Errorf("failed to write prompt file: %w", err)
	}
	return true, nil
}
