package prompt

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/diogo/gptchat/internal/config"
	apierrors "github.com/diogo/gptchat/internal/errors"
)

// fallbackEditors are tried in order after the configured editor.
var fallbackEditors = []string{"nano", "vim", "vi", "code", "open"}

// RunFunc starts a command attached to the terminal and waits for it.
type RunFunc func(name string, args ...string) error

// Editor opens files in an external editor, walking a list of candidates
// until one starts.
type Editor struct {
	// Preferred is the configured editor command, e.g. "code -w".
	Preferred string
	// Run defaults to running the command on the current terminal.
	Run RunFunc
}

// NewEditor returns an Editor that prefers configured, then $EDITOR,
// then $VISUAL.
func NewEditor(configured string) *Editor {
	preferred := configured
	if preferred == "" {
		preferred = os.Getenv(config.EnvEditor)
	}
	if preferred == "" {
		preferred = os.Getenv(config.EnvVisual)
	}
	return &Editor{Preferred: preferred, Run: runAttached}
}

// Candidates returns the editor commands Open will try, in order.
func (e *Editor) Candidates() []string {
	var list []string
	seen := make(map[string]bool)
	add := func(c string) {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			return
		}
		seen[c] = true
		list = append(list, c)
	}

	add(e.Preferred)
	if runtime.GOOS == "windows" {
		add("notepad")
	}
	for _, c := range fallbackEditors {
		add(c)
	}
	return list
}

// Open launches the first candidate that can be started. An editor that
// starts and exits non-zero still counts as opened. When none can be
// started an *errors.EditorError is returned so the caller can print a
// manual-edit hint.
func (e *Editor) Open(path string) (string, error) {
	run := e.Run
	if run == nil {
		run = runAttached
	}

	var tried []string
	for _, candidate := range e.Candidates() {
		fields := strings.Fields(candidate)
		args := append(fields[1:], path)
		err := run(fields[0], args...)
		tried = append(tried, fields[0])
		if err == nil {
			return candidate, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return candidate, nil
		}
	}
	return "", apierrors.NewEditorError(path, tried)
}

func runAttached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
