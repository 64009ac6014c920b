// Package console provides line input and styled output for the REPL.
package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	apierrors "github.com/diogo/gptchat/internal/errors"
)

// LineReader reads one line of user input after printing prompt.
// Ctrl+C and end of input are reported as errors.ErrAborted.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// SecretReader reads a line without echoing it.
type SecretReader interface {
	PasswordPrompt(prompt string) (string, error)
}

// Liner is a LineReader backed by peterh/liner with persistent history.
type Liner struct {
	state       *liner.State
	historyFile string
}

// Ensure Liner implements LineReader and SecretReader
var (
	_ LineReader   = (*Liner)(nil)
	_ SecretReader = (*Liner)(nil)
)

// NewLiner puts the terminal in line-editing mode and loads history from
// historyFile when it exists. Close must be called to restore the terminal.
func NewLiner(historyFile string) *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	l := &Liner{state: state, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = state.ReadHistory(f)
			f.Close()
		}
	}
	return l
}

// Prompt implements LineReader. Non-empty lines are added to history.
func (l *Liner) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if err != nil {
		return "", mapInputError(err)
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// PasswordPrompt implements SecretReader. Terminals that cannot hide
// input fall back to a plain prompt.
func (l *Liner) PasswordPrompt(prompt string) (string, error) {
	line, err := l.state.PasswordPrompt(prompt)
	if errors.Is(err, liner.ErrNotTerminalOutput) {
		line, err = l.state.Prompt(prompt)
	}
	if err != nil {
		return "", mapInputError(err)
	}
	return line, nil
}

// Close writes history and restores the terminal.
func (l *Liner) Close() error {
	if l.historyFile != "" {
		if f, err := os.Create(l.historyFile); err == nil {
			_, _ = l.state.WriteHistory(f)
			f.Close()
		}
	}
	return l.state.Close()
}

func mapInputError(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return apierrors.ErrAborted
	}
	return fmt.Errorf("failed to read input: %w", err)
}

// Ask prompts and returns the trimmed answer.
func Ask(in LineReader, prompt string) (string, error) {
	line, err := in.Prompt(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (any case) count as yes.
func Confirm(in LineReader, prompt string) (bool, error) {
	answer, err := Ask(in, prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
