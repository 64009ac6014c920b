package console

import (
	apierrors "github.com/diogo/gptchat/internal/errors"
)

// ScriptedReader replays fixed input lines. Once the script is exhausted
// every prompt returns errors.ErrAborted, like Ctrl+D on a terminal.
type ScriptedReader struct {
	Lines   []string
	Prompts []string // prompts shown, in order
}

// Ensure ScriptedReader implements LineReader and SecretReader
var (
	_ LineReader   = (*ScriptedReader)(nil)
	_ SecretReader = (*ScriptedReader)(nil)
)

// NewScriptedReader returns a reader that answers with lines in order.
func NewScriptedReader(lines ...string) *ScriptedReader {
	return &ScriptedReader{Lines: lines}
}

// Prompt implements LineReader.
func (s *ScriptedReader) Prompt(prompt string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	if len(s.Lines) == 0 {
		return "", apierrors.ErrAborted
	}
	line := s.Lines[0]
	s.Lines = s.Lines[1:]
	return line, nil
}

// PasswordPrompt implements SecretReader.
func (s *ScriptedReader) PasswordPrompt(prompt string) (string, error) {
	return s.Prompt(prompt)
}

// Remaining returns how many scripted lines have not been read.
func (s *ScriptedReader) Remaining() int {
	return len(s.Lines)
}

// Close implements io.Closer.
func (s *ScriptedReader) Close() error {
	return nil
}
