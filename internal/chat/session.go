// Package chat implements the interactive REPL: one session object owns
// the current model, the conversation and the chat file it was saved to.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/console"
	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/history"
	"github.com/diogo/gptchat/internal/models"
	"github.com/diogo/gptchat/internal/prompt"
	"github.com/diogo/gptchat/internal/render"
)

// LineReader is the input source of the loop.
type LineReader = console.LineReader

// Options wires a Session to its collaborators.
type Options struct {
	Client api.ChatClient
	Store  *history.Store
	Input  LineReader

	// Out receives conversation output; Log receives [verbose] lines.
	Out io.Writer
	Log io.Writer

	PromptPath    string
	Editor        *prompt.Editor
	FallbackModel string

	Verbose         bool
	RenderMarkdown  bool
	Render          render.Options
	CopyToClipboard bool

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Session is the state of one REPL run.
type Session struct {
	model    string
	messages []models.Message
	chatFile string

	opts     Options
	commands map[string]command
	done     bool
}

// New creates a session for model. messages and chatFile describe a
// resumed conversation and may be empty.
func New(model string, messages []models.Message, chatFile string, opts Options) *Session {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	if opts.Editor == nil {
		opts.Editor = prompt.NewEditor("")
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	s := &Session{
		model:    model,
		messages: append([]models.Message(nil), messages...),
		chatFile: chatFile,
		opts:     opts,
	}
	s.commands = commandTable()
	return s
}

// Model returns the model currently in use.
func (s *Session) Model() string { return s.model }

// Messages returns a copy of the conversation.
func (s *Session) Messages() []models.Message {
	return append([]models.Message(nil), s.messages...)
}

// ChatFile returns the path the conversation was last saved to, or "".
func (s *Session) ChatFile() string { return s.chatFile }

// Run reads input until /quit, Ctrl+C or end of input. It returns an
// error only when input itself fails.
func (s *Session) Run(ctx context.Context) error {
	if len(s.messages) == 0 {
		s.messages = append(s.messages, models.SystemMessage(s.loadPrompt()))
	}

	s.header()
	console.Info(s.opts.Out, "Type your message and press Enter. Use /help for commands.")
	fmt.Fprintln(s.opts.Out)

	if models.CountRole(s.messages, models.RoleUser) > 0 {
		s.showLastExchange()
	}

	for !s.done {
		line, err := s.opts.Input.Prompt("  You: ")
		if errors.Is(err, apierrors.ErrAborted) {
			fmt.Fprintln(s.opts.Out)
			line = "/quit"
		} else if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			s.dispatch(ctx, line)
			continue
		}

		s.send(ctx, line)
	}
	return nil
}

// send appends the user message and streams the reply. The assistant
// message is appended only when the stream succeeds with content.
func (s *Session) send(ctx context.Context, text string) {
	s.messages = append(s.messages, models.UserMessage(text))

	out := s.opts.Out
	started := false
	start := time.Now()

	reply, err := s.opts.Client.StreamChat(ctx, s.model, s.messages, func(delta string) {
		if !started {
			fmt.Fprintf(out, "\n  %s ", console.AssistantLabel.Render("AI:"))
			started = true
		}
		fmt.Fprint(out, delta)
	})
	if started {
		fmt.Fprintln(out)
		fmt.Fprintln(out)
	}

	s.verbosef("Request to %s took %s", s.model, time.Since(start).Round(time.Millisecond))

	if err != nil {
		fmt.Fprintf(out, "\n  %s %v\n\n", console.ErrorStyle.Render("Error:"), err)
		return
	}
	if reply == "" {
		return
	}

	s.messages = append(s.messages, models.AssistantMessage(reply))

	if s.opts.CopyToClipboard {
		if err := s.opts.Clipboard(reply); err != nil {
			s.verbosef("Could not copy reply to clipboard: %v", err)
		}
	}
}

// loadPrompt reads the system prompt, falling back to the default when
// the file cannot be read.
func (s *Session) loadPrompt() string {
	if s.opts.PromptPath == "" {
		return prompt.DefaultSystemPrompt
	}
	text, err := prompt.Load(s.opts.PromptPath)
	if err != nil {
		console.Error(s.opts.Out, "Could not read %s: %v", s.opts.PromptPath, err)
		return prompt.DefaultSystemPrompt
	}
	return text
}

func (s *Session) header() {
	console.Separator(s.opts.Out, "Chatting with "+s.model)
}

func (s *Session) showLastExchange() {
	out := s.opts.Out
	console.Hint(out, "(Resumed, showing last exchange)")

	user, assistant := models.LastExchange(s.messages)
	if user >= 0 {
		fmt.Fprintf(out, "\n  %s %s\n", console.UserLabel.Render("You:"), s.messages[user].Content)
	}
	if assistant >= 0 {
		fmt.Fprintf(out, "\n  %s  %s\n", console.AssistantLabel.Render("AI:"), s.messages[assistant].Content)
	}
	fmt.Fprintln(out)
}

func (s *Session) verbosef(format string, args ...any) {
	if s.opts.Verbose {
		fmt.Fprintf(s.opts.Log, "[verbose] "+format+"\n", args...)
	}
}
