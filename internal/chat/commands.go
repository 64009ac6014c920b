package chat

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diogo/gptchat/internal/console"
	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/models"
	"github.com/diogo/gptchat/internal/picker"
)

type command func(s *Session, ctx context.Context)

// commandHelp lists commands in the order /help prints them.
var commandHelp = []struct {
	name  string
	usage string
}{
	{"/help", "Show this help"},
	{"/save", "Save the current chat"},
	{"/load", "Load a previously saved chat"},
	{"/model", "Switch to a different model"},
	{"/prompt", "Open the system prompt file for editing"},
	{"/reload", "Reload the system prompt"},
	{"/history", "Show conversation history"},
	{"/copy", "Copy the last reply to the clipboard"},
	{"/clear", "Clear chat and start fresh"},
	{"/quit", "Save and exit"},
}

func commandTable() map[string]command {
	return map[string]command{
		"/help":    (*Session).cmdHelp,
		"/save":    (*Session).cmdSave,
		"/load":    (*Session).cmdLoad,
		"/model":   (*Session).cmdModel,
		"/prompt":  (*Session).cmdPrompt,
		"/reload":  (*Session).cmdReload,
		"/history": (*Session).cmdHistory,
		"/copy":    (*Session).cmdCopy,
		"/clear":   (*Session).cmdClear,
		"/quit":    (*Session).cmdQuit,
		"/exit":    (*Session).cmdQuit,
	}
}

// dispatch runs a slash-command. Only the first word counts and it is
// matched case-insensitively.
func (s *Session) dispatch(ctx context.Context, line string) {
	name := strings.ToLower(strings.Fields(line)[0])
	cmd, ok := s.commands[name]
	if !ok {
		console.Info(s.opts.Out, "Unknown command: %s. Type /help for options.", name)
		return
	}
	cmd(s, ctx)
}

func (s *Session) cmdHelp(context.Context) {
	out := s.opts.Out
	fmt.Fprintln(out)
	console.Info(out, "Commands:")
	for _, h := range commandHelp {
		fmt.Fprintf(out, "    %-11s %s\n", h.name, h.usage)
	}
	fmt.Fprintln(out)
}

func (s *Session) cmdSave(context.Context) {
	s.save()
}

func (s *Session) save() {
	path, err := s.opts.Store.Save(s.model, s.messages, s.chatFile)
	if err != nil {
		console.Error(s.opts.Out, "Could not save chat: %v", err)
		return
	}
	s.chatFile = path
	console.Success(s.opts.Out, "Chat saved to %s", filepath.Base(path))
	s.verbosef("Chat file: %s", path)
}

func (s *Session) cmdLoad(context.Context) {
	loaded, err := picker.SavedChat(s.opts.Input, s.opts.Out, s.opts.Store)
	if err != nil {
		if !errors.Is(err, apierrors.ErrAborted) {
			console.Error(s.opts.Out, "Could not list saved chats: %v", err)
		}
		fmt.Fprintln(s.opts.Out)
		return
	}
	if loaded == nil {
		return
	}

	s.model = loaded.Model
	s.messages = loaded.Messages
	s.chatFile = loaded.Path

	s.header()
	s.printHistory()
}

func (s *Session) cmdModel(ctx context.Context) {
	model, err := picker.Model(ctx, s.opts.Input, s.opts.Out, s.opts.Client, s.opts.FallbackModel)
	if err != nil {
		fmt.Fprintln(s.opts.Out)
		console.Info(s.opts.Out, "Keeping model %s.", s.model)
		return
	}
	s.model = model
	s.header()
}

func (s *Session) cmdPrompt(context.Context) {
	out := s.opts.Out
	path := s.opts.PromptPath
	console.Info(out, "Opening %s...", path)

	used, err := s.opts.Editor.Open(path)
	if err != nil {
		console.Error(out, "Could not open editor. Edit manually: %s", path)
		s.verbosef("%v", err)
		return
	}
	s.verbosef("Edited with %s", used)
	console.Info(out, "Prompt file closed. Use /reload to apply changes.")
}

// cmdReload replaces the system prompt in place, or inserts one at the
// front when the conversation has none.
func (s *Session) cmdReload(context.Context) {
	text := s.loadPrompt()
	if models.HasSystemPrompt(s.messages) {
		s.messages[0].Content = text
	} else {
		s.messages = append([]models.Message{models.SystemMessage(text)}, s.messages...)
	}
	console.Success(s.opts.Out, "System prompt reloaded from %s", filepath.Base(s.opts.PromptPath))
}

func (s *Session) cmdHistory(context.Context) {
	s.printHistory()
}

func (s *Session) cmdCopy(context.Context) {
	reply, ok := models.LastAssistant(s.messages)
	if !ok {
		console.Info(s.opts.Out, "Nothing to copy yet.")
		return
	}
	if err := s.opts.Clipboard(reply); err != nil {
		console.Error(s.opts.Out, "Could not copy to clipboard: %v", err)
		return
	}
	console.Success(s.opts.Out, "Copied last reply to clipboard.")
}

func (s *Session) cmdClear(context.Context) {
	s.messages = []models.Message{models.SystemMessage(s.loadPrompt())}
	s.chatFile = ""
	console.Info(s.opts.Out, "Chat cleared. Starting fresh.")
	fmt.Fprintln(s.opts.Out)
}

// cmdQuit offers to save when the conversation holds more than the
// system prompt, then ends the loop.
func (s *Session) cmdQuit(context.Context) {
	if len(s.messages) > 1 {
		yes, err := console.Confirm(s.opts.Input, "  Save chat before quitting? (y/n): ")
		if err == nil && yes {
			s.save()
		}
	}
	fmt.Fprintln(s.opts.Out)
	console.Info(s.opts.Out, "Goodbye!")
	fmt.Fprintln(s.opts.Out)
	s.done = true
}
