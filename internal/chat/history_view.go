package chat

import (
	"fmt"
	"strings"

	"github.com/diogo/gptchat/internal/console"
	"github.com/diogo/gptchat/internal/models"
	"github.com/diogo/gptchat/internal/render"
)

// systemPreviewLen caps how much of the system prompt /history shows.
const systemPreviewLen = 100

// printHistory prints every message with a role label. The system prompt
// is shortened for display only.
func (s *Session) printHistory() {
	out := s.opts.Out
	fmt.Fprintln(out)

	for _, m := range s.messages {
		switch m.Role {
		case models.RoleSystem:
			fmt.Fprintf(out, "  %s %s\n", console.SystemLabel.Render("[SYSTEM]"), truncate(m.Content, systemPreviewLen))
		case models.RoleUser:
			fmt.Fprintf(out, "\n  %s %s\n", console.UserLabel.Render("You:"), m.Content)
		case models.RoleAssistant:
			fmt.Fprintf(out, "\n  %s  %s\n", console.AssistantLabel.Render("AI:"), s.assistantText(m.Content))
		default:
			fmt.Fprintf(out, "\n  [%s] %s\n", m.Role, m.Content)
		}
	}
	fmt.Fprintln(out)
}

func (s *Session) assistantText(content string) string {
	if !s.opts.RenderMarkdown {
		return content
	}
	return "\n" + render.MarkdownOrPlain(content, s.opts.Render)
}

// truncate shortens text to max runes, marking the cut with "...".
func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max]), " ") + "..."
}
