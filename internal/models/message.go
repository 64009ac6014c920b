package models

// Message roles
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a conversation, in the shape it is sent to the
// API and stored in chat files.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

// SystemMessage returns a system message carrying content.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a user message carrying content.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant message carrying content.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// HasSystemPrompt reports whether messages starts with a system message.
func HasSystemPrompt(messages []Message) bool {
	return len(messages) > 0 && messages[0].Role == RoleSystem
}

// LastExchange returns the index of the last user message and, when the
// message right after it is an assistant reply, that index too. Both are
// -1 when absent.
func LastExchange(messages []Message) (user, assistant int) {
	user, assistant = -1, -1
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role != RoleUser {
			continue
		}
		user = i
		if i+1 < len(messages) && messages[i+1].Role == RoleAssistant {
			assistant = i + 1
		}
		return user, assistant
	}
	return user, assistant
}

// LastAssistant returns the content of the most recent assistant message.
func LastAssistant(messages []Message) (string, bool) {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == RoleAssistant {
			return messages[i].Content, true
		}
	}
	return "", false
}

// CountRole returns how many messages have the given role.
func CountRole(messages []Message, role string) int {
	n := 0
	for _, m := range messages {
		if m.Role == role {
			n++
		}
	}
	return n
}
