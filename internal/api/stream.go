package api

import (
	"context"
	"strings"

	"github.com/openai/openai-go/v3"

	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/models"
)

// Message is the conversation entry type sent to the API.
type Message = models.Message

// ConvertToOpenAIMessages maps conversation messages to SDK params.
// Unknown roles are sent as user messages.
func ConvertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case models.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case models.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}

// StreamChat sends the full message history to model and streams the
// reply. onDelta is called with every non-empty content fragment as soon
// as it arrives. The concatenated reply is returned.
//
// Transport and API failures come back as *errors.StreamError. A stream
// that ends without any content fragment returns errors.ErrNoContent
// (wrapped the same way), so an empty reply is never mistaken for success.
// Fragments delivered before a failure have already been passed to onDelta.
func (c *Client) StreamChat(ctx context.Context, model string, messages []Message, onDelta func(string)) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages: ConvertToOpenAIMessages(messages),
		Model:    openai.ChatModel(model),
	}

	stream := c.client.Chat.Completions.NewStreaming(ctx, params)
	defer stream.Close()

	var sb strings.Builder
	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		content := chunk.Choices[0].Delta.Content
		if content == "" {
			continue
		}
		sb.WriteString(content)
		if onDelta != nil {
			onDelta(content)
		}
	}

	if err := stream.Err(); err != nil {
		return sb.String(), apierrors.NewStreamError(model, wrapAPIError(err, EndpointChatCompletions))
	}

	if sb.Len() == 0 {
		return "", apierrors.NewStreamError(model, apierrors.ErrNoContent)
	}

	return sb.String(), nil
}
