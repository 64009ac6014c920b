package api

import (
	"context"
	"strings"
)

// MockClient is a scripted ChatClient for tests.
type MockClient struct {
	// Mock return values
	Models    []string
	ListErr   error
	Replies   [][]string // fragments per StreamChat call, consumed in order
	StreamErr error      // returned after the fragments of the current reply

	// Call counters/recorders
	ListCalls    int
	StreamCalls  int
	LastModel    string
	LastMessages []Message
}

// Ensure MockClient implements ChatClient
var _ ChatClient = (*MockClient)(nil)

func (m *MockClient) ListModels(ctx context.Context) ([]string, error) {
	m.ListCalls++
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Models, nil
}

func (m *MockClient) StreamChat(ctx context.Context, model string, messages []Message, onDelta func(string)) (string, error) {
	m.StreamCalls++
	m.LastModel = model
	m.LastMessages = append([]Message(nil), messages...)

	var fragments []string
	if len(m.Replies) > 0 {
		fragments = m.Replies[0]
		m.Replies = m.Replies[1:]
	}

	var sb strings.Builder
	for _, f := range fragments {
		sb.WriteString(f)
		if onDelta != nil {
			onDelta(f)
		}
	}

	if m.StreamErr != nil {
		return sb.String(), m.StreamErr
	}
	return sb.String(), nil
}
