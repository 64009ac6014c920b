package history

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/diogo/gptchat/internal/models"
)

// ExportMarkdown renders a chat file as a Markdown document.
func (s *Store) ExportMarkdown(path string) (string, error) {
	model, messages, err := s.Load(path)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(strings.TrimSuffix(filepath.Base(path), fileExt))
	sb.WriteString("\n\n")

	sb.WriteString("**Model:** ")
	sb.WriteString(model)
	sb.WriteString("\n")
	sb.WriteString("**Messages:** ")
	sb.WriteString(fmt.Sprintf("%d", len(messages)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range messages {
		var role string
		switch msg.Role {
		case models.RoleSystem:
			role = "System"
		case models.RoleAssistant:
			role = "Assistant"
		default:
			role = "User"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString("\n\n")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")

		if i < len(messages)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String(), nil
}

// SearchResult is a chat file whose messages contain a query.
type SearchResult struct {
	Path         string
	Model        string
	MatchSnippet string
	MatchIndex   int
}

// Search returns the chats with a message containing query
// (case-insensitive), newest first, one result per chat. Unreadable files
// are skipped.
func (s *Store) Search(query string) ([]SearchResult, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}

	queryLower := strings.ToLower(query)
	var results []SearchResult
	for _, p := range paths {
		model, messages, err := s.Load(p)
		if err != nil {
			continue
		}
		for i, msg := range messages {
			if strings.Contains(strings.ToLower(msg.Content), queryLower) {
				results = append(results, SearchResult{
					Path:         p,
					Model:        model,
					MatchSnippet: extractSnippet(msg.Content, query, 100),
					MatchIndex:   i,
				})
				break
			}
		}
	}
	return results, nil
}

// extractSnippet extracts a snippet around the first occurrence of query
func extractSnippet(content, query string, maxLen int) string {
	contentLower := strings.ToLower(content)
	queryLower := strings.ToLower(query)

	idx := strings.Index(contentLower, queryLower)
	if idx == -1 {
		if len(content) > maxLen {
			return content[:maxLen] + "..."
		}
		return content
	}

	half := maxLen / 2
	start := idx - half
	end := idx + len(query) + half

	if start < 0 {
		start = 0
		end = maxLen
	}
	if end > len(content) {
		end = len(content)
		start = end - maxLen
		if start < 0 {
			start = 0
		}
	}

	snippet := strings.ReplaceAll(content[start:end], "\n", " ")

	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet = snippet + "..."
	}

	return snippet
}
