// Package models contains data types and constants for the chat API.
package models

import (
	"sort"
	"strings"
)

// DefaultModel is used when the catalog is empty and nothing else was chosen.
const DefaultModel = "gpt-4o-mini"

// chatModelPatterns are substrings that identify chat-capable model families
// in the listing returned by the API.
var chatModelPatterns = []string{"gpt-", "o1", "o3", "o4", "chatgpt"}

// FallbackModels returns the catalog used when the API cannot be reached.
func FallbackModels() []string {
	return []string{
		"gpt-4o-mini",
		"gpt-4o",
		"gpt-4",
		"gpt-3.5-turbo",
	}
}

// IsChatModel reports whether id names a chat-capable model.
func IsChatModel(id string) bool {
	for _, p := range chatModelPatterns {
		if strings.Contains(id, p) {
			return true
		}
	}
	return false
}

// FilterChatModels keeps the chat-capable ids and sorts them.
// The result is never nil.
func FilterChatModels(ids []string) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if IsChatModel(id) {
			result = append(result, id)
		}
	}
	sort.Strings(result)
	return result
}
