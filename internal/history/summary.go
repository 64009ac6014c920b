package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/gptchat/internal/errors"
)

// previewLen is the number of characters of the first user message shown
// in chat listings.
const previewLen = 60

// Summary is the listing view of a chat file.
type Summary struct {
	Path         string
	Name         string
	Model        string
	SavedAt      string
	MessageCount int
	Preview      string
	Truncated    bool
}

// Summarize reads the listing fields of a chat file without decoding the
// whole transcript. Missing model or saved_at read as "unknown".
func (s *Store) Summarize(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to read chat: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Summary{}, apierrors.NewParseError("invalid JSON", path)
	}

	sum := Summary{
		Path:         path,
		Name:         filepath.Base(path),
		Model:        "unknown",
		SavedAt:      "unknown",
		MessageCount: int(gjson.GetBytes(data, "messages.#").Int()),
	}

	if v := gjson.GetBytes(data, "model"); v.Exists() {
		sum.Model = v.String()
	}
	if v := gjson.GetBytes(data, "saved_at"); v.Exists() {
		sum.SavedAt = v.String()
	}

	first := gjson.GetBytes(data, `messages.#(role=="user").content`)
	if first.Exists() {
		sum.Preview, sum.Truncated = preview(first.String(), previewLen)
	}

	return sum, nil
}

// SummarizeAll summarizes every listed chat. Files that cannot be read are
// returned with Model "unreadable" so they still occupy their slot in the
// numbered list.
func (s *Store) SummarizeAll() ([]Summary, error) {
	paths, err := s.List()
	if err != nil {
		return nil, err
	}

	result := make([]Summary, 0, len(paths))
	for _, p := range paths {
		sum, err := s.Summarize(p)
		if err != nil {
			sum = Summary{
				Path:    p,
				Name:    filepath.Base(p),
				Model:   "unreadable",
				SavedAt: "unknown",
			}
		}
		result = append(result, sum)
	}
	return result, nil
}

// preview cuts text to max runes on a single line.
func preview(text string, max int) (string, bool) {
	runes := []rune(text)
	truncated := len(runes) >= max
	if len(runes) > max {
		runes = runes[:max]
	}
	return strings.ReplaceAll(string(runes), "\n", " "), truncated
}
