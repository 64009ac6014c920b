package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/models"
)

func TestStore_Summarize(t *testing.T) {
	store := newTestStore(t)

	msgs := []models.Message{
		models.SystemMessage("sys"),
		models.UserMessage("first question\nwith a newline"),
		models.AssistantMessage("answer"),
		models.UserMessage("second question"),
	}
	path, err := store.Save("gpt-4o", msgs, "")
	if err != nil {
		t.Fatal(err)
	}

	sum, err := store.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if sum.Model != "gpt-4o" {
		t.Errorf("Model = %s, want gpt-4o", sum.Model)
	}
	if sum.MessageCount != 4 {
		t.Errorf("MessageCount = %d, want 4", sum.MessageCount)
	}
	if sum.Preview != "first question with a newline" {
		t.Errorf("Preview = %q", sum.Preview)
	}
	if sum.Truncated {
		t.Error("short preview should not be truncated")
	}
	if sum.SavedAt == "unknown" || sum.SavedAt == "" {
		t.Errorf("SavedAt = %q", sum.SavedAt)
	}
	if sum.Name != filepath.Base(path) {
		t.Errorf("Name = %s", sum.Name)
	}
}

func TestStore_SummarizeLongPreview(t *testing.T) {
	store := newTestStore(t)

	long := strings.Repeat("é", 80)
	path, _ := store.Save("gpt-4o", []models.Message{models.UserMessage(long)}, "")

	sum, err := store.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if n := len([]rune(sum.Preview)); n != 60 {
		t.Errorf("preview has %d runes, want 60", n)
	}
	if !sum.Truncated {
		t.Error("expected Truncated")
	}
}

func TestStore_SummarizeMissingFields(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "chat_sparse.json")
	if err := os.WriteFile(path, []byte(`{"messages": [{"role": "system", "content": "s"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := store.Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if sum.Model != "unknown" || sum.SavedAt != "unknown" {
		t.Errorf("expected unknown model and saved_at, got %s / %s", sum.Model, sum.SavedAt)
	}
	if sum.Preview != "" {
		t.Errorf("expected empty preview, got %q", sum.Preview)
	}
}

func TestStore_SummarizeMalformed(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), "chat_broken.json")
	if err := os.WriteFile(path, []byte(`{"model": `), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := store.Summarize(path)
	var parseErr *apierrors.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestStore_SummarizeAll(t *testing.T) {
	store := newTestStore(t)

	good, _ := store.Save("gpt-4o", []models.Message{models.UserMessage("hi")}, "")
	bad := filepath.Join(store.Dir(), "chat_broken.json")
	_ = os.WriteFile(bad, []byte(`not json`), 0o644)

	sums, err := store.SummarizeAll()
	if err != nil {
		t.Fatalf("SummarizeAll failed: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}

	byPath := map[string]Summary{}
	for _, s := range sums {
		byPath[s.Path] = s
	}
	if byPath[good].Model != "gpt-4o" {
		t.Errorf("good chat model = %s", byPath[good].Model)
	}
	if byPath[bad].Model != "unreadable" {
		t.Errorf("broken chat model = %s, want unreadable", byPath[bad].Model)
	}
}
