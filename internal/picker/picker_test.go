package picker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/console"
	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/history"
)

func TestModel_SelectByNumber(t *testing.T) {
	client := &api.MockClient{Models: []string{"gpt-4o", "whisper-1", "gpt-4o-mini"}}
	in := console.NewScriptedReader("2")
	var out bytes.Buffer

	model, err := Model(context.Background(), in, &out, client, "")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", model)
	}
	if strings.Contains(out.String(), "whisper-1") {
		t.Error("non-chat model should not be listed")
	}
	if !strings.Contains(out.String(), "Using model: gpt-4o-mini") {
		t.Errorf("missing confirmation in output:\n%s", out.String())
	}
}

func TestModel_RetriesUntilValid(t *testing.T) {
	client := &api.MockClient{Models: []string{"gpt-4o", "gpt-4o-mini"}}
	in := console.NewScriptedReader("", "7", "gpt-4", "nothing", "mini")
	var out bytes.Buffer

	model, err := Model(context.Background(), in, &out, client, "")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", model)
	}
	if len(in.Prompts) != 5 {
		t.Errorf("prompted %d times, want 5", len(in.Prompts))
	}

	text := out.String()
	for _, want := range []string{"Invalid number", "Multiple matches: gpt-4o, gpt-4o-mini", "Model not found"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestModel_ZeroIsNotCancel(t *testing.T) {
	client := &api.MockClient{Models: []string{"gpt-4o"}}
	in := console.NewScriptedReader("0", "1")
	var out bytes.Buffer

	model, err := Model(context.Background(), in, &out, client, "")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model != "gpt-4o" {
		t.Errorf("model = %s, want gpt-4o", model)
	}
}

func TestModel_FallbackCatalogOnError(t *testing.T) {
	client := &api.MockClient{ListErr: apierrors.NewAPIError(401, "models", "bad key")}
	in := console.NewScriptedReader("gpt-3.5-turbo")
	var out bytes.Buffer

	model, err := Model(context.Background(), in, &out, client, "")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model != "gpt-3.5-turbo" {
		t.Errorf("model = %s", model)
	}
	if !strings.Contains(out.String(), "Could not fetch models") {
		t.Errorf("expected fetch error notice:\n%s", out.String())
	}
}

func TestModel_EmptyCatalog(t *testing.T) {
	client := &api.MockClient{Models: []string{"whisper-1", "dall-e-3"}}
	in := console.NewScriptedReader()
	var out bytes.Buffer

	model, err := Model(context.Background(), in, &out, client, "")
	if err != nil {
		t.Fatalf("Model failed: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("model = %s, want gpt-4o-mini", model)
	}
	if !strings.Contains(out.String(), "No models found. Defaulting to gpt-4o-mini.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
	if len(in.Prompts) != 0 {
		t.Error("should not prompt when the catalog is empty")
	}
}

func TestModel_Aborted(t *testing.T) {
	client := &api.MockClient{Models: []string{"gpt-4o"}}
	in := console.NewScriptedReader("bogus")
	var out bytes.Buffer

	_, err := Model(context.Background(), in, &out, client, "")
	if !errors.Is(err, apierrors.ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}

// writeChat writes a chat file with an explicit mtime so listing order is
// deterministic.
func writeChat(t *testing.T, dir, name, body string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write chat: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return path
}

const (
	olderChat = `{"model":"gpt-4","saved_at":"2025-01-01T10:00:00Z","messages":[
		{"role":"system","content":"sys"},{"role":"user","content":"first question"}]}`
	newerChat = `{"model":"gpt-4o","saved_at":"2025-01-02T10:00:00Z","messages":[
		{"role":"system","content":"sys"},{"role":"user","content":"second question"},
		{"role":"assistant","content":"answer"}]}`
)

func newChatStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.NewStore(filepath.Join(t.TempDir(), "chats"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	base := time.Now().Add(-time.Hour)
	writeChat(t, store.Dir(), "chat_2025-01-01_10-00-00.json", olderChat, base)
	writeChat(t, store.Dir(), "chat_2025-01-02_10-00-00.json", newerChat, base.Add(time.Minute))
	return store
}

func TestSavedChat_NewestFirst(t *testing.T) {
	store := newChatStore(t)
	in := console.NewScriptedReader("1")
	var out bytes.Buffer

	loaded, err := SavedChat(in, &out, store)
	if err != nil {
		t.Fatalf("SavedChat failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a loaded chat")
	}
	if loaded.Model != "gpt-4o" || len(loaded.Messages) != 3 {
		t.Errorf("loaded = %+v", loaded)
	}
	if filepath.Base(loaded.Path) != "chat_2025-01-02_10-00-00.json" {
		t.Errorf("Path = %s", loaded.Path)
	}

	text := out.String()
	if !strings.Contains(text, "[gpt-4o] 2025-01-02T10:00:00Z (3 msgs)") {
		t.Errorf("missing summary line:\n%s", text)
	}
	if !strings.Contains(text, `"second question"`) {
		t.Errorf("missing preview:\n%s", text)
	}
	if !strings.Contains(text, "Loaded chat (3 messages, model: gpt-4o)") {
		t.Errorf("missing confirmation:\n%s", text)
	}
}

func TestSavedChat_ByName(t *testing.T) {
	store := newChatStore(t)
	in := console.NewScriptedReader("chat_2025", "01-01")
	var out bytes.Buffer

	loaded, err := SavedChat(in, &out, store)
	if err != nil {
		t.Fatalf("SavedChat failed: %v", err)
	}
	if loaded == nil || loaded.Model != "gpt-4" {
		t.Fatalf("loaded = %+v", loaded)
	}
	if !strings.Contains(out.String(), "Multiple matches") {
		t.Errorf("expected ambiguity report:\n%s", out.String())
	}
}

func TestSavedChat_Cancel(t *testing.T) {
	store := newChatStore(t)
	in := console.NewScriptedReader("0")
	var out bytes.Buffer

	loaded, err := SavedChat(in, &out, store)
	if err != nil {
		t.Fatalf("SavedChat failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("expected nil on cancel, got %+v", loaded)
	}
}

func TestSavedChat_NoChats(t *testing.T) {
	store, err := history.NewStore(filepath.Join(t.TempDir(), "chats"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	in := console.NewScriptedReader()
	var out bytes.Buffer

	loaded, err := SavedChat(in, &out, store)
	if err != nil || loaded != nil {
		t.Fatalf("SavedChat = %+v, %v", loaded, err)
	}
	if !strings.Contains(out.String(), "No saved chats found.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestSavedChat_MalformedFileIsReported(t *testing.T) {
	store := newChatStore(t)
	writeChat(t, store.Dir(), "chat_2025-01-03_10-00-00.json", "{not json", time.Now())
	in := console.NewScriptedReader("1", "2")
	var out bytes.Buffer

	loaded, err := SavedChat(in, &out, store)
	if err != nil {
		t.Fatalf("SavedChat failed: %v", err)
	}
	if loaded == nil || loaded.Model != "gpt-4o" {
		t.Fatalf("loaded = %+v", loaded)
	}

	text := out.String()
	if !strings.Contains(text, "[unreadable]") {
		t.Errorf("expected unreadable marker:\n%s", text)
	}
	if !strings.Contains(text, "Could not load chat_2025-01-03_10-00-00.json") {
		t.Errorf("expected load error report:\n%s", text)
	}
}

func TestSavedChat_Aborted(t *testing.T) {
	store := newChatStore(t)
	in := console.NewScriptedReader()
	var out bytes.Buffer

	_, err := SavedChat(in, &out, store)
	if !errors.Is(err, apierrors.ErrAborted) {
		t.Errorf("err = %v, want ErrAborted", err)
	}
}
