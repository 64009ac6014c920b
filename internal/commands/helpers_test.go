package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diogo/gptchat/internal/api"
	"github.com/diogo/gptchat/internal/config"
	"github.com/diogo/gptchat/internal/console"
)

func TestMain(m *testing.M) {
	console.DisableColor()
	os.Exit(m.Run())
}

// setupHome points the data directory at a temp dir and clears the API
// key for the duration of the test.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvBaseURL, "")
	unsetEnv(t, config.EnvAPIKey)
	return home
}

// unsetEnv removes key and restores its previous value on cleanup. Unlike
// t.Setenv(key, "") the variable is absent, so .env files can supply it.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	prev, had := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			os.Setenv(key, prev)
		} else {
			os.Unsetenv(key)
		}
	})
}

type fakeDeps struct {
	*Dependencies
	out    *bytes.Buffer
	err    *bytes.Buffer
	gotKey string
}

func newFakeDeps(client *api.MockClient, in *console.ScriptedReader) *fakeDeps {
	f := &fakeDeps{out: &bytes.Buffer{}, err: &bytes.Buffer{}}
	f.Dependencies = &Dependencies{
		NewClient: func(apiKey string, cfg config.Config) (api.ChatClient, error) {
			f.gotKey = apiKey
			return client, nil
		},
		NewInput: func(historyFile string) Input {
			return in
		},
		Out: f.out,
		Err: f.err,
	}
	return f
}

const (
	olderChat = `{"model":"gpt-4","saved_at":"2025-01-01T10:00:00Z","messages":[
		{"role":"system","content":"sys"},{"role":"user","content":"first question"}]}`
	newerChat = `{"model":"gpt-4o","saved_at":"2025-01-02T10:00:00Z","messages":[
		{"role":"system","content":"sys"},{"role":"user","content":"second question"},
		{"role":"assistant","content":"second answer"}]}`
)

// writeChats creates two chat files in the data directory's chats dir,
// the 2025-01-02 one being newer.
func writeChats(t *testing.T, home string) string {
	t.Helper()
	dir := filepath.Join(home, "chats")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	files := []struct {
		name string
		body string
		at   time.Time
	}{
		{"chat_2025-01-01_10-00-00.json", olderChat, base},
		{"chat_2025-01-02_10-00-00.json", newerChat, base.Add(time.Minute)},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.body), 0o644); err != nil {
			t.Fatalf("write chat: %v", err)
		}
		if err := os.Chtimes(path, f.at, f.at); err != nil {
			t.Fatalf("chtimes: %v", err)
		}
	}
	return dir
}
