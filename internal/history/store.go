// Package history provides local chat file storage.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	apierrors "github.com/diogo/gptchat/internal/errors"
	"github.com/diogo/gptchat/internal/models"
)

// File naming for saved chats
const (
	filePrefix     = "chat_"
	fileExt        = ".json"
	filePattern    = filePrefix + "*" + fileExt
	fileTimeLayout = "2006-01-02_15-04-05"
)

// ChatFile is the on-disk snapshot of one conversation.
type ChatFile struct {
	Model    string           `json:"model"`
	SavedAt  time.Time        `json:"saved_at"`
	Messages []models.Message `json:"messages"`
}

// Store manages chat files inside a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chats directory: %w", err)
	}

	return &Store{
		dir: dir,
		now: time.Now,
	}, nil
}

// Dir returns the directory holding the chat files.
func (s *Store) Dir() string {
	return s.dir
}

// FileNameFor returns the chat file name for a save made at t.
func FileNameFor(t time.Time) string {
	return filePrefix + t.Format(fileTimeLayout) + fileExt
}

// Save writes model and messages to existingPath, or to a new timestamped
// file when existingPath is empty. It returns the path written so the
// caller can reuse it for later saves.
func (s *Store) Save(model string, messages []models.Message, existingPath string) (string, error) {
	now := s.now()
	if messages == nil {
		messages = []models.Message{}
	}

	data, err := json.MarshalIndent(ChatFile{
		Model:    model,
		SavedAt:  now,
		Messages: messages,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat: %w", err)
	}

	path := existingPath
	if path == "" {
		path = filepath.Join(s.dir, FileNameFor(now))
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write chat: %w", err)
	}

	return path, nil
}

// List returns the saved chat files, most recently modified first.
func (s *Store) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, filePattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}

	type entry struct {
		path  string
		mtime time.Time
	}
	entries := make([]entry, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		entries = append(entries, entry{path: p, mtime: info.ModTime()})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].mtime.After(entries[j].mtime)
	})

	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.path
	}
	return result, nil
}

// Load reads a chat file and returns its model and messages. Invalid JSON,
// a missing model or messages field, or an unknown role yield a
// *errors.ParseError.
func (s *Store) Load(path string) (string, []models.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read chat: %w", err)
	}

	var raw struct {
		Model    *string           `json:"model"`
		Messages *[]models.Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", nil, apierrors.NewParseError(err.Error(), path)
	}
	if raw.Model == nil {
		return "", nil, apierrors.NewParseError(`missing field "model"`, path)
	}
	if raw.Messages == nil {
		return "", nil, apierrors.NewParseError(`missing field "messages"`, path)
	}

	for i, m := range *raw.Messages {
		switch m.Role {
		case models.RoleSystem, models.RoleUser, models.RoleAssistant:
		default:
			return "", nil, apierrors.NewParseError(fmt.Sprintf("message %d has invalid role %q", i, m.Role), path)
		}
	}

	return *raw.Model, *raw.Messages, nil
}

// Delete removes a chat file.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("chat not found: %s", filepath.Base(path))
		}
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".chat-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
