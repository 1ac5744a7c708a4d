package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ChatFileName is the persisted chat transcript inside the data directory.
const ChatFileName = "chat.json"

// ChatMessage is one transcript entry.
type ChatMessage struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// LoadChat reads the persisted transcript. A missing or unreadable file
// yields an empty transcript; chat history is never worth failing startup
// over.
func (s *Store) LoadChat() []ChatMessage {
	data, err := os.ReadFile(filepath.Join(s.dir, ChatFileName))
	if err != nil {
		return nil
	}
	var msgs []ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return nil
	}
	return msgs
}

// SaveChat persists the transcript with the same atomic protocol as the
// task collection.
func (s *Store) SaveChat(msgs []ChatMessage) error {
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	data, err := json.MarshalIndent(msgs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chat transcript: %w", err)
	}
	path := filepath.Join(s.dir, ChatFileName)
	if err := writeFileAtomic(path, data); err != nil {
		if retryErr := writeFileAtomic(path, data); retryErr != nil {
			return fmt.Errorf("persist chat transcript: %w", retryErr)
		}
	}
	return nil
}

// ClearChat removes the persisted transcript.
func (s *Store) ClearChat() error {
	err := os.Remove(filepath.Join(s.dir, ChatFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
