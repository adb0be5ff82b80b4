package store

import (
	"strings"
	"time"
)

const chatTimeLayout = "15:04"

// AppendChat stamps and appends a chat message. A blank message is silently
// ignored rather than rejected.
func (s *Store) AppendChat(sender, message string) (*ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := ChatMessage{
		Sender:    sender,
		Message:   message,
		Timestamp: time.Now().Format(chatTimeLayout),
	}
	s.doc.Chat = append(s.doc.Chat, m)
	if err := s.save(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ChatMessages returns the chat log in insertion order.
func (s *Store) ChatMessages() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ChatMessage, len(s.doc.Chat))
	copy(out, s.doc.Chat)
	return out
}
