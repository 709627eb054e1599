package web

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one chat turn in a session.
type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// sessionStore keeps per-session chat history in memory. History lives as
// long as the process, matching the original single-process UI session.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string][]Message
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string][]Message)}
}

func (s *sessionStore) newID() string {
	return uuid.NewString()
}

func (s *sessionStore) append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = append(s.sessions[id], Message{Role: role, Content: content, At: time.Now()})
}

func (s *sessionStore) history(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.sessions[id]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
