// Package session contains tab-session scoped adapters.
package session

import (
	"sync"

	"github.com/helena-commits/badge-capture-stream/internal/ports/secondary"
)

// MemoryStore implements secondary.SessionStore in process memory.
// Its contents vanish when the process exits, which is what a reload means here.
type MemoryStore struct {
	mu       sync.Mutex
	settings secondary.SessionSettings
}

// NewMemoryStore creates an empty session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadSession returns a copy of the current session settings.
func (s *MemoryStore) LoadSession() secondary.SessionSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySettings(s.settings)
}

// SaveSession replaces the session settings.
func (s *MemoryStore) SaveSession(settings secondary.SessionSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = copySettings(settings)
}

func copySettings(in secondary.SessionSettings) secondary.SessionSettings {
	out := secondary.SessionSettings{Armed: in.Armed}
	if len(in.DispatchedIDs) > 0 {
		out.DispatchedIDs = append([]string(nil), in.DispatchedIDs...)
	}
	return out
}

var _ secondary.SessionStore = (*MemoryStore)(nil)
