package api

import (
	"net/http"
	"sync"

	"github.com/frantjc/cpm"
	"github.com/google/uuid"
)

// sessions maps a session ID to the project root loaded into it.
type sessions struct {
	mu    sync.RWMutex
	roots map[string]string
}

func (s *sessions) root(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.roots[id]
}

// set binds root to the session id if this server issued id,
// or to a newly issued session otherwise, and returns the session.
func (s *sessions) set(id, root string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.roots == nil {
		s.roots = map[string]string{}
	}

	if _, ok := s.roots[id]; !ok {
		id = uuid.NewString()
	}

	s.roots[id] = root

	return id
}

func sessionID(r *http.Request) string {
	if id := r.Header.Get(cpm.HeaderSession); id != "" {
		return id
	}

	if cookie, err := r.Cookie(cpm.CookieSession); err == nil {
		return cookie.Value
	}

	return ""
}
