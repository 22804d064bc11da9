package http

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/YelzhanWeb/pizzaform/internal/interfaces"
)

const sessionCookie = "pizzaform_session"

// FormFactory creates the form backing a new browser session.
type FormFactory func() interfaces.OrderFormService

// SessionStore keeps one order form per browser session, in memory.
type SessionStore struct {
	mu      sync.RWMutex
	forms   map[string]interfaces.OrderFormService
	newForm FormFactory
}

func NewSessionStore(newForm FormFactory) *SessionStore {
	return &SessionStore{
		forms:   make(map[string]interfaces.OrderFormService),
		newForm: newForm,
	}
}

// Resolve returns the form for the request's session cookie, starting a new
// session when the cookie is missing or unknown. Session ids are always
// generated server side.
func (s *SessionStore) Resolve(w http.ResponseWriter, r *http.Request) (string, interfaces.OrderFormService) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.RLock()
		form, ok := s.forms[c.Value]
		s.mu.RUnlock()
		if ok {
			return c.Value, form
		}
	}

	id := uuid.NewString()
	form := s.newForm()

	s.mu.Lock()
	s.forms[id] = form
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, form
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.forms)
}
