package auth

import (
	"sync"

	"mise/internal/domain/entity"
	"mise/internal/domain/gateway"
)

// SessionHolder is the mutable in-memory seat of the current session. The
// session use case writes it on login/logout; the HTTP client reads it on
// every authenticated request through the gateway.TokenSource interface.
type SessionHolder struct {
	mu      sync.RWMutex
	session *entity.Session
}

// NewSessionHolder creates an empty holder.
func NewSessionHolder() *SessionHolder {
	return &SessionHolder{}
}

var _ gateway.TokenSource = (*SessionHolder)(nil)

// Set installs the session, replacing any previous one.
func (h *SessionHolder) Set(session *entity.Session) {
	h.mu.Lock()
	h.session = session
	h.mu.Unlock()
}

// Clear removes the session.
func (h *SessionHolder) Clear() {
	h.mu.Lock()
	h.session = nil
	h.mu.Unlock()
}

// Current returns a copy of the active session.
func (h *SessionHolder) Current() (entity.Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.session == nil {
		return entity.Session{}, false
	}

	return *h.session, true
}

// CurrentToken returns the bearer token of the active session.
func (h *SessionHolder) CurrentToken() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.session == nil || h.session.Token == "" {
		return "", false
	}

	return h.session.Token, true
}

// CurrentUserID returns the authenticated account identifier.
func (h *SessionHolder) CurrentUserID() (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.session == nil || h.session.UserID == "" {
		return "", false
	}

	return h.session.UserID, true
}
