package handlers

import (
	"net/http"

	"github.com/ukydev/travel-agency/internal/session"
)

// SessionHandler exposes the visitor's shared UI state.
type SessionHandler struct{}

// NewSessionHandler creates a session handler
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func currentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "Session not found", http.StatusInternalServerError)
	}
	return sess, ok
}

// Get returns the session snapshot
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

// SetSearch replaces the shared search query
func (h *SessionHandler) SetSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Query string `json:"query"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	sess.Search.Set(req.Query)
	writeJSON(w, http.StatusOK, sess.View())
}

// SetTheme changes the theme. An empty theme toggles it.
func (h *SessionHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Theme session.ThemeName `json:"theme"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Theme == "" {
		sess.Theme.Toggle()
	} else if err := sess.Theme.Set(req.Theme); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}
