// Package session keeps per-visitor UI state: the shared search query, the
// theme and the signed-in staff identity. Each piece has one owner that
// mutates it; readers get snapshots.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ukydev/travel-agency/internal/models"
)

// ErrInvalidTheme is returned for a theme other than light or dark.
var ErrInvalidTheme = errors.New("theme must be light or dark")

// Search is the query shared by the header search box and the listings.
type Search struct {
	mu      sync.RWMutex
	query   string
	changed func()
}

// Set replaces the query.
func (s *Search) Set(query string) {
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
	notify(s.changed)
}

// Query returns the current query.
func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Active reports whether the query is non-blank.
func (s *Search) Active() bool {
	return strings.TrimSpace(s.Query()) != ""
}

// ThemeName is the UI color scheme.
type ThemeName string

const (
	ThemeLight ThemeName = "light"
	ThemeDark  ThemeName = "dark"
)

// Theme holds the visitor's color scheme.
type Theme struct {
	mu      sync.RWMutex
	name    ThemeName
	changed func()
}

// Set changes the theme.
func (t *Theme) Set(name ThemeName) error {
	if name != ThemeLight && name != ThemeDark {
		return ErrInvalidTheme
	}
	t.mu.Lock()
	t.name = name
	t.mu.Unlock()
	notify(t.changed)
	return nil
}

// Toggle flips between light and dark and returns the new theme.
func (t *Theme) Toggle() ThemeName {
	t.mu.Lock()
	if t.name == ThemeDark {
		t.name = ThemeLight
	} else {
		t.name = ThemeDark
	}
	name := t.name
	t.mu.Unlock()
	notify(t.changed)
	return name
}

// Name returns the current theme.
func (t *Theme) Name() ThemeName {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

// Auth holds the signed-in staff identity, if any.
type Auth struct {
	mu      sync.RWMutex
	claims  *models.Claims
	changed func()
}

// SignIn records the identity.
func (a *Auth) SignIn(claims *models.Claims) {
	c := *claims
	a.mu.Lock()
	a.claims = &c
	a.mu.Unlock()
	notify(a.changed)
}

// SignOut clears the identity.
func (a *Auth) SignOut() {
	a.mu.Lock()
	a.claims = nil
	a.mu.Unlock()
}

// User returns a copy of the signed-in identity.
func (a *Auth) User() (*models.Claims, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.claims == nil {
		return nil, false
	}
	c := *a.claims
	return &c, true
}

// Session is one visitor's state.
type Session struct {
	ID     string
	Search *Search
	Theme  *Theme
	Auth   *Auth

	mu       sync.Mutex
	lastSeen time.Time
	persist  func()
}

// View is the JSON snapshot of a session.
type View struct {
	ID           string         `json:"id"`
	Query        string         `json:"query"`
	SearchActive bool           `json:"search_active"`
	Theme        ThemeName      `json:"theme"`
	User         *models.Claims `json:"user,omitempty"`
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}

func newSession(id string, at time.Time) *Session {
	sess := &Session{ID: id, lastSeen: at}
	sess.Search = &Search{changed: sess.changed}
	sess.Theme = &Theme{name: ThemeLight, changed: sess.changed}
	sess.Auth = &Auth{changed: sess.changed}
	return sess
}

// changed runs the pending persist hook on the first write.
func (s *Session) changed() {
	s.mu.Lock()
	persist := s.persist
	s.persist = nil
	s.mu.Unlock()
	notify(persist)
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	v := View{
		ID:           s.ID,
		Query:        s.Search.Query(),
		SearchActive: s.Search.Active(),
		Theme:        s.Theme.Name(),
	}
	if user, ok := s.Auth.User(); ok {
		v.User = user
	}
	return v
}

func (s *Session) touch(at time.Time) {
	s.mu.Lock()
	s.lastSeen = at
	s.mu.Unlock()
}

func (s *Session) idleSince(at time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return at.Sub(s.lastSeen)
}

// Store keeps sessions in memory keyed by visitor id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	clock    func() time.Time
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A nil clock uses time.Now.
func NewStore(ttl time.Duration, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{sessions: make(map[string]*Session), ttl: ttl, clock: clock}
}

// Get returns the live session for id.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	now := s.clock()
	if s.ttl > 0 && sess.idleSince(now) > s.ttl {
		delete(s.sessions, id)
		return nil, false
	}
	sess.touch(now)
	return sess, true
}

// New creates a session with a fresh visitor id.
func (s *Store) New() *Session {
	sess := newSession(uuid.NewString(), s.clock())
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Pending creates a session that is stored only when one of its parts is
// first written. onStore then runs once.
func (s *Store) Pending(onStore func(*Session)) *Session {
	sess := newSession(uuid.NewString(), s.clock())
	sess.persist = func() {
		sess.touch(s.clock())
		s.mu.Lock()
		s.sessions[sess.ID] = sess
		s.mu.Unlock()
		if onStore != nil {
			onStore(sess)
		}
	}
	return sess
}

// Delete tears the session down.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ttl <= 0 {
		return 0
	}
	now := s.clock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
