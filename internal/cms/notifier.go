package cms

import (
	"sync"
	"time"
)

// NotificationTTL is how long a notification stays visible.
const NotificationTTL = 3 * time.Second

// Level is the notification severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a transient status message shown to the editor.
type Notification struct {
	Level     Level     `json:"type"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notifier holds at most one notification. A newer notification replaces
// the current one; an expired one reads as absent.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   func() time.Time
	current *Notification
}

// NewNotifier creates a notifier. A nil clock uses time.Now.
func NewNotifier(ttl time.Duration, clock func() time.Time) *Notifier {
	if clock == nil {
		clock = time.Now
	}
	return &Notifier{ttl: ttl, clock: clock}
}

// Notify replaces the current notification.
func (n *Notifier) Notify(level Level, message string) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	note := Notification{Level: level, Message: message, ExpiresAt: n.clock().Add(n.ttl)}
	n.current = &note
	return note
}

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	if !n.clock().Before(n.current.ExpiresAt) {
		n.current = nil
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss clears the current notification.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.current = nil
	n.mu.Unlock()
}
