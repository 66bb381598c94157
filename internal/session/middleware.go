package session

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the visitor id.
const CookieName = "visitor_id"

type contextKey string

const sessionContextKey contextKey = "session"

// Middleware attaches the visitor's session to the request context. When the
// cookie is missing, malformed or expired the request gets a pending session;
// it is stored and its cookie issued only if a handler writes to it.
func (s *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(CookieName); err == nil {
			if _, err := uuid.Parse(c.Value); err == nil {
				sess, _ = s.Get(c.Value)
			}
		}
		if sess == nil {
			sess = s.Pending(func(sess *Session) {
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					MaxAge:   int(s.ttl.Seconds()),
				})
			})
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}

// NewContext returns a context carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// FromContext extracts the session from ctx.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*Session)
	return sess, ok
}
