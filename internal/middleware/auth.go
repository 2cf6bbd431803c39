package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ftth-net.id/dashboard/internal/session"
	"ftth-net.id/dashboard/pkg/logger"
)

type contextKey string

const (
	UserContextKey  contextKey = "user"
	TokenContextKey contextKey = "token"
)

const LoginPath = "/login"

// SessionGate guards /admin/*: it reads the stored token, decodes its claims
// and sends the browser back to the login page when there is nothing usable.
type SessionGate struct {
	store *session.Store
	log   *logger.Logger
	now   func() time.Time
}

func NewSessionGate(store *session.Store, log *logger.Logger) *SessionGate {
	return &SessionGate{store: store, log: log, now: time.Now}
}

// tokenFrom prefers the session cookie and falls back to a bearer header for
// non-browser callers.
func (g *SessionGate) tokenFrom(r *http.Request) string {
	if token := g.store.Token(r); token != "" {
		return token
	}
	authHeader := r.Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return strings.TrimSpace(token)
	}
	return ""
}

func (g *SessionGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := g.tokenFrom(r)

		identity, err := session.Check(token, g.now())
		if err != nil {
			if token != "" {
				g.log.Info("Session rejected", "path", r.URL.Path, "reason", err.Error())
			}
			_ = g.store.Clear(w, r)
			writeRedirect(w, http.StatusUnauthorized, err.Error(), LoginPath)
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, identity)
		ctx = context.WithValue(ctx, TokenContextKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetUserFromContext(r *http.Request) *session.Identity {
	identity, ok := r.Context().Value(UserContextKey).(*session.Identity)
	if !ok {
		return nil
	}
	return identity
}

func GetTokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(TokenContextKey).(string)
	return token
}

func writeRedirect(w http.ResponseWriter, status int, msg, location string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   msg,
		"data":    map[string]string{"redirect": location},
	})
}
