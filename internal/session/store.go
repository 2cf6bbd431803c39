package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "ftth_session"
	tokenKey   = "jwt_token"
)

// Store persists the backend token for a browser in a signed cookie. It is the
// only client state the dashboard keeps.
type Store struct {
	cookies *sessions.CookieStore
}

func NewStore(secret string, secure bool) *Store {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{cookies: cs}
}

// Token returns the stored token, or "" when none is stored or the cookie is unreadable.
func (s *Store) Token(r *http.Request) string {
	sess, err := s.cookies.Get(r, cookieName)
	if err != nil {
		return ""
	}
	token, _ := sess.Values[tokenKey].(string)
	return token
}

func (s *Store) Save(w http.ResponseWriter, r *http.Request, token string) error {
	sess, _ := s.cookies.Get(r, cookieName)
	sess.Values[tokenKey] = token
	return sess.Save(r, w)
}

func (s *Store) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.cookies.Get(r, cookieName)
	delete(sess.Values, tokenKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
