package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestCheckFutureExpiryPopulatesIdentity(t *testing.T) {
	now := time.Now()
	token := sign(t, jwt.MapClaims{
		"fullname": "Rina Teknisi",
		"email":    "rina@ftth.net",
		"role":     2,
		"exp":      now.Add(time.Hour).Unix(),
	})

	id, err := Check(token, now)
	require.NoError(t, err)
	assert.Equal(t, "Rina Teknisi", id.Fullname)
	assert.Equal(t, "rina@ftth.net", id.Email)
	assert.Equal(t, 2, id.Role)
	assert.Equal(t, "Technician", id.RoleName)
}

func TestCheckPastExpiryIsRejected(t *testing.T) {
	now := time.Now()
	token := sign(t, jwt.MapClaims{
		"fullname": "Old",
		"email":    "old@ftth.net",
		"role":     1,
		"exp":      now.Add(-time.Minute).Unix(),
	})

	_, err := Check(token, now)
	assert.True(t, errors.Is(err, ErrExpired))
}

func TestCheckIgnoresSignature(t *testing.T) {
	// Signed with a key the dashboard never sees; decoding still works.
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "x@ftth.net", "role": 3, "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-key"))
	require.NoError(t, err)

	id, err := Check(token, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Admin", id.Fullname)
	assert.Equal(t, 3, id.Role)
}

func TestCheckGarbage(t *testing.T) {
	_, err := Check("not-a-token", time.Now())
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = Check("", time.Now())
	assert.True(t, errors.Is(err, ErrNoToken))
}

func TestCheckLoginRole(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	_, err := CheckLogin(sign(t, jwt.MapClaims{"role": 9, "exp": exp}), time.Now())
	assert.True(t, errors.Is(err, ErrUnknownRole))

	_, err = CheckLogin(sign(t, jwt.MapClaims{"exp": exp}), time.Now())
	assert.True(t, errors.Is(err, ErrUnknownRole))

	id, err := CheckLogin(sign(t, jwt.MapClaims{"role": 1, "exp": exp}), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "Admin", id.RoleName)
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore("0123456789abcdef0123456789abcdef", false)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	require.NoError(t, store.Save(rec, req, "abc.def.ghi"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	next := httptest.NewRequest(http.MethodGet, "/admin/layout", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	assert.Equal(t, "abc.def.ghi", store.Token(next))

	cleared := httptest.NewRecorder()
	require.NoError(t, store.Clear(cleared, next))
	require.NotEmpty(t, cleared.Result().Cookies())
	assert.True(t, cleared.Result().Cookies()[0].MaxAge < 0)
}
