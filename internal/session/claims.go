package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"ftth-net.id/dashboard/internal/models"
)

var (
	ErrNoToken      = errors.New("no session token")
	ErrInvalidToken = errors.New("session token could not be decoded")
	ErrExpired      = errors.New("session token expired")
	ErrUnknownRole  = errors.New("unrecognized user role")
)

// Identity is what the layout shows for the signed-in user. It is decoded
// from the token payload without verifying the signature and must only be
// used for labelling; the backend makes every access decision.
type Identity struct {
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      int       `json:"role"`
	RoleName  string    `json:"role_name"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(now)
}

// Decode reads the payload segment of token.
func Decode(token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}

	id := &Identity{
		Fullname: cast.ToString(claims["fullname"]),
		Email:    cast.ToString(claims["email"]),
		Role:     cast.ToInt(claims["role"]),
	}
	if exp, ok := claims["exp"]; ok {
		secs, err := cast.ToInt64E(exp)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidToken, "exp is not numeric")
		}
		id.ExpiresAt = time.Unix(secs, 0)
	}
	return id, nil
}

// Check decodes token and rejects it when expired at now. Missing display
// fields fall back to the defaults the layout has always shown.
func Check(token string, now time.Time) (*Identity, error) {
	id, err := Decode(token)
	if err != nil {
		return nil, err
	}
	if id.Expired(now) {
		return nil, ErrExpired
	}

	if id.Fullname == "" {
		id.Fullname = "Admin"
	}
	if id.Email == "" {
		id.Email = "admin@ftth.com"
	}
	if id.Role == 0 {
		id.Role = models.RoleAdmin
	}
	id.RoleName = models.RoleName(id.Role)
	return id, nil
}

// CheckLogin validates a freshly issued token before it is stored: the role
// claim must be one of the known roles.
func CheckLogin(token string, now time.Time) (*Identity, error) {
	id, err := Decode(token)
	if err != nil {
		return nil, err
	}
	switch id.Role {
	case models.RoleAdmin, models.RoleTechnician, models.RoleUser:
	default:
		return nil, ErrUnknownRole
	}
	if id.Expired(now) {
		return nil, ErrExpired
	}
	id.RoleName = models.RoleName(id.Role)
	return id, nil
}
