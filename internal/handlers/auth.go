package handlers

import (
	"net/http"

	"github.com/pkg/errors"

	"ftth-net.id/dashboard/internal/forms"
	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/session"
)

const adminHome = "/admin"

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req forms.Credentials
	if !h.decode(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		h.invalid(w, err)
		return
	}

	token, err := h.backend.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Warn("Login failed", "email", req.Email, "error", err.Error())
		h.fail(w, r, err, "Login failed. Please try again later.")
		return
	}

	identity, err := session.CheckLogin(token, h.now())
	if err != nil {
		status := http.StatusUnauthorized
		msg := "The server returned an invalid token."
		if errors.Is(err, session.ErrUnknownRole) {
			status = http.StatusForbidden
			msg = "Unrecognized user role."
		}
		h.logger.Warn("Login rejected", "email", req.Email, "reason", err.Error())
		h.sendJSON(w, status, Response{Success: false, Error: msg})
		return
	}

	if err := h.sessions.Save(w, r, token); err != nil {
		h.logger.Error("Failed to store session", "error", err.Error())
		h.sendJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to start session"})
		return
	}

	h.logger.Info("User logged in", "email", identity.Email, "role", identity.Role)

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data: map[string]interface{}{
			"user":     identity,
			"redirect": adminHome,
		},
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req forms.Registration
	if !h.decode(w, r, &req) {
		return
	}
	user, err := req.User()
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.backend.Register(r.Context(), user); err != nil {
		h.fail(w, r, err, "Registration failed.")
		return
	}

	h.logger.Info("User registered", "email", user.Email)

	h.sendJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Registration successful",
		Data:    map[string]string{"redirect": middleware.LoginPath},
	})
}

// Session tells the login page whether a usable session already exists.
// A stale or broken token is cleared.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	token := h.sessions.Token(r)
	identity, err := session.Check(token, h.now())
	if err != nil {
		if token != "" {
			_ = h.sessions.Clear(w, r)
		}
		h.sendJSON(w, http.StatusOK, Response{
			Success: true,
			Data:    map[string]interface{}{"authenticated": false},
		})
		return
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"authenticated": true,
			"user":          identity,
			"redirect":      adminHome,
		},
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Clear(w, r); err != nil {
		h.logger.Warn("Failed to clear session", "error", err.Error())
	}
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Logged out",
		Data:    map[string]string{"redirect": middleware.LoginPath},
	})
}
