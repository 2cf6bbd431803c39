package handlers

import (
	"net/http"

	"ftth-net.id/dashboard/internal/forms"
	"ftth-net.id/dashboard/internal/models"
)

type UserResponse struct {
	models.User
	RoleName string `json:"role_name"`
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.client(r).ListUsers(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load users.")
		return
	}

	matched := SearchUsers(users, r.URL.Query().Get("q"))
	out := make([]UserResponse, 0, len(matched))
	for _, u := range matched {
		u.Password = ""
		out = append(out, UserResponse{User: u, RoleName: models.RoleName(u.Role)})
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: out})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	u, err := h.client(r).GetUser(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load user data.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: forms.UserFormFrom(*u)})
}

// CreateUser registers the account through the public sign-up endpoint.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form forms.UserForm
	if !h.decode(w, r, &form) {
		return
	}
	u, err := form.User(false)
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).Register(r.Context(), u); err != nil {
		h.fail(w, r, err, "Failed to save user.")
		return
	}
	h.logger.Info("User created", "email", u.Email, "role", u.Role)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "User saved"})
}

// UpdateUser leaves the stored password alone when the form's is blank.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	var form forms.UserForm
	if !h.decode(w, r, &form) {
		return
	}
	u, err := form.User(true)
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).UpdateUser(r.Context(), id, u); err != nil {
		h.fail(w, r, err, "Failed to save user.")
		return
	}
	h.logger.Info("User updated", "user_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "User saved"})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.client(r).DeleteUser(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete user.")
		return
	}
	h.logger.Info("User deleted", "user_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "User deleted"})
}
