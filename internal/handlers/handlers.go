package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/spf13/cast"

	"ftth-net.id/dashboard/internal/forms"
	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/session"
	"ftth-net.id/dashboard/internal/topology"
	"ftth-net.id/dashboard/internal/traffic"
	"ftth-net.id/dashboard/pkg/backend"
	"ftth-net.id/dashboard/pkg/logger"
)

type Handler struct {
	backend  *backend.Client
	sessions *session.Store
	poller   *traffic.Poller
	drafts   topology.DraftStore
	logger   *logger.Logger
	location *time.Location
	now      func() time.Time
}

func New(api *backend.Client, sessions *session.Store, poller *traffic.Poller, drafts topology.DraftStore, l *logger.Logger) *Handler {
	return &Handler{
		backend:  api,
		sessions: sessions,
		poller:   poller,
		drafts:   drafts,
		logger:   l,
		location: time.Local,
		now:      time.Now,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) sendJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// client calls the backend as the signed-in user.
func (h *Handler) client(r *http.Request) *backend.Client {
	return h.backend.WithToken(middleware.GetTokenFromContext(r))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.sendJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return false
	}
	return true
}

// invalid answers a validation failure. Field errors are listed in data.
func (h *Handler) invalid(w http.ResponseWriter, err error) {
	resp := Response{Success: false, Error: err.Error()}
	var fieldErrs forms.Errors
	if errors.As(err, &fieldErrs) {
		resp.Data = map[string]interface{}{"fields": fieldErrs}
	}
	h.sendJSON(w, http.StatusBadRequest, resp)
}

// fail answers a backend failure with the backend's own message when it sent
// one. A rejected token ends the session.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	h.logger.Warn("Backend call failed", "path", r.URL.Path, "error", err.Error())

	if backend.IsUnauthorized(err) && middleware.GetTokenFromContext(r) != "" {
		_ = h.sessions.Clear(w, r)
		h.sendJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   backend.Message(err, "Session expired"),
			Data:    map[string]string{"redirect": middleware.LoginPath},
		})
		return
	}
	h.sendJSON(w, backend.StatusCode(err), Response{Success: false, Error: backend.Message(err, fallback)})
}

func pathInt(r *http.Request, name string) (int, error) {
	id, err := cast.ToIntE(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s", name)
	}
	return id, nil
}

// pathIndex reads a point index, where 0 is valid.
func pathIndex(r *http.Request) (int, error) {
	idx, err := cast.ToIntE(mux.Vars(r)["index"])
	if err != nil || idx < 0 {
		return 0, errors.New("invalid index")
	}
	return idx, nil
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"version":   "1.0.0",
		"timestamp": h.now().Format(time.RFC3339),
	}
	if h.poller != nil {
		if updated := h.poller.Snapshot().UpdatedAt; !updated.IsZero() {
			data["traffic_updated_at"] = updated.Format(time.RFC3339)
		}
	}

	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "FTTH dashboard is running",
		Data:    data,
	})
}
