package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"ftth-net.id/dashboard/internal/forms"
	"ftth-net.id/dashboard/internal/models"
	"ftth-net.id/dashboard/pkg/backend"
)

func (h *Handler) GetRouters(w http.ResponseWriter, r *http.Request) {
	routers, err := h.client(r).ListRouters(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load routers.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: SearchRouters(routers, r.URL.Query().Get("q"))})
}

// GetRouter returns the edit form for a router. "new" yields the blank form.
func (h *Handler) GetRouter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "new" {
		h.sendJSON(w, http.StatusOK, Response{Success: true, Data: forms.NewRouterForm()})
		return
	}

	router, err := h.client(r).GetRouter(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load router data.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: forms.RouterFormFrom(*router)})
}

func (h *Handler) CreateRouter(w http.ResponseWriter, r *http.Request) {
	var form forms.RouterForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := form.Validate(false); err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).CreateRouter(r.Context(), form.Router()); err != nil {
		h.fail(w, r, err, "Failed to save router.")
		return
	}
	h.logger.Info("Router created", "name", form.Name, "address", form.Address)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Router saved"})
}

func (h *Handler) UpdateRouter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var form forms.RouterForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := form.Validate(true); err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).UpdateRouter(r.Context(), id, form.Router()); err != nil {
		h.fail(w, r, err, "Failed to save router.")
		return
	}
	h.logger.Info("Router updated", "router_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Router saved"})
}

func (h *Handler) DeleteRouter(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.client(r).DeleteRouter(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete router.")
		return
	}
	h.logger.Info("Router deleted", "router_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Router deleted"})
}

type probeResult struct {
	Connected  bool               `json:"connected"`
	Form       forms.RouterForm   `json:"form"`
	SystemInfo *models.SystemInfo `json:"system_info,omitempty"`
}

// CheckConnection probes the device described by the submitted form and
// returns the form updated with what was learned. ?edit=1 relaxes the
// password requirement for stored routers.
func (h *Handler) CheckConnection(w http.ResponseWriter, r *http.Request) {
	var form forms.RouterForm
	if !h.decode(w, r, &form) {
		return
	}
	editing := r.URL.Query().Get("edit") != ""
	if err := form.ValidateProbe(editing); err != nil {
		h.invalid(w, err)
		return
	}

	info, err := h.client(r).TestConnection(r.Context(), form.Router())
	if err != nil {
		if backend.IsUnauthorized(err) {
			h.fail(w, r, err, forms.ProbeFallbackMessage)
			return
		}
		form.ApplyProbeFailure()
		h.logger.Info("Router unreachable", "address", form.Address, "error", err.Error())
		h.sendJSON(w, http.StatusOK, Response{
			Success: false,
			Error:   backend.Message(err, forms.ProbeFallbackMessage),
			Data:    probeResult{Connected: false, Form: form},
		})
		return
	}

	form.ApplyProbeSuccess(*info)
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Connected. Router status enabled.",
		Data:    probeResult{Connected: true, Form: form, SystemInfo: info},
	})
}

// ScanRouterInterfaces lists a router's live interfaces for the interface form.
func (h *Handler) ScanRouterInterfaces(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	scanned, err := h.client(r).ScanInterfaces(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to scan router interfaces.")
		return
	}
	if scanned == nil {
		scanned = []models.ScannedInterface{}
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: scanned})
}
