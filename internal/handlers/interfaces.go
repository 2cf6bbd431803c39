package handlers

import (
	"net/http"

	"ftth-net.id/dashboard/internal/forms"
	"ftth-net.id/dashboard/pkg/backend"
)

func (h *Handler) GetInterfaces(w http.ResponseWriter, r *http.Request) {
	ifaces, err := h.client(r).ListInterfaces(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load interfaces.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: SearchInterfaces(ifaces, r.URL.Query().Get("q"))})
}

func (h *Handler) GetInterface(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	iface, err := h.client(r).GetInterface(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load interface data.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Data: forms.InterfaceForm{
			RouterID:   iface.RouterID,
			Name:       iface.Name,
			IsExcluded: iface.IsExcluded == 1,
		},
	})
}

// InterfaceOptions feeds the router dropdown of the interface form.
func (h *Handler) InterfaceOptions(w http.ResponseWriter, r *http.Request) {
	routers, err := h.client(r).ListRouters(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load routers.")
		return
	}

	type option struct {
		ID      string `json:"router_id"`
		Name    string `json:"router_name"`
		Address string `json:"router_address"`
	}
	opts := make([]option, 0, len(routers))
	for _, rt := range routers {
		opts = append(opts, option{ID: rt.ID, Name: rt.Name, Address: rt.Address})
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: opts})
}

func (h *Handler) CreateInterface(w http.ResponseWriter, r *http.Request) {
	var form forms.InterfaceForm
	if !h.decode(w, r, &form) {
		return
	}
	if err := form.Validate(); err != nil {
		h.invalid(w, err)
		return
	}

	err := h.client(r).CreateInterface(r.Context(), backend.CreateInterfaceRequest{
		RouterID:   form.RouterID,
		Name:       form.Name,
		IsExcluded: form.ExcludedFlag(),
	})
	if err != nil {
		h.fail(w, r, err, "Failed to save monitored interface.")
		return
	}
	h.logger.Info("Interface added", "router_id", form.RouterID, "interface", form.Name)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Monitored interface saved"})
}

// UpdateInterface only changes the exclusion flag; renaming means deleting
// and adding the interface again.
func (h *Handler) UpdateInterface(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	var form forms.InterfaceForm
	if !h.decode(w, r, &form) {
		return
	}

	api := h.client(r)
	current, err := api.GetInterface(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load interface data.")
		return
	}

	if current.IsExcluded != form.ExcludedFlag() {
		if err := api.ToggleExclude(r.Context(), id); err != nil {
			h.fail(w, r, err, "Failed to update exclusion.")
			return
		}
	}
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Exclusion updated. To change the interface itself, delete it and add it again.",
	})
}

func (h *Handler) ToggleExclude(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.client(r).ToggleExclude(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to update exclusion.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Exclusion updated"})
}

func (h *Handler) DeleteInterface(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.client(r).DeleteInterface(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete interface.")
		return
	}
	h.logger.Info("Interface deleted", "interface_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Interface deleted"})
}
