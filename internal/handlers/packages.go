package handlers

import (
	"net/http"

	"ftth-net.id/dashboard/internal/forms"
)

func (h *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.client(r).ListPackages(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load packages.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: SearchPackages(pkgs, r.URL.Query().Get("q"))})
}

// GetPackage returns the edit form with the limit split into its parts.
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	pkg, err := h.client(r).GetPackage(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load package data.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: forms.PackageFormFrom(*pkg)})
}

func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var form forms.PackageForm
	if !h.decode(w, r, &form) {
		return
	}
	pkg, err := form.Package()
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).CreatePackage(r.Context(), pkg); err != nil {
		h.fail(w, r, err, "Failed to save package.")
		return
	}
	h.logger.Info("Package created", "name", pkg.Name, "limit", pkg.Limit)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Package saved"})
}

func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}

	var form forms.PackageForm
	if !h.decode(w, r, &form) {
		return
	}
	pkg, err := form.Package()
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).UpdatePackage(r.Context(), id, pkg); err != nil {
		h.fail(w, r, err, "Failed to save package.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Package saved"})
}

func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.client(r).DeletePackage(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete package.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Package deleted"})
}
