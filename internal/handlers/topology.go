package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/pkg/errors"

	"ftth-net.id/dashboard/internal/middleware"
	"ftth-net.id/dashboard/internal/models"
	"ftth-net.id/dashboard/internal/topology"
	"ftth-net.id/dashboard/pkg/backend"
)

// draftOwner keys cable drafts to the caller's session token. Claims are not
// verified here, so the key is derived from the whole token rather than the
// email inside it.
func draftOwner(r *http.Request) string {
	token := middleware.GetTokenFromContext(r)
	if token == "" {
		return "anonymous"
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (h *Handler) Topology(w http.ResponseWriter, r *http.Request) {
	topo, err := h.client(r).Topology(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load the network map.")
		return
	}

	drafts, err := h.drafts.List(r.Context(), draftOwner(r))
	if err != nil {
		h.logger.Warn("Cable drafts unavailable", "error", err.Error())
		drafts = nil
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: topology.BuildView(topo, drafts)})
}

func (h *Handler) SearchNode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	topo, err := h.client(r).Topology(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load the network map.")
		return
	}

	node, ok := topology.FindNode(topo.Nodes, q)
	if !ok {
		h.sendJSON(w, http.StatusNotFound, Response{Success: false, Error: "Node not found"})
		return
	}
	h.sendJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Found: " + node.Name,
		Data: map[string]interface{}{
			"node":   node,
			"fly_to": topology.Point{node.Lat, node.Lng},
		},
	})
}

func (h *Handler) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req topology.NodeRequest
	if !h.decode(w, r, &req) {
		return
	}
	body, err := req.Backend()
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).CreateNode(r.Context(), body); err != nil {
		h.fail(w, r, err, "Failed to add node.")
		return
	}
	h.logger.Info("Node added", "type", body.Type, "name", body.Name)
	h.sendJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Node added",
		Data:    map[string]interface{}{"fly_to": topology.Point{body.Lat, body.Lng}},
	})
}

// DeleteNode removes a node; the backend removes its cables with it.
func (h *Handler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.client(r).DeleteNode(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete node.")
		return
	}
	h.logger.Info("Node deleted", "node_id", id)
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Node and its cables deleted"})
}

func (h *Handler) findNode(ctx context.Context, api *backend.Client, id int) (models.Node, error) {
	topo, err := api.Topology(ctx)
	if err != nil {
		return models.Node{}, err
	}
	for _, n := range topo.Nodes {
		if n.ID == id {
			return n, nil
		}
	}
	return models.Node{}, &backend.APIError{Status: http.StatusNotFound, Message: "Node not found"}
}

// GetNodeDetails returns the pre-filled detail editor for a node.
func (h *Handler) GetNodeDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	node, err := h.findNode(r.Context(), h.client(r), id)
	if err != nil {
		h.fail(w, r, err, "Failed to load node.")
		return
	}

	defaults, err := topology.DetailsDefaults(node)
	if err != nil {
		h.sendJSON(w, http.StatusOK, Response{Success: false, Message: err.Error()})
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"type":    node.Type,
		"details": defaults,
	}})
}

func (h *Handler) UpdateNodeDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	var req topology.DetailsRequest
	if !h.decode(w, r, &req) {
		return
	}

	api := h.client(r)
	node, err := h.findNode(r.Context(), api, id)
	if err != nil {
		h.fail(w, r, err, "Failed to load node.")
		return
	}
	body, err := topology.DetailsFor(node, req)
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := api.UpdateNodeDetails(r.Context(), id, body); err != nil {
		h.fail(w, r, err, "Update failed.")
		return
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Updated"})
}

func (h *Handler) CreateCable(w http.ResponseWriter, r *http.Request) {
	var req topology.CableRequest
	if !h.decode(w, r, &req) {
		return
	}
	body, err := req.Backend()
	if err != nil {
		h.invalid(w, err)
		return
	}

	if err := h.client(r).CreateCable(r.Context(), body); err != nil {
		h.fail(w, r, err, "Failed to connect nodes.")
		return
	}
	h.logger.Info("Cable added", "source", body.SourceNodeID, "target", body.TargetNodeID)
	h.sendJSON(w, http.StatusCreated, Response{Success: true, Message: "Cable connected"})
}

// Cable path drafts

func (h *Handler) sendDraft(w http.ResponseWriter, status int, d *topology.Draft) {
	h.sendJSON(w, status, Response{Success: true, Data: d})
}

func (h *Handler) loadDraft(w http.ResponseWriter, r *http.Request) (*topology.Draft, bool) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return nil, false
	}
	d, err := h.drafts.Get(r.Context(), draftOwner(r), id)
	if errors.Is(err, topology.ErrNoDraft) {
		h.sendJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return nil, false
	}
	if err != nil {
		h.logger.Error("Failed to load cable draft", "error", err.Error())
		h.sendJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to load cable draft"})
		return nil, false
	}
	return d, true
}

func (h *Handler) storeDraft(w http.ResponseWriter, r *http.Request, d *topology.Draft, status int) {
	if err := h.drafts.Put(r.Context(), draftOwner(r), d); err != nil {
		h.logger.Error("Failed to store cable draft", "error", err.Error())
		h.sendJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to store cable draft"})
		return
	}
	h.sendDraft(w, status, d)
}

// StartCableEdit opens a draft from the cable's current path.
func (h *Handler) StartCableEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	topo, err := h.client(r).Topology(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to load the network map.")
		return
	}
	cable, ok := topology.FindCable(topo.Cables, id)
	if !ok {
		h.sendJSON(w, http.StatusNotFound, Response{Success: false, Error: "Cable not found"})
		return
	}
	h.storeDraft(w, r, topology.StartDraft(cable), http.StatusCreated)
}

func (h *Handler) GetCableDraft(w http.ResponseWriter, r *http.Request) {
	if d, ok := h.loadDraft(w, r); ok {
		h.sendDraft(w, http.StatusOK, d)
	}
}

type pointRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddCablePoint handles a click on the line being edited.
func (h *Handler) AddCablePoint(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDraft(w, r)
	if !ok {
		return
	}
	var p pointRequest
	if !h.decode(w, r, &p) {
		return
	}
	d.Insert(topology.Point{p.Lat, p.Lng})
	h.storeDraft(w, r, d, http.StatusOK)
}

func (h *Handler) MoveCablePoint(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDraft(w, r)
	if !ok {
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		h.invalid(w, err)
		return
	}
	var p pointRequest
	if !h.decode(w, r, &p) {
		return
	}
	if err := d.Move(idx, topology.Point{p.Lat, p.Lng}); err != nil {
		h.invalid(w, err)
		return
	}
	h.storeDraft(w, r, d, http.StatusOK)
}

func (h *Handler) RemoveCablePoint(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDraft(w, r)
	if !ok {
		return
	}
	idx, err := pathIndex(r)
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := d.Remove(idx); err != nil {
		h.invalid(w, err)
		return
	}
	h.storeDraft(w, r, d, http.StatusOK)
}

// SaveCablePath persists the draft as the cable's path and closes it.
func (h *Handler) SaveCablePath(w http.ResponseWriter, r *http.Request) {
	d, ok := h.loadDraft(w, r)
	if !ok {
		return
	}
	coords, err := d.Points.Serialize()
	if err != nil {
		h.sendJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to encode path"})
		return
	}

	err = h.client(r).UpdateCablePath(r.Context(), d.CableID, backend.CablePathRequest{Coordinates: coords, LengthMeter: 0})
	if err != nil {
		h.fail(w, r, err, "Failed to save path.")
		return
	}
	if err := h.drafts.Delete(r.Context(), draftOwner(r), d.CableID); err != nil {
		h.logger.Warn("Failed to drop saved cable draft", "cable_id", d.CableID, "error", err.Error())
	}
	h.logger.Info("Cable path saved", "cable_id", d.CableID, "points", len(d.Points))
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Path saved"})
}

func (h *Handler) CancelCableEdit(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		h.invalid(w, err)
		return
	}
	if err := h.drafts.Delete(r.Context(), draftOwner(r), id); err != nil {
		h.logger.Warn("Failed to drop cable draft", "cable_id", id, "error", err.Error())
	}
	h.sendJSON(w, http.StatusOK, Response{Success: true, Message: "Edit cancelled"})
}
