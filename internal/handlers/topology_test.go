package handlers

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftth-net.id/dashboard/internal/models"
	"ftth-net.id/dashboard/internal/topology"
)

func mapBackend(t *testing.T) *fakeBackend {
	return newFakeBackend(t, func(r *mux.Router) {
		r.HandleFunc("/api/topology", func(w http.ResponseWriter, _ *http.Request) {
			writeOK(w, models.Topology{
				Nodes: []models.Node{
					{ID: 1, Name: "ODP-01", Type: models.NodeODP, ODPDetail: &models.ODPDetail{}},
					{ID: 2, Name: "ODC-A", Type: models.NodeODC},
					{ID: 3, Name: "OLT-Core", Type: models.NodeOLT, OLTDetail: &models.OLTDetail{Brand: "ZTE"}},
				},
				Cables: []models.Cable{{
					ID:          7,
					SourceNode:  models.Node{Lat: 1, Lng: 1},
					TargetNode:  models.Node{Lat: 2, Lng: 2},
					Coordinates: "[]",
				}},
			})
		})
		r.HandleFunc("/api/nodes", func(w http.ResponseWriter, _ *http.Request) {
			writeOK(w, nil)
		}).Methods("POST")
		r.HandleFunc("/api/nodes/{id}", func(w http.ResponseWriter, _ *http.Request) {
			writeOK(w, nil)
		}).Methods("DELETE")
		r.HandleFunc("/api/nodes/{id}/details", func(w http.ResponseWriter, _ *http.Request) {
			writeOK(w, nil)
		}).Methods("PUT")
		r.HandleFunc("/api/cables", func(w http.ResponseWriter, _ *http.Request) {
			writeOK(w, nil)
		}).Methods("POST")
	})
}

func TestCreateNodeShapesRequest(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)

	rec, resp := env.do(t, http.MethodPost, "/admin/topology/nodes", map[string]interface{}{
		"type": "odp", "name": " ODP-02 ", "lat": -6.2, "lng": 106.8, "total_ports": 16, "brand": "ignored",
	})
	require.Equal(t, http.StatusCreated, rec.Code, resp.Error)

	sent := fb.body(t, "POST /api/nodes")
	assert.Equal(t, "ODP", sent["type"])
	assert.Equal(t, "ODP-02", sent["name"])
	assert.EqualValues(t, 16, sent["total_ports"])
	assert.NotContains(t, sent, "brand")

	var data struct {
		FlyTo topology.Point `json:"fly_to"`
	}
	decodeData(t, resp, &data)
	assert.Equal(t, topology.Point{-6.2, 106.8}, data.FlyTo)
}

func TestCreateNodeRejectsBadInput(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)

	rec, resp := env.do(t, http.MethodPost, "/admin/topology/nodes", map[string]interface{}{"type": "splitter", "name": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, topology.ErrUnknownNodeType.Error(), resp.Error)

	rec, resp = env.do(t, http.MethodPost, "/admin/topology/nodes", map[string]interface{}{"type": "TB", "name": "TB-1", "manual": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, topology.ErrMissingCoords.Error(), resp.Error)

	assert.Zero(t, fb.count("POST /api/nodes"))
}

func TestConnectNodes(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)

	rec, resp := env.do(t, http.MethodPost, "/admin/topology/cables", map[string]interface{}{
		"source_node_id": 1, "target_node_id": 1, "cable_type": "Drop",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, topology.ErrSameNode.Error(), resp.Error)
	assert.Zero(t, fb.count("POST /api/cables"))

	rec, resp = env.do(t, http.MethodPost, "/admin/topology/cables", map[string]interface{}{
		"source_node_id": 1, "target_node_id": 2, "cable_type": "Drop",
	})
	require.Equal(t, http.StatusCreated, rec.Code, resp.Error)
	sent := fb.body(t, "POST /api/cables")
	assert.Equal(t, "[]", sent["coordinates"])
	assert.Equal(t, "Drop", sent["cable_type"])
}

func TestNodeDetails(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)

	_, resp := env.do(t, http.MethodGet, "/admin/topology/nodes/1/details", nil)
	require.True(t, resp.Success, resp.Error)
	var odp struct {
		Type    string                  `json:"type"`
		Details topology.DetailsRequest `json:"details"`
	}
	decodeData(t, resp, &odp)
	assert.Equal(t, models.NodeODP, odp.Type)
	assert.Equal(t, topology.DefaultPorts, odp.Details.TotalPorts)

	rec, resp := env.do(t, http.MethodGet, "/admin/topology/nodes/2/details", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, resp.Success)
	assert.Equal(t, "no specific details for this type", resp.Message)

	rec, resp = env.do(t, http.MethodGet, "/admin/topology/nodes/99/details", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Node not found", resp.Error)

	_, resp = env.do(t, http.MethodPut, "/admin/topology/nodes/1/details", map[string]int{"total_ports": 24})
	require.True(t, resp.Success, resp.Error)
	sent := fb.body(t, "PUT /api/nodes/1/details")
	assert.Equal(t, models.NodeODP, sent["type"])
	assert.EqualValues(t, 24, sent["total_ports"])

	rec, _ = env.do(t, http.MethodPut, "/admin/topology/nodes/2/details", map[string]int{"total_ports": 24})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = env.do(t, http.MethodPut, "/admin/topology/nodes/99/details", map[string]int{"total_ports": 24})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, fb.count("PUT /api/nodes/1/details"))
}

func TestDeleteNode(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)

	_, resp := env.do(t, http.MethodDelete, "/admin/topology/nodes/3", nil)
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, 1, fb.count("DELETE /api/nodes/3"))

	rec, _ := env.do(t, http.MethodDelete, "/admin/topology/nodes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCableDraftsBelongToTheSessionToken(t *testing.T) {
	fb := mapBackend(t)
	env := newTestEnv(t, fb.URL)
	owner := env.token

	rec, _ := env.do(t, http.MethodPost, "/admin/topology/cables/7/draft", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same claims, different signature.
	env.token = forgeToken(t)
	rec, _ = env.do(t, http.MethodGet, "/admin/topology/cables/7/draft", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = env.do(t, http.MethodPost, "/admin/topology/cables/7/draft/points", map[string]float64{"lat": 5, "lng": 5})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	env.do(t, http.MethodDelete, "/admin/topology/cables/7/draft", nil)

	env.token = owner
	_, resp := env.do(t, http.MethodGet, "/admin/topology/cables/7/draft", nil)
	require.True(t, resp.Success, resp.Error)
	var d topology.Draft
	decodeData(t, resp, &d)
	assert.Equal(t, topology.Path{{1, 1}, {2, 2}}, d.Points)
}
