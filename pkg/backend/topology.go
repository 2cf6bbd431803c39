package backend

import (
	"context"
	"fmt"
	"net/http"

	"ftth-net.id/dashboard/internal/models"
)

type CreateNodeRequest struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalPorts  int     `json:"total_ports,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

type NodeDetailsRequest struct {
	Type       string `json:"type"`
	TotalPorts int    `json:"total_ports"`
	Brand      string `json:"brand"`
}

type CreateCableRequest struct {
	SourceNodeID int    `json:"source_node_id"`
	TargetNodeID int    `json:"target_node_id"`
	Type         string `json:"cable_type"`
	Description  string `json:"description"`
	Coordinates  string `json:"coordinates"`
}

type CablePathRequest struct {
	Coordinates string  `json:"coordinates"`
	LengthMeter float64 `json:"length_meter"`
}

func (c *Client) Topology(ctx context.Context) (*models.Topology, error) {
	var out models.Topology
	if err := c.do(ctx, http.MethodGet, "/api/topology", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateNode(ctx context.Context, req CreateNodeRequest) error {
	return c.do(ctx, http.MethodPost, "/api/nodes", req, nil)
}

// DeleteNode removes a node; the backend drops its cables.
func (c *Client) DeleteNode(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/nodes/%d", id), nil, nil)
}

func (c *Client) UpdateNodeDetails(ctx context.Context, id int, req NodeDetailsRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/nodes/%d/details", id), req, nil)
}

func (c *Client) CreateCable(ctx context.Context, req CreateCableRequest) error {
	return c.do(ctx, http.MethodPost, "/api/cables", req, nil)
}

func (c *Client) UpdateCablePath(ctx context.Context, id int, req CablePathRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/cables/%d/path", id), req, nil)
}

// Traffic

func (c *Client) TrafficForInterface(ctx context.Context, interfaceID int) ([]models.TrafficSample, error) {
	var out []models.TrafficSample
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/traffic/interface/%d", interfaceID), nil, &out)
	return out, err
}

// SyncTraffic asks the backend to poll every router immediately.
func (c *Client) SyncTraffic(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/traffic/sync-now", nil, nil)
}
