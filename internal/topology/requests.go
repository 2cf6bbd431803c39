package topology

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"ftth-net.id/dashboard/internal/models"
	"ftth-net.id/dashboard/pkg/backend"
)

var (
	ErrUnknownNodeType  = errors.New("node type must be one of ODP, ODC, OLT, ROUTER, TB, CLIENT")
	ErrNameRequired     = errors.New("node name is required")
	ErrMissingCoords    = errors.New("coordinates are required")
	ErrSameNode         = errors.New("a cable needs two different nodes")
	ErrCableTypeMissing = errors.New("cable type is required")
	ErrNoDetails        = errors.New("no specific details for this type")
)

var validate = validator.New()

// NodeRequest adds a node either from a map click (Manual false) or from
// typed coordinates, which must both be set.
type NodeRequest struct {
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TotalPorts  int     `json:"total_ports"`
	Brand       string  `json:"brand"`
	Lat         float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng         float64 `json:"lng" validate:"gte=-180,lte=180"`
	Manual      bool    `json:"manual"`
}

func (r NodeRequest) Backend() (backend.CreateNodeRequest, error) {
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Name = strings.TrimSpace(r.Name)

	if !models.IsNodeType(r.Type) {
		return backend.CreateNodeRequest{}, ErrUnknownNodeType
	}
	if r.Name == "" {
		return backend.CreateNodeRequest{}, ErrNameRequired
	}
	if r.Manual && (r.Lat == 0 || r.Lng == 0) {
		return backend.CreateNodeRequest{}, ErrMissingCoords
	}
	if err := validate.Struct(r); err != nil {
		return backend.CreateNodeRequest{}, errors.New("coordinates are out of range")
	}

	req := backend.CreateNodeRequest{
		Type:        r.Type,
		Name:        r.Name,
		Description: r.Description,
		Lat:         r.Lat,
		Lng:         r.Lng,
	}
	switch r.Type {
	case models.NodeODP:
		req.TotalPorts = r.TotalPorts
	case models.NodeOLT:
		req.Brand = r.Brand
	}
	return req, nil
}

type CableRequest struct {
	SourceNodeID int    `json:"source_node_id" validate:"required"`
	TargetNodeID int    `json:"target_node_id" validate:"required"`
	Type         string `json:"cable_type"`
	Description  string `json:"description"`
}

// Backend builds the create call. New cables start without a drawn path.
func (r CableRequest) Backend() (backend.CreateCableRequest, error) {
	if err := validate.Struct(r); err != nil {
		return backend.CreateCableRequest{}, errors.New("source and target nodes are required")
	}
	if r.SourceNodeID == r.TargetNodeID {
		return backend.CreateCableRequest{}, ErrSameNode
	}
	if strings.TrimSpace(r.Type) == "" {
		return backend.CreateCableRequest{}, ErrCableTypeMissing
	}
	return backend.CreateCableRequest{
		SourceNodeID: r.SourceNodeID,
		TargetNodeID: r.TargetNodeID,
		Type:         strings.TrimSpace(r.Type),
		Description:  r.Description,
		Coordinates:  "[]",
	}, nil
}

type DetailsRequest struct {
	TotalPorts int    `json:"total_ports"`
	Brand      string `json:"brand"`
}

// DetailsFor builds the detail update for node. Only ODPs (port count) and
// OLTs (brand) carry editable details.
func DetailsFor(node models.Node, r DetailsRequest) (backend.NodeDetailsRequest, error) {
	switch node.Type {
	case models.NodeODP:
		if r.TotalPorts < 1 {
			return backend.NodeDetailsRequest{}, errors.New("total ports must be at least 1")
		}
		return backend.NodeDetailsRequest{Type: node.Type, TotalPorts: r.TotalPorts}, nil
	case models.NodeOLT:
		return backend.NodeDetailsRequest{Type: node.Type, Brand: strings.TrimSpace(r.Brand)}, nil
	default:
		return backend.NodeDetailsRequest{}, ErrNoDetails
	}
}

// DefaultPorts is the port count offered when an ODP has none recorded.
const DefaultPorts = 8

// DetailsDefaults is what the detail editor is pre-filled with.
func DetailsDefaults(node models.Node) (DetailsRequest, error) {
	switch node.Type {
	case models.NodeODP:
		d := DetailsRequest{TotalPorts: DefaultPorts}
		if node.ODPDetail != nil && node.ODPDetail.TotalPorts > 0 {
			d.TotalPorts = node.ODPDetail.TotalPorts
		}
		return d, nil
	case models.NodeOLT:
		d := DetailsRequest{}
		if node.OLTDetail != nil {
			d.Brand = node.OLTDetail.Brand
		}
		return d, nil
	default:
		return DetailsRequest{}, ErrNoDetails
	}
}
