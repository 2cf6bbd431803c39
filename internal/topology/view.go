package topology

import (
	"strings"

	"ftth-net.id/dashboard/internal/models"
)

const (
	ColorOLT        = "#ef4444"
	ColorODC        = "#f97316"
	ColorClient     = "#22c55e"
	ColorRouter     = "#8b5cf6"
	ColorGrey       = "#64748b"
	ColorODPFree    = "#3b82f6"
	ColorODPWarning = "#eab308"
	ColorODPFull    = "#dc2626"

	ShapeCircle = "circle"
	ShapeSquare = "square"

	// ODPs at or above this share of used ports are flagged.
	odpWarnPercent = 75.0
)

type MarkerStyle struct {
	Color string `json:"color"`
	Shape string `json:"shape"`
	Full  bool   `json:"full"`
}

// StyleFor picks a node's marker. ODP colour follows port usage.
func StyleFor(n models.Node) MarkerStyle {
	style := MarkerStyle{Color: ColorGrey, Shape: ShapeCircle}

	switch n.Type {
	case models.NodeOLT:
		style.Color = ColorOLT
	case models.NodeODC:
		style.Color = ColorODC
	case models.NodeClient:
		style.Color = ColorClient
	case models.NodeRouter:
		style.Color = ColorRouter
		style.Shape = ShapeSquare
	case models.NodeTB:
		style.Shape = ShapeSquare
	case models.NodeODP:
		style.Color = ColorODPFree
		if d := n.ODPDetail; d != nil {
			switch {
			case d.UsedPorts >= d.TotalPorts:
				style.Color = ColorODPFull
				style.Full = true
			case float64(d.UsedPorts)/float64(d.TotalPorts)*100 >= odpWarnPercent:
				style.Color = ColorODPWarning
			}
		}
	}
	return style
}

type NodeView struct {
	models.Node
	Marker MarkerStyle `json:"marker"`
}

type CableView struct {
	models.Cable
	Path    Path `json:"path"`
	Dashed  bool `json:"dashed"`
	Editing bool `json:"editing"`
}

type View struct {
	Nodes  []NodeView  `json:"nodes"`
	Cables []CableView `json:"cables"`
}

// IsDropCable reports whether a cable is drawn dashed.
func IsDropCable(cableType string) bool {
	return strings.Contains(strings.ToLower(cableType), "drop")
}

// BuildView decorates the backend topology for display. Cables with an open
// draft show the draft instead of their stored path.
func BuildView(t *models.Topology, drafts map[int]*Draft) View {
	v := View{
		Nodes:  make([]NodeView, 0, len(t.Nodes)),
		Cables: make([]CableView, 0, len(t.Cables)),
	}
	for _, n := range t.Nodes {
		v.Nodes = append(v.Nodes, NodeView{Node: n, Marker: StyleFor(n)})
	}
	for _, c := range t.Cables {
		cv := CableView{Cable: c, Dashed: IsDropCable(c.Type)}
		if d, ok := drafts[c.ID]; ok {
			cv.Path = d.Points
			cv.Editing = true
		} else {
			cv.Path = DisplayPath(c)
		}
		v.Cables = append(v.Cables, cv)
	}
	return v
}

// FindNode returns the first node whose name contains query, ignoring case.
func FindNode(nodes []models.Node, query string) (models.Node, bool) {
	q := strings.ToLower(query)
	for _, n := range nodes {
		if strings.Contains(strings.ToLower(n.Name), q) {
			return n, true
		}
	}
	return models.Node{}, false
}

func FindCable(cables []models.Cable, id int) (models.Cable, bool) {
	for _, c := range cables {
		if c.ID == id {
			return c, true
		}
	}
	return models.Cable{}, false
}
