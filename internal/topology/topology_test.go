package topology

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftth-net.id/dashboard/internal/models"
)

func cable(coords string) models.Cable {
	return models.Cable{
		ID:          7,
		SourceNode:  models.Node{Lat: -7.25, Lng: 112.75},
		TargetNode:  models.Node{Lat: -7.26, Lng: 112.76},
		Type:        "Feeder",
		Coordinates: coords,
	}
}

func TestStartDraftFallsBackToEndpoints(t *testing.T) {
	for _, coords := range []string{"", "[]", "not json", `{"a":1}`} {
		d := StartDraft(cable(coords))
		assert.Equal(t, Path{{-7.25, 112.75}, {-7.26, 112.76}}, d.Points, coords)
	}

	d := StartDraft(cable("[[1,2],[3,4],[5,6]]"))
	assert.Equal(t, Path{{1, 2}, {3, 4}, {5, 6}}, d.Points)
	assert.Equal(t, 7, d.CableID)
}

func TestInsertBeforeLast(t *testing.T) {
	d := &Draft{Points: Path{{1, 1}, {2, 2}}}
	d.Insert(Point{9, 9})
	assert.Equal(t, Path{{1, 1}, {9, 9}, {2, 2}}, d.Points)

	d.Insert(Point{8, 8})
	assert.Equal(t, Path{{1, 1}, {9, 9}, {8, 8}, {2, 2}}, d.Points)

	short := &Draft{Points: Path{{1, 1}}}
	short.Insert(Point{2, 2})
	assert.Equal(t, Path{{1, 1}, {2, 2}}, short.Points)
}

func TestEndpointsAreFixed(t *testing.T) {
	d := &Draft{Points: Path{{1, 1}, {5, 5}, {2, 2}}}

	assert.ErrorIs(t, d.Move(0, Point{0, 0}), ErrEndpointFixed)
	assert.ErrorIs(t, d.Move(2, Point{0, 0}), ErrEndpointFixed)
	assert.ErrorIs(t, d.Remove(0), ErrEndpointFixed)
	assert.ErrorIs(t, d.Remove(2), ErrEndpointFixed)
	assert.ErrorIs(t, d.Move(3, Point{0, 0}), ErrNoSuchPoint)

	require.NoError(t, d.Move(1, Point{6, 6}))
	assert.Equal(t, Path{{1, 1}, {6, 6}, {2, 2}}, d.Points)

	require.NoError(t, d.Remove(1))
	assert.Equal(t, Path{{1, 1}, {2, 2}}, d.Points)
}

func TestSerialize(t *testing.T) {
	s, err := Path{{-7.5, 112.25}, {1, 2}}.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[[-7.5,112.25],[1,2]]", s)

	s, err = Path(nil).Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[]", s)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryStore(time.Hour)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "a@ftth.net", &Draft{CableID: 3, Points: Path{{1, 1}, {2, 2}}}))

	d, err := store.Get(ctx, "a@ftth.net", 3)
	require.NoError(t, err)
	assert.Len(t, d.Points, 2)

	_, err = store.Get(ctx, "b@ftth.net", 3)
	assert.True(t, errors.Is(err, ErrNoDraft))

	all, err := store.List(ctx, "a@ftth.net")
	require.NoError(t, err)
	assert.Contains(t, all, 3)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "a@ftth.net", 3)
	assert.True(t, errors.Is(err, ErrNoDraft))
}

func TestMemoryStoreIsolatesCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	d := &Draft{CableID: 1, Points: Path{{1, 1}, {2, 2}}}
	require.NoError(t, store.Put(ctx, "u", d))

	d.Points[0] = Point{9, 9}
	got, err := store.Get(ctx, "u", 1)
	require.NoError(t, err)
	assert.Equal(t, Point{1, 1}, got.Points[0])

	require.NoError(t, store.Delete(ctx, "u", 1))
	_, err = store.Get(ctx, "u", 1)
	assert.True(t, errors.Is(err, ErrNoDraft))
}

func TestODPStyle(t *testing.T) {
	odp := func(used, total int) models.Node {
		return models.Node{Type: models.NodeODP, ODPDetail: &models.ODPDetail{UsedPorts: used, TotalPorts: total}}
	}

	assert.Equal(t, MarkerStyle{Color: ColorODPFree, Shape: ShapeCircle}, StyleFor(odp(2, 8)))
	assert.Equal(t, MarkerStyle{Color: ColorODPWarning, Shape: ShapeCircle}, StyleFor(odp(6, 8)))
	assert.Equal(t, MarkerStyle{Color: ColorODPFull, Shape: ShapeCircle, Full: true}, StyleFor(odp(8, 8)))
	assert.Equal(t, ColorODPFree, StyleFor(models.Node{Type: models.NodeODP}).Color)
}

func TestOtherStyles(t *testing.T) {
	assert.Equal(t, ColorOLT, StyleFor(models.Node{Type: models.NodeOLT}).Color)
	assert.Equal(t, ColorODC, StyleFor(models.Node{Type: models.NodeODC}).Color)
	assert.Equal(t, ColorClient, StyleFor(models.Node{Type: models.NodeClient}).Color)
	assert.Equal(t, MarkerStyle{Color: ColorRouter, Shape: ShapeSquare}, StyleFor(models.Node{Type: models.NodeRouter}))
	assert.Equal(t, MarkerStyle{Color: ColorGrey, Shape: ShapeSquare}, StyleFor(models.Node{Type: models.NodeTB}))
}

func TestBuildViewUsesDrafts(t *testing.T) {
	topo := &models.Topology{
		Nodes: []models.Node{{ID: 1, Name: "OLT Pusat", Type: models.NodeOLT}},
		Cables: []models.Cable{
			cable("[[1,1],[2,2]]"),
			{ID: 8, Type: "Drop Core", Coordinates: "[]"},
		},
	}
	v := BuildView(topo, map[int]*Draft{7: {CableID: 7, Points: Path{{1, 1}, {5, 5}, {2, 2}}}})

	require.Len(t, v.Cables, 2)
	assert.True(t, v.Cables[0].Editing)
	assert.Len(t, v.Cables[0].Path, 3)
	assert.False(t, v.Cables[0].Dashed)
	assert.True(t, v.Cables[1].Dashed)
	assert.Len(t, v.Cables[1].Path, 2)
	assert.Equal(t, ColorOLT, v.Nodes[0].Marker.Color)
}

func TestFindNode(t *testing.T) {
	nodes := []models.Node{{Name: "ODP-01 Sukolilo"}, {Name: "ODP-02 Keputih"}}
	n, ok := FindNode(nodes, "keputih")
	require.True(t, ok)
	assert.Equal(t, "ODP-02 Keputih", n.Name)

	_, ok = FindNode(nodes, "gubeng")
	assert.False(t, ok)
}

func TestNodeRequest(t *testing.T) {
	_, err := NodeRequest{Type: "SPLICE", Name: "x"}.Backend()
	assert.ErrorIs(t, err, ErrUnknownNodeType)

	_, err = NodeRequest{Type: "odp", Name: "ODP-9", Manual: true, Lat: -7.2}.Backend()
	assert.ErrorIs(t, err, ErrMissingCoords)

	req, err := NodeRequest{Type: "odp", Name: "ODP-9", TotalPorts: 16, Brand: "ignored", Lat: -7.2, Lng: 112.7}.Backend()
	require.NoError(t, err)
	assert.Equal(t, models.NodeODP, req.Type)
	assert.Equal(t, 16, req.TotalPorts)
	assert.Empty(t, req.Brand)
}

func TestCableRequest(t *testing.T) {
	_, err := CableRequest{SourceNodeID: 1, TargetNodeID: 1, Type: "Feeder"}.Backend()
	assert.ErrorIs(t, err, ErrSameNode)

	req, err := CableRequest{SourceNodeID: 1, TargetNodeID: 2, Type: "Drop"}.Backend()
	require.NoError(t, err)
	assert.Equal(t, "[]", req.Coordinates)
}

func TestDetailsFor(t *testing.T) {
	_, err := DetailsFor(models.Node{Type: models.NodeClient}, DetailsRequest{})
	assert.ErrorIs(t, err, ErrNoDetails)

	req, err := DetailsFor(models.Node{Type: models.NodeOLT}, DetailsRequest{Brand: " ZTE "})
	require.NoError(t, err)
	assert.Equal(t, "ZTE", req.Brand)

	d, err := DetailsDefaults(models.Node{Type: models.NodeODP})
	require.NoError(t, err)
	assert.Equal(t, DefaultPorts, d.TotalPorts)
}
