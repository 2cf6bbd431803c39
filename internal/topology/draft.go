package topology

import (
	"github.com/pkg/errors"

	"ftth-net.id/dashboard/internal/models"
)

var (
	ErrEndpointFixed = errors.New("cable endpoints cannot be moved or removed")
	ErrNoSuchPoint   = errors.New("no point at that index")
)

// Draft is an unsaved edit of one cable's path. The first and last points
// stay pinned to the cable's nodes.
type Draft struct {
	CableID int  `json:"cable_id"`
	Points  Path `json:"points"`
}

// StartDraft opens an edit from the cable's stored path, or from its
// endpoints when nothing usable is stored.
func StartDraft(c models.Cable) *Draft {
	return &Draft{CableID: c.ID, Points: DisplayPath(c).clone()}
}

// Insert adds p just before the final point, so the path still ends at the
// target node. A path with fewer than two points simply grows.
func (d *Draft) Insert(p Point) {
	n := len(d.Points)
	if n < 2 {
		d.Points = append(d.Points, p)
		return
	}
	out := make(Path, 0, n+1)
	out = append(out, d.Points[:n-1]...)
	out = append(out, p, d.Points[n-1])
	d.Points = out
}

func (d *Draft) interior(idx int) error {
	if idx < 0 || idx >= len(d.Points) {
		return errors.Wrapf(ErrNoSuchPoint, "index %d", idx)
	}
	if idx == 0 || idx == len(d.Points)-1 {
		return ErrEndpointFixed
	}
	return nil
}

func (d *Draft) Move(idx int, p Point) error {
	if err := d.interior(idx); err != nil {
		return err
	}
	d.Points[idx] = p
	return nil
}

func (d *Draft) Remove(idx int) error {
	if err := d.interior(idx); err != nil {
		return err
	}
	d.Points = append(d.Points[:idx:idx], d.Points[idx+1:]...)
	return nil
}
