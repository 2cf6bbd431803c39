package topology

import (
	"strings"

	jsoniter "github.com/json-iterator/go"

	"ftth-net.id/dashboard/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Point is a [lat, lng] pair as stored in a cable's coordinates string.
type Point [2]float64

type Path []Point

// ParsePath decodes a stored coordinates string. It reports false when the
// string is blank, "[]" or not a list of pairs.
func ParsePath(coordinates string) (Path, bool) {
	coordinates = strings.TrimSpace(coordinates)
	if coordinates == "" || coordinates == "[]" {
		return nil, false
	}
	var p Path
	if err := json.Unmarshal([]byte(coordinates), &p); err != nil || len(p) == 0 {
		return nil, false
	}
	return p, true
}

// Serialize is the inverse of ParsePath.
func (p Path) Serialize() (string, error) {
	if p == nil {
		p = Path{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p Path) clone() Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}

// Endpoints is the straight line between a cable's two nodes.
func Endpoints(c models.Cable) Path {
	return Path{
		{c.SourceNode.Lat, c.SourceNode.Lng},
		{c.TargetNode.Lat, c.TargetNode.Lng},
	}
}

// DisplayPath is the stored path when it parses, otherwise the endpoints.
func DisplayPath(c models.Cable) Path {
	if p, ok := ParsePath(c.Coordinates); ok {
		return p
	}
	return Endpoints(c)
}
