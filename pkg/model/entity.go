package model

import "math"

// Point is a 2D coordinate in the model's planar coordinate system.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance to another point.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Metadata is a free-form mapping of caller-defined keys to JSON-like
// values. Rule packs reference these keys by dotted path (e.g.
// "metadata.usage"), so values may themselves be nested maps.
type Metadata map[string]interface{}

// Entity is a generic record in one of the graph's collections.
//
// The typed core attributes are optional except for ID: Name and LevelID
// are absent when empty, Height is absent when nil, Boundary is absent
// when nil. The distinction between "absent" and a legitimate zero value
// matters to path resolution and must not be collapsed.
type Entity struct {
	// ID is the stable identifier within the owning collection.
	ID string `json:"id"`

	// Name is the display name, if any.
	Name string `json:"name,omitempty"`

	// Height is the entity height in metres. Nil means not recorded.
	Height *float64 `json:"height,omitempty"`

	// LevelID is a non-owning reference to an entity in the levels
	// collection.
	LevelID string `json:"level_id,omitempty"`

	// Boundary is the ordered ring of 2D points enclosing the entity's
	// footprint. The ring is open: the closing edge back to the first
	// point is implied.
	Boundary []Point `json:"boundary,omitempty"`

	// Metadata holds caller-defined attributes.
	Metadata Metadata `json:"metadata,omitempty"`
}

// HasBoundary returns true if the entity carries a boundary ring.
func (e *Entity) HasBoundary() bool {
	return len(e.Boundary) > 0
}

// Attributes returns the identifying attribute snapshot recorded on
// violations for display. Name is included only when present.
func (e *Entity) Attributes() map[string]interface{} {
	attrs := map[string]interface{}{"id": e.ID}
	if e.Name != "" {
		attrs["name"] = e.Name
	}
	return attrs
}
