package engine

import (
	"math"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
)

// Computed field names resolvable via the "computed." path prefix.
const (
	ComputedArea      = "area"
	ComputedPerimeter = "perimeter"
)

// Area returns the absolute polygon area of an ordered boundary ring via
// the shoelace formula. A degenerate ring (<3 points) yields 0.
func Area(boundary []model.Point) float64 {
	if len(boundary) < 3 {
		return 0
	}

	sum := 0.0
	for i, p := range boundary {
		q := boundary[(i+1)%len(boundary)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the total edge length of an ordered boundary ring,
// including the closing edge back to the first point. A degenerate ring
// (<3 points) yields 0.
func Perimeter(boundary []model.Point) float64 {
	if len(boundary) < 3 {
		return 0
	}

	total := 0.0
	for i, p := range boundary {
		q := boundary[(i+1)%len(boundary)]
		total += p.DistanceTo(q)
	}
	return total
}

// computedValue resolves a computed field by name against an entity's
// boundary. Unknown names are a resolution failure, not an error.
func computedValue(name string, e *model.Entity) (interface{}, bool) {
	switch name {
	case ComputedArea:
		return Area(e.Boundary), true
	case ComputedPerimeter:
		return Perimeter(e.Boundary), true
	default:
		return nil, false
	}
}
