// Package convert builds evaluation graphs from external model formats.
package convert

import (
	"encoding/json"
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
)

// Reserved property names lifted into typed entity attributes. Everything
// else lands in the entity's metadata.
const (
	propCategory = "category"
	propID       = "id"
	propName     = "name"
	propHeight   = "height"
	propLevelID  = "level_id"
)

// GraphFromGeoJSON builds a graph from a GeoJSON FeatureCollection.
//
// Each feature becomes one entity. The "category" property selects the
// target collection and must name one of the graph's collections; the
// id, name, height and level_id properties map to the typed attributes;
// remaining properties become metadata. A Polygon geometry's exterior
// ring becomes the entity boundary.
func GraphFromGeoJSON(data []byte) (*model.Graph, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("invalid GeoJSON: %w", err)
	}

	g := model.NewGraph()
	for i, feature := range fc.Features {
		entity, category, err := entityFromFeature(feature)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if !g.Add(category, entity) {
			return nil, fmt.Errorf("feature %d: unknown category %q", i, category)
		}
	}
	return g, nil
}

// entityFromFeature converts one feature into an entity and its target
// collection name.
func entityFromFeature(feature *geojson.Feature) (*model.Entity, string, error) {
	entity := &model.Entity{}
	category := model.CollectionSpaces

	if feature.ID != "" {
		entity.ID = feature.ID
	}

	var metadata model.Metadata
	for key, value := range feature.Properties {
		switch key {
		case propCategory:
			s, ok := value.(string)
			if !ok {
				return nil, "", fmt.Errorf("property %q must be a string, got %T", propCategory, value)
			}
			category = s

		case propID:
			s, ok := value.(string)
			if !ok {
				return nil, "", fmt.Errorf("property %q must be a string, got %T", propID, value)
			}
			entity.ID = s

		case propName:
			if s, ok := value.(string); ok {
				entity.Name = s
			}

		case propHeight:
			f, ok := toFloat(value)
			if !ok {
				return nil, "", fmt.Errorf("property %q must be numeric, got %T", propHeight, value)
			}
			entity.Height = &f

		case propLevelID:
			if s, ok := value.(string); ok {
				entity.LevelID = s
			}

		default:
			if metadata == nil {
				metadata = make(model.Metadata)
			}
			metadata[key] = value
		}
	}
	entity.Metadata = metadata

	if entity.ID == "" {
		return nil, "", fmt.Errorf("feature has no id")
	}

	boundary, err := boundaryFromGeometry(feature.Geometry)
	if err != nil {
		return nil, "", err
	}
	entity.Boundary = boundary

	return entity, category, nil
}

// boundaryFromGeometry extracts the open exterior ring of a polygon.
// Features without geometry, or with point geometry, have no boundary.
func boundaryFromGeometry(g geom.T) ([]model.Point, error) {
	if g == nil {
		return nil, nil
	}

	switch geometry := g.(type) {
	case *geom.Polygon:
		if geometry.NumLinearRings() == 0 {
			return nil, nil
		}
		return ringToPoints(geometry.LinearRing(0).Coords()), nil

	case *geom.Point:
		return nil, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

// ringToPoints converts a GeoJSON ring (closed by convention) to the
// open boundary form: the repeated closing coordinate is dropped.
func ringToPoints(coords []geom.Coord) []model.Point {
	if len(coords) == 0 {
		return nil
	}

	if len(coords) > 1 {
		first, last := coords[0], coords[len(coords)-1]
		if first[0] == last[0] && first[1] == last[1] {
			coords = coords[:len(coords)-1]
		}
	}

	points := make([]model.Point, len(coords))
	for i, c := range coords {
		points[i] = model.Point{X: c[0], Y: c[1]}
	}
	return points
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
