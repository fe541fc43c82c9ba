package model

import "sort"

// Collection names recognized by the engine. A rule's target must be one
// of these.
const (
	CollectionSpaces   = "spaces"
	CollectionLevels   = "levels"
	CollectionWalls    = "walls"
	CollectionDoors    = "doors"
	CollectionFixtures = "fixtures"
)

// CollectionNames lists the graph's collections in canonical order.
var CollectionNames = []string{
	CollectionSpaces,
	CollectionLevels,
	CollectionWalls,
	CollectionDoors,
	CollectionFixtures,
}

// Graph is the domain model under evaluation. It owns the five named
// entity collections and is treated as read-only by the engine.
type Graph struct {
	Spaces   map[string]*Entity `json:"spaces,omitempty"`
	Levels   map[string]*Entity `json:"levels,omitempty"`
	Walls    map[string]*Entity `json:"walls,omitempty"`
	Doors    map[string]*Entity `json:"doors,omitempty"`
	Fixtures map[string]*Entity `json:"fixtures,omitempty"`
}

// NewGraph returns an empty graph with all collections allocated.
func NewGraph() *Graph {
	return &Graph{
		Spaces:   make(map[string]*Entity),
		Levels:   make(map[string]*Entity),
		Walls:    make(map[string]*Entity),
		Doors:    make(map[string]*Entity),
		Fixtures: make(map[string]*Entity),
	}
}

// Collection returns the named entity collection, or false if the name is
// not one of the five known collections.
func (g *Graph) Collection(name string) (map[string]*Entity, bool) {
	switch name {
	case CollectionSpaces:
		return g.Spaces, true
	case CollectionLevels:
		return g.Levels, true
	case CollectionWalls:
		return g.Walls, true
	case CollectionDoors:
		return g.Doors, true
	case CollectionFixtures:
		return g.Fixtures, true
	default:
		return nil, false
	}
}

// Add inserts an entity into the named collection, allocating the
// collection if needed. It returns false if the collection name is unknown.
func (g *Graph) Add(collection string, e *Entity) bool {
	switch collection {
	case CollectionSpaces:
		if g.Spaces == nil {
			g.Spaces = make(map[string]*Entity)
		}
		g.Spaces[e.ID] = e
	case CollectionLevels:
		if g.Levels == nil {
			g.Levels = make(map[string]*Entity)
		}
		g.Levels[e.ID] = e
	case CollectionWalls:
		if g.Walls == nil {
			g.Walls = make(map[string]*Entity)
		}
		g.Walls[e.ID] = e
	case CollectionDoors:
		if g.Doors == nil {
			g.Doors = make(map[string]*Entity)
		}
		g.Doors[e.ID] = e
	case CollectionFixtures:
		if g.Fixtures == nil {
			g.Fixtures = make(map[string]*Entity)
		}
		g.Fixtures[e.ID] = e
	default:
		return false
	}
	return true
}

// EntityCount returns the total number of entities across all collections.
func (g *Graph) EntityCount() int {
	return len(g.Spaces) + len(g.Levels) + len(g.Walls) + len(g.Doors) + len(g.Fixtures)
}

// SortedEntities returns a collection's entities ordered by id, giving
// callers a deterministic iteration order over the keyed collection.
func SortedEntities(collection map[string]*Entity) []*Entity {
	ids := make([]string, 0, len(collection))
	for id := range collection {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entities := make([]*Entity, 0, len(ids))
	for _, id := range ids {
		entities = append(entities, collection[id])
	}
	return entities
}
