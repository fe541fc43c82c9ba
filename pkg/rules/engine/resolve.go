package engine

import (
	"strings"

	"github.com/WSG23/optimal-build-sub004/pkg/model"
)

const (
	computedPrefix = "computed."
	graphPrefix    = "graph."
)

// operand is a resolved value together with its presence bit. Absence is
// a distinguishable state, never conflated with a legitimate nil, false,
// or zero value.
type operand struct {
	value   interface{}
	present bool
}

// absent is the sentinel operand for a path that resolved to nothing.
var absent = operand{}

// someValue wraps a successfully resolved value.
func someValue(v interface{}) operand {
	return operand{value: v, present: true}
}

// resolveField resolves a dotted path against an entity, in order:
// computed fields, typed core attributes, then a walk over the nested
// metadata mapping. Any miss yields the absent sentinel.
func resolveField(path string, e *model.Entity) operand {
	if e == nil {
		return absent
	}

	if name, ok := strings.CutPrefix(path, computedPrefix); ok {
		if v, known := computedValue(name, e); known {
			return someValue(v)
		}
		return absent
	}

	parts := strings.Split(path, ".")

	switch parts[0] {
	case "id":
		if len(parts) == 1 {
			return someValue(e.ID)
		}
	case "name":
		if len(parts) == 1 && e.Name != "" {
			return someValue(e.Name)
		}
	case "height":
		if len(parts) == 1 && e.Height != nil {
			return someValue(*e.Height)
		}
	case "level_id":
		if len(parts) == 1 && e.LevelID != "" {
			return someValue(e.LevelID)
		}
	case "boundary":
		if len(parts) == 1 && e.Boundary != nil {
			return someValue(e.Boundary)
		}
	case "metadata":
		if e.Metadata == nil {
			return absent
		}
		if len(parts) == 1 {
			return someValue(map[string]interface{}(e.Metadata))
		}
		return walkValue(map[string]interface{}(e.Metadata), parts[1:])
	}

	return absent
}

// resolveGraphPath resolves an absolute path against the graph root, e.g.
// "graph.levels.L1.metadata.min_perimeter": collection, entity id, then
// the remainder is resolved against that entity like any field path.
func resolveGraphPath(path string, g *model.Graph) operand {
	if g == nil {
		return absent
	}

	trimmed := strings.TrimPrefix(path, graphPrefix)
	parts := strings.SplitN(trimmed, ".", 3)
	if len(parts) < 2 {
		return absent
	}

	collection, ok := g.Collection(parts[0])
	if !ok {
		return absent
	}

	entity, ok := collection[parts[1]]
	if !ok {
		return absent
	}

	if len(parts) == 2 {
		return someValue(entity)
	}
	return resolveField(parts[2], entity)
}

// walkValue walks nested mapping segments over a JSON-like value. Any
// missing segment or non-mapping intermediate yields absent.
func walkValue(v interface{}, segments []string) operand {
	current := v
	for _, segment := range segments {
		switch m := current.(type) {
		case map[string]interface{}:
			next, ok := m[segment]
			if !ok {
				return absent
			}
			current = next
		case model.Metadata:
			next, ok := m[segment]
			if !ok {
				return absent
			}
			current = next
		default:
			return absent
		}
	}
	return someValue(current)
}
