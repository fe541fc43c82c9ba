// Package model defines the building graph evaluated by the rules engine.
//
// A Graph is a read-only snapshot of a building or site model: five named
// collections of entities (spaces, levels, walls, doors, fixtures), each
// keyed by a stable id. Graphs are produced by converters (see pkg/convert)
// from uploaded CAD/BIM/GeoJSON payloads and live for the duration of a
// single evaluation call.
//
// Entities carry a small set of typed core attributes plus a free-form
// metadata mapping. Rule packs reference metadata keys that are unknown at
// compile time, so metadata is modelled as a generic JSON-like map.
package model
