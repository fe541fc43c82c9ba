// Buildcheck evaluates building and site models against declarative
// rule packs.
//
// Rule packs are YAML documents describing compliance predicates over a
// model graph (sites, buildings, levels, spaces, fixtures). Models are
// supplied as GeoJSON feature collections.
//
// Usage:
//
//	# Validate a model against a pack file
//	buildcheck validate --model site.geojson --pack residential.yaml
//
//	# Lint pack files before publishing them
//	buildcheck lint --dir packs/
//
//	# Import packs into a catalogue database
//	buildcheck packs import --dir packs/ --db packs.db
//
//	# Run the validation API server
//	buildcheck serve --config /etc/buildcheck/config.yaml
package main

func main() {
	Execute()
}
