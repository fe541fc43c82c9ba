package parser

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPack is the intermediate structure for parsing YAML rule packs.
// Predicate trees stay as raw yaml.Node values so the builder can walk
// them with line numbers intact.
type yamlPack struct {
	Slug        string     `yaml:"slug"`
	Name        string     `yaml:"name"`
	Version     string     `yaml:"version"`
	Description string     `yaml:"description"`
	Rules       []yamlRule `yaml:"rules"`
}

// yamlRule is the intermediate rule structure.
type yamlRule struct {
	ID          string         `yaml:"id"`
	Description string         `yaml:"description"`
	Target      string         `yaml:"target"`
	Where       yaml.Node      `yaml:"where"`
	Predicate   yaml.Node      `yaml:"predicate"`
	Citations   []yamlCitation `yaml:"citations"`
}

// yamlCitation is the intermediate citation structure.
type yamlCitation struct {
	Clause string `yaml:"clause"`
	Title  string `yaml:"title"`
	URL    string `yaml:"url"`
}

// parseYAMLFile reads and parses a YAML file into the intermediate
// structure, keeping the root node for line numbers.
func parseYAMLFile(path string) (*yamlPack, *yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return parseYAMLBytes(data)
}

// parseYAMLBytes parses YAML bytes into the intermediate structure.
func parseYAMLBytes(data []byte) (*yamlPack, *yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, nil, err
	}

	var pack yamlPack
	if err := node.Decode(&pack); err != nil {
		return nil, nil, err
	}

	return &pack, &node, nil
}

// isZeroNode reports whether a yaml.Node field was never populated
// (the corresponding key was absent from the document).
func isZeroNode(n *yaml.Node) bool {
	return n.Kind == 0
}
