package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/WSG23/optimal-build-sub004/pkg/rules/ast"
	rerrors "github.com/WSG23/optimal-build-sub004/pkg/rules/errors"
)

// builder walks yaml.Node predicate trees and produces ast.PredicateNode
// trees, accumulating shape errors instead of stopping at the first.
type builder struct {
	file   string
	ruleID string
	errors *rerrors.ErrorList
}

// buildPredicate converts one yaml node into a predicate node. It returns
// nil when the node's shape is unusable; the error list records why.
func (b *builder) buildPredicate(node *yaml.Node) *ast.PredicateNode {
	// YAML documents wrap their content in a document node.
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	if node.Kind != yaml.MappingNode {
		b.addError("predicate node must be a mapping", node)
		return nil
	}

	keys := mappingKeys(node)

	switch {
	case keys["all"] != nil:
		return b.buildCombinator(ast.KindAll, keys["all"], keys["message"], node)
	case keys["any"] != nil:
		return b.buildCombinator(ast.KindAny, keys["any"], keys["message"], node)
	case keys["not"] != nil:
		return b.buildCombinator(ast.KindNot, keys["not"], keys["message"], node)
	default:
		return b.buildLeaf(keys, node)
	}
}

// buildCombinator builds an all/any/not node from its operand node.
func (b *builder) buildCombinator(kind ast.PredicateKind, operands, message *yaml.Node, origin *yaml.Node) *ast.PredicateNode {
	pred := &ast.PredicateNode{
		Kind:     kind,
		Location: b.location(origin),
	}
	if message != nil {
		pred.Message = message.Value
	}

	switch operands.Kind {
	case yaml.SequenceNode:
		for _, child := range operands.Content {
			if built := b.buildPredicate(child); built != nil {
				pred.Children = append(pred.Children, built)
			}
		}
	case yaml.MappingNode:
		// A bare mapping operand is the common shorthand for "not".
		if built := b.buildPredicate(operands); built != nil {
			pred.Children = append(pred.Children, built)
		}
	default:
		b.addError(fmt.Sprintf("%q operand must be a mapping or a sequence of mappings", kind), operands)
		return nil
	}

	if len(pred.Children) == 0 {
		b.addError(fmt.Sprintf("%q combinator has no operands", kind), origin)
		return nil
	}

	return pred
}

// buildLeaf builds a leaf comparison node from its mapping keys.
func (b *builder) buildLeaf(keys map[string]*yaml.Node, origin *yaml.Node) *ast.PredicateNode {
	pred := &ast.PredicateNode{
		Kind:     ast.KindLeaf,
		Location: b.location(origin),
	}

	fieldNode := keys["field"]
	if fieldNode == nil {
		b.addError("leaf predicate is missing required key 'field'", origin)
		return nil
	}
	pred.Field = fieldNode.Value

	opNode := keys["operator"]
	if opNode == nil {
		b.addError("leaf predicate is missing required key 'operator'", origin)
		return nil
	}
	pred.Operator = ast.Operator(opNode.Value)

	if valueNode := keys["value"]; valueNode != nil {
		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			b.addError(fmt.Sprintf("cannot decode 'value': %v", err), valueNode)
			return nil
		}
		pred.Value = value
		pred.HasValue = true
	}
	if vf := keys["value_field"]; vf != nil {
		pred.ValueField = vf.Value
	}
	if vp := keys["value_path"]; vp != nil {
		pred.ValuePath = vp.Value
	}
	if msg := keys["message"]; msg != nil {
		pred.Message = msg.Value
	}

	return pred
}

// addError records a structural shape error at the given node.
func (b *builder) addError(message string, node *yaml.Node) {
	b.errors.AddError(rerrors.ErrorTypeStructural, b.ruleID, message, b.location(node))
}

// location converts a yaml node position into an ast.Location.
func (b *builder) location(node *yaml.Node) ast.Location {
	if node == nil {
		return ast.Location{File: b.file}
	}
	return ast.Location{File: b.file, Line: node.Line, Column: node.Column}
}

// mappingKeys indexes a mapping node's values by key string.
func mappingKeys(node *yaml.Node) map[string]*yaml.Node {
	keys := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keys[node.Content[i].Value] = node.Content[i+1]
	}
	return keys
}
