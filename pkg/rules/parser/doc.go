// Package parser turns YAML rule pack documents into pkg/rules/ast trees.
//
// Parsing is a two-step process: the YAML document is first decoded into
// an intermediate structure that keeps the original yaml.Node handles, so
// line and column numbers survive into the AST; the predicate builder then
// walks those nodes and produces the tagged PredicateNode tree.
//
// The parser reports shape problems (a predicate that is not a mapping, a
// "not" without operand, a leaf without a field). Reference-level checks
// such as unknown targets, unknown operators, and the exactly-one
// expected-source rule belong to pkg/rules/validator.
package parser
