// Package ast defines the abstract syntax tree for declarative rule packs.
//
// A rule pack is data, not code: an ordered sequence of rules, each naming
// a target entity collection, an optional "where" pre-filter, and a
// required predicate tree. Predicate nodes form a tagged union (leaf
// comparison, all, any, not) dispatched by Kind.
//
// The AST is produced by pkg/rules/parser from YAML, checked by
// pkg/rules/validator, and interpreted by pkg/rules/engine. It is
// immutable during evaluation.
package ast
