// Package engine is the compliance rules engine: a predicate-evaluation
// interpreter that checks a building graph against a declarative rule
// pack and produces pass/fail outcomes with audit-grade explanations.
//
// One Evaluate call reads an immutable graph and pack and returns a
// freshly allocated report; the engine performs no I/O, holds no state
// between calls, and is safe for concurrent use across independent
// invocations.
//
// Evaluation proceeds per rule: the rule's target selects one of the
// graph's five entity collections, an optional "where" predicate
// pre-filters the candidates, and the main predicate tree is interpreted
// against each remaining entity. Every leaf comparison records a Fact
// (field, operator, expected, actual, reason) whether or not it passed;
// all/any combinators never short-circuit, so explanations are complete.
// Entities that fail the main predicate yield Violations; a rule passes
// iff it produced none.
//
// Failures divide into two kinds. Configuration errors (unknown target,
// unknown operator, a leaf with zero or multiple expected-value sources)
// are defects in the pack and surface as *ConfigError, aborting the rule
// or the whole pack depending on the configured mode. Resolution misses
// (a dotted path that finds nothing) are expected and are absorbed into
// ordinary failed comparisons with a descriptive reason.
package engine
