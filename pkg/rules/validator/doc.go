// Package validator checks parsed rule packs before they reach the engine.
//
// Validation runs in two passes. The structural pass checks shape:
// required metadata, kebab-case identifiers, unique rule ids, the presence
// of a target and predicate per rule. The semantic pass checks references:
// targets must name a known graph collection, operators must exist in the
// engine's operator table, every leaf must declare exactly one expected
// source, and "not" must have exactly one operand.
//
// Both passes accumulate findings into an ErrorList so a lint run reports
// everything wrong with a pack at once. The semantic pass is skipped when
// structural errors are present, to avoid cascades.
package validator
