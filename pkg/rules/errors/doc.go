// Package errors provides rich error types for rule pack parsing and
// validation. Errors carry a category, a source location, and an optional
// suggested fix, and can be accumulated into an ErrorList so a single lint
// pass reports every problem in a pack instead of stopping at the first.
package errors
