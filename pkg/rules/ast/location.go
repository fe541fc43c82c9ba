package ast

import "fmt"

// Location identifies a position in a rule pack source file.
// It is carried through parsing so validation errors can point at the
// offending line.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsValid returns true if the location has at least a line number.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// String returns the location in file:line:column form.
func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}
