package records

import (
	"fmt"
	"strings"
)

// ReadError reports that an input could not be loaded: the file is missing or
// unreadable, its content is malformed, or its header lacks required columns.
type ReadError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *ReadError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("read %s: missing required columns: %s", e.Path, quoteJoin(e.Missing))
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports a required value that could not be parsed.
type ParseError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: column %q: cannot parse %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func quoteJoin(ss []string) string {
	q := make([]string, len(ss))
	for i, s := range ss {
		q[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(q, ", ")
}
