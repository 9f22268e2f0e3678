// Package records defines the raw, header-keyed row shape produced by the
// source parsers, together with the error types shared by every load and
// transform step.
package records

import (
	"sort"
)

// Source is one input row: its 1-based data line number (header excluded) and
// the raw cell values keyed by normalized header name. A column that is
// missing from a short row has no entry in Fields.
type Source struct {
	Line   int
	Fields map[string]string
}

// NewSource builds a Source from a header and a row. Cells beyond the header
// width are dropped; headers beyond the row width are left absent.
func NewSource(line int, headers, row []string) Source {
	fields := make(map[string]string, len(headers))
	for i, h := range headers {
		if h == "" || i >= len(row) {
			continue
		}
		fields[h] = row[i]
	}
	return Source{Line: line, Fields: fields}
}

// Get returns the raw value for column and whether it is present and non-empty.
func (s Source) Get(column string) (string, bool) {
	v, ok := s.Fields[column]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Nullable returns a pointer to the value of column, or nil when the cell is
// absent or empty.
func (s Source) Nullable(column string) *string {
	v, ok := s.Get(column)
	if !ok {
		return nil
	}
	return &v
}

// MissingColumns reports which of required are not present in headers. The
// result keeps the order of required.
func MissingColumns(headers, required []string) []string {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[h] = struct{}{}
	}
	var missing []string
	for _, r := range required {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

// Columns returns the sorted set of column names present in s.
func (s Source) Columns() []string {
	out := make([]string, 0, len(s.Fields))
	for k := range s.Fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
