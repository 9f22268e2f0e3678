// Package parser holds the contract shared by the export readers.
package parser

import (
	"io"

	"personjson/internal/records"
)

// Parser reads a whole export and returns its data rows in file order.
// Header problems are reported as *records.ReadError.
type Parser interface {
	Parse(r io.Reader) ([]records.Source, error)
}
