// Package csv loads the membership export from CSV into header-keyed source
// records. The whole input is read into memory; exports are small.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"personjson/internal/config"
	"personjson/internal/records"
)

// Options configures the CSV parser. Zero values select the defaults.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// LazyQuotes relaxes quote handling (csv.Reader.LazyQuotes).
	LazyQuotes bool

	// HeaderMap maps source header names to canonical column names.
	HeaderMap map[string]string

	// Required lists the columns the header must contain after normalization.
	Required []string
}

// OptionsFrom reads parser options from a config options bag:
// comma (string), lazy_quotes (bool), header_map (object).
func OptionsFrom(o config.Options, required []string) Options {
	return Options{
		Comma:      o.Rune("comma", ','),
		LazyQuotes: o.Bool("lazy_quotes", false),
		HeaderMap:  o.StringMap("header_map"),
		Required:   required,
	}
}

// Parser parses CSV input according to Options. It is not safe for
// concurrent use.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = errors.New("empty input: no header row")

// Parse reads the header row and every data row of r.
//
// A missing required column yields a *records.ReadError listing all missing
// names. Malformed CSV aborts with an error naming the line. Rows shorter than
// the header leave their trailing columns absent.
func (p *Parser) Parse(r io.Reader) ([]records.Source, error) {
	cr := csv.NewReader(decodeReader(r))
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = p.opt.LazyQuotes
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	headers := NormalizeHeaders(h, p.opt.HeaderMap)
	if missing := records.MissingColumns(headers, p.opt.Required); len(missing) > 0 {
		return nil, &records.ReadError{Missing: missing}
	}

	var out []records.Source
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}
		out = append(out, records.NewSource(line, headers, row))
	}
	return out, nil
}
