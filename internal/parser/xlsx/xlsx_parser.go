// Package xlsx loads the membership export from an Excel workbook into the
// same header-keyed source records as the CSV parser.
package xlsx

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"personjson/internal/config"
	pcsv "personjson/internal/parser/csv"
	"personjson/internal/records"
)

// Options configures the workbook parser.
type Options struct {
	// Sheet selects the worksheet by name. Empty selects the first sheet.
	Sheet string

	// HeaderMap maps source header names to canonical column names.
	HeaderMap map[string]string

	// Required lists the columns the header row must contain.
	Required []string
}

// OptionsFrom reads parser options from a config options bag:
// sheet (string), header_map (object).
func OptionsFrom(o config.Options, required []string) Options {
	return Options{
		Sheet:     o.String("sheet", ""),
		HeaderMap: o.StringMap("header_map"),
		Required:  required,
	}
}

// ErrNoSheet is returned when the workbook has no worksheet to read.
var ErrNoSheet = errors.New("workbook has no sheets")

// Parser reads one worksheet. Cell values are taken as displayed, so date
// cells arrive in their number format (e.g. "05-01-90").
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header row and every non-blank data row of the selected
// sheet. Error semantics match the CSV parser.
func (p *Parser) Parse(r io.Reader) ([]records.Source, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := p.opt.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
		if sheet == "" {
			return nil, ErrNoSheet
		}
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, pcsv.ErrEmptyInput
	}

	headers := pcsv.NormalizeHeaders(rows[0], p.opt.HeaderMap)
	if missing := records.MissingColumns(headers, p.opt.Required); len(missing) > 0 {
		return nil, &records.ReadError{Missing: missing}
	}

	out := make([]records.Source, 0, len(rows)-1)
	line := 0
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		line++
		out = append(out, records.NewSource(line, headers, row))
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
