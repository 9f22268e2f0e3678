// Package transformer derives person records from raw export rows.
package transformer

import (
	"github.com/google/uuid"

	"personjson/internal/person"
	"personjson/internal/records"
	"personjson/internal/transformer/builtin"
)

// Transformer maps source rows to person records, stamping the configured
// church and kabupaten on each.
type Transformer struct {
	ChurchID    uuid.UUID
	KabupatenID int
	Dates       builtin.Dates

	// OnNullDate, when set, is called for an optional date that was present
	// but could not be parsed and was therefore written as null.
	OnNullDate func(line int, column, value string)
}

// New returns a Transformer using layouts for date parsing (defaults when
// empty).
func New(churchID uuid.UUID, kabupatenID int, layouts []string) *Transformer {
	return &Transformer{
		ChurchID:    churchID,
		KabupatenID: kabupatenID,
		Dates:       builtin.NewDates(layouts),
	}
}

// Transform converts every row in order. Each date column is read with one
// day/month order, taken from its first unambiguous value. It stops at the
// first row whose birth date is present but unparseable and returns a
// *records.ParseError; no partial result is returned in that case.
func (t *Transformer) Transform(in []records.Source) ([]person.Record, error) {
	birth := t.Dates.ForColumn(column(in, person.ColTanggalLahir))
	marriage := t.Dates.ForColumn(column(in, person.ColTanggalPernikahan))

	out := make([]person.Record, 0, len(in))
	for _, src := range in {
		rec, err := t.row(src, birth, marriage)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Row converts a single source row using t.Dates as configured.
func (t *Transformer) Row(src records.Source) (person.Record, error) {
	return t.row(src, t.Dates, t.Dates)
}

func (t *Transformer) row(src records.Source, birth, marriage builtin.Dates) (person.Record, error) {
	rec := person.Record{
		Nama:             src.Nullable(person.ColNamaLengkap),
		NamaLain:         src.Nullable(person.ColNamaLain),
		Gender:           gender(src),
		TempatLahir:      src.Nullable(person.ColTempatLahir),
		FaseHidup:        src.Nullable(person.ColFaseHidup),
		StatusPerkawinan: src.Nullable(person.ColStatusPerkawinan),
		NamaPasangan:     src.Nullable(person.ColNamaPasangan),
		Alamat:           src.Nullable(person.ColAlamat),
		NomorTelepon:     src.Nullable(person.ColNomorTelepon),
		Email:            src.Nullable(person.ColEmail),
		ChurchID:         t.ChurchID,
		KabupatenID:      t.KabupatenID,
	}

	if v, ok := src.Get(person.ColTanggalLahir); ok {
		ts, err := birth.Parse(v)
		if err != nil {
			return person.Record{}, &records.ParseError{
				Line:   src.Line,
				Column: person.ColTanggalLahir,
				Value:  v,
				Err:    err,
			}
		}
		rec.TanggalLahir = person.NewTimestamp(ts)
	}

	if v, ok := src.Get(person.ColTanggalPernikahan); ok {
		if ts, err := marriage.Parse(v); err == nil {
			rec.TanggalPerkawinan = person.NewTimestamp(ts)
		} else if t.OnNullDate != nil {
			t.OnNullDate(src.Line, person.ColTanggalPernikahan, v)
		}
	}

	return rec, nil
}

// column collects the non-empty values of name across rows.
func column(in []records.Source, name string) []string {
	var vals []string
	for _, src := range in {
		if v, ok := src.Get(name); ok {
			vals = append(vals, v)
		}
	}
	return vals
}

func gender(src records.Source) *string {
	v, ok := src.Get(person.ColGender)
	if !ok {
		return nil
	}
	code := person.MapGender(v)
	return &code
}
