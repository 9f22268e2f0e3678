// Package person defines the normalized person record written to person.json
// and the fixed vocabulary of the membership export it is derived from.
package person

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Column names of the membership form export.
const (
	ColTimestamp         = "Timestamp"
	ColNamaLengkap       = "Nama Lengkap"
	ColNamaLain          = "Nama Lain"
	ColGender            = "Gender"
	ColTempatLahir       = "Tempat Lahir"
	ColTanggalLahir      = "Tanggal Lahir"
	ColFaseHidup         = "Fase Hidup"
	ColStatusPerkawinan  = "Status Perkawinan"
	ColAlamat            = "Alamat"
	ColNomorTelepon      = "Nomor Telepon (WA)"
	ColPemimpinLifeGroup = "Pemimpin Life Group"
	ColEmail             = "Email"
	ColDimuridkanOleh    = "Dimuridkan Oleh"
	ColSpiritualJourney  = "Spiritual Journey"
	ColTanggalPernikahan = "Tanggal Pernikahan"
	ColNamaPasangan      = "Nama Pasangan"
)

// RequiredColumns are the columns read by the transformation. A source header
// missing any of them cannot be loaded.
var RequiredColumns = []string{
	ColNamaLengkap,
	ColNamaLain,
	ColGender,
	ColTempatLahir,
	ColTanggalLahir,
	ColFaseHidup,
	ColStatusPerkawinan,
	ColNamaPasangan,
	ColTanggalPernikahan,
	ColAlamat,
	ColNomorTelepon,
	ColEmail,
}

const (
	// DefaultChurchID is stamped on every record of this migration.
	DefaultChurchID = "123e4567-e89b-12d3-a456-426614174002"
	// DefaultKabupatenID is the regency id (Surabaya) stamped on every record.
	DefaultKabupatenID = 3578
)

// TimestampLayout is the wire format of date fields.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Record is one line of person.json. Field order is the key order on the
// wire; nil pointers encode as JSON null.
type Record struct {
	Nama              *string    `json:"nama"`
	NamaLain          *string    `json:"nama_lain"`
	Gender            *string    `json:"gender"`
	TempatLahir       *string    `json:"tempat_lahir"`
	TanggalLahir      *Timestamp `json:"tanggal_lahir"`
	FaseHidup         *string    `json:"fase_hidup"`
	StatusPerkawinan  *string    `json:"status_perkawinan"`
	NamaPasangan      *string    `json:"nama_pasangan"`
	TanggalPerkawinan *Timestamp `json:"tanggal_perkawinan"`
	Alamat            *string    `json:"alamat"`
	NomorTelepon      *string    `json:"nomor_telepon"`
	Email             *string    `json:"email"`
	ChurchID          uuid.UUID  `json:"church_id"`
	KabupatenID       int        `json:"kabupaten_id"`
}

// Timestamp is a point in time encoded as a UTC "YYYY-MM-DDTHH:MM:SSZ" string.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t, normalized to UTC.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t.UTC()}
}

func (t Timestamp) String() string {
	return t.UTC().Format(TimestampLayout)
}

// MarshalJSON overrides the RFC 3339 encoding promoted from time.Time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(make([]byte, 0, len(TimestampLayout)+2), t.String()), nil
}
