// Package config defines the JSON-serializable description of one migration
// run. Every field has a default, so an absent config file reproduces the
// fixed migration of the membership export into migrations/json/person.json.
//
// Example (all keys optional):
//
//	{
//	  "job":       "person_json",
//	  "source":    { "kind": "csv", "path": "migrations/json/Pendataan Jemaat ENST.csv",
//	                 "options": { "comma": ",", "header_map": { "Nama": "Nama Lengkap" } } },
//	  "output":    { "path": "migrations/json/person.json" },
//	  "constants": { "church_id": "123e4567-e89b-12d3-a456-426614174002", "kabupaten_id": 3578 },
//	  "dates":     { "layouts": ["1/2/2006", "2006-01-02"] }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"personjson/internal/datasource/file"
	"personjson/internal/person"
)

// Default locations of the export and of the generated file.
const (
	DefaultJobName    = "person_json"
	DefaultInputPath  = "migrations/json/Pendataan Jemaat ENST.csv"
	DefaultOutputPath = "migrations/json/person.json"
)

// Source kinds understood by the loader.
const (
	KindCSV  = "csv"
	KindXLSX = "xlsx"
)

// Job is the top-level object decoded from a job file.
type Job struct {
	// Job names the run in logs.
	Job string `json:"job" validate:"required"`

	Source    Source    `json:"source"`
	Output    Output    `json:"output"`
	Constants Constants `json:"constants"`
	Dates     Dates     `json:"dates"`
}

// Source identifies the export to read.
type Source struct {
	// Kind selects the parser ("csv" or "xlsx"). Empty selects by extension.
	Kind string `json:"kind" validate:"omitempty,oneof=csv xlsx"`

	// Path is the local filesystem path of the export.
	Path string `json:"path" validate:"required"`

	// Options is interpreted by the parser:
	//   csv:  comma (string), lazy_quotes (bool), header_map (object)
	//   xlsx: sheet (string), header_map (object)
	Options Options `json:"options"`
}

// Output names the JSON-lines file to (re)write.
type Output struct {
	Path string `json:"path" validate:"required"`
}

// Constants are stamped onto every person record.
type Constants struct {
	ChurchID    string `json:"church_id" validate:"required,uuid"`
	KabupatenID int    `json:"kabupaten_id" validate:"gt=0"`
}

// Dates configures date parsing. Empty Layouts selects the built-in list.
type Dates struct {
	Layouts []string `json:"layouts" validate:"dive,required"`
}

// Default returns the fixed migration.
func Default() Job {
	return Job{
		Job:    DefaultJobName,
		Source: Source{Path: DefaultInputPath, Options: Options{}},
		Output: Output{Path: DefaultOutputPath},
		Constants: Constants{
			ChurchID:    person.DefaultChurchID,
			KabupatenID: person.DefaultKabupatenID,
		},
	}
}

// Decode reads a job from r on top of Default. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func Decode(r io.Reader) (Job, error) {
	j := Default()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&j); err != nil {
		return Job{}, fmt.Errorf("decode config: %w", err)
	}
	if j.Source.Options == nil {
		j.Source.Options = Options{}
	}
	return j, nil
}

// LoadFile decodes the job file at path.
func LoadFile(path string) (Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return Job{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Environment variables consulted by ApplyEnv.
const (
	EnvInput       = "PERSONJSON_INPUT"
	EnvOutput      = "PERSONJSON_OUTPUT"
	EnvChurchID    = "PERSONJSON_CHURCH_ID"
	EnvKabupatenID = "PERSONJSON_KABUPATEN_ID"
)

// ApplyEnv overrides job fields from non-empty environment variables looked up
// through getenv (os.Getenv in production).
func ApplyEnv(j Job, getenv func(string) string) (Job, error) {
	if v := strings.TrimSpace(getenv(EnvInput)); v != "" {
		j.Source.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvOutput)); v != "" {
		j.Output.Path = v
	}
	if v := strings.TrimSpace(getenv(EnvChurchID)); v != "" {
		j.Constants.ChurchID = v
	}
	if v := strings.TrimSpace(getenv(EnvKabupatenID)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return j, fmt.Errorf("%s: %w", EnvKabupatenID, err)
		}
		j.Constants.KabupatenID = n
	}
	return j, nil
}

// SourceKind returns Source.Kind, or the kind implied by the path extension
// when Kind is empty. Unknown extensions yield "".
func (j Job) SourceKind() string {
	if j.Source.Kind != "" {
		return j.Source.Kind
	}
	switch ext := file.NewLocal(j.Source.Path).Ext(); ext {
	case KindCSV, KindXLSX:
		return ext
	}
	return ""
}

// Options is a small helper to fetch typed values from a free-form JSON
// object. It returns the provided default when a key is absent or of an
// unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character settings such as a delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object.
// Non-string values are ignored; a missing key yields an empty map.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		switch m := v.(type) {
		case map[string]any:
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		case map[string]string:
			for k, s := range m {
				res[k] = s
			}
		}
	}
	return res
}

// UnmarshalJSON decodes a missing or null "options" object to an empty,
// non-nil Options.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
