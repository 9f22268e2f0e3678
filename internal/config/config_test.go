package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personjson/internal/person"
)

// -----------------------------------------------------------------------------
// Job decoding tests
// -----------------------------------------------------------------------------

func TestDefault_IsTheFixedMigration(t *testing.T) {
	j := Default()
	assert.Equal(t, "migrations/json/Pendataan Jemaat ENST.csv", j.Source.Path)
	assert.Equal(t, "migrations/json/person.json", j.Output.Path)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174002", j.Constants.ChurchID)
	assert.Equal(t, 3578, j.Constants.KabupatenID)
	assert.Equal(t, KindCSV, j.SourceKind())
	assert.NotNil(t, j.Source.Options)
	assert.Empty(t, ValidateJob(j))
}

func TestDecode_OverlaysDefaults(t *testing.T) {
	const js = `{
	  "source": {
	    "path": "exports/jemaat.xlsx",
	    "options": { "sheet": "Form Responses 1", "header_map": { "Nama": "Nama Lengkap" } }
	  },
	  "dates": { "layouts": ["02/01/2006"] }
	}`

	j, err := Decode(strings.NewReader(js))
	require.NoError(t, err)

	assert.Equal(t, DefaultJobName, j.Job)
	assert.Equal(t, "exports/jemaat.xlsx", j.Source.Path)
	assert.Equal(t, KindXLSX, j.SourceKind())
	assert.Equal(t, "Form Responses 1", j.Source.Options.String("sheet", ""))
	assert.Equal(t, map[string]string{"Nama": "Nama Lengkap"}, j.Source.Options.StringMap("header_map"))
	assert.Equal(t, DefaultOutputPath, j.Output.Path)
	assert.Equal(t, 3578, j.Constants.KabupatenID)
	assert.Equal(t, []string{"02/01/2006"}, j.Dates.Layouts)
}

func TestJob_SourceKind(t *testing.T) {
	tests := []struct {
		name, kind, path, want string
	}{
		{"csv_extension", "", "exports/Jemaat.csv", KindCSV},
		{"upper_case_extension", "", "exports/JEMAAT.XLSX", KindXLSX},
		{"unknown_extension", "", "exports/jemaat.ods", ""},
		{"no_extension", "", "exports/jemaat", ""},
		{"explicit_kind_wins", KindXLSX, "exports/jemaat.csv", KindXLSX},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := Default()
			j.Source.Kind = tc.kind
			j.Source.Path = tc.path
			assert.Equal(t, tc.want, j.SourceKind())
		})
	}
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"ouput": {"path": "x.json"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ouput")
}

func TestDecode_NullOptions(t *testing.T) {
	j, err := Decode(strings.NewReader(`{"source": {"path": "a.csv", "options": null}}`))
	require.NoError(t, err)
	assert.NotNil(t, j.Source.Options)
	assert.Equal(t, ',', j.Source.Options.Rune("comma", ','))
}

func TestLoadFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "job.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"job":"enst","constants":{"kabupaten_id":3515}}`), 0o644))

	j, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "enst", j.Job)
	assert.Equal(t, 3515, j.Constants.KabupatenID)
	assert.Equal(t, person.DefaultChurchID, j.Constants.ChurchID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvInput:       "in/export.csv",
		EnvOutput:      " out/person.json ",
		EnvChurchID:    "00000000-0000-0000-0000-000000000001",
		EnvKabupatenID: "3515",
	}
	j, err := ApplyEnv(Default(), func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "in/export.csv", j.Source.Path)
	assert.Equal(t, "out/person.json", j.Output.Path)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", j.Constants.ChurchID)
	assert.Equal(t, 3515, j.Constants.KabupatenID)

	unchanged, err := ApplyEnv(Default(), func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, Default(), unchanged)

	_, err = ApplyEnv(Default(), func(k string) string {
		if k == EnvKabupatenID {
			return "surabaya"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvKabupatenID)
}

// -----------------------------------------------------------------------------
// Options helper tests
// -----------------------------------------------------------------------------

func TestOptions_TypedGetters(t *testing.T) {
	o := Options{
		"s":    "x",
		"b":    true,
		"r":    "→;",
		"m":    map[string]any{"a": "1", "n": 2},
		"bad":  42,
		"smap": map[string]string{"k": "v"},
	}
	assert.Equal(t, "x", o.String("s", "def"))
	assert.Equal(t, "def", o.String("bad", "def"))
	assert.True(t, o.Bool("b", false))
	assert.False(t, o.Bool("s", false))
	assert.Equal(t, '→', o.Rune("r", ','))
	assert.Equal(t, ',', o.Rune("missing", ','))
	assert.Equal(t, map[string]string{"a": "1"}, o.StringMap("m"))
	assert.Equal(t, map[string]string{"k": "v"}, o.StringMap("smap"))
	assert.Equal(t, map[string]string{}, o.StringMap("missing"))
}
