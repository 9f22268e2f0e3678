package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func issueAt(issues []Issue, path string) (Issue, bool) {
	for _, iss := range issues {
		if iss.Path == path {
			return iss, true
		}
	}
	return Issue{}, false
}

func TestValidateJob(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(j *Job)
		path     string
		severity IssueSeverity
		contains string
	}{
		{
			name:     "empty_job_name",
			mutate:   func(j *Job) { j.Job = "" },
			path:     "job",
			severity: SeverityError,
			contains: "must not be empty",
		},
		{
			name:     "empty_source_path",
			mutate:   func(j *Job) { j.Source.Path = "" },
			path:     "source.path",
			severity: SeverityError,
		},
		{
			name:     "unknown_kind",
			mutate:   func(j *Job) { j.Source.Kind = "ods" },
			path:     "source.kind",
			severity: SeverityError,
			contains: "csv xlsx",
		},
		{
			name:     "kind_not_inferable",
			mutate:   func(j *Job) { j.Source.Path = "exports/jemaat.txt" },
			path:     "source.kind",
			severity: SeverityError,
			contains: "jemaat.txt",
		},
		{
			name:     "empty_output_path",
			mutate:   func(j *Job) { j.Output.Path = "" },
			path:     "output.path",
			severity: SeverityError,
		},
		{
			name:     "output_overwrites_input",
			mutate:   func(j *Job) { j.Output.Path = "./" + j.Source.Path },
			path:     "output.path",
			severity: SeverityError,
			contains: "differ",
		},
		{
			name:     "bad_church_id",
			mutate:   func(j *Job) { j.Constants.ChurchID = "church-1" },
			path:     "constants.church_id",
			severity: SeverityError,
			contains: "not a valid UUID",
		},
		{
			name:     "nil_church_id",
			mutate:   func(j *Job) { j.Constants.ChurchID = "00000000-0000-0000-0000-000000000000" },
			path:     "constants.church_id",
			severity: SeverityWarning,
		},
		{
			name:     "non_positive_kabupaten",
			mutate:   func(j *Job) { j.Constants.KabupatenID = 0 },
			path:     "constants.kabupaten_id",
			severity: SeverityError,
			contains: "greater than 0",
		},
		{
			name:     "empty_layout",
			mutate:   func(j *Job) { j.Dates.Layouts = []string{"2006-01-02", ""} },
			path:     "dates.layouts[1]",
			severity: SeverityError,
		},
		{
			name:     "layout_without_year",
			mutate:   func(j *Job) { j.Dates.Layouts = []string{"01/02"} },
			path:     "dates.layouts[0]",
			severity: SeverityWarning,
		},
		{
			name:     "multi_char_comma",
			mutate:   func(j *Job) { j.Source.Options = Options{"comma": ";;"} },
			path:     "source.options.comma",
			severity: SeverityError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			j := Default()
			tc.mutate(&j)

			issues := ValidateJob(j)
			iss, ok := issueAt(issues, tc.path)
			if !assert.True(t, ok, "no issue at %s; got %v", tc.path, issues) {
				return
			}
			assert.Equal(t, tc.severity, iss.Severity)
			if tc.contains != "" {
				assert.Contains(t, iss.Message, tc.contains)
			}
			assert.Equal(t, tc.severity == SeverityError, HasErrors(issues))
		})
	}
}

func TestIssue_Error(t *testing.T) {
	iss := Issue{Severity: SeverityError, Path: "output.path", Message: "must not be empty"}
	assert.Equal(t, "error at output.path: must not be empty", iss.Error())
}
