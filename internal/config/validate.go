package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Job.
//
// Path is a dotted path into the config (e.g. "source.path",
// "dates.layouts[1]"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateJob performs static validation of j. It does not touch the
// filesystem; a missing input file is reported when the run starts.
func ValidateJob(j Job) []Issue {
	var issues []Issue

	if err := validate.Struct(j); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []Issue{{Severity: SeverityError, Path: "", Message: err.Error()}}
		}
		for _, fe := range verrs {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fieldPath(fe),
				Message:  fieldMessage(fe),
			})
		}
	}

	if j.Source.Kind == "" && j.Source.Path != "" && j.SourceKind() == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("cannot infer source kind from %q; set source.kind to csv or xlsx", filepath.Base(j.Source.Path)),
		})
	}

	if j.Source.Path != "" && filepath.Clean(j.Source.Path) == filepath.Clean(j.Output.Path) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.path",
			Message:  "output.path must differ from source.path",
		})
	}

	if id, err := uuid.Parse(j.Constants.ChurchID); err == nil && id == uuid.Nil {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "constants.church_id",
			Message:  "church_id is the nil UUID",
		})
	}

	for i, layout := range j.Dates.Layouts {
		if layout != "" && !strings.Contains(layout, "06") {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("dates.layouts[%d]", i),
				Message:  fmt.Sprintf("layout %q has no year element", layout),
			})
		}
	}

	if j.SourceKind() == KindCSV {
		if c := j.Source.Options.String("comma", ","); len([]rune(c)) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.options.comma",
				Message:  fmt.Sprintf("comma must be a single character, got %q", c),
			})
		}
	}

	return issues
}

// fieldPath converts a validator namespace ("Job.source.path") to the dotted
// config path ("source.path").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "uuid":
		return fmt.Sprintf("%q is not a valid UUID", fe.Value())
	case "oneof":
		return fmt.Sprintf("%q is not one of: %s", fe.Value(), fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	}
	return fmt.Sprintf("failed %q validation", fe.Tag())
}
