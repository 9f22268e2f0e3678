// Package migrate runs one load → transform → write pass over the membership
// export. The run is sequential and fully buffered: the output file is only
// replaced once every row has been transformed.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"personjson/internal/config"
	"personjson/internal/datasource"
	"personjson/internal/datasource/file"
	"personjson/internal/parser"
	pcsv "personjson/internal/parser/csv"
	"personjson/internal/parser/xlsx"
	"personjson/internal/person"
	"personjson/internal/records"
	"personjson/internal/storage/jsonl"
	"personjson/internal/transformer"
)

// Options are per-run switches that are not part of the job file.
type Options struct {
	// DryRun loads and transforms but leaves the output untouched.
	DryRun bool

	// Preview writes the first Preview transformed records to PreviewTo as
	// JSON lines before the output is written.
	Preview   int
	PreviewTo io.Writer
}

// Summary reports what a run did.
type Summary struct {
	Job       string
	Input     string
	Output    string
	Kind      string
	Rows      int
	NullDates int
	Written   jsonl.Stats
	DryRun    bool
	Elapsed   time.Duration
}

// Function variables used as test seams.
var (
	newSourceFn = func(path string) datasource.Source { return file.NewLocal(path) }
	nowFn       = time.Now
)

// Run executes job. Errors are returned unlogged; the caller decides how to
// report them.
func Run(ctx context.Context, job config.Job, opt Options, log *zap.Logger) (Summary, error) {
	start := nowFn()
	sum := Summary{
		Job:    job.Job,
		Input:  job.Source.Path,
		Output: job.Output.Path,
		Kind:   job.SourceKind(),
		DryRun: opt.DryRun,
	}

	churchID, err := uuid.Parse(job.Constants.ChurchID)
	if err != nil {
		return sum, fmt.Errorf("constants.church_id: %w", err)
	}

	log.Info("migration started",
		zap.String("job", sum.Job),
		zap.String("input", sum.Input),
		zap.String("output", sum.Output),
		zap.String("kind", sum.Kind),
		zap.Bool("dry_run", opt.DryRun),
	)

	src, err := Load(ctx, newSourceFn(job.Source.Path), sum.Kind, job.Source.Options)
	if err != nil {
		return sum, err
	}
	sum.Rows = len(src)
	if len(src) > 0 {
		log.Debug("source loaded", zap.Int("rows", sum.Rows), zap.Strings("columns", src[0].Columns()))
	}

	tr := transformer.New(churchID, job.Constants.KabupatenID, job.Dates.Layouts)
	tr.OnNullDate = func(line int, column, value string) {
		sum.NullDates++
		log.Warn("unparseable date written as null",
			zap.Int("line", line),
			zap.String("column", column),
			zap.String("value", value),
		)
	}
	people, err := tr.Transform(src)
	if err != nil {
		return sum, err
	}

	if opt.Preview > 0 && opt.PreviewTo != nil {
		n := min(opt.Preview, len(people))
		if _, err := jsonl.Encode(opt.PreviewTo, people[:n]); err != nil {
			return sum, fmt.Errorf("preview: %w", err)
		}
	}

	if opt.DryRun {
		sum.Elapsed = nowFn().Sub(start)
		log.Info("dry run: output not written", zap.Int("rows", sum.Rows), zap.Int("null_dates", sum.NullDates))
		return sum, nil
	}

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	st, err := jsonl.Write(job.Output.Path, people)
	if err != nil {
		return sum, fmt.Errorf("write %s: %w", job.Output.Path, err)
	}
	sum.Written = st
	sum.Elapsed = nowFn().Sub(start)

	log.Info("migration completed",
		zap.Int("rows", sum.Rows),
		zap.Int("null_dates", sum.NullDates),
		zap.Int64("bytes", st.Bytes),
		zap.String("digest", st.DigestHex()),
		zap.Duration("elapsed", sum.Elapsed.Truncate(time.Millisecond)),
	)
	return sum, nil
}

// Load opens src and parses it with the parser for kind. Every failure other
// than context cancellation is reported as a *records.ReadError carrying the
// source name.
func Load(ctx context.Context, src datasource.Source, kind string, opts config.Options) ([]records.Source, error) {
	var p parser.Parser
	switch kind {
	case config.KindCSV:
		p = pcsv.NewParser(pcsv.OptionsFrom(opts, person.RequiredColumns))
	case config.KindXLSX:
		p = xlsx.NewParser(xlsx.OptionsFrom(opts, person.RequiredColumns))
	default:
		return nil, &records.ReadError{Path: src.Name(), Err: fmt.Errorf("unsupported source kind %q", kind)}
	}

	rc, err := src.Open(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, &records.ReadError{Path: src.Name(), Err: err}
	}
	defer rc.Close()

	recs, err := p.Parse(rc)
	if err != nil {
		var re *records.ReadError
		if errors.As(err, &re) {
			re.Path = src.Name()
			return nil, re
		}
		return nil, &records.ReadError{Path: src.Name(), Err: err}
	}
	return recs, nil
}
