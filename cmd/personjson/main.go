// Command personjson converts the church membership export into the
// person.json seed file.
//
// With no arguments it reads "migrations/json/Pendataan Jemaat ENST.csv" and
// writes "migrations/json/person.json" relative to the working directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"personjson/internal/config"
	"personjson/internal/logger"
	"personjson/internal/migrate"
)

const serviceName = "personjson"

// EnvLogLevel overrides the default log level when -log-level is not given.
const EnvLogLevel = "PERSONJSON_LOG_LEVEL"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit so tests can call it directly. It
// returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet(serviceName, flag.ContinueOnError)
	fset.SetOutput(stderr)

	var (
		cfgPath   = fset.String("config", "", "optional job config JSON path")
		envFile   = fset.String("env-file", ".env", "dotenv file loaded if present")
		inPath    = fset.String("in", "", "input export path (overrides config and "+config.EnvInput+")")
		outPath   = fset.String("out", "", "output JSON-lines path (overrides config and "+config.EnvOutput+")")
		format    = fset.String("format", "", "input format: csv or xlsx (default: by extension)")
		sheet     = fset.String("sheet", "", "worksheet name for xlsx input (default: first sheet)")
		validate  = fset.Bool("validate", false, "validate the configuration and exit")
		dryRun    = fset.Bool("dry-run", false, "load and transform without writing the output")
		preview   = fset.Int("preview", 0, "print the first n transformed records to stdout")
		logLevel  = fset.String("log-level", "", "log level: debug, info, warn, error (default info or "+EnvLogLevel+")")
		logFormat = fset.String("log-format", "console", "log format: console or json")
		verbose   = fset.Bool("v", false, "enable debug logs")
	)
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "load %s: %v\n", *envFile, err)
		return 1
	}

	level := *logLevel
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	if *verbose {
		level = "debug"
	}
	log, err := logger.NewLogger(level, *logFormat, serviceName)
	if err != nil {
		fmt.Fprintf(stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	job, err := loadJob(*cfgPath)
	if err != nil {
		log.Error("configuration", zap.Error(err))
		return 1
	}

	// Precedence: flag → env → config file → default.
	if job, err = config.ApplyEnv(job, os.Getenv); err != nil {
		log.Error("configuration", zap.Error(err))
		return 1
	}
	if *inPath != "" {
		job.Source.Path = *inPath
	}
	if *outPath != "" {
		job.Output.Path = *outPath
	}
	if *format != "" {
		job.Source.Kind = *format
	}
	if *sheet != "" {
		job.Source.Options["sheet"] = *sheet
	}

	issues := config.ValidateJob(job)
	for _, iss := range issues {
		fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Error("configuration is invalid", zap.String("config", *cfgPath))
		return 1
	}
	if *validate {
		log.Info("configuration is valid",
			zap.String("input", job.Source.Path),
			zap.String("output", job.Output.Path),
		)
		return 0
	}

	opt := migrate.Options{DryRun: *dryRun, Preview: *preview, PreviewTo: stdout}
	if _, err := migrate.Run(ctx, job, opt, log); err != nil {
		log.Error("migration failed", zap.Error(err))
		return 1
	}
	return 0
}

// loadJob returns the defaults when path is empty.
func loadJob(path string) (config.Job, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFile(path)
}
