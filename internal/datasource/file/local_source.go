// Package file implements a local filesystem-backed data source.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local is a filesystem data source that opens one file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Name returns the configured path.
func (l *Local) Name() string { return l.path }

// Ext returns the lower-cased file extension without the dot ("csv", "xlsx").
func (l *Local) Ext() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(l.path)), ".")
}

// Open opens the configured path for reading.
//
// A context that is already done short-circuits with its error. Filesystem
// errors are wrapped with the path and still satisfy errors.Is checks such as
// errors.Is(err, os.ErrNotExist).
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}
