// Package datasource abstracts where the membership export is read from.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw bytes of one export. Name identifies the input in
// errors and logs.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}
