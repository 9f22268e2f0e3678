// Package jsonl writes records as newline-delimited JSON.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/xxh3"
)

// Stats describes a completed write. Digest is the xxh3-64 hash of the exact
// bytes written, so two runs over the same export can be compared cheaply.
type Stats struct {
	Records int
	Bytes   int64
	Digest  uint64
}

// DigestHex renders Digest the way it is logged.
func (s Stats) DigestHex() string { return fmt.Sprintf("%016x", s.Digest) }

// Encode writes each record as one compact JSON object followed by '\n'.
// HTML characters and non-ASCII text are written verbatim.
func Encode[T any](w io.Writer, recs []T) (Stats, error) {
	h := xxh3.New()
	cw := &countingWriter{w: io.MultiWriter(w, h)}
	enc := json.NewEncoder(cw)
	enc.SetEscapeHTML(false)

	var st Stats
	for i := range recs {
		if err := enc.Encode(recs[i]); err != nil {
			return st, fmt.Errorf("encode record %d: %w", i+1, err)
		}
		st.Records++
	}
	st.Bytes = cw.n
	st.Digest = h.Sum64()
	return st, nil
}

// Write replaces the file at path with recs encoded as JSON lines. The data
// is written to a temporary file in the same directory and renamed over path
// once complete, so path never holds a partial result. Missing parent
// directories are created.
func Write[T any](path string, recs []T) (st Stats, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return st, fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return st, fmt.Errorf("create temp output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriterSize(tmp, 64*1024)
	if st, err = Encode(bw, recs); err != nil {
		return st, err
	}
	if err = bw.Flush(); err != nil {
		return st, fmt.Errorf("flush %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return st, fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return st, fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return st, fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return st, fmt.Errorf("rename to %s: %w", path, err)
	}
	return st, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
