// Package files reads the static tabular inputs (the sector returns CSV) from
// a configurable location: a local path, s3://, azblob:// or Databricks
// (dbfs:/ and /Volumes/ paths).
package files

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/de-tools/stock-atlas/pkg/models/domain"
)

// Opener opens one location scheme for reading.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type OpenerFunc func(ctx context.Context, location string) (io.ReadCloser, error)

func (f OpenerFunc) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	return f(ctx, location)
}

// Reader dispatches a location to the opener registered for its scheme.
type Reader struct {
	openers map[string]Opener
}

// NewReader returns a Reader that handles local paths. Remote schemes are
// added with Register.
func NewReader() *Reader {
	r := &Reader{openers: map[string]Opener{}}
	r.Register("file", OpenerFunc(openLocal))
	return r
}

func (r *Reader) Register(scheme string, opener Opener) {
	r.openers[scheme] = opener
}

func (r *Reader) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	scheme := Scheme(location)
	opener, ok := r.openers[scheme]
	if !ok {
		return nil, fmt.Errorf("no reader registered for %q locations", scheme)
	}
	return opener.Open(ctx, location)
}

// ReadCSV opens location and parses it as a CSV table.
func (r *Reader) ReadCSV(ctx context.Context, location string) (domain.ResultTable, error) {
	rc, err := r.Open(ctx, location)
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("open %s: %w", location, err)
	}
	defer rc.Close()

	table, err := ParseCSV(rc)
	if err != nil {
		return domain.ResultTable{}, fmt.Errorf("parse %s: %w", location, err)
	}
	return table, nil
}

// Scheme classifies a location. Windows drive paths and bare paths are "file".
func Scheme(location string) string {
	switch {
	case strings.HasPrefix(location, "dbfs:"), strings.HasPrefix(location, "/Volumes/"):
		return "dbfs"
	case strings.HasPrefix(location, "/"):
		return "file"
	}
	u, err := url.Parse(location)
	if err != nil || len(u.Scheme) <= 1 {
		return "file"
	}
	return strings.ToLower(u.Scheme)
}

func openLocal(_ context.Context, location string) (io.ReadCloser, error) {
	return os.Open(strings.TrimPrefix(location, "file://"))
}

// splitBucketKey turns scheme://bucket/some/key into (bucket, some/key).
func splitBucketKey(location string) (string, string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", err
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return "", "", fmt.Errorf("location %q must look like %s://<bucket>/<key>", location, u.Scheme)
	}
	return u.Host, key, nil
}
