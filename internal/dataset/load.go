package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/KaramelBytes/statboard/internal/parser"
)

// maxBodyBytes caps a fetched dataset.
const maxBodyBytes = 64 << 20

// Source locates datasets. When BaseURL is set, files are fetched from
// BaseURL/<name>; otherwise they are read from Dir.
type Source struct {
	Dir     string
	BaseURL string
	// Timeout bounds a single load. Zero means no limit beyond ctx.
	Timeout time.Duration
	// Client is used for HTTP loads; nil uses a default client.
	Client *http.Client
}

// SourceUnavailableError reports that a dataset could not be retrieved.
// Loads are attempted once; there is no retry.
type SourceUnavailableError struct {
	Location string
	Err      error
}

func (e *SourceUnavailableError) Error() string {
	if e == nil {
		return "data source unavailable"
	}
	return fmt.Sprintf("data source unavailable at %s: %v", e.Location, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Location returns where name would be loaded from.
func (s Source) Location(name string) string {
	if s.BaseURL != "" {
		return strings.TrimRight(s.BaseURL, "/") + "/" + url.PathEscape(name)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// Load retrieves and parses the named dataset. A failed load returns no
// partial data.
func (s Source) Load(ctx context.Context, name string) (*Dataset, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	loc := s.Location(name)
	var (
		content []byte
		err     error
	)
	if s.BaseURL != "" {
		content, err = s.fetch(ctx, loc)
	} else {
		content, err = readFile(ctx, loc)
	}
	if err != nil {
		return nil, &SourceUnavailableError{Location: loc, Err: err}
	}
	// The format is chosen from the name, not the URL, so query strings on
	// BaseURL do not confuse extension matching.
	tbl, err := parser.Parse(name, content)
	if err != nil {
		return nil, err
	}
	d := New(name, content, tbl)
	slog.Debug("dataset loaded",
		slog.String("dataset", name),
		slog.String("location", loc),
		slog.Int("rows", d.Len()),
		slog.String("id", d.ID.String()))
	return d, nil
}

// LoadPath loads a dataset from an explicit file path or http(s) URL.
func LoadPath(ctx context.Context, location string, timeout time.Duration) (*Dataset, error) {
	if u, err := url.Parse(location); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		base := *u
		base.Path = path.Dir(u.Path)
		base.RawPath = ""
		name, err := url.PathUnescape(path.Base(u.Path))
		if err != nil {
			name = path.Base(u.Path)
		}
		return Source{BaseURL: base.String(), Timeout: timeout}.Load(ctx, name)
	}
	return Source{Dir: filepath.Dir(location), Timeout: timeout}.Load(ctx, filepath.Base(location))
}

func (s Source) fetch(ctx context.Context, loc string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("fetch: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(b)))
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(b) > maxBodyBytes {
		return nil, fmt.Errorf("read body: dataset exceeds %d bytes", maxBodyBytes)
	}
	return b, nil
}

func readFile(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}
