// Package fetch downloads card images through a shared rate limit and a
// content-addressed on-disk cache. One Fetcher serves one cache root and
// quality tier; callers wanting a different tier construct another
// Fetcher over the same limiter.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	userAgent       = "mtgproxy/0.1 (+https://github.com/chrisi5700/mtgproxy)"
	downloadTimeout = 30 * time.Second
)

// RemoteError reports a failed download: a transport failure or a
// non-success HTTP status.
type RemoteError struct {
	URL    string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download failed for %s: HTTP %d", e.URL, e.Status)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Fetcher retrieves image bytes by URL, keyed into a local cache. The
// rate limiter is the shared process-wide one; cache hits bypass it
// entirely.
type Fetcher struct {
	cacheDir   string
	ext        string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Fetcher over cacheDir. The tier decides the cached file
// extension ("png" stores .png, every other tier stores .jpg, matching
// what Scryfall serves). The cache directory is created if absent.
func New(cacheDir, tier string, limiter *rate.Limiter) (*Fetcher, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating cache directory %s: %w", cacheDir, err)
	}

	ext := ".jpg"
	if strings.EqualFold(tier, "png") {
		ext = ".png"
	}

	return &Fetcher{
		cacheDir: cacheDir,
		ext:      ext,
		httpClient: &http.Client{
			Timeout: downloadTimeout,
		},
		limiter: limiter,
	}, nil
}

// CachePath returns the on-disk location for a cache key
func (f *Fetcher) CachePath(key string) string {
	return filepath.Join(f.cacheDir, key+f.ext)
}

// Fetch returns the bytes for url, reading the cache file named by key
// when it exists and downloading (then persisting) otherwise.
func (f *Fetcher) Fetch(ctx context.Context, url, key string) ([]byte, error) {
	path := f.CachePath(key)
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, &RemoteError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{URL: url, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error writing cache file %s: %w", path, err)
	}

	return data, nil
}
