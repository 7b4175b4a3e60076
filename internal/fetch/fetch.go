// Package fetch resolves counting sources into readable streams.
// A source is "-" for standard input, an http(s) URL, or a local file path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Size caps keep a single source from exhausting memory; the counter holds
// only one line at a time, but HTTP bodies are read without a Content-Length
// guarantee.
const (
	MaxFileSizeBytes = 50 * 1024 * 1024
	MaxHTTPSizeBytes = 100 * 1024 * 1024
)

// RequestTimeout bounds an entire HTTP fetch.
const RequestTimeout = 30 * time.Second

// cappedReadCloser wraps an io.ReadCloser and fails once the byte budget
// is spent, so oversized sources error out instead of truncating silently.
// A truncated stream would undercount units.
type cappedReadCloser struct {
	io.ReadCloser
	remaining int64
	source    string
}

func (c *cappedReadCloser) Read(p []byte) (int, error) {
	if c.remaining <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", c.source)
	}
	if int64(len(p)) > c.remaining {
		p = p[:c.remaining]
	}
	n, err := c.ReadCloser.Read(p)
	c.remaining -= int64(n)
	return n, err
}

// httpClient is shared across fetches; timeouts prevent indefinite hangs.
// Safe for concurrent use.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: RequestTimeout / 6,
		}).Dial,
		TLSHandshakeTimeout:   RequestTimeout / 6,
		ResponseHeaderTimeout: RequestTimeout / 2,
	},
}

// Open resolves a source into an io.ReadCloser:
//   - "-" reads from standard input
//   - sources starting with "http://" or "https://" are fetched over HTTP
//   - everything else is treated as a local file path
//
// ctx allows cancellation of HTTP fetches.
func Open(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == "-":
		return &cappedReadCloser{
			ReadCloser: os.Stdin,
			remaining:  MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case IsURL(source):
		return openURL(ctx, source)
	default:
		return openFile(source)
	}
}

// IsURL reports whether the source names a remote http(s) resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// openURL fetches a remote source, enforcing status and size checks.
func openURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "tally/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request for %q failed: status %d %s", url, resp.StatusCode, resp.Status)
	}

	// reject early when the server declares an oversized body
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if size, err := strconv.ParseInt(cl, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	return &cappedReadCloser{
		ReadCloser: resp.Body,
		remaining:  MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

// openFile opens a local file, checking existence and size up front for
// clearer error messages than a bare os.Open failure.
func openFile(path string) (io.ReadCloser, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}

	if info.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)", path, info.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}

	return file, nil
}
