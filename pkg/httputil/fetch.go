package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/hierview/pkg/buildinfo"
	errs "github.com/matzehuels/hierview/pkg/errors"
)

// MaxBodySize bounds a fetched document.
const MaxBodySize = 32 << 20

// DefaultClient is used by a [Fetcher] without a client.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Fetcher downloads documents. The zero value is ready to use.
type Fetcher struct {
	Client   *http.Client
	Attempts int           // default 3
	Delay    time.Duration // default 1s, doubled per retry
}

// Fetch returns the body of url.
func (f Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = DefaultClient
	}
	attempts, delay := f.Attempts, f.Delay
	if attempts <= 0 {
		attempts = 3
	}
	if delay <= 0 {
		delay = time.Second
	}

	var body []byte
	err := Retry(ctx, attempts, delay, func() error {
		var err error
		body, err = get(ctx, client, url)
		return err
	})
	return body, err
}

func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "invalid url %s", url)
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: fmt.Errorf("get %s: %w", url, err)}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.New(errs.ErrCodeFileNotFound, "%s not found", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, &RetryableError{Err: fmt.Errorf("get %s: %s", url, resp.Status)}
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("get %s: %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &RetryableError{Err: fmt.Errorf("read %s: %w", url, err)}
	}
	if len(data) > MaxBodySize {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s exceeds %d bytes", url, MaxBodySize)
	}
	return data, nil
}
