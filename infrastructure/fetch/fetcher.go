// Package fetch downloads remote media (avatars, emoji images, stickers).
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"persona-relay/errors"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 8 << 20
	// maxTries is the first attempt plus a single retry.
	maxTries = 2
)

// Fetcher is a size-bounded HTTP GET with one retry on transient failures.
type Fetcher struct {
	client       *http.Client
	maxBytes     int64
	log          *slog.Logger
	buildBackoff func() backoff.BackOff
}

func NewFetcher(timeout time.Duration, maxBytes int64, log *slog.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
		log:      log,
		buildBackoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 250 * time.Millisecond
			return b
		},
	}
}

// FetchContent returns the body of url. Client errors other than 429 and
// oversized bodies are not retried.
func (f *Fetcher) FetchContent(ctx context.Context, url string) ([]byte, error) {
	attempt := 0
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		data, err := f.get(ctx, url)
		if err != nil && attempt < maxTries {
			f.log.Debug("Fetch failed, retrying", "url", url, "error", err)
		}
		return data, err
	}, backoff.WithBackOff(f.buildBackoff()), backoff.WithMaxTries(maxTries))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrFetchFailed, url, err)
	}
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}
	if resp.ContentLength > f.maxBytes {
		return nil, backoff.Permanent(fmt.Errorf("%w: %d bytes", errors.ErrContentTooLarge, resp.ContentLength))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > f.maxBytes {
		return nil, backoff.Permanent(fmt.Errorf("%w: more than %d bytes", errors.ErrContentTooLarge, f.maxBytes))
	}
	return data, nil
}
