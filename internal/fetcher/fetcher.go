// Package fetcher downloads provider documents over HTTP with per-host
// rate limiting and bounded retries on transient failures.
package fetcher

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	// Get returns the full response body of a successful GET.
	Get(ctx context.Context, url string) ([]byte, error)
}

// GetJSON fetches url and decodes the body into a T.
func GetJSON[T any](ctx context.Context, f Fetcher, url string) (*T, error) {
	body, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	var obj T
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, eris.Wrapf(err, "json: decode %s", url)
	}
	return &obj, nil
}
