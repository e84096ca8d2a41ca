package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const userAgent = "collageapp/1.0"

var (
	ErrEmptyURL     = errors.New("empty url")
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.Code, http.StatusText(e.Code))
}

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetBytes issues a single GET and returns at most limit bytes of body.
// A body larger than limit is an error rather than a silent truncation.
func GetBytes(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading body")
	}
	if int64(len(body)) > limit {
		return nil, errors.Wrapf(ErrBodyTooLarge, "limit %d bytes", limit)
	}
	return body, nil
}
