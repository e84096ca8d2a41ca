package collage

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInputList marks a URL list that could not be opened or read.
var ErrInputList = errors.New("url list unavailable")

// FetchError is a per-URL network, timeout or HTTP status failure.
type FetchError struct {
	Index int
	URL   string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching #%d %q: %v", e.Index, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is a response body that is not a decodable image.
type DecodeError struct {
	Index int
	URL   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding #%d %q: %v", e.Index, e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func inputListError(err error) error {
	return fmt.Errorf("%w: %w", ErrInputList, err)
}
