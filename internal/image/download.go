package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"github.com/youruser/collageapp/internal/util"

	// registers WebP with image.Decode; imaging already brings bmp and tiff
	_ "golang.org/x/image/webp"
)

// HTTPFetcher downloads image bytes with one GET per URL.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	return &HTTPFetcher{
		Client:   util.NewHTTPClient(timeout),
		MaxBytes: maxBytes,
	}
}

// Download returns the raw response body for url.
func (f *HTTPFetcher) Download(ctx context.Context, url string) ([]byte, error) {
	return util.GetBytes(ctx, f.Client, url, f.MaxBytes)
}

// Decode parses b as any registered image format, ignoring whatever content
// type the server claimed.
func Decode(b []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(b))
}
