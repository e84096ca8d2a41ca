package collage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"github.com/youruser/collageapp/internal/ctxlog"
)

var errRefused = errors.New("connection refused")

type fakeSource struct {
	mu     sync.Mutex
	bodies map[string][]byte
	delays map[string]time.Duration
	calls  map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		bodies: map[string][]byte{},
		delays: map[string]time.Duration{},
		calls:  map[string]int{},
	}
}

func (f *fakeSource) Download(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls[url]++
	delay := f.delays[url]
	body, ok := f.bodies[url]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if !ok {
		return nil, errRefused
	}
	return body, nil
}

func (f *fakeSource) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func quietContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func placedIndexes(res *Result) []int {
	out := make([]int, 0, len(res.Placements))
	for _, p := range res.Placements {
		out = append(out, p.Index)
	}
	return out
}
