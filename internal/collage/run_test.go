package collage

import (
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youruser/collageapp/internal/config"
)

func testConfig(t *testing.T, urls string) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input = filepath.Join(dir, "images.txt")
	cfg.Output = filepath.Join(dir, "collage.jpg")
	cfg.Show = false
	cfg.Timeout = 2 * time.Second
	require.NoError(t, os.WriteFile(cfg.Input, []byte(urls), 0o644))
	return cfg
}

func TestRunEndToEnd(t *testing.T) {
	var hits atomic.Int32
	small := pngBytes(t, 100, 50, red)
	large := pngBytes(t, 200, 100, blue)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/a.png":
			_, _ = w.Write(small)
		case "/c":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(large)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/a.png\n"+srv.URL+"/b.png\n  "+srv.URL+"/c  \n")
	cfg.ImagesPerRow = 2

	var opened []string
	cfg.Show = true
	res, err := Run(quietContext(), cfg, RunViewer(func(path string) error {
		opened = append(opened, path)
		return nil
	}))
	require.NoError(t, err)

	assert.Equal(t, int32(3), hits.Load(), "one GET per url")
	assert.Equal(t, []int{0, 2}, placedIndexes(res))
	assert.Equal(t, cfg.Output, res.OutputPath)
	assert.Equal(t, []string{cfg.Output}, opened)

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	jc, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 400, jc.Width)
	assert.Equal(t, 100, jc.Height)
}

func TestRunViewerFailureIsIgnored(t *testing.T) {
	src := newFakeSource()
	src.bodies["http://a"] = pngBytes(t, 4, 4, red)
	cfg := testConfig(t, "http://a\n")
	cfg.Show = true

	res, err := Run(quietContext(), cfg, RunSource(src), RunViewer(func(string) error {
		return errors.New("no display")
	}))
	require.NoError(t, err)
	assert.FileExists(t, res.OutputPath)
}

func TestRunAllFailWritesNothing(t *testing.T) {
	src := newFakeSource()
	cfg := testConfig(t, "http://down/1\nhttp://down/2\n")
	require.NoError(t, os.WriteFile(cfg.Output, []byte("previous run"), 0o644))

	viewed := false
	res, err := Run(quietContext(), cfg, RunSource(src), RunViewer(func(string) error {
		viewed = true
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Empty(t, res.OutputPath)
	assert.False(t, viewed)

	b, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(b), "output must not be overwritten")
}

func TestRunEmptyInput(t *testing.T) {
	cfg := testConfig(t, "")
	res, err := Run(quietContext(), cfg, RunSource(newFakeSource()))
	require.NoError(t, err)
	assert.True(t, res.Empty())
	assert.Equal(t, 0, res.Total)
	assert.NoFileExists(t, cfg.Output)
}

func TestRunMissingInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input = filepath.Join(t.TempDir(), "images.txt")
	cfg.Output = filepath.Join(t.TempDir(), "collage.jpg")

	_, err := Run(quietContext(), cfg, RunSource(newFakeSource()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputList))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NoFileExists(t, cfg.Output)
}

func TestRunInvalidLayout(t *testing.T) {
	cfg := testConfig(t, "http://a\n")
	cfg.Layout = "spiral"
	_, err := Run(quietContext(), cfg, RunSource(newFakeSource()))
	assert.Error(t, err)
}
