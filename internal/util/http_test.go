package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBytes(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		case "/big":
			_, _ = w.Write([]byte(strings.Repeat("x", 32)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewHTTPClient(time.Second)
	ctx := context.Background()

	body, err := GetBytes(ctx, client, srv.URL+"/ok", 16)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))

	_, err = GetBytes(ctx, client, srv.URL+"/big", 16)
	assert.True(t, errors.Is(err, ErrBodyTooLarge))

	_, err = GetBytes(ctx, client, srv.URL+"/missing", 16)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)

	_, err = GetBytes(ctx, client, "  ", 16)
	assert.True(t, errors.Is(err, ErrEmptyURL))
}

func TestGetBytesTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := GetBytes(context.Background(), NewHTTPClient(50*time.Millisecond), srv.URL, 16)
	assert.Error(t, err)
}

func TestViewerCommand(t *testing.T) {
	tcs := map[string]struct {
		goos string
		name string
	}{
		"linux":   {goos: "linux", name: "xdg-open"},
		"freebsd": {goos: "freebsd", name: "xdg-open"},
		"darwin":  {goos: "darwin", name: "open"},
		"windows": {goos: "windows", name: "rundll32"},
	}
	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			cmd, args := viewerCommand(tc.goos, "collage.jpg")
			assert.Equal(t, tc.name, cmd)
			assert.Equal(t, "collage.jpg", args[len(args)-1])
		})
	}
}
