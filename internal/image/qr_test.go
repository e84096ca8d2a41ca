package imagepkg

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRSize(t *testing.T) {
	assert.Equal(t, minQRSize, QRSize(0))
	assert.Equal(t, minQRSize, QRSize(-5))
	assert.Equal(t, 300, QRSize(300))
	assert.Equal(t, maxQRSize, QRSize(50000))
}

func TestGenerateQRImage(t *testing.T) {
	img, err := GenerateQRImage("https://example.com/collage", 256)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(256, 256), img.Bounds().Size())
}

func TestGenerateQRPNG(t *testing.T) {
	b, err := GenerateQRPNG("collage:example", 10)
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, minQRSize, cfg.Width)
}

func TestGenerateQRTooLong(t *testing.T) {
	long := bytes.Repeat([]byte("x"), 8000)
	_, err := GenerateQRImage(string(long), 256)
	assert.Error(t, err)
}
