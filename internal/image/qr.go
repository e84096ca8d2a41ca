package imagepkg

import (
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	return qrcode.Encode(text, qrcode.Medium, QRSize(size))
}

// GenerateQRImage returns the QR code for text as an image, ready to be
// placed in a grid.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	return q.Image(QRSize(size)), nil
}

// QRSize clamps a requested QR side length to a sane range.
func QRSize(size int) int {
	return min(max(size, minQRSize), maxQRSize)
}
