package imagepkg

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// MaxDimension is the largest canvas side written by default.
const MaxDimension = 65500

// ScaledSize returns the size of a w x h image shrunk uniformly so its larger
// side equals limit. Sizes already within limit are returned unchanged.
func ScaledSize(w, h, limit int) (int, int) {
	larger := w
	if h > larger {
		larger = h
	}
	if larger <= limit {
		return w, h
	}
	scale := float64(limit) / float64(larger)
	nw := int(math.Round(float64(w) * scale))
	nh := int(math.Round(float64(h) * scale))
	if w >= h {
		nw = limit
	} else {
		nh = limit
	}
	return max(nw, 1), max(nh, 1)
}

// FitWithin downscales img with a Lanczos filter when its larger side exceeds
// limit. The second result reports whether a resize happened; when it is
// false img itself is returned.
func FitWithin(img image.Image, limit int) (image.Image, bool) {
	b := img.Bounds()
	w, h := ScaledSize(b.Dx(), b.Dy(), limit)
	if w == b.Dx() && h == b.Dy() {
		return img, false
	}
	return imaging.Resize(img, w, h, imaging.Lanczos), true
}
