package imagepkg

import (
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/youruser/collageapp/internal/util"
)

// EncodeJPEG writes img to w as a JPEG of the given quality (1-100).
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

// SaveJPEG writes img to path. The image is encoded into a temporary file in
// the same directory and renamed into place, so a failed encode leaves any
// previous output untouched.
func SaveJPEG(path string, img image.Image, quality int) error {
	if err := util.EnsureParentDir(path); err != nil {
		return errors.Wrap(err, "creating output directory")
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".collage-*.jpg")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if err := EncodeJPEG(tmp, img, quality); err != nil {
		tmp.Close()
		return errors.Wrap(err, "encoding jpeg")
	}
	// CreateTemp creates files with mode 0600
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "setting file mode")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
