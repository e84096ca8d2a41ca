package collage

import (
	"context"
	"image"

	"github.com/pkg/errors"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/ctxlog"
	imagepkg "github.com/youruser/collageapp/internal/image"
)

// Builder fetches images and lays them out on a canvas.
type Builder struct {
	source       Source
	perRow       int
	layout       imagepkg.Layout
	maxDimension int
	workers      int
	qrText       string
}

func NewBuilder(source Source, opts ...Option) *Builder {
	b := &Builder{
		source:       source,
		perRow:       config.DefaultImagesPerRow,
		layout:       imagepkg.LayoutCells,
		maxDimension: imagepkg.MaxDimension,
		workers:      config.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.perRow <= 0 {
		b.perRow = config.DefaultImagesPerRow
	}
	if b.maxDimension <= 0 {
		b.maxDimension = imagepkg.MaxDimension
	}
	return b
}

// Placement records where one image landed on the canvas. Index is the
// image's position in the URL list, or -1 for the QR tile.
type Placement struct {
	Index int
	URL   string
	Rect  image.Rectangle
}

type Result struct {
	Total      int
	Succeeded  int
	Failures   []error
	Placements []Placement
	// Canvas is nil when no image could be decoded.
	Canvas     image.Image
	Resized    bool
	OutputPath string
}

// Empty reports whether the run produced no collage.
func (r *Result) Empty() bool {
	return r.Canvas == nil
}

// Build fetches urls and composes the collage. A run where every URL fails is
// not an error: the returned Result is Empty. Errors are returned only when
// ctx is cancelled or composing fails.
func (b *Builder) Build(ctx context.Context, urls []string) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	fetched, failures, err := b.fetchAll(ctx, urls)
	if err != nil {
		return nil, errors.Wrap(err, "fetching images")
	}
	res := &Result{
		Total:     len(urls),
		Succeeded: len(fetched),
		Failures:  failures,
	}
	if len(fetched) == 0 {
		logger.Info("no valid images", "total", len(urls))
		return res, nil
	}

	images := make([]image.Image, 0, len(fetched)+1)
	for _, f := range fetched {
		images = append(images, f.img)
	}
	if b.qrText != "" {
		if qr, err := b.qrTile(images); err != nil {
			logger.Warn("skipping qr tile", "error", err)
		} else {
			images = append(images, qr)
		}
	}

	canvas, rects, err := imagepkg.Compose(images, b.perRow, b.layout)
	if err != nil {
		return nil, errors.Wrap(err, "composing collage")
	}
	for i, r := range rects {
		p := Placement{Index: -1, Rect: r}
		if i < len(fetched) {
			p.Index = fetched[i].index
			p.URL = fetched[i].url
		}
		res.Placements = append(res.Placements, p)
	}
	logger.Debug("canvas composed", "width", canvas.Rect.Dx(), "height", canvas.Rect.Dy(), "images", len(images))

	out, resized := imagepkg.FitWithin(canvas, b.maxDimension)
	if resized {
		logger.Info("canvas downscaled",
			"from_width", canvas.Rect.Dx(), "from_height", canvas.Rect.Dy(),
			"to_width", out.Bounds().Dx(), "to_height", out.Bounds().Dy())
	}
	res.Canvas = out
	res.Resized = resized
	return res, nil
}

// qrTile renders the QR code at the size of the largest cell side.
func (b *Builder) qrTile(images []image.Image) (image.Image, error) {
	g := imagepkg.NewGrid(images, b.perRow)
	return imagepkg.GenerateQRImage(b.qrText, max(g.CellWidth, g.CellHeight))
}
