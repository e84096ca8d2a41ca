package imagepkg

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/pkg/errors"
)

var (
	ErrNoImages      = errors.New("no images to compose")
	ErrInvalidPerRow = errors.New("images per row must be positive")
)

// Layout controls how far the cursor moves after each pasted image.
type Layout int

const (
	// LayoutCells places every image at the top-left corner of a uniform
	// cell as wide as the widest image.
	LayoutCells Layout = iota
	// LayoutPacked advances by the width of the image just pasted.
	LayoutPacked
)

func ParseLayout(s string) (Layout, error) {
	switch s {
	case "", "cells":
		return LayoutCells, nil
	case "packed":
		return LayoutPacked, nil
	}
	return LayoutCells, errors.Errorf("unknown layout %q", s)
}

func (l Layout) String() string {
	if l == LayoutPacked {
		return "packed"
	}
	return "cells"
}

// Grid is the row-major arrangement computed for a set of images.
type Grid struct {
	PerRow     int
	Rows       int
	CellWidth  int
	CellHeight int
}

// NewGrid sizes a grid for images: cells are as wide as the widest image and
// as tall as the tallest one.
func NewGrid(images []image.Image, perRow int) Grid {
	g := Grid{PerRow: perRow}
	for _, img := range images {
		b := img.Bounds()
		if b.Dx() > g.CellWidth {
			g.CellWidth = b.Dx()
		}
		if b.Dy() > g.CellHeight {
			g.CellHeight = b.Dy()
		}
	}
	if perRow > 0 {
		g.Rows = (len(images) + perRow - 1) / perRow
	}
	return g
}

// Size is the canvas size for the grid.
func (g Grid) Size() image.Point {
	return image.Pt(g.CellWidth*g.PerRow, g.CellHeight*g.Rows)
}

// Compose pastes images onto an opaque black canvas, left to right and top
// to bottom, perRow images per row. Images are never scaled or cropped. It
// returns the canvas and the rectangle each image was pasted into.
func Compose(images []image.Image, perRow int, layout Layout) (*image.RGBA, []image.Rectangle, error) {
	if len(images) == 0 {
		return nil, nil, ErrNoImages
	}
	if perRow <= 0 {
		return nil, nil, errors.Wrapf(ErrInvalidPerRow, "got %d", perRow)
	}

	g := NewGrid(images, perRow)
	size := g.Size()
	// RGBA keeps image/draw on its fast paths
	canvas := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	rects := make([]image.Rectangle, 0, len(images))
	x, y, count := 0, 0, 0
	for _, img := range images {
		b := img.Bounds()
		r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.Draw(canvas, r, img, b.Min, draw.Over)
		rects = append(rects, r)

		if layout == LayoutPacked {
			x += b.Dx()
		} else {
			x += g.CellWidth
		}
		count++
		if count == perRow {
			x, count = 0, 0
			y += g.CellHeight
		}
	}
	return canvas, rects, nil
}
