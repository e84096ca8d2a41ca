package collage

import (
	"github.com/youruser/collageapp/internal/config"
	imagepkg "github.com/youruser/collageapp/internal/image"
)

type Option func(b *Builder)

func BuilderImagesPerRow(n int) Option {
	return func(b *Builder) {
		b.perRow = n
	}
}

func BuilderLayout(l imagepkg.Layout) Option {
	return func(b *Builder) {
		b.layout = l
	}
}

func BuilderMaxDimension(n int) Option {
	return func(b *Builder) {
		b.maxDimension = n
	}
}

func BuilderWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// BuilderQRText appends a QR code encoding text as the last grid image.
func BuilderQRText(text string) Option {
	return func(b *Builder) {
		b.qrText = text
	}
}

// BuilderOptions maps the layout settings of cfg to builder options.
func BuilderOptions(cfg config.Config) ([]Option, error) {
	layout, err := imagepkg.ParseLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}
	return []Option{
		BuilderImagesPerRow(cfg.ImagesPerRow),
		BuilderLayout(layout),
		BuilderMaxDimension(cfg.MaxDimension),
		BuilderWorkers(cfg.Workers),
		BuilderQRText(cfg.QRText),
	}, nil
}
