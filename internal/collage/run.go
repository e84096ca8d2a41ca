package collage

import (
	"context"

	"github.com/pkg/errors"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/ctxlog"
	imagepkg "github.com/youruser/collageapp/internal/image"
	"github.com/youruser/collageapp/internal/urllist"
	"github.com/youruser/collageapp/internal/util"
)

type runner struct {
	source Source
	open   func(path string) error
}

type RunOption func(r *runner)

// RunSource replaces the HTTP fetcher.
func RunSource(s Source) RunOption {
	return func(r *runner) {
		r.source = s
	}
}

// RunViewer replaces the function that displays the saved collage.
func RunViewer(open func(path string) error) RunOption {
	return func(r *runner) {
		r.open = open
	}
}

// Run executes a whole job described by cfg: it loads the URL list, builds
// the collage, writes it to cfg.Output and, if cfg.Show is set, opens it in
// the default viewer. An unreadable URL list returns an error wrapping
// ErrInputList. When no image decodes, nothing is written and the empty
// Result is returned without error.
func Run(ctx context.Context, cfg config.Config, opts ...RunOption) (*Result, error) {
	r := &runner{
		source: imagepkg.NewHTTPFetcher(cfg.Timeout, cfg.MaxBodyBytes),
		open:   util.OpenInViewer,
	}
	for _, opt := range opts {
		opt(r)
	}
	logger := ctxlog.FromContext(ctx)

	urls, err := urllist.Load(cfg.Input)
	if err != nil {
		return nil, inputListError(err)
	}
	logger.Info("url list loaded", "path", cfg.Input, "count", len(urls))

	bopts, err := BuilderOptions(cfg)
	if err != nil {
		return nil, err
	}
	res, err := NewBuilder(r.source, bopts...).Build(ctx, urls)
	if err != nil {
		return nil, err
	}
	if res.Empty() {
		return res, nil
	}

	if err := imagepkg.SaveJPEG(cfg.Output, res.Canvas, cfg.JPEGQuality); err != nil {
		return res, errors.Wrap(err, "saving collage")
	}
	res.OutputPath = cfg.Output
	b := res.Canvas.Bounds()
	logger.Info("collage saved", "path", cfg.Output, "width", b.Dx(), "height", b.Dy(),
		"images", res.Succeeded, "skipped", res.Total-res.Succeeded)

	if cfg.Show {
		if err := r.open(cfg.Output); err != nil {
			logger.Warn("could not open collage in a viewer", "path", cfg.Output, "error", err)
		}
	}
	return res, nil
}
