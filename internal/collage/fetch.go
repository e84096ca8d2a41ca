package collage

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/youruser/collageapp/internal/ctxlog"
	imagepkg "github.com/youruser/collageapp/internal/image"
	"golang.org/x/sync/errgroup"
)

// Source downloads the raw bytes behind a URL.
type Source interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

type fetched struct {
	index int
	url   string
	img   image.Image
}

// fetchAll downloads and decodes every URL. Per-URL failures are logged and
// returned in input order; they never stop the other fetches. The successes
// come back in input order too, whatever order the workers finished in. Only
// cancellation of ctx makes fetchAll return an error.
func (b *Builder) fetchAll(ctx context.Context, urls []string) ([]fetched, []error, error) {
	logger := ctxlog.FromContext(ctx)
	total := len(urls)
	images := make([]image.Image, total)
	errs := make([]error, total)
	var succeeded atomic.Int64

	fetchIdx := func(ctx context.Context, i int) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := b.fetchOne(ctx, i, urls[i])
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			errs[i] = err
			logger.Warn("skipping image", "index", i, "url", urls[i], "error", err)
			return nil
		}
		images[i] = img
		n := succeeded.Add(1)
		logger.Info(fmt.Sprintf("%d/%d processed", n, total), "index", i, "url", urls[i])
		return nil
	}

	if b.workers <= 1 {
		for i := range urls {
			if err := fetchIdx(ctx, i); err != nil {
				return nil, nil, err
			}
		}
	} else {
		errGrp, gCtx := errgroup.WithContext(ctx)
		errGrp.SetLimit(b.workers)
		for i := range urls {
			i := i
			errGrp.Go(func() error {
				return fetchIdx(gCtx, i)
			})
		}
		if err := errGrp.Wait(); err != nil {
			return nil, nil, err
		}
	}

	var out []fetched
	var failures []error
	for i, img := range images {
		if img != nil {
			out = append(out, fetched{index: i, url: urls[i], img: img})
		} else if errs[i] != nil {
			failures = append(failures, errs[i])
		}
	}
	return out, failures, nil
}

func (b *Builder) fetchOne(ctx context.Context, i int, url string) (image.Image, error) {
	ctxlog.FromContext(ctx).Debug("fetching image", "index", i, "url", url)
	body, err := b.source.Download(ctx, url)
	if err != nil {
		return nil, &FetchError{Index: i, URL: url, Err: err}
	}
	img, err := imagepkg.Decode(body)
	if err != nil {
		return nil, &DecodeError{Index: i, URL: url, Err: err}
	}
	return img, nil
}
