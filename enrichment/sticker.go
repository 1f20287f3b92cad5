package enrichment

import (
	"context"
	"persona-relay/domain"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const maxParallelStickers = 4

// Stickers turns stickers into forwardable files.
// Static formats are downloaded as is; vector stickers go through the
// converter when both a source URL and a converter are available. Any other
// sticker is skipped with a warning. Output order follows input order.
func (r *Resolver) Stickers(ctx context.Context, stickers []domain.StickerRef) []domain.File {
	if len(stickers) == 0 {
		return nil
	}
	results := make([]*domain.File, len(stickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelStickers)
	for i, sticker := range stickers {
		g.Go(func() error {
			results[i] = r.sticker(gctx, sticker)
			return nil
		})
	}
	_ = g.Wait()

	return lo.FilterMap(results, func(f *domain.File, _ int) (domain.File, bool) {
		if f == nil {
			return domain.File{}, false
		}
		return *f, true
	})
}

func (r *Resolver) sticker(ctx context.Context, sticker domain.StickerRef) *domain.File {
	log := r.log.With("sticker", sticker.Name, "format", sticker.Format.String())
	if sticker.URL == "" {
		log.Warn("Sticker has no source url, skipping")
		return nil
	}

	switch {
	case sticker.Format.Static():
		data, err := r.source.FetchContent(ctx, sticker.URL)
		if err != nil {
			log.Warn("Sticker download failed, skipping", "error", err)
			return nil
		}
		file := newFile(sticker.Name, data, "."+sticker.Format.String())
		return &file

	case sticker.Format == domain.StickerLottie:
		if r.converter == nil {
			log.Warn("No sticker converter configured, skipping")
			return nil
		}
		data, err := r.source.FetchContent(ctx, sticker.URL)
		if err != nil {
			log.Warn("Sticker download failed, skipping", "error", err)
			return nil
		}
		file, err := r.converter.Convert(ctx, sticker, data)
		if err != nil {
			log.Warn("Sticker conversion failed, skipping", "error", err)
			return nil
		}
		return &file

	default:
		log.Warn("Unsupported sticker format, skipping")
		return nil
	}
}
