// Package codec converts vector stickers with an external renderer.
package codec

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"persona-relay/domain"
	"persona-relay/domain/mimetypes"
	"persona-relay/errors"
	"regexp"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

const DefaultTimeout = 30 * time.Second

var unsafeName = regexp.MustCompile(`[^a-zA-Z0-9_\-]+`)

// LottieConverter runs "<binary> <input.json> <output.gif>" and returns the
// produced animation.
type LottieConverter struct {
	binary  string
	timeout time.Duration
	log     *slog.Logger
}

func NewLottieConverter(binary string, timeout time.Duration, log *slog.Logger) *LottieConverter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &LottieConverter{binary: binary, timeout: timeout, log: log}
}

func (c *LottieConverter) Convert(ctx context.Context, sticker domain.StickerRef, data []byte) (domain.File, error) {
	if c.binary == "" {
		return domain.File{}, errors.ErrConverterDisabled
	}
	if sticker.Format != domain.StickerLottie {
		return domain.File{}, fmt.Errorf("%w: %s", errors.ErrUnsupportedSticker, sticker.Format)
	}
	if _, ok := mimetypes.Matches(mimetype.Detect(data).String(), mimetypes.ForSticker(sticker.Format)); !ok {
		return domain.File{}, fmt.Errorf("%w: sticker %s is not a lottie document", errors.ErrUnsupportedSticker, sticker.ID)
	}

	dir, err := os.MkdirTemp("", "sticker-*")
	if err != nil {
		return domain.File{}, err
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			c.log.Warn("Removing sticker workdir failed", "dir", dir, "error", err)
		}
	}()

	in := filepath.Join(dir, "sticker.json")
	out := filepath.Join(dir, "sticker.gif")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return domain.File{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.binary, in, out)
	cmd.Stderr = &stderr
	start := time.Now()
	if err := cmd.Run(); err != nil {
		return domain.File{}, fmt.Errorf("converting sticker %s: %w: %s", sticker.ID, err, bytes.TrimSpace(stderr.Bytes()))
	}

	gif, err := os.ReadFile(out)
	if err != nil {
		return domain.File{}, fmt.Errorf("reading converted sticker %s: %w", sticker.ID, err)
	}
	mime := mimetype.Detect(gif)
	if _, ok := mimetypes.Matches(mime.String(), mimetypes.ImageGIF); !ok {
		return domain.File{}, fmt.Errorf("converting sticker %s: renderer produced %s", sticker.ID, mime.String())
	}
	c.log.Debug("Sticker converted", "sticker", sticker.ID, "bytes", len(gif), "took", time.Since(start))
	return domain.File{
		Name:        fileName(sticker) + mime.Extension(),
		ContentType: mime.String(),
		Data:        gif,
	}, nil
}

func fileName(sticker domain.StickerRef) string {
	name := unsafeName.ReplaceAllString(sticker.Name, "_")
	if name == "" || name == "_" {
		name = "sticker_" + sticker.ID
	}
	return name
}
