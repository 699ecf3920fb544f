package pipeline

import (
	"context"
	"errors"
	goimage "image"

	imgproc "identity-ocr/internal/image"
	"identity-ocr/internal/logger"
)

// loadImage decodes path once and returns it with its binarized form, or
// ok=false when the file could not be decoded and must be skipped.
func (p *Pipeline) loadImage(ctx context.Context, path string) (src, binarized goimage.Image, ok bool, err error) {
	log := logger.FromContext(ctx)

	src, err = p.clients.image.Open(path)
	if errors.Is(err, imgproc.ErrLoad) {
		log.Debug().Err(err).Str("file", path).Msg("[loadImage]: unreadable image, skipping")
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	return src, p.clients.image.BinarizeImage(src), true, nil
}
