package pipeline

import (
	"context"
	goimage "image"
	"time"

	"identity-ocr/internal/logger"
)

// performOcr runs the engine on img. Engine failures skip the image
// (ok=false); a cancelled context is returned as an error.
func (p *Pipeline) performOcr(ctx context.Context, path string, img goimage.Image) (text string, ok bool, err error) {
	log := logger.FromContext(ctx)

	start := time.Now()
	text, err = p.clients.engine.Recognize(ctx, img)
	p.clients.metrics.ObserveRecognize(time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", false, ctxErr
	}
	if err != nil {
		log.Warn().Err(err).Str("file", path).Str("engine", p.clients.engine.Name()).Msg("[performOcr]: recognition failed, skipping")
		return "", false, nil
	}

	log.Debug().Str("file", path).Int("chars", len(text)).Msg("[performOcr]: recognized text")
	return text, true, nil
}
