package engine

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"

	imgproc "identity-ocr/internal/image"
)

// EngineModeDefault is tesseract's OEM 3, the mode gosseract initialises
// every client with.
const EngineModeDefault = 3

type GosseractConfig struct {
	Languages   []string
	PageSegMode int
	EngineMode  int
	Variables   map[string]string
}

type GosseractEngine struct {
	cfg           GosseractConfig
	clientFactory func() *gosseract.Client
}

func NewGosseractEngine(cfg GosseractConfig) (*GosseractEngine, error) {
	if cfg.PageSegMode < int(gosseract.PSM_OSD_ONLY) || cfg.PageSegMode > int(gosseract.PSM_RAW_LINE) {
		return nil, fmt.Errorf("page segmentation mode %d out of range", cfg.PageSegMode)
	}
	if cfg.EngineMode != EngineModeDefault {
		return nil, fmt.Errorf("engine mode %d not supported, only %d", cfg.EngineMode, EngineModeDefault)
	}
	return &GosseractEngine{cfg: cfg, clientFactory: gosseract.NewClient}, nil
}

func (g *GosseractEngine) Name() string { return "gosseract" }

func (g *GosseractEngine) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := imgproc.EncodePNG(img)
	if err != nil {
		return "", err
	}

	client := g.clientFactory()
	defer client.Close()

	if len(g.cfg.Languages) > 0 {
		if err := client.SetLanguage(g.cfg.Languages...); err != nil {
			return "", fmt.Errorf("setting languages: %w", err)
		}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(g.cfg.PageSegMode)); err != nil {
		return "", fmt.Errorf("setting page segmentation mode: %w", err)
	}
	for k, v := range g.cfg.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return "", fmt.Errorf("setting variable %s: %w", k, err)
		}
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text from image: %w", err)
	}
	return text, nil
}

func (g *GosseractEngine) Close() error {
	return nil
}
