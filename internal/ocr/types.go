package ocr

import (
	"context"
	"image"
)

// Engine turns a (binarized) image into recognized text, keeping the line
// breaks the engine produced.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
	Close() error
}

type Config struct {
	// Engine is "gosseract" (default) or "ollama".
	Engine    string
	Languages []string
	// PageSegMode is the tesseract page segmentation mode; 6 treats the
	// image as a single uniform block of text.
	PageSegMode int
	// EngineMode is the tesseract OCR engine mode. Only 3 (default) is
	// supported.
	EngineMode  int
	Variables   map[string]string
	OllamaURL   string
	OllamaModel string
}

func DefaultConfig() Config {
	return Config{
		Engine:      "gosseract",
		Languages:   []string{"eng"},
		PageSegMode: 6,
		EngineMode:  3,
	}
}
