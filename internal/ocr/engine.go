package ocr

import (
	"fmt"

	"identity-ocr/internal/logger"
	"identity-ocr/internal/ocr/engine"
)

func NewEngine(cfg Config) (Engine, error) {
	var e Engine

	switch cfg.Engine {
	case "ollama":
		e = engine.NewOllamaEngine(cfg.OllamaURL, cfg.OllamaModel)
	case "gosseract", "":
		g, err := engine.NewGosseractEngine(engine.GosseractConfig{
			Languages:   cfg.Languages,
			PageSegMode: cfg.PageSegMode,
			EngineMode:  cfg.EngineMode,
			Variables:   cfg.Variables,
		})
		if err != nil {
			return nil, err
		}
		e = g
	default:
		return nil, fmt.Errorf("unknown engine type: %s", cfg.Engine)
	}

	logger.DebugLog("[NewEngine]: using %s engine", e.Name())
	return e, nil
}
