package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"identity-ocr/internal/data"
	"identity-ocr/internal/logger"
)

func (p *Pipeline) writeOutput(ctx context.Context, rec data.Record, outputPath string) error {
	if err := p.clients.writer.WriteToFile(rec, outputPath); err != nil {
		return fmt.Errorf("writing record %s: %w", outputPath, err)
	}
	log := logger.FromContext(ctx)
	log.Info().Str("json", filepath.Base(outputPath)).Msg("saved")
	return nil
}

// recordManifest appends entry to the manifest when one is configured.
func (p *Pipeline) recordManifest(entry data.ManifestEntry) error {
	if p.clients.manifest == nil {
		return nil
	}
	entry.RunID = p.opts.RunID
	if err := p.clients.manifest.WriteToFile([]data.ManifestEntry{entry}, p.opts.ManifestPath); err != nil {
		return fmt.Errorf("writing manifest %s: %w", p.opts.ManifestPath, err)
	}
	return nil
}

func (r *Result) addWrite(path string, rec data.Record) {
	r.Writes[path] = rec
}

func (r *Result) addSkip(path string, status data.Status) {
	r.Skips[path] = status
}

func writtenEntry(image, outputPath string, docType data.DocumentType, rec data.Record, fields data.Fields) data.ManifestEntry {
	entry := data.ManifestEntry{
		Image:        filepath.Base(image),
		JSON:         filepath.Base(outputPath),
		DocumentType: docType,
		NumberKind:   fields.NumberKind,
		Status:       data.StatusWritten,
	}
	if rec.DocumentNumber != nil {
		entry.DocumentNumber = *rec.DocumentNumber
	}
	return entry
}
