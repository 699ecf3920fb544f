package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"identity-ocr/internal/data"
	imgproc "identity-ocr/internal/image"
	"identity-ocr/internal/logger"
	"identity-ocr/internal/metrics"
	"identity-ocr/internal/ocr"
	"identity-ocr/internal/writer"
)

type Options struct {
	ImagesDir      string
	OutputDir      string
	ClassifyPolicy data.ClassifyPolicy
	GenderFold     bool
	// ManifestPath enables the CSV manifest when non-empty.
	ManifestPath string
	RunID        string
	// Progress receives the progress bar; nil disables it.
	Progress io.Writer
}

type Clients struct {
	engine     ocr.Engine
	image      *imgproc.ImageProcessor
	classifier *data.Classifier
	extractor  *data.Extractor
	writer     *writer.JSONWriter[data.Record]
	manifest   *writer.CSVWriter[data.ManifestEntry]
	metrics    *metrics.Metrics
}

// Result maps source image paths to what happened to them.
type Result struct {
	Writes map[string]data.Record
	Skips  map[string]data.Status
}

func newResult() *Result {
	return &Result{
		Writes: make(map[string]data.Record),
		Skips:  make(map[string]data.Status),
	}
}

type Pipeline struct {
	opts    Options
	clients *Clients
}

// New wires a pipeline around engine. The engine is owned by the caller.
func New(engine ocr.Engine, opts Options) (*Pipeline, error) {
	if engine == nil {
		return nil, fmt.Errorf("ocr engine is required")
	}

	classifier, err := data.NewClassifier(opts.ClassifyPolicy)
	if err != nil {
		return nil, err
	}
	extractor, err := data.NewExtractor(data.DefaultRules(data.WithGenderFold(opts.GenderFold)))
	if err != nil {
		return nil, err
	}

	clients := &Clients{
		engine:     engine,
		image:      imgproc.NewImageProcessor(),
		classifier: classifier,
		extractor:  extractor,
		writer:     writer.NewJSONWriter[data.Record](),
		metrics:    metrics.New(),
	}
	if opts.ManifestPath != "" {
		clients.manifest = writer.NewCSVWriter(data.MapCSVRecord, data.GetCSVHeader)
	}

	return &Pipeline{opts: opts, clients: clients}, nil
}

func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.clients.metrics
}

// Run annotates every image in ImagesDir into OutputDir, one image at a
// time. Unreadable images and OCR failures are skipped; errors returned are
// fatal for the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	log := logger.FromContext(ctx)
	log.Info().
		Str("images", p.opts.ImagesDir).
		Str("output", p.opts.OutputDir).
		Str("engine", p.clients.engine.Name()).
		Str("classify_policy", string(p.clients.classifier.Policy())).
		Msg("Processing images")

	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory %s: %w", p.opts.OutputDir, err)
	}

	files, err := walkFiles(ctx, p.opts.ImagesDir)
	if err != nil {
		return nil, err
	}

	results := newResult()
	bar := newTracker(ctx, p.opts.Progress, len(files), "annotate")
	defer bar.finish()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		docType := p.clients.classifier.Classify(file)
		outputPath := filepath.Join(p.opts.OutputDir, jsonName(file))
		if err := p.processImage(ctx, file, docType, outputPath, results); err != nil {
			return results, err
		}
		bar.step()
	}

	log.Info().
		Int("written", len(results.Writes)).
		Int("skipped", len(results.Skips)).
		Msg("All JSON files generated")
	return results, nil
}

func (p *Pipeline) processImage(ctx context.Context, path string, docType data.DocumentType, outputPath string, results *Result) error {
	entry := data.ManifestEntry{Image: filepath.Base(path), DocumentType: docType}

	_, img, ok, err := p.loadImage(ctx, path)
	if err != nil {
		return err
	}
	if !ok {
		return p.skip(path, "load", data.StatusSkippedLoad, entry, results)
	}

	text, ok, err := p.performOcr(ctx, path, img)
	if err != nil {
		return err
	}
	if !ok {
		return p.skip(path, "ocr", data.StatusSkippedOCR, entry, results)
	}

	rec, fields := p.extractData(ctx, path, text, docType)
	if err := p.writeOutput(ctx, rec, outputPath); err != nil {
		return err
	}
	p.clients.metrics.ImageWritten(string(docType), fields.Found())
	results.addWrite(path, rec)

	return p.recordManifest(writtenEntry(path, outputPath, docType, rec, fields))
}

func (p *Pipeline) skip(path, reason string, status data.Status, entry data.ManifestEntry, results *Result) error {
	p.clients.metrics.Skipped(reason)
	results.addSkip(path, status)
	entry.Status = status
	return p.recordManifest(entry)
}
