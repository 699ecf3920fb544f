package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"identity-ocr/internal/data"
	"identity-ocr/internal/logger"
)

// annotationDirs keeps the directory names the downstream training code
// expects for the two standard splits.
var annotationDirs = map[string]string{
	"train": "train_annotations",
	"test":  "test_expected_output",
}

// SplitDirs returns the image and annotation directories for split under base.
func SplitDirs(base, split string) (images, annotations string) {
	ann, ok := annotationDirs[split]
	if !ok {
		ann = split + "_annotations"
	}
	return filepath.Join(base, split+"_images"), filepath.Join(base, ann)
}

// Prepare builds a dataset from <base>/<split>/<document folder>/ images:
// every image is renamed to <folder>_<split>_<NNN>.jpg in the split's image
// directory and annotated into the split's annotation directory. The
// document type comes from the folder, not the file name.
func (p *Pipeline) Prepare(ctx context.Context, base string, splits []string) (*Result, error) {
	log := logger.FromContext(ctx)
	results := newResult()

	for _, split := range splits {
		imgOut, jsonOut := SplitDirs(base, split)
		for _, dir := range []string{imgOut, jsonOut} {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return results, fmt.Errorf("creating directory %s: %w", dir, err)
			}
		}

		counter := 1
		for _, folder := range data.FolderOrder {
			inputDir := filepath.Join(base, split, folder)
			files, err := walkFiles(ctx, inputDir)
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("dir", inputDir).Msg("[prepare]: no such folder, skipping")
				continue
			}
			if err != nil {
				return results, err
			}

			bar := newTracker(ctx, p.opts.Progress, len(files), split+"-"+folder)
			for _, src := range files {
				if err := ctx.Err(); err != nil {
					bar.finish()
					return results, err
				}

				newName := fmt.Sprintf("%s_%s_%03d.jpg", folder, split, counter)
				written, err := p.prepareImage(ctx, src, filepath.Join(imgOut, newName), filepath.Join(jsonOut, jsonName(newName)), data.DocumentKeys[folder], results)
				if err != nil {
					bar.finish()
					return results, err
				}
				if written {
					counter++
				}
				bar.step()
			}
			bar.finish()
		}
		log.Info().Str("split", split).Int("images", counter-1).Msg("Split processed")
	}

	log.Info().Int("written", len(results.Writes)).Int("skipped", len(results.Skips)).Msg("Train & test processing completed")
	return results, nil
}

// prepareImage annotates src and copies it to dst as JPEG. The file is
// decoded once; both the OCR input and the copy come from that decode. It
// reports whether the image made it into the dataset.
func (p *Pipeline) prepareImage(ctx context.Context, src, dst, outputPath string, docType data.DocumentType, results *Result) (bool, error) {
	img, binarized, ok, err := p.loadImage(ctx, src)
	if err != nil {
		return false, err
	}
	if !ok {
		entry := data.ManifestEntry{Image: filepath.Base(src), DocumentType: docType}
		return false, p.skip(src, "load", data.StatusSkippedLoad, entry, results)
	}

	text, ok, err := p.performOcr(ctx, src, binarized)
	if err != nil {
		return false, err
	}
	if !ok {
		text = ""
	}

	if err := p.clients.image.SaveJPEG(img, dst); err != nil {
		return false, fmt.Errorf("copying %s: %w", src, err)
	}

	rec, fields := p.extractData(ctx, dst, text, docType)
	if err := p.writeOutput(ctx, rec, outputPath); err != nil {
		return false, err
	}
	p.clients.metrics.ImageWritten(string(docType), fields.Found())
	results.addWrite(dst, rec)

	return true, p.recordManifest(writtenEntry(dst, outputPath, docType, rec, fields))
}
