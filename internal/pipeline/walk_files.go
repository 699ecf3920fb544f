package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"identity-ocr/internal/logger"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// walkFiles lists the images directly inside directory in os.ReadDir order.
func walkFiles(ctx context.Context, directory string) ([]string, error) {
	log := logger.FromContext(ctx)

	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", directory, err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isImageFile(name) {
			log.Debug().Str("file", name).Msg("[walkFiles]: not an image, ignoring")
			continue
		}
		files = append(files, filepath.Join(directory, name))
	}
	return files, nil
}

func isImageFile(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

func jsonName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
}
