package writer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// JSONWriter writes one value per file, pretty printed with two-space
// indentation. Existing files are overwritten.
type JSONWriter[T any] struct {
	indent string
}

func NewJSONWriter[T any]() *JSONWriter[T] {
	return &JSONWriter[T]{indent: "  "}
}

func (jw *JSONWriter[T]) WriteToFile(item T, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	var buf bytes.Buffer
	if err := jw.Encode(&buf, item); err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing JSON file: %w", err)
	}
	return nil
}

// Encode writes item to w in the same layout WriteToFile uses.
func (jw *JSONWriter[T]) Encode(w io.Writer, item T) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", jw.indent)
	if err := enc.Encode(item); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ReadFromFile decodes a file written by WriteToFile.
func (jw *JSONWriter[T]) ReadFromFile(path string) (T, error) {
	var item T
	raw, err := os.ReadFile(path)
	if err != nil {
		return item, fmt.Errorf("reading JSON file: %w", err)
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("decoding JSON file %s: %w", path, err)
	}
	return item, nil
}
