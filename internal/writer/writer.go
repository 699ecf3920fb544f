package writer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type WriteMode int

const (
	ModeReplace WriteMode = iota
	ModeAppend
)

type MapperFunc[T any] func(T) []string

type HeaderFunc func() []string

// CSVWriter appends rows to CSV files, writing the header the first time a
// path is touched by this writer. The first append to a path truncates it.
type CSVWriter[T any] struct {
	mu            sync.Mutex
	headerTracker map[string]bool
	mapper        MapperFunc[T]
	header        HeaderFunc
}

func NewCSVWriter[T any](mapper MapperFunc[T], header HeaderFunc) *CSVWriter[T] {
	return &CSVWriter[T]{
		headerTracker: make(map[string]bool),
		mapper:        mapper,
		header:        header,
	}
}

// WriteToFile appends data to outputPath, or replaces the file when
// overwrite is true.
func (cw *CSVWriter[T]) WriteToFile(data []T, outputPath string, overwrite ...bool) error {
	if len(overwrite) > 0 && overwrite[0] {
		return cw.WriteToFileWithMode(data, outputPath, ModeReplace)
	}
	return cw.WriteToFileWithMode(data, outputPath, ModeAppend)
}

func (cw *CSVWriter[T]) WriteToFileWithMode(data []T, outputPath string, mode WriteMode) error {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	file, started, err := cw.open(outputPath, mode)
	if err != nil {
		return err
	}
	defer file.Close()

	rows := make([][]string, 0, len(data)+1)
	if !started && len(data) > 0 {
		rows = append(rows, cw.header())
	}
	for _, item := range data {
		rows = append(rows, cw.mapper(item))
	}

	// WriteAll flushes and reports the first write error.
	if err := csv.NewWriter(file).WriteAll(rows); err != nil {
		return fmt.Errorf("writing CSV rows to %s: %w", outputPath, err)
	}
	if len(rows) > 0 && !started {
		cw.headerTracker[outputPath] = true
	}
	return nil
}

// open returns outputPath ready for writing and whether its header is
// already there. Only paths this writer has started can be appended to.
func (cw *CSVWriter[T]) open(outputPath string, mode WriteMode) (*os.File, bool, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, false, fmt.Errorf("creating output directory: %w", err)
	}

	if mode == ModeAppend && cw.headerTracker[outputPath] {
		f, err := os.OpenFile(outputPath, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, false, fmt.Errorf("opening CSV file: %w", err)
		}
		return f, true, nil
	}

	cw.headerTracker[outputPath] = false
	f, err := os.Create(outputPath)
	if err != nil {
		return nil, false, fmt.Errorf("creating CSV file: %w", err)
	}
	return f, false, nil
}
