package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"identity-ocr/internal/logger"
)

type progress interface {
	Add(n int) error
	Finish() error
}

type nopProgress struct{}

func (nopProgress) Add(int) error { return nil }
func (nopProgress) Finish() error { return nil }

// tracker drives a progress bar. Write errors on the bar never fail a run;
// they are logged at debug level.
type tracker struct {
	bar progress
	log zerolog.Logger
}

func newTracker(ctx context.Context, w io.Writer, total int, description string) *tracker {
	t := &tracker{bar: nopProgress{}, log: logger.FromContext(ctx)}
	if w != nil {
		t.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(description),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
		)
	}
	return t
}

func (t *tracker) step() {
	if err := t.bar.Add(1); err != nil {
		t.log.Debug().Err(err).Msg("[progress]: writing progress bar")
	}
}

func (t *tracker) finish() {
	if err := t.bar.Finish(); err != nil {
		t.log.Debug().Err(err).Msg("[progress]: finishing progress bar")
	}
}
