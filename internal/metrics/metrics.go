package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "identity_ocr"

// Metrics holds the per-run counters on a private registry so several runs
// in one process (tests) do not collide.
type Metrics struct {
	registry *prometheus.Registry

	images    *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	fields    *prometheus.CounterVec
	recognize prometheus.Histogram
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		images: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "images_total",
				Help:      "The total number of images written as JSON records.",
			},
			[]string{"document_type"},
		),
		skipped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "skipped_total",
				Help:      "The total number of images skipped without a record.",
			},
			[]string{"reason"},
		),
		fields: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "fields_total",
				Help:      "The total number of non-empty fields extracted.",
			},
			[]string{"field"},
		),
		recognize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recognize_seconds",
				Help:      "Time spent in the OCR engine per image.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
		),
	}
	m.registry.MustRegister(m.images, m.skipped, m.fields, m.recognize)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ImageWritten(documentType string, fields []string) {
	m.images.WithLabelValues(documentType).Inc()
	for _, f := range fields {
		m.fields.WithLabelValues(f).Inc()
	}
}

func (m *Metrics) Skipped(reason string) {
	m.skipped.WithLabelValues(reason).Inc()
}

func (m *Metrics) ObserveRecognize(d time.Duration) {
	m.recognize.Observe(d.Seconds())
}

// WriteTextfile dumps the registry in the text exposition format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
