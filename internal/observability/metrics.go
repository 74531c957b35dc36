package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for the comparison engine.
type Metrics struct {
	ComparisonCount   metric.Int64Counter
	ComparisonLatency metric.Float64Histogram
	PairCount         metric.Int64Counter
}

// NewMetrics creates the comparison metric instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("tracediff")

	comparisonCount, err := meter.Int64Counter("tracediff.comparison.count",
		metric.WithDescription("Number of trace comparisons run"),
	)
	if err != nil {
		return nil, err
	}

	comparisonLatency, err := meter.Float64Histogram("tracediff.comparison.latency_seconds",
		metric.WithDescription("Wall-clock time per comparison"),
	)
	if err != nil {
		return nil, err
	}

	pairCount, err := meter.Int64Counter("tracediff.pair.count",
		metric.WithDescription("Aligned pairs produced, by classification"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		ComparisonCount:   comparisonCount,
		ComparisonLatency: comparisonLatency,
		PairCount:         pairCount,
	}, nil
}

// RecordComparison records one completed comparison.
func (m *Metrics) RecordComparison(ctx context.Context, mode string, d time.Duration) {
	m.ComparisonCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("mode", mode)),
	)
	m.ComparisonLatency.Record(ctx, d.Seconds())
}

// RecordPairs records aligned pair counts for one comparison.
func (m *Metrics) RecordPairs(ctx context.Context, pairType string, n int) {
	m.PairCount.Add(ctx, int64(n),
		metric.WithAttributes(attribute.String("pair_type", pairType)),
	)
}
