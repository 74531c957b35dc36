// trace-compare aligns two recorded traces (flat trajectories or span
// trees), prints a JSON diff report, and signals divergence through
// its exit code. Exit code 0 = fully matched. Exit code 1 =
// divergence detected. Exit code 2 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agent-eval-gang/tracediff-go/internal/align"
	"github.com/agent-eval-gang/tracediff-go/internal/config"
	"github.com/agent-eval-gang/tracediff-go/internal/observability"
	"github.com/agent-eval-gang/tracediff-go/internal/trace"
	"github.com/agent-eval-gang/tracediff-go/internal/uischema"
)

type report struct {
	Mode   string               `json:"mode"`
	Pairs  []align.AlignedPair  `json:"pairs"`
	Stats  align.DiffStats      `json:"stats"`
	Schema *uischema.DiffSchema `json:"ui_schema,omitempty"`
}

func main() {
	baselinePath := flag.String("baseline", "", "path to the baseline trace JSON (required)")
	comparisonPath := flag.String("comparison", "", "path to the comparison trace JSON (required)")
	mode := flag.String("mode", "steps", "trace shape: steps or spans")
	withSchema := flag.Bool("ui-schema", false, "include the UI schema in the report")
	flag.Parse()

	if *baselinePath == "" || *comparisonPath == "" {
		fmt.Fprintln(os.Stderr, "error: --baseline and --comparison are required")
		flag.Usage()
		os.Exit(2)
	}
	if *mode != "steps" && *mode != "spans" {
		fmt.Fprintf(os.Stderr, "error: invalid --mode %q (must be steps or spans)\n", *mode)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	logger := observability.InitLogger(cfg.LogLevel)

	if cfg.OTelEnabled {
		shutdown, err := observability.InitTracer(ctx, cfg.ServiceName)
		if err != nil {
			logger.Error("otel init failed", "error", err)
			os.Exit(2)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				logger.Warn("otel shutdown failed", "error", err)
			}
		}()
	}

	var baseRaw, compRaw []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		baseRaw, err = readFile(gctx, *baselinePath)
		return err
	})
	g.Go(func() error {
		var err error
		compRaw, err = readFile(gctx, *comparisonPath)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("load traces failed", "error", err)
		os.Exit(2)
	}

	metrics, err := observability.NewMetrics()
	if err != nil {
		logger.Error("metrics init failed", "error", err)
		os.Exit(2)
	}

	tracer := otel.Tracer("trace-compare")
	_, span := tracer.Start(ctx, "compare",
		oteltrace.WithAttributes(attribute.String("tracediff.mode", *mode)),
	)
	started := time.Now()

	out, err := compare(cfg, *mode, baseRaw, compRaw)
	span.End()
	if err != nil {
		logger.Error("comparison failed", "error", err)
		os.Exit(2)
	}

	metrics.RecordComparison(ctx, *mode, time.Since(started))
	for pairType, n := range map[string]int{
		"matched":  out.Stats.MatchedCount,
		"modified": out.Stats.ModifiedCount,
		"added":    out.Stats.AddedCount,
		"removed":  out.Stats.RemovedCount,
	} {
		metrics.RecordPairs(ctx, pairType, n)
	}

	logger.Info("comparison complete",
		"mode", *mode,
		"elapsed", time.Since(started).String(),
		"matched", out.Stats.MatchedCount,
		"modified", out.Stats.ModifiedCount,
		"added", out.Stats.AddedCount,
		"removed", out.Stats.RemovedCount,
	)

	if !*withSchema {
		out.Schema = nil
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("marshal report failed", "error", err)
		os.Exit(2)
	}
	fmt.Println(string(data))

	if out.Stats.ModifiedCount > 0 || out.Stats.AddedCount > 0 || out.Stats.RemovedCount > 0 {
		logger.Warn("divergence detected")
		os.Exit(1)
	}
	logger.Info("traces fully matched")
}

func compare(cfg config.Config, mode string, baseRaw, compRaw []byte) (*report, error) {
	var baseline, comparison []trace.Item
	var pairs []align.AlignedPair

	switch mode {
	case "steps":
		baseDoc, err := trace.ParseStepDocument(baseRaw)
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		compDoc, err := trace.ParseStepDocument(compRaw)
		if err != nil {
			return nil, fmt.Errorf("comparison: %w", err)
		}
		baseline = trace.StepItems(baseDoc.Steps)
		comparison = trace.StepItems(compDoc.Steps)
		pairs = align.Align(cfg.StepProfile(), baseline, comparison)
	case "spans":
		baseDoc, err := trace.ParseSpanDocument(baseRaw)
		if err != nil {
			return nil, fmt.Errorf("baseline: %w", err)
		}
		compDoc, err := trace.ParseSpanDocument(compRaw)
		if err != nil {
			return nil, fmt.Errorf("comparison: %w", err)
		}
		baseline = trace.SpanItems(baseDoc.Spans)
		comparison = trace.SpanItems(compDoc.Spans)
		pairs = align.AlignTrees(cfg.SpanProfile(), baseline, comparison)
	}

	stats := align.Stats(pairs, baseline, comparison)
	schema := uischema.Build(pairs, stats)
	return &report{
		Mode:   mode,
		Pairs:  pairs,
		Stats:  stats,
		Schema: &schema,
	}, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
