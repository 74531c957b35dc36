// Package mcpserver exposes trace comparison via MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agent-eval-gang/tracediff-go/internal/align"
	"github.com/agent-eval-gang/tracediff-go/internal/config"
	"github.com/agent-eval-gang/tracediff-go/internal/trace"
	"github.com/agent-eval-gang/tracediff-go/internal/uischema"
)

// RegisterTools registers all comparison MCP tools on the given server.
func RegisterTools(server *mcp.Server, cfg config.Config) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "compare_trajectories",
			Description: "Align two flat agent trajectories and report matched/modified/added/removed steps with diff statistics",
		},
		compareTrajectoriesHandler(cfg),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "compare_traces",
			Description: "Align two instrumentation span trees recursively and report per-level classifications with diff statistics",
		},
		compareTracesHandler(cfg),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "describe_comparison_types",
			Description: "List the comparison classifications and their presentation metadata",
		},
		describeTypesHandler(),
	)
}

type compareInput struct {
	Baseline   string `json:"baseline"`
	Comparison string `json:"comparison"`
}

// comparisonReport is the JSON payload returned by the compare tools.
type comparisonReport struct {
	Pairs  []align.AlignedPair `json:"pairs"`
	Stats  align.DiffStats     `json:"stats"`
	Schema uischema.DiffSchema `json:"ui_schema"`
}

func compareTrajectoriesHandler(cfg config.Config) mcp.ToolHandlerFor[compareInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, any, error) {
		if input.Baseline == "" || input.Comparison == "" {
			return errorResult("baseline and comparison are required"), nil, nil
		}

		baseDoc, err := trace.ParseStepDocument([]byte(input.Baseline))
		if err != nil {
			return nil, nil, fmt.Errorf("compare_trajectories: %w", err)
		}
		compDoc, err := trace.ParseStepDocument([]byte(input.Comparison))
		if err != nil {
			return nil, nil, fmt.Errorf("compare_trajectories: %w", err)
		}

		baseline := trace.StepItems(baseDoc.Steps)
		comparison := trace.StepItems(compDoc.Steps)
		pairs := align.Align(cfg.StepProfile(), baseline, comparison)
		stats := align.Stats(pairs, baseline, comparison)

		return textResult(comparisonReport{
			Pairs:  pairs,
			Stats:  stats,
			Schema: uischema.Build(pairs, stats),
		})
	}
}

func compareTracesHandler(cfg config.Config) mcp.ToolHandlerFor[compareInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input compareInput) (*mcp.CallToolResult, any, error) {
		if input.Baseline == "" || input.Comparison == "" {
			return errorResult("baseline and comparison are required"), nil, nil
		}

		baseDoc, err := trace.ParseSpanDocument([]byte(input.Baseline))
		if err != nil {
			return nil, nil, fmt.Errorf("compare_traces: %w", err)
		}
		compDoc, err := trace.ParseSpanDocument([]byte(input.Comparison))
		if err != nil {
			return nil, nil, fmt.Errorf("compare_traces: %w", err)
		}

		baseline := trace.SpanItems(baseDoc.Spans)
		comparison := trace.SpanItems(compDoc.Spans)
		pairs := align.AlignTrees(cfg.SpanProfile(), baseline, comparison)
		stats := align.Stats(pairs, baseline, comparison)

		return textResult(comparisonReport{
			Pairs:  pairs,
			Stats:  stats,
			Schema: uischema.Build(pairs, stats),
		})
	}
}

type describeTypesInput struct{}

func describeTypesHandler() mcp.ToolHandlerFor[describeTypesInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ describeTypesInput) (*mcp.CallToolResult, any, error) {
		types := []align.PairType{align.PairMatched, align.PairModified, align.PairAdded, align.PairRemoved}
		out := make(map[string]uischema.TypeStyle, len(types))
		for _, t := range types {
			out[string(t)] = uischema.Describe(t)
		}
		return textResult(out)
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
