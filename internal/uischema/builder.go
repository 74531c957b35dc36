package uischema

import (
	"github.com/agent-eval-gang/tracediff-go/internal/align"
	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

const schemaVersion = "v1"

// Build constructs a DiffSchema from an aligned forest and its stats.
// The schema drives what the frontend renders -- no raw markup from
// the backend.
func Build(aligned []align.AlignedPair, stats align.DiffStats) DiffSchema {
	schema := DiffSchema{Version: schemaVersion}

	schema.Components = append(schema.Components, diffSummary(stats))
	schema.Components = append(schema.Components, typeLegend())
	if stats.BaselineLatencyTotal > 0 || stats.ComparisonLatencyTotal > 0 {
		schema.Components = append(schema.Components, latencyBar(stats))
	}
	for _, pair := range align.Flatten(aligned) {
		schema.Components = append(schema.Components, pairRow(pair))
	}
	return schema
}

func diffSummary(stats align.DiffStats) Component {
	return Component{
		Type:       ComponentDiffSummary,
		Title:      "Comparison Summary",
		Priority:   0,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"matched":          stats.MatchedCount,
			"modified":         stats.ModifiedCount,
			"added":            stats.AddedCount,
			"removed":          stats.RemovedCount,
			"baseline_items":   stats.BaselineItemCount,
			"comparison_items": stats.ComparisonItemCount,
		},
	}
}

func typeLegend() Component {
	legend := make(map[string]any, len(typeStyles))
	for t, style := range typeStyles {
		legend[string(t)] = style
	}
	return Component{
		Type:       ComponentTypeLegend,
		Title:      "Legend",
		Priority:   5,
		Visibility: VisibilityCollapsed,
		Data:       legend,
	}
}

func latencyBar(stats align.DiffStats) Component {
	return Component{
		Type:       ComponentLatencyBar,
		Title:      "Latency",
		Priority:   10,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"baseline_total_ms":   stats.BaselineLatencyTotal,
			"comparison_total_ms": stats.ComparisonLatencyTotal,
			"delta_ms":            stats.ComparisonLatencyTotal - stats.BaselineLatencyTotal,
		},
	}
}

func pairRow(pair align.AlignedPair) Component {
	style := Describe(pair.Type)
	data := map[string]any{
		"pair_type": string(pair.Type),
		"index":     pair.Index,
		"style":     style,
	}
	if pair.Left != nil {
		data["left"] = itemSummary(pair.Left)
	}
	if pair.Right != nil {
		data["right"] = itemSummary(pair.Right)
	}
	return Component{
		Type:       ComponentPairRow,
		Title:      style.Label,
		Priority:   20 + pair.Index,
		Visibility: VisibilityVisible,
		Data:       data,
	}
}

func itemSummary(item trace.Item) map[string]any {
	return map[string]any{
		"id":          item.ItemID(),
		"category":    item.Category(),
		"name":        item.PrimaryName(),
		"duration_ms": item.DurationMS(),
	}
}
