package align

import "github.com/agent-eval-gang/tracediff-go/internal/trace"

// DiffStats aggregates one comparison. Pair counts come from the
// flattened aligned forest; item counts and latency totals come from
// full traversal of the original trees, so children of added or
// removed subtrees are included even though no pair was synthesized
// for them.
type DiffStats struct {
	MatchedCount  int `json:"matched_count"`
	AddedCount    int `json:"added_count"`
	RemovedCount  int `json:"removed_count"`
	ModifiedCount int `json:"modified_count"`

	BaselineItemCount   int `json:"baseline_item_count"`
	ComparisonItemCount int `json:"comparison_item_count"`

	BaselineLatencyTotal   float64 `json:"baseline_latency_total_ms"`
	ComparisonLatencyTotal float64 `json:"comparison_latency_total_ms"`
}

// Stats summarizes an aligned result against the two original
// sequences it was produced from.
func Stats(aligned []AlignedPair, baseline, comparison []trace.Item) DiffStats {
	stats := DiffStats{
		BaselineItemCount:      trace.CountItems(baseline),
		ComparisonItemCount:    trace.CountItems(comparison),
		BaselineLatencyTotal:   trace.TotalDurationMS(baseline),
		ComparisonLatencyTotal: trace.TotalDurationMS(comparison),
	}
	for _, pair := range Flatten(aligned) {
		switch pair.Type {
		case PairMatched:
			stats.MatchedCount++
		case PairModified:
			stats.ModifiedCount++
		case PairAdded:
			stats.AddedCount++
		case PairRemoved:
			stats.RemovedCount++
		}
	}
	return stats
}
