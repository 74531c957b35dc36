package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-eval-gang/tracediff-go/internal/testutil"
	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

func TestAlignTrees_MatchedRootAlignsChildren(t *testing.T) {
	t.Parallel()
	baseline := trace.SpanItems([]*trace.Span{
		testutil.Span("p1", "agent.run", "agent", 500,
			testutil.Span("c1", "llm.chat", "llm", 200),
		),
	})
	comparison := trace.SpanItems([]*trace.Span{
		testutil.Span("p2", "agent.run", "agent", 500,
			testutil.Span("c2", "llm.chat", "llm", 200),
		),
	})

	pairs := AlignTrees(SpanProfile(), baseline, comparison)
	require.Len(t, pairs, 1)
	assert.Equal(t, PairMatched, pairs[0].Type)
	require.Len(t, pairs[0].Children, 1)
	assert.Equal(t, PairMatched, pairs[0].Children[0].Type)
}

func TestAlignTrees_ModifiedRootStillAlignsChildren(t *testing.T) {
	t.Parallel()
	baseline := trace.SpanItems([]*trace.Span{
		testutil.Span("p1", "agent.run", "agent", 500,
			testutil.Span("c1", "tool.search", "tool", 80),
		),
	})
	comparison := trace.SpanItems([]*trace.Span{
		testutil.Span("p2", "agent.run", "agent", 900,
			testutil.Span("c2", "tool.search", "tool", 80),
		),
	})

	pairs := AlignTrees(SpanProfile(), baseline, comparison)
	require.Len(t, pairs, 1)
	assert.Equal(t, PairModified, pairs[0].Type, "duration drift keeps the pair below the match bar")
	require.Len(t, pairs[0].Children, 1)
	assert.Equal(t, PairMatched, pairs[0].Children[0].Type)
}

func TestAlignTrees_AddedSubtreeNotDescended(t *testing.T) {
	t.Parallel()
	comparison := trace.SpanItems([]*trace.Span{
		testutil.Span("p1", "agent.run", "agent", 500,
			testutil.Span("c1", "llm.chat", "llm", 200),
			testutil.Span("c2", "tool.search", "tool", 100),
		),
	})

	pairs := AlignTrees(SpanProfile(), nil, comparison)
	require.Len(t, pairs, 1)
	assert.Equal(t, PairAdded, pairs[0].Type)
	assert.Empty(t, pairs[0].Children, "added subtrees are one unit, children are not classified")

	// The original tree still counts all three nodes.
	stats := Stats(pairs, nil, comparison)
	assert.Equal(t, 1, stats.AddedCount)
	assert.Equal(t, 3, stats.ComparisonItemCount)
}

func TestAlignTrees_PreOrderIndices(t *testing.T) {
	t.Parallel()
	baseline := trace.SpanItems([]*trace.Span{
		testutil.Span("p1", "agent.run", "agent", 500,
			testutil.Span("c1", "llm.chat", "llm", 200),
			testutil.Span("c2", "tool.search", "tool", 100),
		),
		testutil.Span("p3", "verify", "internal", 50),
	})

	pairs := AlignTrees(SpanProfile(), baseline, baseline)
	flat := Flatten(pairs)
	require.Len(t, flat, 4)
	for i, pair := range flat {
		assert.Equal(t, i, pair.Index, "index is the pre-order position")
		assert.Equal(t, PairMatched, pair.Type)
	}
	assert.Equal(t, "p1", flat[0].Left.ItemID())
	assert.Equal(t, "c1", flat[1].Left.ItemID())
	assert.Equal(t, "c2", flat[2].Left.ItemID())
	assert.Equal(t, "p3", flat[3].Left.ItemID())
}
