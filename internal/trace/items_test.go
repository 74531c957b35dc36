package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepImplementsItem(t *testing.T) {
	t.Parallel()
	step := Step{
		ID:             "s1",
		Type:           StepAction,
		Tool:           "search",
		Text:           "searching",
		DurationMillis: 42,
	}

	var item Item = step
	assert.Equal(t, "s1", item.ItemID())
	assert.Equal(t, "action", item.Category())
	assert.Equal(t, "search", item.PrimaryName())
	assert.Equal(t, 42.0, item.DurationMS())
	assert.Empty(t, item.ParentName())
	assert.Nil(t, item.Children())
}

func TestSpanPrimaryName_OperationAttributeFallback(t *testing.T) {
	t.Parallel()
	named := &Span{ID: "a", Name: "llm.chat"}
	assert.Equal(t, "llm.chat", named.PrimaryName())

	attributed := &Span{ID: "b", Attrs: map[string]AttrValue{
		AttrOperationName: StringValue("chat completion"),
	}}
	assert.Equal(t, "chat completion", attributed.PrimaryName())

	bare := &Span{ID: "c"}
	assert.Empty(t, bare.PrimaryName())
}

func TestSpanDuration(t *testing.T) {
	t.Parallel()
	span := &Span{StartMS: 100, EndMS: 350}
	assert.Equal(t, 250.0, span.DurationMS())

	inverted := &Span{StartMS: 350, EndMS: 100}
	assert.Equal(t, 0.0, inverted.DurationMS(), "negative intervals clamp to zero")
}

func TestCountItemsAndTotalDuration(t *testing.T) {
	t.Parallel()
	forest := SpanItems([]*Span{
		{ID: "p", EndMS: 100, ChildSpans: []*Span{
			{ID: "c1", EndMS: 30},
			{ID: "c2", EndMS: 20, ChildSpans: []*Span{
				{ID: "g1", EndMS: 5},
			}},
		}},
	})

	assert.Equal(t, 4, CountItems(forest))
	assert.Equal(t, 155.0, TotalDurationMS(forest))

	assert.Zero(t, CountItems(nil))
	assert.Zero(t, TotalDurationMS(nil))
}

func TestStepTypeValid(t *testing.T) {
	t.Parallel()
	assert.True(t, StepThinking.Valid())
	assert.True(t, StepAction.Valid())
	assert.False(t, StepType("bogus").Valid())
}

func TestParseStepDocument(t *testing.T) {
	t.Parallel()
	data := []byte(`{
		"run_id": "run-1",
		"steps": [
			{"id": "s1", "type": "action", "tool": "search", "args": {"query": "spike"}, "duration_ms": 12}
		]
	}`)

	doc, err := ParseStepDocument(data)
	require.NoError(t, err)
	assert.Equal(t, "run-1", doc.RunID)
	require.Len(t, doc.Steps, 1)
	assert.Equal(t, "search", doc.Steps[0].Tool)
	assert.Equal(t, StringValue("spike"), doc.Steps[0].StepArgs["query"])

	_, err = ParseStepDocument([]byte("not json"))
	assert.Error(t, err)
}

func TestParseSpanDocument(t *testing.T) {
	t.Parallel()
	data := []byte(`{
		"trace_id": "tr-1",
		"spans": [
			{"id": "p", "name": "agent.run", "category": "agent", "end_ms": 100,
			 "children": [{"id": "c", "name": "llm.chat", "category": "llm", "end_ms": 40}]}
		]
	}`)

	doc, err := ParseSpanDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Spans, 1)
	require.Len(t, doc.Spans[0].ChildSpans, 1)
	assert.Equal(t, "llm.chat", doc.Spans[0].ChildSpans[0].Name)
}
