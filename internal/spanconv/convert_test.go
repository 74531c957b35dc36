package spanconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

func spanContext(id byte) oteltrace.SpanContext {
	return oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID: oteltrace.TraceID{0xaa},
		SpanID:  oteltrace.SpanID{id},
	})
}

func TestFromSpanStubs(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stubs := tracetest.SpanStubs{
		{
			Name:        "agent.run",
			SpanContext: spanContext(1),
			StartTime:   start,
			EndTime:     start.Add(500 * time.Millisecond),
			Attributes: []attribute.KeyValue{
				attribute.String("gen_ai.operation.name", "invoke_agent"),
			},
		},
		{
			Name:        "chat gpt-4",
			SpanContext: spanContext(2),
			Parent:      spanContext(1),
			StartTime:   start.Add(10 * time.Millisecond),
			EndTime:     start.Add(260 * time.Millisecond),
			Attributes: []attribute.KeyValue{
				attribute.String("gen_ai.operation.name", "chat"),
				attribute.Int("gen_ai.usage.input_tokens", 812),
			},
			Status: sdktrace.Status{Description: "ok"},
		},
	}

	roots := FromSpanStubs(stubs)
	require.Len(t, roots, 1)

	root := roots[0]
	assert.Equal(t, "agent.run", root.Name)
	assert.Equal(t, CategoryAgent, root.Kind)
	assert.Equal(t, 500.0, root.DurationMS())
	assert.Empty(t, root.Parent)

	require.Len(t, root.ChildSpans, 1)
	child := root.ChildSpans[0]
	assert.Equal(t, "chat gpt-4", child.Name)
	assert.Equal(t, CategoryLLM, child.Kind)
	assert.Equal(t, "agent.run", child.Parent)
	assert.Equal(t, 250.0, child.DurationMS())
	assert.Equal(t, "ok", child.Text)
	assert.Equal(t, trace.NumberValue(812), child.Attrs["gen_ai.usage.input_tokens"])
}

func TestFromSpanStubs_OrphanBecomesRoot(t *testing.T) {
	t.Parallel()
	stubs := tracetest.SpanStubs{
		{
			Name:        "tool.search",
			SpanContext: spanContext(3),
			Parent:      spanContext(9), // not in the export
		},
	}

	roots := FromSpanStubs(stubs)
	require.Len(t, roots, 1)
	assert.Empty(t, roots[0].Parent)
}

func TestFromSpanStubs_Empty(t *testing.T) {
	t.Parallel()
	assert.Nil(t, FromSpanStubs(nil))
}

func TestConvertValue_Slices(t *testing.T) {
	t.Parallel()
	v := convertValue(attribute.StringSlice("k", []string{"a", "b"}).Value)
	require.Equal(t, trace.AttrMap, v.Kind)
	assert.Equal(t, trace.StringValue("a"), v.Map["0"])
	assert.Equal(t, trace.StringValue("b"), v.Map["1"])

	n := convertValue(attribute.Int64Slice("k", []int64{7}).Value)
	assert.Equal(t, trace.NumberValue(7), n.Map["0"])
}
