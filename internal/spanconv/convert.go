// Package spanconv converts exported OpenTelemetry spans into the
// span trees the alignment engine consumes, assigning each span a
// coarse category from its attribute conventions.
package spanconv

import (
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

// FromSpanStubs rebuilds the parent/child forest from a flat span
// export. Sibling order follows the export order; spans whose parent
// is absent from the export become roots.
func FromSpanStubs(stubs tracetest.SpanStubs) []*trace.Span {
	if len(stubs) == 0 {
		return nil
	}

	spans := make([]*trace.Span, len(stubs))
	byID := make(map[string]*trace.Span, len(stubs))
	for i, stub := range stubs {
		span := &trace.Span{
			ID:    stub.SpanContext.SpanID().String(),
			Name:  stub.Name,
			Attrs: convertAttrs(stub.Attributes),
			Text:  stub.Status.Description,
		}
		if !stub.StartTime.IsZero() {
			span.StartMS = float64(stub.StartTime.UnixMilli())
		}
		if !stub.EndTime.IsZero() {
			span.EndMS = float64(stub.EndTime.UnixMilli())
		}
		span.Kind = CategoryFor(span.Name, span.Attrs)
		spans[i] = span
		byID[span.ID] = span
	}

	var roots []*trace.Span
	for i, stub := range stubs {
		span := spans[i]
		parentID := stub.Parent.SpanID().String()
		parent, ok := byID[parentID]
		if !ok || !stub.Parent.HasSpanID() {
			roots = append(roots, span)
			continue
		}
		span.Parent = parent.Name
		parent.ChildSpans = append(parent.ChildSpans, span)
	}
	return roots
}

// convertAttrs normalizes OTel attributes into the closed value
// variant the scorer compares with.
func convertAttrs(kvs []attribute.KeyValue) map[string]trace.AttrValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make(map[string]trace.AttrValue, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = convertValue(kv.Value)
	}
	return out
}

func convertValue(v attribute.Value) trace.AttrValue {
	switch v.Type() {
	case attribute.STRING:
		return trace.StringValue(v.AsString())
	case attribute.BOOL:
		return trace.BoolValue(v.AsBool())
	case attribute.INT64:
		return trace.NumberValue(float64(v.AsInt64()))
	case attribute.FLOAT64:
		return trace.NumberValue(v.AsFloat64())
	case attribute.STRINGSLICE:
		return sliceValue(len(v.AsStringSlice()), func(i int) trace.AttrValue {
			return trace.StringValue(v.AsStringSlice()[i])
		})
	case attribute.BOOLSLICE:
		return sliceValue(len(v.AsBoolSlice()), func(i int) trace.AttrValue {
			return trace.BoolValue(v.AsBoolSlice()[i])
		})
	case attribute.INT64SLICE:
		return sliceValue(len(v.AsInt64Slice()), func(i int) trace.AttrValue {
			return trace.NumberValue(float64(v.AsInt64Slice()[i]))
		})
	case attribute.FLOAT64SLICE:
		return sliceValue(len(v.AsFloat64Slice()), func(i int) trace.AttrValue {
			return trace.NumberValue(v.AsFloat64Slice()[i])
		})
	default:
		return trace.StringValue(v.Emit())
	}
}

// sliceValue renders a slice as an index-keyed map, matching how
// trace.Normalize treats JSON arrays.
func sliceValue(n int, at func(int) trace.AttrValue) trace.AttrValue {
	m := make(map[string]trace.AttrValue, n)
	for i := 0; i < n; i++ {
		m[strconv.Itoa(i)] = at(i)
	}
	return trace.MapValue(m)
}
