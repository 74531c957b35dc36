// Package testutil provides shared fixture builders for trace tests.
package testutil

import "github.com/agent-eval-gang/tracediff-go/internal/trace"

// Thinking builds a thinking step.
func Thinking(id, content string) trace.Step {
	return trace.Step{ID: id, Type: trace.StepThinking, Text: content}
}

// Action builds a tool-call step with normalized arguments.
func Action(id, tool string, args map[string]any) trace.Step {
	return trace.Step{
		ID:       id,
		Type:     trace.StepAction,
		Tool:     tool,
		StepArgs: trace.NormalizeMap(args),
	}
}

// Response builds a response step.
func Response(id, content string) trace.Step {
	return trace.Step{ID: id, Type: trace.StepResponse, Text: content}
}

// Span builds a span node with the given children attached and their
// parent name set.
func Span(id, name, category string, durationMS float64, children ...*trace.Span) *trace.Span {
	s := &trace.Span{
		ID:      id,
		Name:    name,
		Kind:    category,
		StartMS: 0,
		EndMS:   durationMS,
	}
	for _, c := range children {
		c.Parent = name
		s.ChildSpans = append(s.ChildSpans, c)
	}
	return s
}
