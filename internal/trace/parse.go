package trace

import (
	"encoding/json"
	"fmt"
)

// StepDocument is the on-disk form of a recorded trajectory.
type StepDocument struct {
	RunID string `json:"run_id,omitempty"`
	Agent string `json:"agent,omitempty"`
	Steps []Step `json:"steps"`
}

// SpanDocument is the on-disk form of a fetched span tree.
type SpanDocument struct {
	TraceID string  `json:"trace_id,omitempty"`
	Agent   string  `json:"agent,omitempty"`
	Spans   []*Span `json:"spans"`
}

// ParseStepDocument decodes a recorded trajectory document.
func ParseStepDocument(data []byte) (*StepDocument, error) {
	var doc StepDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse step document: %w", err)
	}
	return &doc, nil
}

// ParseSpanDocument decodes a span tree document.
func ParseSpanDocument(data []byte) (*SpanDocument, error) {
	var doc SpanDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse span document: %w", err)
	}
	return &doc, nil
}
