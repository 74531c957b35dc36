// Package trajectory folds a streamed agent protocol into the linear
// step trajectory the alignment engine consumes.
package trajectory

import "time"

// EventType identifies an agent stream event.
type EventType string

const (
	EventRunStarted  EventType = "RUN_STARTED"
	EventRunFinished EventType = "RUN_FINISHED"
	EventRunError    EventType = "RUN_ERROR"

	EventThinkingStart   EventType = "THINKING_START"
	EventThinkingContent EventType = "THINKING_CONTENT"
	EventThinkingEnd     EventType = "THINKING_END"

	EventTextMessageStart   EventType = "TEXT_MESSAGE_START"
	EventTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	EventTextMessageEnd     EventType = "TEXT_MESSAGE_END"

	EventToolCallStart  EventType = "TOOL_CALL_START"
	EventToolCallArgs   EventType = "TOOL_CALL_ARGS"
	EventToolCallEnd    EventType = "TOOL_CALL_END"
	EventToolCallResult EventType = "TOOL_CALL_RESULT"
)

// Event is a single event emitted by the agent endpoint.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id,omitempty"`

	// StepID groups the start/content/end events of one step.
	StepID string `json:"step_id,omitempty"`

	// Name carries the tool name on TOOL_CALL_START.
	Name string `json:"name,omitempty"`

	// Delta carries streamed text or argument fragments.
	Delta string `json:"delta,omitempty"`
}
