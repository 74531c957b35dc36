package trajectory

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

// ParseSSE decodes a recorded SSE transcript into events. Each frame's
// data lines carry one JSON-encoded Event; event: lines are redundant
// with the embedded type and are skipped.
func ParseSSE(r io.Reader) ([]Event, error) {
	var events []Event
	var data strings.Builder

	flush := func() error {
		if data.Len() == 0 {
			return nil
		}
		var ev Event
		if err := json.Unmarshal([]byte(data.String()), &ev); err != nil {
			return fmt.Errorf("trajectory: decode SSE frame: %w", err)
		}
		events = append(events, ev)
		data.Reset()
		return nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case strings.HasPrefix(line, "data:"):
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("trajectory: read SSE stream: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return events, nil
}

// openStep accumulates one in-flight step while its events stream in.
type openStep struct {
	step    trace.Step
	startAt int64 // unix milliseconds
	content strings.Builder
	rawArgs strings.Builder
}

// BuildSteps folds an ordered event stream into a linear trajectory.
// Durations come from start/end event timestamps; steps missing an ID
// get a generated one so every item stays addressable.
func BuildSteps(events []Event) []trace.Step {
	var steps []trace.Step
	open := make(map[string]*openStep)
	var openOrder []string

	begin := func(id string, t trace.StepType, ev Event) {
		cur := &openStep{
			step: trace.Step{
				ID:   stepID(id),
				Type: t,
				Tool: ev.Name,
			},
		}
		if !ev.Timestamp.IsZero() {
			cur.startAt = ev.Timestamp.UnixMilli()
		}
		open[id] = cur
		openOrder = append(openOrder, id)
	}

	finish := func(id string, ev Event) {
		cur, ok := open[id]
		if !ok {
			return
		}
		delete(open, id)
		cur.step.Text = cur.content.String()
		if raw := cur.rawArgs.String(); raw != "" {
			cur.step.StepArgs = parseArgs(raw)
		}
		if !ev.Timestamp.IsZero() && cur.startAt != 0 {
			if d := ev.Timestamp.UnixMilli() - cur.startAt; d > 0 {
				cur.step.DurationMillis = float64(d)
			}
		}
		steps = append(steps, cur.step)
	}

	for _, ev := range events {
		switch ev.Type {
		case EventThinkingStart:
			begin(ev.StepID, trace.StepThinking, ev)
		case EventTextMessageStart:
			begin(ev.StepID, trace.StepResponse, ev)
		case EventToolCallStart:
			begin(ev.StepID, trace.StepAction, ev)

		case EventThinkingContent, EventTextMessageContent:
			if cur, ok := open[ev.StepID]; ok {
				cur.content.WriteString(ev.Delta)
			}
		case EventToolCallArgs:
			if cur, ok := open[ev.StepID]; ok {
				cur.rawArgs.WriteString(ev.Delta)
			}

		case EventThinkingEnd, EventTextMessageEnd, EventToolCallEnd:
			finish(ev.StepID, ev)

		case EventToolCallResult:
			steps = append(steps, trace.Step{
				ID:   stepID(ev.StepID),
				Type: trace.StepObservation,
				Tool: ev.Name,
				Text: ev.Delta,
			})
		case EventRunError:
			steps = append(steps, trace.Step{
				ID:   stepID(ev.StepID),
				Type: trace.StepError,
				Text: ev.Delta,
			})
		}
	}

	// Close any steps the stream never finished, in open order.
	for _, id := range openOrder {
		if _, ok := open[id]; ok {
			finish(id, Event{})
		}
	}
	return steps
}

// parseArgs decodes accumulated argument fragments. Fragments that
// never formed valid JSON are kept verbatim under "raw" so the step
// still compares by equality instead of being dropped.
func parseArgs(raw string) map[string]trace.AttrValue {
	var decoded map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return map[string]trace.AttrValue{"raw": trace.StringValue(raw)}
	}
	return trace.NormalizeMap(decoded)
}

func stepID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
