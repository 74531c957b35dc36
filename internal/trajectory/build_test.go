package trajectory

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

func at(offsetMS int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offsetMS) * time.Millisecond)
}

func TestBuildSteps_FoldsEventStream(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Type: EventRunStarted, RunID: "run-1", Timestamp: at(0)},
		{Type: EventThinkingStart, StepID: "th1", Timestamp: at(10)},
		{Type: EventThinkingContent, StepID: "th1", Delta: "Analyzing "},
		{Type: EventThinkingContent, StepID: "th1", Delta: "the anomaly"},
		{Type: EventThinkingEnd, StepID: "th1", Timestamp: at(150)},
		{Type: EventToolCallStart, StepID: "tc1", Name: "search", Timestamp: at(160)},
		{Type: EventToolCallArgs, StepID: "tc1", Delta: `{"query":`},
		{Type: EventToolCallArgs, StepID: "tc1", Delta: `"cost spike"}`},
		{Type: EventToolCallEnd, StepID: "tc1", Timestamp: at(400)},
		{Type: EventToolCallResult, StepID: "tr1", Name: "search", Delta: "3 results"},
		{Type: EventTextMessageStart, StepID: "msg1", Timestamp: at(410)},
		{Type: EventTextMessageContent, StepID: "msg1", Delta: "Done"},
		{Type: EventTextMessageEnd, StepID: "msg1", Timestamp: at(500)},
		{Type: EventRunFinished, RunID: "run-1", Timestamp: at(500)},
	}

	steps := BuildSteps(events)
	require.Len(t, steps, 4)

	assert.Equal(t, trace.StepThinking, steps[0].Type)
	assert.Equal(t, "Analyzing the anomaly", steps[0].Text)
	assert.Equal(t, 140.0, steps[0].DurationMillis)

	assert.Equal(t, trace.StepAction, steps[1].Type)
	assert.Equal(t, "search", steps[1].Tool)
	assert.Equal(t, trace.StringValue("cost spike"), steps[1].StepArgs["query"])
	assert.Equal(t, 240.0, steps[1].DurationMillis)

	assert.Equal(t, trace.StepObservation, steps[2].Type)
	assert.Equal(t, "3 results", steps[2].Text)

	assert.Equal(t, trace.StepResponse, steps[3].Type)
	assert.Equal(t, "Done", steps[3].Text)
}

func TestBuildSteps_MalformedArgsKeptVerbatim(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Type: EventToolCallStart, StepID: "tc1", Name: "deploy"},
		{Type: EventToolCallArgs, StepID: "tc1", Delta: `{"target": prod`},
		{Type: EventToolCallEnd, StepID: "tc1"},
	}

	steps := BuildSteps(events)
	require.Len(t, steps, 1)
	assert.Equal(t, trace.StringValue(`{"target": prod`), steps[0].StepArgs["raw"])
}

func TestBuildSteps_UnfinishedStepStillEmitted(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Type: EventThinkingStart, StepID: "th1", Timestamp: at(0)},
		{Type: EventThinkingContent, StepID: "th1", Delta: "interrupted"},
		{Type: EventRunError, StepID: "err1", Delta: "agent crashed"},
	}

	steps := BuildSteps(events)
	require.Len(t, steps, 2)
	assert.Equal(t, trace.StepError, steps[0].Type)
	assert.Equal(t, "agent crashed", steps[0].Text)
	assert.Equal(t, trace.StepThinking, steps[1].Type)
	assert.Equal(t, "interrupted", steps[1].Text)
	assert.Zero(t, steps[1].DurationMillis, "no end timestamp, no duration")
}

func TestBuildSteps_GeneratesMissingIDs(t *testing.T) {
	t.Parallel()
	events := []Event{
		{Type: EventToolCallResult, Delta: "out"},
	}
	steps := BuildSteps(events)
	require.Len(t, steps, 1)
	assert.NotEmpty(t, steps[0].ID)
}

func TestParseSSE(t *testing.T) {
	t.Parallel()
	transcript := strings.Join([]string{
		`event: THINKING_START`,
		`data: {"type":"THINKING_START","step_id":"th1"}`,
		``,
		`event: THINKING_END`,
		`data: {"type":"THINKING_END","step_id":"th1"}`,
		``,
	}, "\n")

	events, err := ParseSSE(strings.NewReader(transcript))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventThinkingStart, events[0].Type)
	assert.Equal(t, "th1", events[0].StepID)
	assert.Equal(t, EventThinkingEnd, events[1].Type)
}

func TestParseSSE_BadFrame(t *testing.T) {
	t.Parallel()
	_, err := ParseSSE(strings.NewReader("data: not json\n\n"))
	assert.Error(t, err)
}
