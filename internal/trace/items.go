// Package trace defines the comparable units of an agent execution:
// flat trajectory steps and hierarchical instrumentation spans.
// Both shapes satisfy the Item interface the alignment engine scores
// against, so there is one engine instead of two parallel code paths.
package trace

// AttrOperationName is the conventional attribute key carrying an
// operation name when a span wraps raw instrumentation attributes.
const AttrOperationName = "operation.name"

// Item is the capability surface the alignment engine reads.
// Implementations are immutable inputs; the engine never mutates them.
type Item interface {
	ItemID() string
	Category() string
	PrimaryName() string
	Args() map[string]AttrValue
	Content() string
	DurationMS() float64
	ParentName() string
	Children() []Item
}

// StepType classifies a flat trajectory step.
type StepType string

const (
	StepThinking    StepType = "thinking"
	StepAction      StepType = "action"
	StepObservation StepType = "observation"
	StepResponse    StepType = "response"
	StepError       StepType = "error"
)

func (s StepType) Valid() bool {
	switch s {
	case StepThinking, StepAction, StepObservation, StepResponse, StepError:
		return true
	}
	return false
}

// Step is one entry of a linear agent trajectory, produced by folding
// a streamed agent protocol into an ordered list.
type Step struct {
	ID             string               `json:"id"`
	Type           StepType             `json:"type"`
	Tool           string               `json:"tool,omitempty"`
	StepArgs       map[string]AttrValue `json:"args,omitempty"`
	Text           string               `json:"content,omitempty"`
	DurationMillis float64              `json:"duration_ms,omitempty"`
}

func (s Step) ItemID() string             { return s.ID }
func (s Step) Category() string           { return string(s.Type) }
func (s Step) PrimaryName() string        { return s.Tool }
func (s Step) Args() map[string]AttrValue { return s.StepArgs }
func (s Step) Content() string            { return s.Text }
func (s Step) DurationMS() float64        { return s.DurationMillis }
func (s Step) ParentName() string         { return "" }
func (s Step) Children() []Item           { return nil }

// Span is one node of an instrumentation span tree. Category is
// assigned by a separate categorization pass (see spanconv), not by
// the instrumentation itself.
type Span struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Kind       string               `json:"category,omitempty"`
	Attrs      map[string]AttrValue `json:"attributes,omitempty"`
	Text       string               `json:"content,omitempty"`
	StartMS    float64              `json:"start_ms,omitempty"`
	EndMS      float64              `json:"end_ms,omitempty"`
	Parent     string               `json:"parent,omitempty"`
	ChildSpans []*Span              `json:"children,omitempty"`
}

func (s *Span) ItemID() string   { return s.ID }
func (s *Span) Category() string { return s.Kind }

// PrimaryName prefers the span name and falls back to the
// conventional operation-name attribute.
func (s *Span) PrimaryName() string {
	if s.Name != "" {
		return s.Name
	}
	if op, ok := s.Attrs[AttrOperationName]; ok && op.Kind == AttrString {
		return op.Str
	}
	return ""
}

func (s *Span) Args() map[string]AttrValue { return s.Attrs }
func (s *Span) Content() string            { return s.Text }

func (s *Span) DurationMS() float64 {
	d := s.EndMS - s.StartMS
	if d < 0 {
		return 0
	}
	return d
}

func (s *Span) ParentName() string { return s.Parent }

func (s *Span) Children() []Item { return SpanItems(s.ChildSpans) }

// StepItems adapts a step slice to the generic Item slice.
func StepItems(steps []Step) []Item {
	if len(steps) == 0 {
		return nil
	}
	items := make([]Item, len(steps))
	for i, s := range steps {
		items[i] = s
	}
	return items
}

// SpanItems adapts a span forest to the generic Item slice.
func SpanItems(spans []*Span) []Item {
	if len(spans) == 0 {
		return nil
	}
	items := make([]Item, len(spans))
	for i, s := range spans {
		items[i] = s
	}
	return items
}

// CountItems counts every node in the forest, children included.
func CountItems(items []Item) int {
	n := 0
	for _, it := range items {
		n += 1 + CountItems(it.Children())
	}
	return n
}

// TotalDurationMS sums durations over every node in the forest.
func TotalDurationMS(items []Item) float64 {
	total := 0.0
	for _, it := range items {
		total += it.DurationMS() + TotalDurationMS(it.Children())
	}
	return total
}
