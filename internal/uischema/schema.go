// Package uischema defines the typed UI contract emitted for a trace
// comparison. The frontend renders dynamic components based on this
// schema -- it never decides what to show on its own.
package uischema

// DiffSchema is the top-level schema emitted for one comparison.
type DiffSchema struct {
	Version     string      `json:"ui_schema_version"`
	BaselineID  string      `json:"baseline_id,omitempty"`
	CandidateID string      `json:"candidate_id,omitempty"`
	Components  []Component `json:"components"`
}

// ComponentType identifies what frontend component to render.
type ComponentType string

const (
	ComponentDiffSummary ComponentType = "diff_summary"
	ComponentTypeLegend  ComponentType = "type_legend"
	ComponentLatencyBar  ComponentType = "latency_bar"
	ComponentPairRow     ComponentType = "pair_row"
)

// Visibility controls component rendering.
type Visibility string

const (
	VisibilityVisible   Visibility = "visible"
	VisibilityCollapsed Visibility = "collapsed"
)

// Component is a single renderable UI element.
type Component struct {
	Type       ComponentType  `json:"type"`
	Title      string         `json:"title"`
	Priority   int            `json:"priority"`
	Visibility Visibility     `json:"visibility"`
	Data       map[string]any `json:"data,omitempty"`
}
