// Package align implements the trace alignment and diff engine: a
// weighted multi-feature similarity scorer, a minimum-edit-cost
// sequence aligner, a recursive tree aligner for span forests, and
// aggregate diff statistics. Everything here is pure and synchronous;
// identical inputs produce byte-identical output.
package align

import "github.com/agent-eval-gang/tracediff-go/internal/trace"

// PairType classifies one aligned correspondence.
type PairType string

const (
	PairMatched  PairType = "matched"
	PairModified PairType = "modified"
	PairAdded    PairType = "added"
	PairRemoved  PairType = "removed"
)

func (p PairType) Valid() bool {
	switch p {
	case PairMatched, PairModified, PairAdded, PairRemoved:
		return true
	}
	return false
}

// AlignedPair is one output record of the aligner.
// Added pairs carry only Right, removed pairs only Left,
// matched/modified carry both. Index is the pair's position in
// pre-order traversal of the produced sequence, contiguous from 0
// within one alignment call. Children is populated only by the tree
// aligner and only on matched/modified pairs.
type AlignedPair struct {
	Type     PairType      `json:"type"`
	Index    int           `json:"index"`
	Left     trace.Item    `json:"left,omitempty"`
	Right    trace.Item    `json:"right,omitempty"`
	Children []AlignedPair `json:"children,omitempty"`
}
