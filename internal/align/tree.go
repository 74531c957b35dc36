package align

import "github.com/agent-eval-gang/tracediff-go/internal/trace"

// AlignTrees aligns two span forests. Root-level sequences are
// aligned on node fields only (scoring never inspects children), then
// children of every matched or modified pair are aligned recursively.
// Added and removed subtrees are not descended into: the whole
// subtree counts as one unit at the level it first diverges, which
// bounds alignment cost by per-level sequence lengths instead of
// total tree size products. Index is reassigned as the pre-order
// position across the entire produced forest.
func AlignTrees(p Profile, baseline, comparison []trace.Item) []AlignedPair {
	pairs := alignLevel(p, baseline, comparison)
	next := 0
	renumber(pairs, &next)
	return pairs
}

func alignLevel(p Profile, baseline, comparison []trace.Item) []AlignedPair {
	pairs := Align(p, baseline, comparison)
	for i := range pairs {
		pair := &pairs[i]
		if pair.Type != PairMatched && pair.Type != PairModified {
			continue
		}
		children := alignLevel(p, pair.Left.Children(), pair.Right.Children())
		if len(children) > 0 {
			pair.Children = children
		}
	}
	return pairs
}

func renumber(pairs []AlignedPair, next *int) {
	for i := range pairs {
		pairs[i].Index = *next
		*next++
		renumber(pairs[i].Children, next)
	}
}
