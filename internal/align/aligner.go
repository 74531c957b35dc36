package align

import "github.com/agent-eval-gang/tracediff-go/internal/trace"

// gapCost is the edit cost of leaving one item unpaired (an added or
// removed entry). A substitution is chosen over a gap pair whenever
// its cost 1-score beats two gaps, subject to the MinPairScore gate.
const gapCost = 0.5

// Align aligns two ordered item sequences into a classified pair
// list. It runs a minimum-edit-cost dynamic program where aligning
// baseline[i] with comparison[j] costs 1-Score(i,j) and every
// insertion or deletion costs gapCost. The reconstruction walks
// forward preferring substitution, then removal, then addition, so
// ties resolve to the earliest unconsumed comparison index and the
// output order is deterministic: matched/modified pairs keep baseline
// order, removed items sit at their baseline position, added items at
// their comparison position.
func Align(p Profile, baseline, comparison []trace.Item) []AlignedPair {
	n, m := len(baseline), len(comparison)
	if n == 0 && m == 0 {
		return nil
	}

	// Pairwise similarity for every (i,j) combination.
	sim := make([][]float64, n)
	for i := range sim {
		sim[i] = make([]float64, m)
		for j := range sim[i] {
			sim[i][j] = Score(p, baseline[i], comparison[j])
		}
	}

	// cost[i][j] is the minimum cost of aligning baseline[i:] with
	// comparison[j:]. Suffix formulation so reconstruction runs
	// forward from (0,0).
	cost := make([][]float64, n+1)
	for i := range cost {
		cost[i] = make([]float64, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		cost[i][m] = float64(n-i) * gapCost
	}
	for j := m - 1; j >= 0; j-- {
		cost[n][j] = float64(m-j) * gapCost
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			best := gapCost + cost[i+1][j] // remove baseline[i]
			if c := gapCost + cost[i][j+1]; c < best {
				best = c // add comparison[j]
			}
			if sim[i][j] >= p.MinPairScore {
				if c := (1 - sim[i][j]) + cost[i+1][j+1]; c < best {
					best = c
				}
			}
			cost[i][j] = best
		}
	}

	var pairs []AlignedPair
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && sim[i][j] >= p.MinPairScore &&
			cost[i][j] == (1-sim[i][j])+cost[i+1][j+1]:
			t := PairModified
			if sim[i][j] >= p.MatchThreshold-matchEpsilon {
				t = PairMatched
			}
			pairs = append(pairs, AlignedPair{
				Type:  t,
				Index: len(pairs),
				Left:  baseline[i],
				Right: comparison[j],
			})
			i++
			j++
		case i < n && cost[i][j] == gapCost+cost[i+1][j]:
			pairs = append(pairs, AlignedPair{
				Type:  PairRemoved,
				Index: len(pairs),
				Left:  baseline[i],
			})
			i++
		default:
			pairs = append(pairs, AlignedPair{
				Type:  PairAdded,
				Index: len(pairs),
				Right: comparison[j],
			})
			j++
		}
	}
	return pairs
}
