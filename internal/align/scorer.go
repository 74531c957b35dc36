package align

import (
	"strings"

	"github.com/agent-eval-gang/tracediff-go/internal/trace"
)

// matchEpsilon absorbs float64 rounding in the weighted sum so a
// fully-agreeing pair still clears a threshold of 1.0.
const matchEpsilon = 1e-9

// crossCategoryPenalty scales the weighted sum when the coarse
// categories differ. With every profile's non-category weights
// summing to at most 0.8, the penalty keeps any cross-category
// score at or below 0.32.
const crossCategoryPenalty = 0.4

// Profile is one weight configuration for the similarity scorer.
// Weights must sum to 1.0. The two trace shapes share the engine and
// differ only in their profile.
type Profile struct {
	NameWeight     float64
	CategoryWeight float64
	ArgsWeight     float64
	ContentWeight  float64
	DurationWeight float64
	ParentWeight   float64

	// MatchThreshold is the similarity bar separating matched from
	// modified. The default of 1.0 demands agreement on every scored
	// feature.
	MatchThreshold float64

	// MinPairScore gates substitution in the aligner: pairs scoring
	// below it fall through to one removed plus one added.
	MinPairScore float64
}

// StepProfile returns the weight profile for flat trajectory steps:
// a heavier tool-name term, no duration or parent terms.
// Weights: name 0.40, category 0.25, args 0.20, content 0.15.
func StepProfile() Profile {
	return Profile{
		NameWeight:     0.40,
		CategoryWeight: 0.25,
		ArgsWeight:     0.20,
		ContentWeight:  0.15,
		MatchThreshold: 1.0,
		MinPairScore:   0.3,
	}
}

// SpanProfile returns the weight profile for instrumentation spans:
// adds a duration-closeness term and a same-parent bonus.
// Weights: name 0.35, category 0.20, args 0.15, content 0.10,
// duration 0.10, parent 0.10.
func SpanProfile() Profile {
	return Profile{
		NameWeight:     0.35,
		CategoryWeight: 0.20,
		ArgsWeight:     0.15,
		ContentWeight:  0.10,
		DurationWeight: 0.10,
		ParentWeight:   0.10,
		MatchThreshold: 1.0,
		MinPairScore:   0.3,
	}
}

// Score computes the weighted similarity of two items in [0,1].
// It reads only the item's own fields, never children, so the tree
// aligner can reuse it per level. Missing optional fields degrade to
// their neutral contribution instead of erroring.
func Score(p Profile, a, b trace.Item) float64 {
	nameW := p.NameWeight
	catW := p.CategoryWeight
	parentW := p.ParentWeight

	// When neither side carries a primary name, its weight folds into
	// the category term so identical nameless items still score 1.0.
	nameScore := 0.0
	an, bn := a.PrimaryName(), b.PrimaryName()
	switch {
	case an == "" && bn == "":
		catW += nameW
		nameW = 0
	case an == bn:
		nameScore = 1
	}

	catScore := 0.0
	if a.Category() == b.Category() {
		catScore = 1
	}

	// Both sides parentless counts as agreement.
	parentScore := 0.0
	if a.ParentName() == b.ParentName() {
		parentScore = 1
	}

	total := nameW*nameScore +
		catW*catScore +
		p.ArgsWeight*argsSimilarity(a.Args(), b.Args()) +
		p.ContentWeight*contentSimilarity(a.Content(), b.Content()) +
		p.DurationWeight*durationSimilarity(a.DurationMS(), b.DurationMS()) +
		parentW*parentScore

	if a.Category() != b.Category() {
		total *= crossCategoryPenalty
	}
	return clamp01(total)
}

// argsSimilarity is a Jaccard overlap over (key,value) pairs with
// deep value equality. Both sides empty is full agreement; exactly
// one side empty is zero.
func argsSimilarity(a, b map[string]trace.AttrValue) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	union := len(b)
	inter := 0
	for k, av := range a {
		bv, ok := b[k]
		if !ok {
			union++
			continue
		}
		if av.Equal(bv) {
			inter++
		}
	}
	return float64(inter) / float64(union)
}

// contentSimilarity is a token-set Jaccard over a case-insensitive
// word split. Empty versus empty is a match; empty versus non-empty
// is zero.
func contentSimilarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	union := len(tb)
	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		} else {
			union++
		}
	}
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// durationSimilarity is 1 - |d1-d2| / max(d1,d2,1). The floor of 1
// in the denominator keeps the both-zero case at full similarity.
func durationSimilarity(d1, d2 float64) float64 {
	diff := d1 - d2
	if diff < 0 {
		diff = -diff
	}
	max := d1
	if d2 > max {
		max = d2
	}
	if max < 1 {
		max = 1
	}
	return clamp01(1 - diff/max)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	// The weights sum to 1.0 only up to float64 rounding; snap so a
	// fully-agreeing pair scores exactly 1.0.
	if f > 1-matchEpsilon {
		return 1
	}
	return f
}
