package align

// Flatten linearizes an aligned forest in pre-order: each pair is
// emitted before its flattened children, siblings stay in input
// order. Already-flat input comes back unchanged.
func Flatten(pairs []AlignedPair) []AlignedPair {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]AlignedPair, 0, len(pairs))
	for _, pair := range pairs {
		out = append(out, pair)
		out = append(out, Flatten(pair.Children)...)
	}
	return out
}
