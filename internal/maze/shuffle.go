package maze

// Shuffle permutes s in place with a Fisher-Yates shuffle.
// Walking from the last index down to 1 and swapping with a uniformly
// chosen index in [0, i] gives every permutation equal probability.
func Shuffle[T any](rng RandomSource, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := randomIndex(rng, i+1)
		s[i], s[j] = s[j], s[i]
	}
}
