package game

import "math/rand/v2"

// Shuffle returns a uniformly shuffled copy of in (Fisher–Yates). in is not modified.
func Shuffle[T any](r *rand.Rand, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns min(n, len(all)) distinct elements of all in random order.
func Sample[T any](r *rand.Rand, all []T, n int) []T {
	if n < 0 {
		n = 0
	}
	shuffled := Shuffle(r, all)
	return shuffled[:min(n, len(shuffled))]
}
