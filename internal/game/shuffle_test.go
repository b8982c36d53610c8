package game

import (
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestSampleReturnsDistinctMembers(t *testing.T) {
	r := newRand()
	all := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}

	for _, n := range []int{0, 1, 5, 10, 15, 40} {
		got := Sample(r, all, n)
		require.Len(t, got, min(n, len(all)), "n=%d", n)

		seen := make(map[int]bool)
		for _, v := range got {
			assert.False(t, seen[v], "duplicate %d for n=%d", v, n)
			assert.Contains(t, all, v)
			seen[v] = true
		}
	}
}

func TestSampleNegativeCountIsEmpty(t *testing.T) {
	assert.Empty(t, Sample(newRand(), []int{1, 2, 3}, -1))
}

func TestShufflePreservesMultisetAndInput(t *testing.T) {
	in := []string{"A", "B", "B", "C", "D"}
	orig := append([]string(nil), in...)

	out := Shuffle(newRand(), in)

	assert.Equal(t, orig, in, "input must not be mutated")
	sorted := append([]string(nil), out...)
	sort.Strings(sorted)
	assert.Equal(t, []string{"A", "B", "B", "C", "D"}, sorted)
}

func TestShuffleCoversAllPermutations(t *testing.T) {
	r := newRand()
	counts := make(map[[3]int]int)
	const rounds = 6000
	for i := 0; i < rounds; i++ {
		out := Shuffle(r, []int{1, 2, 3})
		counts[[3]int{out[0], out[1], out[2]}]++
	}
	require.Len(t, counts, 6)
	for perm, c := range counts {
		// expected 1000 each; generous bounds keep the check stable
		assert.InDelta(t, rounds/6, c, 200, "permutation %v", perm)
	}
}

func TestShuffleEmpty(t *testing.T) {
	assert.Empty(t, Shuffle[int](newRand(), nil))
}
