package trie_test

import (
	"testing"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttrs(t *testing.T, cards ...int) []*attribute.Attribute {
	t.Helper()
	core.NoisePerUnit = 1000
	attrs := make([]*attribute.Attribute, len(cards))
	for i, c := range cards {
		attrs[i] = attribute.New(i, core.DimensionSpec{Cardinality: c, Epsilon: 1})
	}
	return attrs
}

func TestSetHyperplaneThenSetPresentPropagatesNoise(t *testing.T) {
	// A 2x2 relation with tuples (0,0,noise=30) (0,1,noise=40) (1,0,noise=50).
	s := trie.NewStore([]int{2, 2}, false)
	require.NoError(t, s.SetHyperplane([]core.NoisyTuple{
		{Elements: []int{0, 0}, Noise: 30},
		{Elements: []int{0, 1}, Noise: 40},
		{Elements: []int{1, 0}, Noise: 50},
	}))
	attrs := newAttrs(t, 2, 2)

	// Commit dim0=0 present: with two dimensions no third coordinate has
	// to be present, so tuple (0,0) credits its noise to dim1's element 0
	// at once.
	require.NoError(t, s.SetPresent(0, 0, attrs))
	assert.Equal(t, core.Noise(30), attrs[1].Potential()[0].PresentNoise)

	require.NoError(t, s.SetPresent(1, 0, attrs))
	// Committing dim1=0 present walks tuples (0,0) and (1,0), crediting
	// dim0's element 0 with (0,0)'s noise.
	assert.Equal(t, core.Noise(30), attrs[0].Potential()[0].PresentNoise)
}

func TestCrispSetHyperplaneThenSetPresentPropagatesNoise(t *testing.T) {
	// A crisp 2x2 relation: (0,0) and (1,0) are members, (0,1) and (1,1)
	// are not (noise == NoisePerUnit) — a crisp leaf must still store
	// that second pair's full noise rather than collapsing it to 0, or
	// this credit would silently vanish.
	core.NoisePerUnit = 1000
	s := trie.NewStore([]int{2, 2}, true)
	require.NoError(t, s.SetHyperplane([]core.NoisyTuple{
		{Elements: []int{0, 0}, Noise: 0},
		{Elements: []int{0, 1}, Noise: core.NoisePerUnit},
		{Elements: []int{1, 0}, Noise: 0},
		{Elements: []int{1, 1}, Noise: core.NoisePerUnit},
	}))
	attrs := newAttrs(t, 2, 2)

	require.NoError(t, s.SetPresent(1, 1, attrs))
	// Every tuple with dim1=1 is full-noise; once dim1's element 1 is
	// present, both dim0 elements must be credited the full noise, not 0.
	assert.Equal(t, core.NoisePerUnit, attrs[0].Potential()[0].PresentNoise)
	assert.Equal(t, core.NoisePerUnit, attrs[0].Potential()[1].PresentNoise)
}

func TestSetAbsentSubtractsNoiseAndPrunes(t *testing.T) {
	s := trie.NewStore([]int{2, 2}, false)
	require.NoError(t, s.SetHyperplane([]core.NoisyTuple{
		{Elements: []int{0, 0}, Noise: 50},
		{Elements: []int{0, 1}, Noise: 20},
	}))
	attrs := newAttrs(t, 2, 2)

	before := s.CountNoiseOnPresentAndPotential(0, 0)
	assert.Equal(t, core.Noise(70), before)

	require.NoError(t, s.SetAbsent(1, 1, attrs))
	after := s.CountNoiseOnPresentAndPotential(0, 0)
	assert.Equal(t, core.Noise(50), after)
}

func TestSelfLoopsExcludedFromSymmetricPresent(t *testing.T) {
	attrs := newAttrs(t, 3, 3) // pins core.NoisePerUnit before any insert
	attrs[0].Symmetric, attrs[1].Symmetric = true, true

	s := trie.NewStore([]int{3, 3}, false)
	require.NoError(t, s.SetHyperplane([]core.NoisyTuple{
		{Elements: []int{0, 1}, Noise: 10},
		{Elements: []int{1, 0}, Noise: 10},
	}))
	require.NoError(t, s.SetSelfLoops(0, 1, 3))

	require.NoError(t, s.SetSymmetricPresent(0, 1, 0, attrs))
	// Self-loop (0,0) must never contribute: if it had, dim1's element 0
	// would show a noise credit of NoisePerUnit, dwarfing everything else.
	for _, v := range attrs[1].Potential() {
		assert.Less(t, v.PresentNoise, core.NoisePerUnit)
	}
}

func TestDenseTubeUpgradePreservesLookups(t *testing.T) {
	trie.DensityThreshold = 0.1 // force an early upgrade to dense storage
	defer func() { trie.DensityThreshold = 0.25 }()

	s := trie.NewStore([]int{10}, false)
	tuples := make([]core.NoisyTuple, 0, 10)
	for e := 0; e < 10; e++ {
		tuples = append(tuples, core.NoisyTuple{Elements: []int{e}, Noise: core.Noise(e)})
	}
	require.NoError(t, s.SetHyperplane(tuples))
	for e := 0; e < 10; e++ {
		assert.Equal(t, core.Noise(e), s.CountNoiseOnPresentAndPotential(0, e))
	}
}
