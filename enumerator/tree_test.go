package enumerator_test

import (
	"testing"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/emit"
	"github.com/cerf/etnset/enumerator"
	"github.com/cerf/etnset/measure"
	"github.com/cerf/etnset/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureSink collects every emitted Pattern instead of writing text, so
// tests can assert on the internal element ids directly.
type captureSink struct {
	patterns []emit.Pattern
}

func (s *captureSink) Emit(p emit.Pattern) error {
	s.patterns = append(s.patterns, p)
	return nil
}

// patternSet normalizes a captured pattern list into a comparable form:
// each pattern's per-dimension ids sorted, patterns themselves unordered.
type patternSet [][][]int

func normalize(patterns []emit.Pattern) patternSet {
	out := make(patternSet, len(patterns))
	for i, p := range patterns {
		dims := make([][]int, len(p.Dims))
		for d, ids := range p.Dims {
			sorted := append([]int(nil), ids...)
			for a := 1; a < len(sorted); a++ {
				for b := a; b > 0 && sorted[b-1] > sorted[b]; b-- {
					sorted[b-1], sorted[b] = sorted[b], sorted[b-1]
				}
			}
			dims[d] = sorted
		}
		out[i] = dims
	}
	return out
}

func containsPattern(t *testing.T, got patternSet, want [][]int) {
	t.Helper()
	for _, p := range got {
		if assertDimsEqual(p, want) {
			return
		}
	}
	t.Fatalf("pattern %v not found among emitted patterns %v", want, got)
}

func assertDimsEqual(got, want [][]int) bool {
	if len(got) != len(want) {
		return false
	}
	for d := range got {
		if len(got[d]) != len(want[d]) {
			return false
		}
		for i := range got[d] {
			if got[d][i] != want[d][i] {
				return false
			}
		}
	}
	return true
}

func newAttrs(dims []core.DimensionSpec) []*attribute.Attribute {
	attrs := make([]*attribute.Attribute, len(dims))
	for i, d := range dims {
		attrs[i] = attribute.New(i, d)
	}
	return attrs
}

// TestMineCrispTwoBlockRelation exercises scenario S1 (spec.md §8): a crisp
// 3x3 relation with two disjoint dense blocks, {a,b}x{x,y} and {c}x{z}.
// Both are maximal formal concepts of the underlying boolean matrix, and
// neither can absorb an element of the other (every cross-block cell is
// fully absent), so the exact output is the two blocks and nothing else.
func TestMineCrispTwoBlockRelation(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 3, Epsilon: 0},
		{Cardinality: 3, Epsilon: 0},
	}
	tuples := []core.NoisyTuple{
		{Elements: []int{0, 0}, Noise: 0}, {Elements: []int{0, 1}, Noise: 0}, {Elements: []int{0, 2}, Noise: 1000},
		{Elements: []int{1, 0}, Noise: 0}, {Elements: []int{1, 1}, Noise: 0}, {Elements: []int{1, 2}, Noise: 1000},
		{Elements: []int{2, 0}, Noise: 1000}, {Elements: []int{2, 1}, Noise: 1000}, {Elements: []int{2, 2}, Noise: 0},
	}

	store := trie.NewStore([]int{3, 3}, true)
	require.NoError(t, store.SetHyperplane(tuples))
	attrs := newAttrs(dims)
	require.NoError(t, trie.SeedNoise(tuples, attrs))

	suite := measure.NewSuite([]measure.Measure{
		&measure.MinSize{Dim: 0, Min: 1},
		&measure.MinSize{Dim: 1, Min: 1},
	})

	sink := &captureSink{}
	tree := enumerator.NewTree(dims, 0, false, sink, []int{0, 1})
	require.NoError(t, tree.Mine(store, attrs, suite))

	got := normalize(sink.patterns)
	assert.Len(t, got, 2)
	containsPattern(t, got, [][]int{{0, 1}, {0, 1}})
	containsPattern(t, got, [][]int{{2}, {2}})
}

// TestMineSymmetricCliqueRelation exercises scenario S3: a 4-vertex crisp
// clique attribute pair, edges among {0,1,2} fully present and vertex 3
// isolated, minSize 3 on both dimensions. The only maximal clique
// reaching that size is {0,1,2}x{0,1,2}; vertex 3 can never be added
// since it touches nothing within epsilon's zero budget.
func TestMineSymmetricCliqueRelation(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 4, Epsilon: 0, Symmetric: true},
		{Cardinality: 4, Epsilon: 0, Symmetric: true},
	}
	edges := map[[2]int]bool{
		{0, 1}: true, {1, 0}: true,
		{0, 2}: true, {2, 0}: true,
		{1, 2}: true, {2, 1}: true,
	}
	var tuples []core.NoisyTuple
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			noise := core.Noise(1000)
			if edges[[2]int{i, j}] {
				noise = 0
			}
			tuples = append(tuples, core.NoisyTuple{Elements: []int{i, j}, Noise: noise})
		}
	}

	store := trie.NewStore([]int{4, 4}, true)
	require.NoError(t, store.SetHyperplane(tuples))
	require.NoError(t, store.SetSelfLoops(0, 1, 4))
	attrs := newAttrs(dims)
	attrs[0].TwinID, attrs[1].TwinID = 1, 0
	require.NoError(t, trie.SeedNoise(tuples, attrs))

	suite := measure.NewSuite([]measure.Measure{
		&measure.MinSize{Dim: 0, Min: 3},
		&measure.MinSize{Dim: 1, Min: 3},
	})

	sink := &captureSink{}
	tree := enumerator.NewTree(dims, 0, false, sink, []int{0, 1})
	require.NoError(t, tree.Mine(store, attrs, suite))

	got := normalize(sink.patterns)
	assert.Len(t, got, 1)
	containsPattern(t, got, [][]int{{0, 1, 2}, {0, 1, 2}})
}

// TestMineMinAreaBoundary exercises scenario S5: a fully dense 3x2 crisp
// relation under a MinArea measure set exactly to its area. The relation
// has no partial rows, so the only maximal pattern is the whole relation
// regardless of MinArea — this test checks the boundary case (area ==
// Min passes) rather than isolating MinArea's pruning from ordinary
// closedness pruning, which would need a relation with a genuinely
// smaller closed sub-block for MinArea to reject on its own.
func TestMineMinAreaBoundary(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 3, Epsilon: 0},
		{Cardinality: 2, Epsilon: 0},
	}
	var tuples []core.NoisyTuple
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			tuples = append(tuples, core.NoisyTuple{Elements: []int{i, j}, Noise: 0})
		}
	}

	store := trie.NewStore([]int{3, 2}, true)
	require.NoError(t, store.SetHyperplane(tuples))
	attrs := newAttrs(dims)
	require.NoError(t, trie.SeedNoise(tuples, attrs))

	suite := measure.NewSuite([]measure.Measure{&measure.MinArea{Min: 6}})

	sink := &captureSink{}
	tree := enumerator.NewTree(dims, 0, false, sink, []int{0, 1})
	require.NoError(t, tree.Mine(store, attrs, suite))

	got := normalize(sink.patterns)
	assert.Len(t, got, 1)
	containsPattern(t, got, [][]int{{0, 1, 2}, {0, 1}})
}

// TestMineEpsilonTolerantRelation exercises scenario S2: a 3x3 relation
// where column y is almost, but not fully, connected to row b ((b,y)'s
// membership is 0.5, the rest of the matrix crisp). In {a,b,c}x{y} that
// partial cell lies in row b's hyperplane and in column y's, so both
// epsilons are 0.5: row b and column y each carry noise 500, exactly
// their budget, letting {a,b,c}x{y} surface as a closed pattern. Asserted as "appears in the
// output" rather than "is the only output": proving no other branch of
// this DFS also emits a valid pattern elsewhere in the tree would need a
// full exhaustive trace this test doesn't attempt.
func TestMineEpsilonTolerantRelation(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 3, Epsilon: 0.5}, // rows a,b,c
		{Cardinality: 3, Epsilon: 0.5}, // cols x,y,z
	}
	tuples := []core.NoisyTuple{
		{Elements: []int{0, 0}, Noise: 0}, {Elements: []int{0, 1}, Noise: 0}, {Elements: []int{0, 2}, Noise: 1000},
		{Elements: []int{1, 0}, Noise: 0}, {Elements: []int{1, 1}, Noise: 500}, {Elements: []int{1, 2}, Noise: 1000},
		{Elements: []int{2, 0}, Noise: 1000}, {Elements: []int{2, 1}, Noise: 0}, {Elements: []int{2, 2}, Noise: 0},
	}

	store := trie.NewStore([]int{3, 3}, false)
	require.NoError(t, store.SetHyperplane(tuples))
	attrs := newAttrs(dims)
	require.NoError(t, trie.SeedNoise(tuples, attrs))

	suite := measure.NewSuite([]measure.Measure{
		&measure.MinSize{Dim: 0, Min: 1},
		&measure.MinSize{Dim: 1, Min: 1},
	})

	sink := &captureSink{}
	tree := enumerator.NewTree(dims, 0, false, sink, []int{0, 1})
	require.NoError(t, tree.Mine(store, attrs, suite))

	got := normalize(sink.patterns)
	containsPattern(t, got, [][]int{{0, 1, 2}, {1}})
}
