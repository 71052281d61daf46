package irrelevancy_test

import (
	"testing"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/irrelevancy"
	"github.com/cerf/etnset/measure"
	"github.com/cerf/etnset/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanErasesIrrelevantElements(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{{Cardinality: 5, Epsilon: 0}}
	attrs := []*attribute.Attribute{attribute.New(0, dims[0])}
	for _, v := range attrs[0].Potential() {
		if v.DataID == 3 || v.DataID == 4 {
			v.PresentAndPotentialNoise = core.NoisePerUnit
		}
	}
	store := trie.NewStore([]int{5}, false)
	suite := measure.NewSuite(nil)

	ok := irrelevancy.Clean(attrs, dims, 0, store, suite)
	require.True(t, ok)
	assert.Len(t, attrs[0].Potential(), 3)
	assert.Len(t, attrs[0].Absent(), 2)
}

func TestCleanPrunesOnMeasureViolation(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{{Cardinality: 5, Epsilon: 0}}
	attrs := []*attribute.Attribute{attribute.New(0, dims[0])}
	for _, v := range attrs[0].Potential() {
		if v.DataID == 3 || v.DataID == 4 {
			v.PresentAndPotentialNoise = core.NoisePerUnit
		}
	}
	store := trie.NewStore([]int{5}, false)
	// Requiring present∪potential to stay at 5 makes erasing any element
	// an immediate violation.
	suite := measure.NewSuite([]measure.Measure{&measure.MinSize{Dim: 0, Min: 5}})

	ok := irrelevancy.Clean(attrs, dims, 0, store, suite)
	assert.False(t, ok)
}
