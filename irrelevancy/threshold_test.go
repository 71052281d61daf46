package irrelevancy_test

import (
	"testing"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/irrelevancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdsNonSymmetricCase(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 4, Epsilon: 0.5},
		{Cardinality: 3, Epsilon: 1},
	}
	attrs := []*attribute.Attribute{attribute.New(0, dims[0]), attribute.New(1, dims[1])}

	thresholds := irrelevancy.Thresholds(attrs, dims, 0)
	require.Len(t, thresholds, 2)
	// dim0: hMax = maxPattern[1] = 3, hMin = minPattern[1] = 0, no area
	// correction (minArea=0) -> diff=3, threshold = 500 + 3*1000 = 3500.
	assert.Equal(t, core.Noise(3500), thresholds[0])
	// dim1: hMax = maxPattern[0] = 4, hMin = 0 -> diff=4, threshold =
	// 1000 + 4*1000 = 5000.
	assert.Equal(t, core.Noise(5000), thresholds[1])
}

func TestThresholdsSymmetricCaseCollapsesClique(t *testing.T) {
	core.NoisePerUnit = 1000
	dims := []core.DimensionSpec{
		{Cardinality: 5, Epsilon: 0, Symmetric: true, MinSize: 2},
		{Cardinality: 5, Epsilon: 0, Symmetric: true, MinSize: 2},
		{Cardinality: 10, Epsilon: 0},
	}
	attrs := []*attribute.Attribute{
		attribute.New(0, dims[0]),
		attribute.New(1, dims[1]),
		attribute.New(2, dims[2]),
	}
	attrs[0].TwinID, attrs[1].TwinID = 1, 0
	attribute.RewireTwins(attrs)

	thresholds := irrelevancy.Thresholds(attrs, dims, 9)
	require.Len(t, thresholds, 3)

	// Clique m = max(minSize=2, ceil(sqrt(9))=3) = 3, bounded by 5.
	// dim0 (itself clique): hMax = sizes[1]-1 = 4 (twin self-loop
	// exclusion) times sizes[2]=10 -> 40; hMin = (m-1)*minPattern[2] =
	// 2*0 = 0; areaCorrection = ceil(9/5) = 2; diff = 40-2 = 38.
	assert.Equal(t, core.Noise(38000), thresholds[0])
	assert.Equal(t, thresholds[0], thresholds[1])

	// dim2 (non-symmetric, clique among its siblings): hMax =
	// sizes[0]*(sizes[0]-1) = 20; hMin = m*(m-1) = 6; nonSymArea=1,
	// maxSymSize=5 -> areaCorrection = ceil((9-5)/10) = 1;
	// diff = 20 - max(6,1) = 14.
	assert.Equal(t, core.Noise(14000), thresholds[2])
}
