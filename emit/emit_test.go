package emit_test

import (
	"strings"
	"testing"

	"github.com/cerf/etnset/emit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSinkRestoresExternalOrderAndLabels(t *testing.T) {
	var buf strings.Builder
	labels := [][]string{
		{"a0", "a1"},
		{"b0", "b1", "b2"},
	}
	sink := emit.NewLineSink(&buf, labels)
	// Internal dim 1 printed before internal dim 0 (external order [1,0]).
	err := sink.Emit(emit.Pattern{
		Dims:          [][]int{{0, 1}, {2}},
		ExternalOrder: []int{1, 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "b2;a0 a1\n", buf.String())
}

func TestLineSinkFallsBackToElementID(t *testing.T) {
	var buf strings.Builder
	sink := emit.NewLineSink(&buf, nil)
	err := sink.Emit(emit.Pattern{Dims: [][]int{{0, 2}}, ExternalOrder: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, "0 2\n", buf.String())
}

func TestLineSinkPrintsSizesAndArea(t *testing.T) {
	var buf strings.Builder
	sink := emit.NewLineSink(&buf, nil)
	sink.IncludeSizes = true
	sink.IncludeArea = true
	err := sink.Emit(emit.Pattern{
		Dims:          [][]int{{0, 1}, {5, 6, 7}},
		ExternalOrder: []int{0, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "0 1;5 6 7 2,3 6\n", buf.String())
}
