package attribute_test

import (
	"testing"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttribute(t *testing.T, card int, epsilon float64) *attribute.Attribute {
	t.Helper()
	core.NoisePerUnit = 1000
	return attribute.New(0, core.DimensionSpec{Cardinality: card, Epsilon: epsilon})
}

func TestNewAttributeStartsAllPotential(t *testing.T) {
	a := newTestAttribute(t, 3, 0.5)
	assert.Len(t, a.Potential(), 3)
	assert.Len(t, a.Present(), 0)
	assert.Len(t, a.Absent(), 0)
	assert.False(t, a.PotentialEmpty())
}

func TestChooseAndSetPresentMovesRegions(t *testing.T) {
	a := newTestAttribute(t, 3, 0.5)
	v := a.ChooseValue()
	require.NotNil(t, v)
	a.SetChosenValuePresent()
	assert.Len(t, a.Present(), 1)
	assert.Len(t, a.Potential(), 2)
	assert.Equal(t, v, a.Present()[0])
}

func TestSetChosenValueAbsent(t *testing.T) {
	a := newTestAttribute(t, 2, 0.5)
	a.ChooseValue()
	a.SetChosenValueAbsent(false)
	assert.Len(t, a.Absent(), 1)
	assert.Len(t, a.Potential(), 1)
	assert.False(t, a.ExtensionPreventingClosedness())
}

func TestFindIrrelevantValuesMovesOverBudget(t *testing.T) {
	a := newTestAttribute(t, 2, 0.1) // epsilon budget = 100 noise units
	// Manually inflate present noise on one potential value past budget.
	a.Potential()[0].PresentNoise = 500
	violated := a.FindIrrelevantValuesAndCheckTauContiguity()
	assert.False(t, violated)
	assert.Len(t, a.Irrelevant(), 1)
	assert.Len(t, a.Potential(), 1)

	ids := a.EraseIrrelevantValues()
	assert.Equal(t, []int{0}, ids)
	assert.Len(t, a.Absent(), 1)
	assert.True(t, a.IrrelevantEmpty())
}

func TestFinalize(t *testing.T) {
	a := newTestAttribute(t, 2, 1)
	ids := a.Finalize()
	assert.ElementsMatch(t, []int{0, 1}, ids)
	assert.True(t, a.PotentialEmpty())
	assert.Len(t, a.Present(), 2)
}

func TestUnclosedDetectsAdjoinableAbsent(t *testing.T) {
	a := newTestAttribute(t, 2, 0.5) // epsilon budget = 500
	a.ChooseValue()
	a.SetChosenValueAbsent(false)
	a.Absent()[0].PresentAndPotentialNoise = 100 // still adjoinable
	assert.True(t, a.Unclosed())
}

func TestUnclosedHonorsUnclosedDimension(t *testing.T) {
	core.NoisePerUnit = 1000
	a := attribute.New(0, core.DimensionSpec{Cardinality: 2, Epsilon: 0.5, Unclosed: true})
	a.ChooseValue()
	a.SetChosenValueAbsent(false)
	a.Absent()[0].PresentAndPotentialNoise = 100
	assert.False(t, a.Unclosed())
}

func TestAppealModePrefersLeastNoise(t *testing.T) {
	core.NoisePerUnit = 1000
	a := attribute.New(0, core.DimensionSpec{Cardinality: 2, Epsilon: 1})
	a.Potential()[0].PresentAndPotentialNoise = 50
	a.Potential()[1].PresentAndPotentialNoise = 10
	v := a.ChooseValue()
	assert.Equal(t, 1, v.DataID)
}

func TestCloneDeepCopiesValues(t *testing.T) {
	a := newTestAttribute(t, 2, 1)
	a.Potential()[0].PresentNoise = 42
	clone := a.Clone()
	clone.Potential()[0].PresentNoise = 99
	assert.Equal(t, core.Noise(42), a.Potential()[0].PresentNoise)
	assert.Equal(t, core.Noise(99), clone.Potential()[0].PresentNoise)
}

func TestTauContiguityAllowsChainOfWithinTauSteps(t *testing.T) {
	// Labels 10,20,30,40 with tau=10: a present set of {10,20,30} has a
	// total span of 20 but every adjacent step is exactly tau, so it must
	// stay contiguous even though its span alone exceeds tau.
	core.NoisePerUnit = 1000
	a := attribute.New(0, core.DimensionSpec{
		Cardinality: 4, Epsilon: 1, Tau: 10,
		LabelValues: []float64{10, 20, 30, 40},
	})
	for _, id := range []int{0, 1, 2} {
		a.SetChosenByID(id)
		a.SetChosenValuePresent()
	}
	assert.False(t, a.FindIrrelevantValuesAndCheckTauContiguity())
}

func TestTauContiguityRejectsSkippedGap(t *testing.T) {
	// {10,30} alone, skipping the absent 20, leaves a single 20-wide gap
	// exceeding tau=10 even though the two present elements are the same
	// ones as above minus the middle one.
	core.NoisePerUnit = 1000
	a := attribute.New(0, core.DimensionSpec{
		Cardinality: 4, Epsilon: 1, Tau: 10,
		LabelValues: []float64{10, 20, 30, 40},
	})
	for _, id := range []int{0, 2} {
		a.SetChosenByID(id)
		a.SetChosenValuePresent()
	}
	assert.True(t, a.FindIrrelevantValuesAndCheckTauContiguity())
}

func TestRewireTwins(t *testing.T) {
	core.NoisePerUnit = 1000
	first := attribute.New(0, core.DimensionSpec{Cardinality: 2, Symmetric: true})
	second := attribute.New(1, core.DimensionSpec{Cardinality: 2, Symmetric: true})
	first.TwinID, second.TwinID = 1, 0
	attrs := []*attribute.Attribute{first, second}
	attribute.RewireTwins(attrs)
	assert.Same(t, second, first.Twin())
	assert.Same(t, first, second.Twin())
}
