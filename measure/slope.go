package measure

import (
	"math"

	"github.com/cerf/etnset/attribute"
)

// Point is one element's external (x, y) coordinate, parsed from the
// slope-point file spec.md §6 names.
type Point struct{ X, Y float64 }

// MinSlope rejects a pattern whose element coordinates (in one dimension)
// fit a least-squares line with slope below a minimum. It is tested
// eagerly against present∪potential minus the elements leaving on every
// removal, since the slope of a point set does not move monotonically as
// points are dropped one at a time.
type MinSlope struct {
	Dim    int
	Points []Point // by internal element id in Dim
	Min    float64
}

func (m *MinSlope) Clone() Measure { c := *m; return &c }
func (m *MinSlope) Monotone() bool { return false }

func (m *MinSlope) ViolationAfterAdding(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if dim != m.Dim {
		return false
	}
	ids := collectIDs(attrs[dim].Present())
	ids = append(ids, elems...)
	return m.leastSquaresSlope(ids) < m.Min
}

func (m *MinSlope) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if dim != m.Dim {
		return false
	}
	removed := make(map[int]bool, len(elems))
	for _, e := range elems {
		removed[e] = true
	}
	var ids []int
	for _, v := range attrs[dim].Present() {
		ids = append(ids, v.DataID)
	}
	for _, v := range attrs[dim].Potential() {
		if !removed[v.DataID] {
			ids = append(ids, v.DataID)
		}
	}
	return m.leastSquaresSlope(ids) < m.Min
}

// leastSquaresSlope returns the least-squares regression slope of the
// points named by ids, or +Inf (never violating) when fewer than two
// points or a degenerate (zero-variance) x series make a slope undefined.
func (m *MinSlope) leastSquaresSlope(ids []int) float64 {
	if len(ids) < 2 {
		return math.Inf(1)
	}
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(ids))
	for _, id := range ids {
		p := m.Points[id]
		sumX += p.X
		sumY += p.Y
		sumXY += p.X * p.Y
		sumXX += p.X * p.X
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return math.Inf(1)
	}
	return (n*sumXY - sumX*sumY) / denom
}

func collectIDs(vs []*attribute.Value) []int {
	ids := make([]int, len(vs))
	for i, v := range vs {
		ids[i] = v.DataID
	}
	return ids
}
