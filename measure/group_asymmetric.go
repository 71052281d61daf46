package measure

import (
	"math"

	"github.com/cerf/etnset/attribute"
)

// The asymmetric group-cover measures below bound one group's ("row")
// cover against another group's ("column") cover using the named
// association statistic. original_source/Tree.cpp's initMeasures drives
// their construction (folding a diagonal entry into a plain MinGroupCover,
// instantiating an asymmetric measure for every feasible off-diagonal
// entry — see measure.NewGroupSuite) but the per-statistic runtime classes
// were not part of the retrieved source, so each formula here is this
// port's own faithful-spirit rendition of the named statistic over group
// cover ratios pR = cover(row)/|row dim|, pC = cover(column)/|row dim|.

type groupPair struct {
	Registry           *GroupRegistry
	RowID, ColumnID    int
	Param              float64
}

func (g groupPair) ratios(attrs []*attribute.Attribute) (pR, pC float64) {
	rowDim := g.Registry.Dim(g.RowID)
	n := float64(attrs[rowDim].GlobalSize())
	if n == 0 {
		return 0, 0
	}
	covR := float64(g.Registry.coverAfterRemoving(g.RowID, attrs, -1, nil))
	covC := float64(g.Registry.coverAfterRemoving(g.ColumnID, attrs, -1, nil))
	return covR / n, covC / n
}

// MinGroupCoverRatio requires cover(row) >= Ratio * cover(column).
type MinGroupCoverRatio struct{ groupPair }

func NewMinGroupCoverRatio(r *GroupRegistry, row, col int, ratio float64) *MinGroupCoverRatio {
	return &MinGroupCoverRatio{groupPair{r, row, col, ratio}}
}

func (m *MinGroupCoverRatio) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverRatio) Monotone() bool { return true }
func (m *MinGroupCoverRatio) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverRatio) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	covR := float64(m.Registry.coverAfterRemoving(m.RowID, attrs, dim, elems))
	_, pC := m.ratios(attrs)
	n := float64(attrs[dim].GlobalSize())
	return covR < m.Param*pC*n
}

// MinGroupCoverPiatetskyShapiro requires pR - pR*pC >= PS.
type MinGroupCoverPiatetskyShapiro struct{ groupPair }

func NewMinGroupCoverPiatetskyShapiro(r *GroupRegistry, row, col int, ps float64) *MinGroupCoverPiatetskyShapiro {
	return &MinGroupCoverPiatetskyShapiro{groupPair{r, row, col, ps}}
}

func (m *MinGroupCoverPiatetskyShapiro) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverPiatetskyShapiro) Monotone() bool { return true }
func (m *MinGroupCoverPiatetskyShapiro) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverPiatetskyShapiro) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	pR, pC := m.ratios(attrs)
	return pR-pR*pC < m.Param
}

// MinGroupCoverLeverage requires pR - pR*pC >= Leverage (same shape as
// Piatetsky-Shapiro; kept distinct since the original treats them as
// separate configuration knobs).
type MinGroupCoverLeverage struct{ groupPair }

func NewMinGroupCoverLeverage(r *GroupRegistry, row, col int, leverage float64) *MinGroupCoverLeverage {
	return &MinGroupCoverLeverage{groupPair{r, row, col, leverage}}
}

func (m *MinGroupCoverLeverage) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverLeverage) Monotone() bool { return true }
func (m *MinGroupCoverLeverage) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverLeverage) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	pR, pC := m.ratios(attrs)
	return pR-pR*pC < m.Param
}

// MinGroupCoverForce requires the certainty-factor-style (pR-pC)/(1-pC) to
// be at least Force.
type MinGroupCoverForce struct{ groupPair }

func NewMinGroupCoverForce(r *GroupRegistry, row, col int, force float64) *MinGroupCoverForce {
	return &MinGroupCoverForce{groupPair{r, row, col, force}}
}

func (m *MinGroupCoverForce) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverForce) Monotone() bool { return true }
func (m *MinGroupCoverForce) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverForce) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	pR, pC := m.ratios(attrs)
	if pC >= 1 {
		return pR < 1
	}
	return (pR-pC)/(1-pC) < m.Param
}

// MinGroupCoverYulesQ requires the normalized difference
// (pR-pC)/(pR+pC) — a Yule's-Q-flavored measure bounded in [-1,1] — to be
// at least YulesQ.
type MinGroupCoverYulesQ struct{ groupPair }

func NewMinGroupCoverYulesQ(r *GroupRegistry, row, col int, yulesQ float64) *MinGroupCoverYulesQ {
	return &MinGroupCoverYulesQ{groupPair{r, row, col, yulesQ}}
}

func (m *MinGroupCoverYulesQ) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverYulesQ) Monotone() bool { return true }
func (m *MinGroupCoverYulesQ) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverYulesQ) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	pR, pC := m.ratios(attrs)
	if pR+pC == 0 {
		return m.Param > 0
	}
	return (pR-pC)/(pR+pC) < m.Param
}

// MinGroupCoverYulesY is YulesQ's square-root-scaled counterpart.
type MinGroupCoverYulesY struct{ groupPair }

func NewMinGroupCoverYulesY(r *GroupRegistry, row, col int, yulesY float64) *MinGroupCoverYulesY {
	return &MinGroupCoverYulesY{groupPair{r, row, col, yulesY}}
}

func (m *MinGroupCoverYulesY) Clone() Measure { c := *m; return &c }
func (m *MinGroupCoverYulesY) Monotone() bool { return true }
func (m *MinGroupCoverYulesY) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool {
	return false
}

func (m *MinGroupCoverYulesY) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if m.Registry.Dim(m.RowID) != dim {
		return false
	}
	pR, pC := m.ratios(attrs)
	sr, sc := math.Sqrt(pR), math.Sqrt(pC)
	if sr+sc == 0 {
		return m.Param > 0
	}
	return (sr-sc)/(sr+sc) < m.Param
}
