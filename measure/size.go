package measure

import "github.com/cerf/etnset/attribute"

// MinSize rejects a dimension's present set falling below a minimum
// element count. Removal is the only direction that can shrink present,
// so it is Monotone: once violated, further removal cannot un-violate it.
type MinSize struct {
	Dim int
	Min int
}

func (m *MinSize) Clone() Measure   { c := *m; return &c }
func (m *MinSize) Monotone() bool   { return true }
func (m *MinSize) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool { return false }

func (m *MinSize) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if dim != m.Dim {
		return false
	}
	remaining := attrs[dim].SizeOfPresentAndPotential() - len(elems)
	return remaining < m.Min
}

// MaxSize rejects a dimension's present set growing past a maximum.
// Addition is the only direction that can grow present, so it is
// evaluated on the adding side and is not Monotone in the sense above.
type MaxSize struct {
	Dim int
	Max int
}

func (m *MaxSize) Clone() Measure { c := *m; return &c }
func (m *MaxSize) Monotone() bool { return false }

func (m *MaxSize) ViolationAfterAdding(dim int, elems []int, attrs []*attribute.Attribute) bool {
	if dim != m.Dim {
		return false
	}
	return attrs[dim].SizeOfPresent()+len(elems) > m.Max
}

func (m *MaxSize) ViolationAfterRemoving(int, []int, []*attribute.Attribute) bool { return false }

// MinArea rejects the pattern's area (product of every dimension's
// present-set size) falling below a minimum once no further elements can
// be added. Removal shrinks the best-case area monotonically.
type MinArea struct {
	Min int
}

func (m *MinArea) Clone() Measure { c := *m; return &c }
func (m *MinArea) Monotone() bool { return true }

func (m *MinArea) ViolationAfterAdding(int, []int, []*attribute.Attribute) bool { return false }

func (m *MinArea) ViolationAfterRemoving(dim int, elems []int, attrs []*attribute.Attribute) bool {
	area := 1
	for d, a := range attrs {
		size := a.SizeOfPresentAndPotential()
		if d == dim {
			size -= len(elems)
		}
		area *= size
	}
	return area < m.Min
}

// MaxArea rejects the pattern's area growing past a maximum once every
// present element is counted. Addition grows the worst-case area
// monotonically.
type MaxArea struct {
	Max int
}

func (m *MaxArea) Clone() Measure { c := *m; return &c }
func (m *MaxArea) Monotone() bool { return false }

func (m *MaxArea) ViolationAfterAdding(dim int, elems []int, attrs []*attribute.Attribute) bool {
	area := 1
	for d, a := range attrs {
		size := a.SizeOfPresent()
		if d == dim {
			size += len(elems)
		}
		area *= size
	}
	return area > m.Max
}

func (m *MaxArea) ViolationAfterRemoving(int, []int, []*attribute.Attribute) bool { return false }
