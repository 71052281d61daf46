package trie

import "github.com/cerf/etnset/core"

// leafTube holds the final dimension's entries directly as noise values,
// skipping the *node indirection a tube needs at every other level (a leaf
// has no children). Dense and sparse variants mirror tube's; a crisp
// leafTube additionally collapses each entry's noise magnitude to a single
// bit, since a crisp relation's only possible per-tuple noise values are 0
// (a membership cell) and core.NoisePerUnit (a non-membership cell — still
// inserted by SetHyperplane like any other tuple, so its noise still
// credits correctly into sibling coordinates' counters; only its magnitude
// collapses to a bit, never its presence in the trie).
type leafTube interface {
	get(id int) (core.Noise, bool)
	set(id int, n core.Noise)
	delete(id int)
	each(fn func(id int, n core.Noise))
	len() int
	clone() leafTube
}

func newLeafTube(cardinality int, crisp bool) leafTube {
	if crisp {
		return &sparseCrispLeafTube{m: make(map[int]bool), cardinality: cardinality}
	}
	return &sparseLeafTube{m: make(map[int]core.Noise), cardinality: cardinality}
}

func maybeDensifyLeaf(t leafTube) leafTube {
	switch st := t.(type) {
	case *sparseLeafTube:
		if st.cardinality == 0 || float64(len(st.m))/float64(st.cardinality) < DensityThreshold {
			return t
		}
		dt := &denseLeafTube{noise: make([]core.Noise, st.cardinality), present: make([]bool, st.cardinality)}
		for id, n := range st.m {
			dt.noise[id], dt.present[id] = n, true
			dt.count++
		}
		return dt
	case *sparseCrispLeafTube:
		if st.cardinality == 0 || float64(len(st.m))/float64(st.cardinality) < DensityThreshold {
			return t
		}
		dt := &denseCrispLeafTube{present: make([]bool, st.cardinality), fullNoise: make([]bool, st.cardinality)}
		for id, full := range st.m {
			dt.present[id], dt.fullNoise[id] = true, full
			dt.count++
		}
		return dt
	default:
		return t
	}
}

type sparseLeafTube struct {
	m           map[int]core.Noise
	cardinality int
}

func (t *sparseLeafTube) get(id int) (core.Noise, bool) { n, ok := t.m[id]; return n, ok }
func (t *sparseLeafTube) set(id int, n core.Noise)      { t.m[id] = n }
func (t *sparseLeafTube) delete(id int)                 { delete(t.m, id) }
func (t *sparseLeafTube) len() int                      { return len(t.m) }
func (t *sparseLeafTube) each(fn func(id int, n core.Noise)) {
	for id, n := range t.m {
		fn(id, n)
	}
}

func (t *sparseLeafTube) clone() leafTube {
	out := &sparseLeafTube{m: make(map[int]core.Noise, len(t.m)), cardinality: t.cardinality}
	for id, n := range t.m {
		out.m[id] = n
	}
	return out
}

type denseLeafTube struct {
	noise   []core.Noise
	present []bool
	count   int
}

func (t *denseLeafTube) get(id int) (core.Noise, bool) {
	if id < 0 || id >= len(t.present) || !t.present[id] {
		return 0, false
	}
	return t.noise[id], true
}

func (t *denseLeafTube) set(id int, n core.Noise) {
	if !t.present[id] {
		t.count++
	}
	t.present[id], t.noise[id] = true, n
}

func (t *denseLeafTube) delete(id int) {
	if t.present[id] {
		t.present[id] = false
		t.count--
	}
}

func (t *denseLeafTube) len() int { return t.count }

func (t *denseLeafTube) each(fn func(id int, n core.Noise)) {
	for id, ok := range t.present {
		if ok {
			fn(id, t.noise[id])
		}
	}
}

func (t *denseLeafTube) clone() leafTube {
	out := &denseLeafTube{
		noise:   append([]core.Noise(nil), t.noise...),
		present: append([]bool(nil), t.present...),
		count:   t.count,
	}
	return out
}

// sparseCrispLeafTube and denseCrispLeafTube store a crisp tuple's noise
// as a single bit rather than a full core.Noise: a crisp relation's only
// possible noise values are 0 (present) and core.NoisePerUnit (absent —
// SetHyperplane still inserts these tuples, since the trie must be able
// to credit their noise into sibling coordinates' ν_P/ν_PP exactly like
// any other tuple). The bit distinguishes those two values; it is not a
// presence flag for "was this tuple inserted at all" — that is tracked
// separately (the map key's existence, or the dense present slice).
type sparseCrispLeafTube struct {
	m           map[int]bool // true: stored noise is core.NoisePerUnit; false: stored noise is 0
	cardinality int
}

func (t *sparseCrispLeafTube) get(id int) (core.Noise, bool) {
	full, ok := t.m[id]
	if !ok {
		return 0, false
	}
	if full {
		return core.NoisePerUnit, true
	}
	return 0, true
}

func (t *sparseCrispLeafTube) set(id int, n core.Noise) { t.m[id] = n == core.NoisePerUnit }
func (t *sparseCrispLeafTube) delete(id int)            { delete(t.m, id) }
func (t *sparseCrispLeafTube) len() int                 { return len(t.m) }
func (t *sparseCrispLeafTube) each(fn func(id int, n core.Noise)) {
	for id, full := range t.m {
		if full {
			fn(id, core.NoisePerUnit)
		} else {
			fn(id, 0)
		}
	}
}

func (t *sparseCrispLeafTube) clone() leafTube {
	out := &sparseCrispLeafTube{m: make(map[int]bool, len(t.m)), cardinality: t.cardinality}
	for id, full := range t.m {
		out.m[id] = full
	}
	return out
}

type denseCrispLeafTube struct {
	present   []bool
	fullNoise []bool
	count     int
}

func (t *denseCrispLeafTube) get(id int) (core.Noise, bool) {
	if id < 0 || id >= len(t.present) || !t.present[id] {
		return 0, false
	}
	if t.fullNoise[id] {
		return core.NoisePerUnit, true
	}
	return 0, true
}

func (t *denseCrispLeafTube) set(id int, n core.Noise) {
	if !t.present[id] {
		t.count++
	}
	t.present[id], t.fullNoise[id] = true, n == core.NoisePerUnit
}

func (t *denseCrispLeafTube) delete(id int) {
	if t.present[id] {
		t.present[id], t.fullNoise[id] = false, false
		t.count--
	}
}

func (t *denseCrispLeafTube) len() int { return t.count }

func (t *denseCrispLeafTube) each(fn func(id int, n core.Noise)) {
	for id, ok := range t.present {
		if ok {
			if t.fullNoise[id] {
				fn(id, core.NoisePerUnit)
			} else {
				fn(id, 0)
			}
		}
	}
}

func (t *denseCrispLeafTube) clone() leafTube {
	out := &denseCrispLeafTube{
		present:   append([]bool(nil), t.present...),
		fullNoise: append([]bool(nil), t.fullNoise...),
		count:     t.count,
	}
	return out
}
