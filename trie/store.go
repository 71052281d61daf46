package trie

import (
	"sync"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
)

// AssertMode stands in for the original's compiled-out assertion switch.
// Nothing in this module reads it: CountNoiseOnPresent and
// CountNoiseOnPresentAndPotential run whatever its value, and no test
// sets it.
var AssertMode = false

// Store is the NoiseStore: a prefix-trie over the relation's dimensions.
// Every recursion step of enumerator.Tree's DFS carries its own Store value,
// threaded alongside its attribute slice: the left branch (pivot present)
// recurses on a Clone so that its prune calls, which physically delete
// tuples that can never come back, cannot leak into the right branch
// (pivot absent) explored afterward at the same call frame. The right
// branch itself continues mutating the SAME Store in place, since it is a
// tail continuation of the current call rather than a sibling needing
// isolation from it. Mining itself is single-threaded; mu only guards
// against accidental concurrent reuse of one Store, the same
// belt-and-suspenders convention the teacher's shared structures follow.
type Store struct {
	mu            sync.Mutex
	cardinalities []int
	crisp         bool
	root          *node
}

// NewStore allocates an empty store for a relation with the given
// per-dimension cardinalities. crisp declares every input tuple carries
// noise 0 or core.NoisePerUnit (a 0/1-valued relation), letting each leaf
// collapse to one bit telling the two apart.
func NewStore(cardinalities []int, crisp bool) *Store {
	return &Store{cardinalities: append([]int(nil), cardinalities...), crisp: crisp, root: &node{}}
}

// NDims returns the store's dimensionality.
func (s *Store) NDims() int { return len(s.cardinalities) }

// Clone deep-copies the store's entire remaining trie. Called once per
// left branch (enumerator.Tree.leftSubtree) so that the branch's own
// further pruning never touches the state the sibling right branch
// continues from.
func (s *Store) Clone() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Store{
		cardinalities: append([]int(nil), s.cardinalities...),
		crisp:         s.crisp,
		root:          s.root.clone(),
	}
}

// SetHyperplane bulk-inserts every tuple of one dimension's hyperplane
// (spec.md §4.1), building the trie incrementally one tuple at a time.
// Constructing from a full hyperplane list up front is what lets tube
// density be decided from real occupancy rather than guessed.
func (s *Store) SetHyperplane(tuples []core.NoisyTuple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tuples {
		if len(t.Elements) != len(s.cardinalities) {
			return ErrEmptyTuple
		}
		insert(s.root, 0, t.Elements, t.Noise, s.cardinalities, s.crisp)
	}
	return nil
}

// SeedNoise adds every tuple's noise into ν_PP of each of its
// coordinates, exactly once, before any branching begins. It takes the
// same tuple list SetHyperplane builds the trie from — at the root every
// other coordinate is trivially present-or-potential, so ν_PP(e) starts
// as the sum of every tuple's noise that touches e (spec.md §3
// invariant 1, §4.1).
func SeedNoise(tuples []core.NoisyTuple, attrs []*attribute.Attribute) error {
	for _, t := range tuples {
		if len(t.Elements) != len(attrs) {
			return ErrEmptyTuple
		}
		for d, id := range t.Elements {
			attrs[d].AddPresentAndPotentialNoise(id, t.Noise)
		}
	}
	return nil
}

// SetSelfLoops inserts, for every clique element e shared by dim and
// twinDim, a full-noise filler tuple at the self-loop coordinate so the
// trie structure stays well-formed under both dimensions' classification —
// self-loop tuples are excluded from the noise SetSymmetricPresent/Absent
// propagate by their skip checks, never by omitting them from the trie
// (spec.md §4.1). SetPresent, SetAbsent, and the CountNoise* scans have no
// such check and do count them.
func (s *Store) SetSelfLoops(dim, twinDim int, elementCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dim < 0 || dim >= len(s.cardinalities) || twinDim < 0 || twinDim >= len(s.cardinalities) {
		return ErrDimensionCount
	}
	for e := 0; e < elementCount; e++ {
		coords := make([]int, len(s.cardinalities))
		coords[dim], coords[twinDim] = e, e
		insert(s.root, 0, coords, core.NoisePerUnit, s.cardinalities, s.crisp)
	}
	return nil
}

// SetPresent declares element valueID of dimension dim present: for every
// tuple with that coordinate, add its noise to ν_P of every other
// dimension's coordinate for which *all remaining* coordinates are
// already present too (spec.md §4.1). attrs lets the store classify
// sibling coordinates; it must be ordered by internal dimension id.
func (s *Store) SetPresent(dim, valueID int, attrs []*attribute.Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dim < 0 || dim >= len(s.cardinalities) {
		return ErrDimensionCount
	}
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(coords []int, noise core.Noise) {
		for d2 := range coords {
			if d2 == dim {
				continue
			}
			if allOthersPresent(coords, dim, d2, attrs) {
				attrs[d2].AddPresentNoise(coords[d2], noise)
			}
		}
	})
	return nil
}

// SetAbsent declares element valueID of dimension dim absent: every tuple
// carrying that coordinate leaves present∪potential, so its noise is
// unconditionally subtracted from ν_PP of every other coordinate it
// touches, and from ν_P too wherever it had been counted there.
func (s *Store) SetAbsent(dim int, valueID int, attrs []*attribute.Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if dim < 0 || dim >= len(s.cardinalities) {
		return ErrDimensionCount
	}
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(coords []int, noise core.Noise) {
		for d2 := range coords {
			if d2 == dim {
				continue
			}
			wasCounted := allOthersPresent(coords, dim, d2, attrs)
			attrs[d2].SubtractPresentAndPotentialNoise(coords[d2], noise, wasCounted)
		}
	})
	prune(s.root, 0, len(s.cardinalities), dim, valueID)
	return nil
}

// SetSymmetricPresent mirrors SetPresent across a clique pair: valueID is
// set present in both dim and twinDim's accounting, skipping the self-loop
// coordinate each dimension shares with its twin (spec.md §4.2 Symmetric).
func (s *Store) SetSymmetricPresent(dim, twinDim, valueID int, attrs []*attribute.Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setPresentSkippingSelfLoop(dim, twinDim, valueID, attrs); err != nil {
		return err
	}
	return s.setPresentSkippingSelfLoop(twinDim, dim, valueID, attrs)
}

// SetSymmetricAbsent is SetSymmetricPresent's absent counterpart.
func (s *Store) SetSymmetricAbsent(dim, twinDim, valueID int, attrs []*attribute.Attribute) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.setAbsentSkippingSelfLoop(dim, twinDim, valueID, attrs); err != nil {
		return err
	}
	return s.setAbsentSkippingSelfLoop(twinDim, dim, valueID, attrs)
}

func (s *Store) setPresentSkippingSelfLoop(dim, twinDim, valueID int, attrs []*attribute.Attribute) error {
	if dim < 0 || dim >= len(s.cardinalities) {
		return ErrDimensionCount
	}
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(coords []int, noise core.Noise) {
		if coords[twinDim] == coords[dim] {
			return // self loop: excluded from every noise total
		}
		for d2 := range coords {
			if d2 == dim {
				continue
			}
			if allOthersPresent(coords, dim, d2, attrs) {
				attrs[d2].AddPresentNoise(coords[d2], noise)
			}
		}
	})
	return nil
}

func (s *Store) setAbsentSkippingSelfLoop(dim, twinDim, valueID int, attrs []*attribute.Attribute) error {
	if dim < 0 || dim >= len(s.cardinalities) {
		return ErrDimensionCount
	}
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(coords []int, noise core.Noise) {
		if coords[twinDim] == coords[dim] {
			return
		}
		for d2 := range coords {
			if d2 == dim {
				continue
			}
			wasCounted := allOthersPresent(coords, dim, d2, attrs)
			attrs[d2].SubtractPresentAndPotentialNoise(coords[d2], noise, wasCounted)
		}
	})
	prune(s.root, 0, len(s.cardinalities), dim, valueID)
	return nil
}

// allOthersPresent reports whether every coordinate of coords, other than
// dim (already committing present by the caller's very call) and except,
// classifies as present in attrs. dim is skipped unconditionally: the
// caller is in the middle of establishing dim's presence.
func allOthersPresent(coords []int, dim, except int, attrs []*attribute.Attribute) bool {
	for d3, id := range coords {
		if d3 == dim || d3 == except {
			continue
		}
		if !attrs[d3].IsPresentID(id) {
			return false
		}
	}
	return true
}

// CountNoiseOnPresent and CountNoiseOnPresentAndPotential re-derive, by a
// full trie scan, the ν_P/ν_PP totals for one dimension's element, for
// cross-checking the incrementally maintained counters. They do not
// consult AssertMode.
func (s *Store) CountNoiseOnPresent(dim, valueID int, attrs []*attribute.Attribute) core.Noise {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Noise
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(coords []int, noise core.Noise) {
		if allOthersPresent(coords, dim, dim, attrs) {
			total += noise
		}
	})
	return total
}

func (s *Store) CountNoiseOnPresentAndPotential(dim, valueID int) core.Noise {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total core.Noise
	coords := make([]int, len(s.cardinalities))
	walkMatchingDim(s.root, 0, len(s.cardinalities), dim, valueID, coords, func(_ []int, noise core.Noise) {
		total += noise
	})
	return total
}
