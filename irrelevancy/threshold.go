package irrelevancy

import (
	"math"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
)

// ceilNoise is the repository's single rounding convention for every
// ceil(...) subexpression the threshold formula calls for (spec.md §9
// Open Question: "Implementations should use a single well-defined
// rounding convention and document it"): compute in float64, round up
// with math.Ceil, then clamp into the range a core.Noise can represent.
func ceilNoise(x float64) core.Noise {
	if x <= 0 {
		return 0
	}
	c := math.Ceil(x)
	if c >= float64(math.MaxUint32) {
		return core.Noise(math.MaxUint32)
	}
	return core.Noise(c)
}

// ceilDiv is ceilNoise applied to a/b and read back as a plain tuple
// count, used wherever the formula's ⌈x/y⌉ subexpressions feed into an
// H_d-scale comparison rather than directly into a Noise value.
func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return int(ceilNoise(float64(a) / float64(b)))
}

// Thresholds computes threshold_d (spec.md §4.5) for every dimension of
// the node described by attrs/dims, given the miner's configured minArea.
// dims[d].MaxSize == 0 is read as "unbounded", defaulting to the
// dimension's current global size so the area correction never divides
// by zero.
func Thresholds(attrs []*attribute.Attribute, dims []core.DimensionSpec, minArea int) []core.Noise {
	n := len(attrs)
	maxPattern := make([]int, n)
	minPattern := make([]int, n)
	maxSize := make([]int, n)
	for d := 0; d < n; d++ {
		maxPattern[d] = attrs[d].SizeOfPresentAndPotential()
		minPattern[d] = maxInt(dims[d].MinSize, attrs[d].SizeOfPresent())
		if dims[d].MaxSize > 0 {
			maxSize[d] = dims[d].MaxSize
		} else {
			maxSize[d] = attrs[d].GlobalSize()
		}
		if maxSize[d] <= 0 {
			maxSize[d] = 1
		}
	}

	// Collapse every clique (symmetric twin pair) to one shared minimum m,
	// per spec.md §4.5's symmetric case, and substitute it into
	// minPattern for both twins — the pair always has equal maxPattern
	// sizes since Symmetric attributes mirror their P/T/A classification.
	cliqueM := make(map[int]int) // dim -> shared minimum, for clique dims only
	visited := make([]bool, n)
	for d := 0; d < n; d++ {
		if !attrs[d].Symmetric || visited[d] {
			continue
		}
		twin := attrs[d].Twin()
		if twin == nil {
			continue
		}
		t := twin.ID()
		visited[d], visited[t] = true, true
		bound := minInt(maxPattern[d], maxPattern[t])
		m := maxInt(dims[d].MinSize, dims[t].MinSize)
		if minArea > 0 {
			m = maxInt(m, int(ceilNoise(math.Sqrt(float64(minArea)))))
		}
		m = minInt(m, bound)
		cliqueM[d], cliqueM[t] = m, m
		minPattern[d], minPattern[t] = m, m
	}

	thresholds := make([]core.Noise, n)
	for d := 0; d < n; d++ {
		hMax := hyperplaneCount(maxPattern, attrs, d)
		hMin := hyperplaneCount(minPattern, attrs, d)

		areaCorrection := ceilDiv(minArea, maxSize[d])
		if _, isClique := cliqueM[d]; !isClique {
			if nonSymArea, maxSymSize, ok := nonSymmetricAreaSplit(attrs, maxPattern, cliqueM, d); ok {
				areaCorrection = ceilDiv(minArea-nonSymArea*maxSymSize, maxSize[d])
			}
		}

		diff := hMax - maxInt(hMin, areaCorrection)
		thresholds[d] = addNoiseScaled(attrs[d].EpsilonNoise(), diff)
	}
	return thresholds
}

// nonSymmetricAreaSplit reports the (nonSymArea, maxSymSize) pair spec.md
// §4.5's symmetric case needs to correct a non-symmetric dimension d's
// area term, when some OTHER dimension in the pattern belongs to a
// clique: nonSymArea is the product of every non-symmetric dimension's
// (other than d) max-pattern size, maxSymSize is the clique's shared
// max-pattern size. ok is false when no clique exists among d's sibling
// dimensions, in which case the caller falls back to the plain
// ⌈minArea/maxSize_d⌉ term.
func nonSymmetricAreaSplit(attrs []*attribute.Attribute, maxPattern []int, cliqueM map[int]int, d int) (nonSymArea, maxSymSize int, ok bool) {
	nonSymArea = 1
	seenClique := false
	visited := make(map[int]bool)
	for d2 := range attrs {
		if d2 == d {
			continue
		}
		if _, isClique := cliqueM[d2]; isClique {
			if !seenClique {
				maxSymSize = maxPattern[d2]
				seenClique = true
			}
			continue
		}
		if visited[d2] {
			continue
		}
		visited[d2] = true
		nonSymArea *= maxPattern[d2]
	}
	return nonSymArea, maxSymSize, seenClique
}

// hyperplaneCount is H_d(sizes): the count of non-self-loop tuples in
// one hyperplane of dimension d of a pattern whose per-dimension sizes
// are `sizes` — the product of every other dimension's size, with two
// self-loop corrections for clique (symmetric) dimensions sharing one
// element domain (spec.md §4.1 setSelfLoops never stores the tuples
// where twin coordinates agree):
//   - if d2's twin is the fixed dimension d itself, fixing d's value
//     excludes exactly one of d2's own values (the self-loop), so d2
//     contributes (size-1) rather than size;
//   - if d2's twin t is itself another free ("other") dimension, the
//     pair jointly excludes their shared diagonal, contributing
//     size*(size-1) rather than size*size.
func hyperplaneCount(sizes []int, attrs []*attribute.Attribute, d int) int {
	visited := make([]bool, len(sizes))
	count := 1
	for d2 := range sizes {
		if d2 == d || visited[d2] {
			continue
		}
		if attrs[d2].Symmetric {
			if twin := attrs[d2].Twin(); twin != nil {
				t := twin.ID()
				if t == d {
					visited[d2] = true
					count *= sizes[d2] - 1
					continue
				}
				if !visited[t] {
					visited[d2], visited[t] = true, true
					count *= sizes[d2] * (sizes[d2] - 1)
					continue
				}
			}
		}
		visited[d2] = true
		count *= sizes[d2]
	}
	return count
}

// addNoiseScaled adds epsilonNoise to core.NoisePerUnit*diff (clamped to
// max(0, diff) first, since a negative difference contributes no further
// budget), saturating at the largest representable core.Noise rather
// than overflowing.
func addNoiseScaled(epsilonNoise core.Noise, diff int) core.Noise {
	if diff < 0 {
		diff = 0
	}
	total := uint64(epsilonNoise) + uint64(diff)*uint64(core.NoisePerUnit)
	if total > math.MaxUint32 {
		return core.Noise(math.MaxUint32)
	}
	return core.Noise(total)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
