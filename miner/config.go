package miner

import "github.com/cerf/etnset/measure"

// AgglomerationMode selects how (if at all) near-identical hyperplanes
// are merged before mining, mirroring the original's agglomeration flag.
type AgglomerationMode int

const (
	// NoAgglomeration disables pre-mining agglomeration entirely.
	NoAgglomeration AgglomerationMode = iota
	// AgglomerateExact merges only hyperplanes whose noise vectors are
	// identical after reduction.
	AgglomerateExact
	// AgglomerateApproximate additionally merges hyperplanes within a
	// bounded distance of each other, up to MaxAgglomerationCandidates
	// candidates considered per merge.
	AgglomerateApproximate
)

// Config collects every tunable of one mining run: size and tolerance
// bounds per dimension, clique/unclosed dimension markers, the optional
// group/utility/slope measures, and the preprocessing knobs governing
// density and agglomeration. It is built through NewConfig and the
// With* functional options below rather than by exposing its fields for
// direct assignment, so a caller always goes through validation.
type Config struct {
	minSize, maxSize []int
	minArea, maxArea int
	epsilon          []float64
	tau              []float64

	cliqueDimensions   []int
	unclosedDimensions []int

	groupConfig measure.GroupConfig
	hasGroups   bool
	utilityDim  int
	utility     []float64
	minUtility  float64
	hasUtility  bool
	slopeDim    int
	slopePoints []measure.Point
	minSlope    float64
	hasSlope    bool

	densityThreshold           float64
	agglomeration              AgglomerationMode
	maxAgglomerationCandidates int

	reductionOnly bool
}

// Option configures a Config built by NewConfig.
type Option func(*Config)

// NewConfig builds a Config for an nDims-dimensional relation with every
// bound at its permissive default (no size or area bound, zero
// tolerance, no clique/unclosed dimensions, dense tubes only for fully
// occupied trie levels), then applies opts in order.
func NewConfig(nDims int, opts ...Option) *Config {
	c := &Config{
		minSize:          make([]int, nDims),
		maxSize:          make([]int, nDims),
		epsilon:          make([]float64, nDims),
		tau:              make([]float64, nDims),
		densityThreshold: 1, // only a fully occupied tube upgrades to dense
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMinSize sets the minimum present-element count per dimension.
func WithMinSize(perDim []int) Option {
	return func(c *Config) { c.minSize = append([]int(nil), perDim...) }
}

// WithMaxSize sets the maximum present-element count per dimension; zero
// means unbounded.
func WithMaxSize(perDim []int) Option {
	return func(c *Config) { c.maxSize = append([]int(nil), perDim...) }
}

// WithMinArea sets the pattern's minimum area (product of dimension
// sizes).
func WithMinArea(min int) Option {
	return func(c *Config) { c.minArea = min }
}

// WithMaxArea sets the pattern's maximum area.
func WithMaxArea(max int) Option {
	return func(c *Config) { c.maxArea = max }
}

// WithEpsilon sets the per-dimension noise tolerance in [0,1].
// NormalizeCrispEpsilon (not this option) handles the crisp-mode
// rounding advisory.
func WithEpsilon(perDim []float64) Option {
	return func(c *Config) { c.epsilon = append([]float64(nil), perDim...) }
}

// WithTau sets the per-dimension tau-contiguity bound, in label units;
// zero means the dimension is not metric.
func WithTau(perDim []float64) Option {
	return func(c *Config) { c.tau = append([]float64(nil), perDim...) }
}

// WithCliqueDimensions marks dimensions as symmetric (clique) pairs/sets,
// sharing one element domain and classification with their twin.
func WithCliqueDimensions(dims []int) Option {
	return func(c *Config) { c.cliqueDimensions = append([]int(nil), dims...) }
}

// WithUnclosedDimensions marks dimensions whose closedness is not
// required.
func WithUnclosedDimensions(dims []int) Option {
	return func(c *Config) { c.unclosedDimensions = append([]int(nil), dims...) }
}

// WithGroups configures the group-cover measure family (plain min/max
// cover plus the ratio/Piatetsky-Shapiro/leverage/force/Yule's Q and Y
// cross-group matrices) from groupCfg, mirroring Tree::initMeasures'
// group-matrix construction (measure.NewGroupSuite). Group.Dim entries
// name external dimension ids; Mine translates them to internal ids
// before building the registry.
func WithGroups(groupCfg measure.GroupConfig) Option {
	return func(c *Config) { c.groupConfig, c.hasGroups = groupCfg, true }
}

// WithUtility adds a MinUtility measure over dim, with per-internal-id
// utility values and a minimum summed threshold.
func WithUtility(dim int, utility []float64, min float64) Option {
	return func(c *Config) {
		c.utilityDim, c.utility, c.minUtility, c.hasUtility = dim, utility, min, true
	}
}

// WithSlope adds a MinSlope measure over dim, with per-internal-id
// (x, y) coordinates and a minimum least-squares slope.
func WithSlope(dim int, points []measure.Point, min float64) Option {
	return func(c *Config) {
		c.slopeDim, c.slopePoints, c.minSlope, c.hasSlope = dim, points, min, true
	}
}

// WithDensityThreshold sets the occupancy ratio (live children over
// cardinality) at which a trie tube upgrades from its sparse, map-indexed
// form to a dense, array-indexed one. Mine assigns it to
// trie.DensityThreshold before building the trie.
func WithDensityThreshold(threshold float64) Option {
	return func(c *Config) { c.densityThreshold = threshold }
}

// WithAgglomeration selects the pre-mining hyperplane-merging mode and,
// for AgglomerateApproximate, the candidate search bound.
func WithAgglomeration(mode AgglomerationMode, maxCandidates int) Option {
	return func(c *Config) {
		c.agglomeration, c.maxAgglomerationCandidates = mode, maxCandidates
	}
}

// WithReductionOnly requests that Mine stop after preprocessing and
// agglomeration, returning the reduced relation without enumerating —
// spec.md §6's "print the reduced relation and exit" mode.
func WithReductionOnly(reductionOnly bool) Option {
	return func(c *Config) { c.reductionOnly = reductionOnly }
}

// Validate reports a *UsageError when the configured vectors don't match
// nDims, or when a dimension is marked both clique and metric.
func (c *Config) Validate(nDims int) error {
	if nDims == 0 {
		return ErrNoDimensions
	}
	if len(c.minSize) != nDims || len(c.maxSize) != nDims ||
		len(c.epsilon) != nDims || len(c.tau) != nDims {
		return &UsageError{Msg: "size/tolerance vector length does not match dimension count"}
	}
	clique := make(map[int]bool, len(c.cliqueDimensions))
	for _, d := range c.cliqueDimensions {
		clique[d] = true
	}
	for d, tau := range c.tau {
		if clique[d] && tau != 0 {
			return &UsageError{Msg: "dimension cannot be both a clique dimension and metric/tau-noisy"}
		}
	}
	return nil
}

// Advisory is informational data returned alongside a Mine result rather
// than printed directly, per spec.md §7: a crisp-only input relation (no
// tuple carries a partial membership) is unaffected by epsilon, and
// NormalizeCrispEpsilon's half-step rounding never triggers. Callers that
// want the original's stderr warning can format Advisory themselves.
type Advisory struct {
	// CrispRelation is true when every tuple in the parsed relation was
	// exactly present or exactly absent.
	CrispRelation bool
}

// NormalizeCrispEpsilon maps an integer epsilon e to e+0.5 (0 becomes 0.5,
// 1.0 becomes 1.5) and returns any other epsilon unchanged, mirroring the
// original's epsilon rounding for integer-noise relations.
func NormalizeCrispEpsilon(epsilon float64) float64 {
	if epsilon != float64(int(epsilon)) {
		return epsilon
	}
	return float64(int(epsilon)) + 0.5
}
