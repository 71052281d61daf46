package miner

import (
	"io"

	"github.com/cerf/etnset/attribute"
	"github.com/cerf/etnset/core"
	"github.com/cerf/etnset/emit"
	"github.com/cerf/etnset/enumerator"
	"github.com/cerf/etnset/measure"
	"github.com/cerf/etnset/trie"
)

// Result bundles what Mine hands back once enumeration (or, under
// ReductionOnly, preprocessing alone) finishes.
type Result struct {
	// Advisory carries informational findings a caller may want to
	// surface, never an error in themselves.
	Advisory Advisory

	// Patterns is the number of closed error-tolerant n-sets emitted to
	// sink.
	Patterns int

	// Reduced holds the preprocessed (and agglomerated) relation, in
	// external dimension order (Mine returns it before reordering the
	// dimensions), when cfg requested ReductionOnly. Zero value otherwise.
	Reduced core.Relation

	// ElementRemap is the Preprocessor's element-id remapping, nil when
	// pre is nil. Every id emit.Pattern.Dims carries is already in
	// reduced-relation numbering (the engine mines and emits entirely in
	// that space, per spec.md §3); a caller that must report the
	// pre-reduction element ids a pattern's ids came from indexes
	// ElementRemap[dim][reducedID] to translate back. emit.Pattern's own
	// ExternalOrder only reorders dimensions, never element ids within
	// one, so it cannot substitute for this.
	ElementRemap [][]int
}

// Mine parses r with parser, reduces it with pre (and agglomerates with
// agg, when cfg's agglomeration mode is not NoAgglomeration), then
// enumerates every closed error-tolerant n-set and writes each to sink —
// wiring the same chain as the original's main: parse, reduce, mine,
// print. pre and agg may be nil, in which case their stage is skipped.
//
// Mining itself never returns a partial result on error: any failure
// from parser, pre, agg, cfg validation, or the trie/enumerator setup
// stops before a single pattern is emitted. Once enumeration starts,
// only a sink write failure can abort it early (emit.Sink's doc on
// Emit's error contract).
func Mine(r io.Reader, cfg *Config, parser Parser, pre Preprocessor, agg Agglomerator, sink emit.Sink) (Result, error) {
	if sink == nil {
		return Result{}, ErrNilSink
	}
	if closer, ok := sink.(io.Closer); ok {
		defer closer.Close()
	}

	rel, err := parser.Parse(r, baseDims(cfg))
	if err != nil {
		return Result{}, err
	}
	if err := cfg.Validate(rel.NDims()); err != nil {
		return Result{}, err
	}

	var remap [][]int
	if pre != nil {
		rel, remap, err = pre.Reduce(rel, cfg)
		if err != nil {
			return Result{}, err
		}
	}
	if agg != nil && cfg.agglomeration != NoAgglomeration {
		rel, err = agg.Agglomerate(rel, cfg.agglomeration, cfg.maxAgglomerationCandidates)
		if err != nil {
			return Result{}, err
		}
	}

	advisory := Advisory{CrispRelation: core.IsCrisp(rel.HyperplaneOf(0))}
	for d := range rel.Dims {
		if rel.Dims[d].MaxSize == 0 {
			rel.Dims[d].MaxSize = rel.Dims[d].Cardinality
		}
	}

	if cfg.reductionOnly {
		return Result{Advisory: advisory, Reduced: rel, ElementRemap: remap}, nil
	}

	perm, internalRel := rel.Reorder()

	trie.DensityThreshold = cfg.densityThreshold
	store := trie.NewStore(cardinalities(internalRel.Dims), advisory.CrispRelation)
	tuples := internalRel.HyperplaneOf(0)
	if err := store.SetHyperplane(tuples); err != nil {
		return Result{}, err
	}

	attrs := make([]*attribute.Attribute, internalRel.NDims())
	for d, spec := range internalRel.Dims {
		attrs[d] = attribute.New(d, spec)
	}
	if err := trie.SeedNoise(tuples, attrs); err != nil {
		return Result{}, err
	}

	if err := wireTwins(store, internalRel.Dims, attrs, perm, cfg.cliqueDimensions); err != nil {
		return Result{}, err
	}

	ms, err := buildMeasures(cfg, internalRel.Dims, perm)
	if err != nil {
		return Result{}, err
	}
	suite := measure.NewSuite(ms)

	counting := &countingSink{sink: sink}
	tree := enumerator.NewTree(internalRel.Dims, cfg.minArea, true, counting, perm.ExternalToInternal)
	if err := tree.Mine(store, attrs, suite); err != nil {
		return Result{}, err
	}

	return Result{Advisory: advisory, Patterns: counting.n, ElementRemap: remap}, nil
}

// countingSink wraps a caller's Sink to track how many patterns were
// emitted, without requiring every Sink implementation to track it
// itself.
type countingSink struct {
	sink emit.Sink
	n    int
}

func (c *countingSink) Emit(p emit.Pattern) error {
	if err := c.sink.Emit(p); err != nil {
		return err
	}
	c.n++
	return nil
}

// baseDims builds the per-dimension template (everything but Cardinality
// and Labels, which only a Parser can know) a Parser merges its parsed
// element domain into.
func baseDims(cfg *Config) []core.DimensionSpec {
	n := len(cfg.epsilon)
	clique := make(map[int]bool, len(cfg.cliqueDimensions))
	for _, d := range cfg.cliqueDimensions {
		clique[d] = true
	}
	unclosed := make(map[int]bool, len(cfg.unclosedDimensions))
	for _, d := range cfg.unclosedDimensions {
		unclosed[d] = true
	}
	dims := make([]core.DimensionSpec, n)
	for i := range dims {
		dims[i] = core.DimensionSpec{
			Epsilon:   cfg.epsilon[i],
			MinSize:   cfg.minSize[i],
			MaxSize:   cfg.maxSize[i],
			Tau:       cfg.tau[i],
			Symmetric: clique[i],
			Unclosed:  unclosed[i],
		}
	}
	return dims
}

func cardinalities(dims []core.DimensionSpec) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = d.Cardinality
	}
	return out
}

// wireTwins pairs up consecutive entries of cliqueDimensions (each pair
// is one symmetric attribute and its twin, spec.md §4.4's "If attribute
// is symmetric, it always is the first one" pairing) and, when both
// twins share a cardinality, registers the diagonal as a self-loop
// exclusion — a clique dimension pair whose element domain is the same
// vertex set, as in an adjacency relation, never offers an element a
// loop back to itself.
func wireTwins(store *trie.Store, dims []core.DimensionSpec, attrs []*attribute.Attribute, perm core.Permutation, cliqueDimensions []int) error {
	internal := make([]int, len(cliqueDimensions))
	for i, d := range cliqueDimensions {
		internal[i] = perm.ExternalToInternal[d]
	}
	for i := 0; i+1 < len(internal); i += 2 {
		a, b := internal[i], internal[i+1]
		attrs[a].TwinID, attrs[b].TwinID = b, a
		if dims[a].Cardinality == dims[b].Cardinality {
			if err := store.SetSelfLoops(a, b, dims[a].Cardinality); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildMeasures compiles cfg's configured measures into the concrete
// package measure values the Suite enforces, translating every
// dimension id cfg names (external, per spec.md's own numbering) into
// its internal counterpart via perm.
func buildMeasures(cfg *Config, dims []core.DimensionSpec, perm core.Permutation) ([]measure.Measure, error) {
	var ms []measure.Measure
	for d := range dims {
		ext := perm.InternalToExternal[d]
		if cfg.minSize[ext] > 0 {
			ms = append(ms, &measure.MinSize{Dim: d, Min: cfg.minSize[ext]})
		}
		if cfg.maxSize[ext] > 0 {
			ms = append(ms, &measure.MaxSize{Dim: d, Max: cfg.maxSize[ext]})
		}
	}
	if cfg.minArea > 0 {
		ms = append(ms, &measure.MinArea{Min: cfg.minArea})
	}
	if cfg.maxArea > 0 {
		ms = append(ms, &measure.MaxArea{Max: cfg.maxArea})
	}
	if cfg.hasUtility {
		ms = append(ms, &measure.MinUtility{
			Dim:     perm.ExternalToInternal[cfg.utilityDim],
			Utility: cfg.utility,
			Min:     cfg.minUtility,
		})
	}
	if cfg.hasSlope {
		ms = append(ms, &measure.MinSlope{
			Dim:    perm.ExternalToInternal[cfg.slopeDim],
			Points: cfg.slopePoints,
			Min:    cfg.minSlope,
		})
	}
	if cfg.hasGroups {
		groupMs, err := buildGroupMeasures(cfg.groupConfig, perm)
		if err != nil {
			return nil, err
		}
		ms = append(ms, groupMs...)
	}
	return ms, nil
}

// buildGroupMeasures translates groupCfg's external dimension ids to
// internal ones and defers the rest (diagonal-to-minsize folding,
// off-diagonal feasibility gating, per-statistic measure construction)
// to measure.NewGroupSuite.
func buildGroupMeasures(groupCfg measure.GroupConfig, perm core.Permutation) ([]measure.Measure, error) {
	internal := groupCfg
	internal.Groups = make([]measure.Group, len(groupCfg.Groups))
	for i, g := range groupCfg.Groups {
		internal.Groups[i] = measure.Group{
			Dim:     perm.ExternalToInternal[g.Dim],
			Members: g.Members,
		}
	}
	_, ms, err := measure.NewGroupSuite(internal)
	return ms, err
}
