package miner

import (
	"io"

	"github.com/cerf/etnset/core"
)

// Parser turns raw input into a core.Relation in external dimension
// order, resolving whatever element-id or label scheme the input format
// uses into the dense internal ids core.NoisyTuple.Elements carries.
// Concrete formats (CSV, the original's own relation-file syntax, a
// database query) live outside this package; Mine only depends on this
// interface.
type Parser interface {
	Parse(r io.Reader, dims []core.DimensionSpec) (core.Relation, error)
}

// Preprocessor reduces a parsed Relation before mining: dropping elements
// that can never satisfy a dimension's MinSize/Epsilon bound outright,
// and (when configured) agglomerating near-identical hyperplanes into
// one weighted hyperplane. Reduce returns the reduced relation and the
// element-id remapping callers need to translate emitted patterns back
// to the pre-reduction numbering, mirroring the original's own
// preprocessing pass over the parsed relation.
type Preprocessor interface {
	Reduce(rel core.Relation, cfg *Config) (reduced core.Relation, remap [][]int, err error)
}

// Agglomerator merges hyperplanes of a reduced Relation that agree
// within the configured agglomeration mode, returning the merged
// relation. A nil Agglomerator (or Config.agglomeration ==
// NoAgglomeration) leaves the relation untouched.
type Agglomerator interface {
	Agglomerate(rel core.Relation, mode AgglomerationMode, maxCandidates int) (core.Relation, error)
}
