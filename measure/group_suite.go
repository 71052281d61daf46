package measure

import "fmt"

// GroupConfig is the parsed shape of the miner.Config group options: one
// Group per configured group file, plus the optional per-group bounds and
// cross-group matrices. Matrices are row-major, square, sized to
// len(Groups); a non-zero entry at [row][col] configures one constraint
// (spec.md §6 "Group files + per-group minSize, maxSize, and optionally
// matrices of min cross-group ratios, ...").
type GroupConfig struct {
	Groups    []Group
	MinSizes  []int // per group, 0 means unset
	MaxSizes  []int // per group, 0 means unset (no bound)
	Ratios    [][]float64
	PS        [][]float64
	Leverages [][]float64
	Forces    [][]float64
	YulesQs   [][]float64
	YulesYs   [][]float64
}

// NewGroupSuite builds the full group-cover measure family from cfg in one
// call, reproducing Tree::initMeasures's two-step construction: diagonal
// matrix entries fold into a plain per-group minimum (keeping whichever is
// larger), off-diagonal entries that pass a feasibility check each become
// one asymmetric measure instance.
func NewGroupSuite(cfg GroupConfig) (*GroupRegistry, []Measure, error) {
	registry := NewGroupRegistry(cfg.Groups)
	n := registry.NGroups()

	minSizes := make([]int, n)
	copy(minSizes, cfg.MinSizes)

	var out []Measure

	// fold walks one matrix, diagonal entries raising minSizes[row] when
	// diagonalGate allows it, off-diagonal entries becoming one asymmetric
	// measure when offDiagonalGate allows it — the two gates differ per
	// statistic exactly as they do in Tree::initMeasures.
	fold := func(name string, matrix [][]float64, diagonalGate func(v float64) bool, offDiagonalGate func(row, col int, v float64) bool, build func(row, col int, v float64) Measure) error {
		if len(matrix) == 0 {
			return nil
		}
		if len(matrix) > n {
			return fmt.Errorf("measure: %s matrix has %d rows but only %d groups are configured: %w", name, len(matrix), n, ErrTooManyRatios)
		}
		for row, cols := range matrix {
			if len(cols) > n {
				return fmt.Errorf("measure: %s row %d provides %d entries but only %d groups are configured: %w", name, row, len(cols), n, ErrTooManyRatios)
			}
			for col, v := range cols {
				if row == col {
					if diagonalGate(v) && int(v) > minSizes[row] {
						minSizes[row] = int(v)
					}
					continue
				}
				if offDiagonalGate(row, col, v) {
					out = append(out, build(row, col, v))
				}
			}
		}
		return nil
	}

	positive := func(v float64) bool { return v > 0 }
	always := func(float64) bool { return true }

	if err := fold("ratio", cfg.Ratios, positive, func(_, _ int, v float64) bool { return v > 0 },
		func(row, col int, v float64) Measure { return NewMinGroupCoverRatio(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}
	if err := fold("Piatetsky-Shapiro", cfg.PS, always, func(row, col int, v float64) bool {
		return float64(-registry.MaxCover(row)) < v*float64(registry.MaxCover(col))
	}, func(row, col int, v float64) Measure { return NewMinGroupCoverPiatetskyShapiro(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}
	if err := fold("leverage", cfg.Leverages, always, func(row, col int, v float64) bool {
		return float64(-registry.MaxCover(row)) < v*float64(registry.MaxCover(col))
	}, func(row, col int, v float64) Measure { return NewMinGroupCoverLeverage(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}
	if err := fold("force", cfg.Forces, positive, func(_, _ int, v float64) bool { return v > 0 },
		func(row, col int, v float64) Measure { return NewMinGroupCoverForce(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}
	if err := fold("Yule's Q", cfg.YulesQs, positive, func(_, _ int, v float64) bool { return v > -1 },
		func(row, col int, v float64) Measure { return NewMinGroupCoverYulesQ(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}
	if err := fold("Yule's Y", cfg.YulesYs, positive, func(_, _ int, v float64) bool { return v > -1 },
		func(row, col int, v float64) Measure { return NewMinGroupCoverYulesY(registry, row, col, v) }); err != nil {
		return nil, nil, err
	}

	for g := 0; g < n; g++ {
		if minSizes[g] != 0 {
			out = append(out, &MinGroupCover{Registry: registry, GroupID: g, Min: minSizes[g]})
		}
	}
	for g, max := range cfg.MaxSizes {
		if max != 0 && max < registry.MaxCover(g) {
			out = append(out, &MaxGroupCover{Registry: registry, GroupID: g, Max: max})
		}
	}
	return registry, out, nil
}
