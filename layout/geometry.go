package layout

import "slices"

// LevelGeometry is derived once per render pass from an IndexLevel.
//
// RunLength is the number of consecutive rows (or columns) that share one
// occurrence of a category; Runs is how many such occurrences the axis holds.
// CategoriesPerParent counts the distinct labels inside one block of the
// enclosing level and is what the parent run length is divided by.
type LevelGeometry struct {
	Depth               int    `json:"depth"`
	Name                string `json:"name,omitempty"`
	CategoryCount       int    `json:"category_count"`
	CategoriesPerParent int    `json:"categories_per_parent"`
	RunLength           int    `json:"run_length"`
	Runs                int    `json:"runs"`
	Extent              int    `json:"extent"`
}

// ComputeGeometry derives the geometry of one level. parent is nil for the
// outermost level.
func ComputeGeometry(level IndexLevel, parent *LevelGeometry) (LevelGeometry, error) {
	g := LevelGeometry{Name: level.Name, Extent: level.Len()}
	if parent != nil {
		g.Depth = parent.Depth + 1
		if parent.Extent != g.Extent {
			return g, newError(ErrShapeMismatch, level.Name, "level has %d labels, enclosing level has %d", g.Extent, parent.Extent)
		}
	}
	if g.Extent == 0 {
		return g, nil
	}
	g.CategoryCount = len(level.Categories())

	block := g.Extent
	if parent != nil {
		block = parent.RunLength
	}
	if block <= 0 {
		return g, newError(ErrImbalancedHierarchy, level.Name, "enclosing level has no rows per category")
	}

	g.CategoriesPerParent = len(distinct(level.Labels[:block]))
	if block%g.CategoriesPerParent != 0 {
		return g, newError(ErrImbalancedHierarchy, level.Name, "%d rows do not divide evenly among %d categories", block, g.CategoriesPerParent)
	}
	g.RunLength = block / g.CategoriesPerParent
	g.Runs = g.Extent / g.RunLength

	if err := checkRuns(level, block, g.RunLength); err != nil {
		return g, err
	}
	return g, nil
}

// checkRuns verifies that every block of the enclosing level splits into
// contiguous runs of exactly run labels, none of them repeated.
func checkRuns(level IndexLevel, block, run int) error {
	labels := level.Labels
	for start := 0; start < len(labels); start += block {
		end := start + block
		seen := make(map[string]struct{})
		for i := start; i < end; {
			lbl := labels[i]
			if _, ok := seen[lbl]; ok {
				return newError(ErrImbalancedHierarchy, lbl, "level %q: category reappears at position %d", level.Name, i)
			}
			seen[lbl] = struct{}{}
			j := i
			for j < end && labels[j] == lbl {
				j++
			}
			if j-i != run {
				return newError(ErrImbalancedHierarchy, lbl, "level %q: category at position %d spans %d, expected %d", level.Name, i, j-i, run)
			}
			i = j
		}
	}
	return nil
}

type AxisGeometry struct {
	Axis   Axis            `json:"axis"`
	Extent int             `json:"extent"`
	Levels []LevelGeometry `json:"levels"`
}

func (g *AxisGeometry) Depth() int {
	return len(g.Levels)
}

func (g *AxisGeometry) IsMulti() bool {
	return len(g.Levels) > 1
}

func (g *AxisGeometry) Terminal() LevelGeometry {
	if len(g.Levels) == 0 {
		return LevelGeometry{}
	}
	return g.Levels[len(g.Levels)-1]
}

// TerminalUnique reports whether the innermost level places one row (or
// column) per category.
func (g *AxisGeometry) TerminalUnique() bool {
	return g.Terminal().RunLength <= 1
}

// ComputeAxis chains ComputeGeometry over the levels of one axis, outer to
// inner, and checks that repeated parent categories hold identical inner
// sequences.
func ComputeAxis(axis Axis, levels []IndexLevel, requireUniqueLeaf bool) (*AxisGeometry, error) {
	g := &AxisGeometry{Axis: axis, Levels: make([]LevelGeometry, 0, len(levels))}
	if len(levels) > 0 {
		g.Extent = levels[0].Len()
	}

	// a flat axis has no parent/child split to balance, so repeated labels
	// (8 rows over 3 categories) are accepted as one run per position
	if len(levels) == 1 {
		lvl := levels[0]
		n := len(lvl.Categories())
		g.Levels = append(g.Levels, LevelGeometry{
			Name:                lvl.Name,
			CategoryCount:       n,
			CategoriesPerParent: n,
			RunLength:           min(1, g.Extent),
			Runs:                g.Extent,
			Extent:              g.Extent,
		})
		return g, nil
	}

	var parent *LevelGeometry
	for d, lvl := range levels {
		lg, err := ComputeGeometry(lvl, parent)
		if err != nil {
			return nil, err
		}
		if d > 0 {
			if err := checkParentSequences(levels[d-1], lvl, parent.RunLength); err != nil {
				return nil, err
			}
		}
		g.Levels = append(g.Levels, lg)
		parent = &g.Levels[len(g.Levels)-1]
	}

	if requireUniqueLeaf && !g.TerminalUnique() {
		t := g.Terminal()
		return nil, newError(ErrTerminalLevelNotUnique, t.Name, "innermost %s level spans %d per category", axis, t.RunLength)
	}
	return g, nil
}

func checkParentSequences(parent, inner IndexLevel, block int) error {
	if block <= 0 {
		return nil
	}
	sequences := make(map[string][]string)
	for start := 0; start < inner.Len(); start += block {
		key := parent.Labels[start]
		seq := distinct(inner.Labels[start : start+block])
		if prev, ok := sequences[key]; ok && !slices.Equal(prev, seq) {
			return newError(ErrImbalancedHierarchy, key, "category %q of level %q holds different %q categories across occurrences", key, parent.Name, inner.Name)
		}
		sequences[key] = seq
	}
	return nil
}
