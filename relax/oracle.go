package relax

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrBadProblem reports an invalid base model handed to an oracle.
	ErrBadProblem = errors.New("relax: invalid problem")

	// ErrBadFix reports a fix set with an out-of-range index, a value other
	// than 0/1, or the same index fixed twice.
	ErrBadFix = errors.New("relax: invalid fixed assignment")
)

// Fix is one branching decision x[Index] = Value, Value ∈ {0, 1}.
type Fix struct {
	Index int
	Value int
}

// Other returns the sibling decision on the same variable.
func (f Fix) Other() Fix { return Fix{Index: f.Index, Value: 1 - f.Value} }

func (f Fix) String() string { return fmt.Sprintf("x%d=%d", f.Index, f.Value) }

// Relaxation is the answer of an oracle for one fixed-assignment set.
// Objective and Values are meaningful only when Feasible is true; Values has
// one entry in [0,1] per variable, fixed variables carrying their fixed value.
type Relaxation struct {
	Feasible  bool
	Objective float64
	Values    []float64
}

// Oracle solves the continuous relaxation under a set of fixed assignments.
//
// Each call receives the complete fixed set of the node being evaluated; an
// implementation may keep incremental state between calls but must answer as
// if only fixed were applied to the base model.
type Oracle interface {
	Solve(ctx context.Context, fixed []Fix) (Relaxation, error)
}

// Problem is the base model: minimise Σ Cost[k]·x_k subject to
// Σ_{k ∈ Rows[r]} x_k ≥ 1 for every r and 0 ≤ x_k ≤ 1.
// An empty row can never be satisfied.
type Problem struct {
	Cost []float64
	Rows [][]int
}

// Validate checks sizes, costs (finite, non-negative) and row indices.
func (p Problem) Validate() error {
	if len(p.Cost) == 0 {
		return fmt.Errorf("%w: no variables", ErrBadProblem)
	}
	for k, c := range p.Cost {
		if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
			return fmt.Errorf("%w: cost[%d]=%g", ErrBadProblem, k, c)
		}
	}
	for r, row := range p.Rows {
		for _, k := range row {
			if k < 0 || k >= len(p.Cost) {
				return fmt.Errorf("%w: row %d references variable %d of %d", ErrBadProblem, r, k, len(p.Cost))
			}
		}
	}

	return nil
}

// checkFixes verifies a fix set against n variables without touching any state.
// seen is scratch space of length n and is left all-false on return.
func checkFixes(fixed []Fix, n int, seen []bool) error {
	var err error
	for i, f := range fixed {
		switch {
		case f.Index < 0 || f.Index >= n:
			err = fmt.Errorf("%w: %v at position %d: index out of range [0,%d)", ErrBadFix, f, i, n)
		case f.Value != 0 && f.Value != 1:
			err = fmt.Errorf("%w: %v at position %d: value must be 0 or 1", ErrBadFix, f, i)
		case seen[f.Index]:
			err = fmt.Errorf("%w: %v at position %d: variable fixed twice", ErrBadFix, f, i)
		}
		if err != nil {
			break
		}
		seen[f.Index] = true
	}
	for _, f := range fixed {
		if f.Index >= 0 && f.Index < n {
			seen[f.Index] = false
		}
	}

	return err
}

// roundScale is the inverse of the absolute precision of reported objectives.
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision, keeping objectives
// stable across platforms without affecting pruning decisions.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
