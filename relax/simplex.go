// Package relax - simplex-backed oracle.
//
// Simplex keeps the fixed-assignment set of the previous call as incremental
// state. A new call keeps the longest common prefix, retracts the remainder in
// reverse order and pushes the new suffix; per covering row it tracks how many
// variables are fixed to 1 ("ones") and how many are still free.
//
//   - A row with ones > 0 is satisfied and leaves the LP.
//   - A row with ones == 0 and free == 0 is dead: the node is infeasible and no
//     LP is solved.
//   - Otherwise the reduced LP over the free variables of open rows is put in
//     standard form and handed to gonum's lp.Simplex:
//
//     min  cᵀy
//     s.t. G y − s = 1   (one surplus column per open row)
//     y + t = 1          (one slack column per free variable)
//     y, s, t ≥ 0
//
// Every row owns a private identity column, so A has full row rank as
// lp.Simplex requires, and no column is all zeros.
//
// Without a dead row the node is always feasible (all free variables at 1
// satisfy every open row). If lp.Simplex still fails, the node is answered
// with the weaker bound Σ cost of variables fixed to 1, which is valid because
// costs are non-negative.
package relax

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// unfixed marks a free variable in Simplex.value.
const unfixed int8 = -1

// DefaultTolerance is the optimality tolerance handed to lp.Simplex. gonum uses
// the value as given, and a zero tolerance lets rounding noise in the reduced
// costs drive Bland's rule into ill-conditioned pivots.
const DefaultTolerance = 1e-10

// simplexLP is the LP backend; tests replace it to exercise the fallback.
var simplexLP = lp.Simplex

// SimplexOption configures a Simplex oracle.
type SimplexOption func(*Simplex)

// WithTolerance sets the optimality tolerance passed to lp.Simplex.
// Non-positive values keep DefaultTolerance.
func WithTolerance(tol float64) SimplexOption {
	return func(s *Simplex) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// SimplexStats counts oracle activity.
type SimplexStats struct {
	Solves   int // Solve calls answered
	LPSolves int // calls that required an lp.Simplex run
	Pushes   int // fixes applied incrementally
	Retracts int // fixes retracted incrementally
	Fallback int // LP failures answered with the fixed-cost bound
}

// Simplex is an Oracle backed by gonum's dense simplex method.
// It is not safe for concurrent use; one search owns one Simplex.
type Simplex struct {
	tol  float64
	cost []float64
	rows [][]int // de-duplicated covering rows, each sorted ascending
	cols [][]int // cols[k] = indices of rows containing variable k

	// Incremental state mirroring fixed.
	fixed     []Fix
	value     []int8 // unfixed, 0 or 1
	ones      []int  // per row: variables fixed to 1
	free      []int  // per row: unfixed variables
	dead      int    // rows with ones == 0 && free == 0
	fixedCost float64

	seen  []bool // scratch for checkFixes
	stats SimplexStats
}

var _ Oracle = (*Simplex)(nil)

// NewSimplex validates p, removes exact duplicate rows (after sorting and
// de-duplicating indices within each row) and returns an oracle with an empty
// fixed set.
//
// Complexity: O(Σ|row|·log|row|) time, O(Σ|row|) memory.
func NewSimplex(p Problem, opts ...SimplexOption) (*Simplex, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var n = len(p.Cost)
	s := &Simplex{
		tol:   DefaultTolerance,
		cost:  append([]float64(nil), p.Cost...),
		cols:  make([][]int, n),
		value: make([]int8, n),
		seen:  make([]bool, n),
	}
	for _, opt := range opts {
		opt(s)
	}
	for k := range s.value {
		s.value[k] = unfixed
	}

	var (
		keys = make(map[string]struct{}, len(p.Rows))
		sb   strings.Builder
	)
	for _, src := range p.Rows {
		row := slices.Compact(slices.Sorted(slices.Values(src)))
		sb.Reset()
		for _, k := range row {
			sb.WriteString(strconv.Itoa(k))
			sb.WriteByte(',')
		}
		if _, dup := keys[sb.String()]; dup {
			continue
		}
		keys[sb.String()] = struct{}{}
		s.rows = append(s.rows, row)
	}

	s.ones = make([]int, len(s.rows))
	s.free = make([]int, len(s.rows))
	for r, row := range s.rows {
		s.free[r] = len(row)
		if len(row) == 0 {
			s.dead++
		}
		for _, k := range row {
			s.cols[k] = append(s.cols[k], r)
		}
	}

	return s, nil
}

// NumVars returns the number of decision variables.
func (s *Simplex) NumVars() int { return len(s.cost) }

// NumRows returns the number of covering rows after de-duplication.
func (s *Simplex) NumRows() int { return len(s.rows) }

// Fixed returns a copy of the fixed set currently applied.
func (s *Simplex) Fixed() []Fix { return append([]Fix(nil), s.fixed...) }

// Stats returns activity counters.
func (s *Simplex) Stats() SimplexStats { return s.stats }

// rowDead reports whether row r can no longer be satisfied.
func (s *Simplex) rowDead(r int) bool { return s.ones[r] == 0 && s.free[r] == 0 }

// push applies f, updating the row counters of every row containing f.Index.
func (s *Simplex) push(f Fix) {
	s.value[f.Index] = int8(f.Value)
	s.fixed = append(s.fixed, f)
	if f.Value == 1 {
		s.fixedCost += s.cost[f.Index]
	}
	for _, r := range s.cols[f.Index] {
		if s.rowDead(r) {
			s.dead--
		}
		s.free[r]--
		s.ones[r] += f.Value
		if s.rowDead(r) {
			s.dead++
		}
	}
	s.stats.Pushes++
}

// pop retracts the last applied fix.
func (s *Simplex) pop() {
	f := s.fixed[len(s.fixed)-1]
	s.fixed = s.fixed[:len(s.fixed)-1]
	s.value[f.Index] = unfixed
	if f.Value == 1 {
		s.fixedCost -= s.cost[f.Index]
	}
	for _, r := range s.cols[f.Index] {
		if s.rowDead(r) {
			s.dead--
		}
		s.free[r]++
		s.ones[r] -= f.Value
		if s.rowDead(r) {
			s.dead++
		}
	}
	s.stats.Retracts++
}

// apply brings the incremental state to exactly fixed: keep the common prefix,
// retract the rest, push the new suffix.
func (s *Simplex) apply(fixed []Fix) {
	var p int
	for p < len(s.fixed) && p < len(fixed) && s.fixed[p] == fixed[p] {
		p++
	}
	for len(s.fixed) > p {
		s.pop()
	}
	for _, f := range fixed[p:] {
		s.push(f)
	}
}

// Solve applies fixed as the complete fixed set and solves the relaxation.
//
// Errors: ErrBadFix (state unchanged) or the context error.
func (s *Simplex) Solve(ctx context.Context, fixed []Fix) (Relaxation, error) {
	if err := ctx.Err(); err != nil {
		return Relaxation{}, fmt.Errorf("relax: solve: %w", err)
	}
	if err := checkFixes(fixed, len(s.cost), s.seen); err != nil {
		return Relaxation{}, err
	}
	s.apply(fixed)
	s.stats.Solves++

	if s.dead > 0 {
		return Relaxation{Feasible: false}, nil
	}

	values := make([]float64, len(s.cost))
	for k, v := range s.value {
		if v == 1 {
			values[k] = 1
		}
	}

	// Collect open rows and the free variables they mention.
	var (
		open []int
		pos  = make(map[int]int)
		vars []int
	)
	for r := range s.rows {
		if s.ones[r] > 0 {
			continue
		}
		open = append(open, r)
		for _, k := range s.rows[r] {
			if s.value[k] != unfixed {
				continue
			}
			if _, ok := pos[k]; !ok {
				pos[k] = -1
				vars = append(vars, k)
			}
		}
	}
	if len(open) == 0 {
		// Every row is satisfied by fixes; free variables sit at 0.
		return Relaxation{Feasible: true, Objective: round1e9(s.fixedCost), Values: values}, nil
	}
	slices.Sort(vars)
	for j, k := range vars {
		pos[k] = j
	}

	z, y, err := s.solveLP(open, vars, pos)
	if err != nil {
		// No dead row: y = 1 is feasible, so any LP error is numerical.
		s.stats.Fallback++
		for _, k := range vars {
			values[k] = 0.5
		}

		return Relaxation{Feasible: true, Objective: round1e9(s.fixedCost), Values: values}, nil
	}
	for j, k := range vars {
		values[k] = clamp01(y[j])
	}

	return Relaxation{Feasible: true, Objective: round1e9(s.fixedCost + z), Values: values}, nil
}

// solveLP builds the standard-form reduced LP and runs lp.Simplex. It returns
// the LP objective and the values of vars (in vars order).
func (s *Simplex) solveLP(open, vars []int, pos map[int]int) (float64, []float64, error) {
	var (
		nr   = len(open)
		nv   = len(vars)
		cols = 2*nv + nr
		c    = make([]float64, cols)
		b    = make([]float64, nr+nv)
		A    = mat.NewDense(nr+nv, cols, nil)
	)
	for j, k := range vars {
		c[j] = s.cost[k]
	}
	for i, r := range open {
		for _, k := range s.rows[r] {
			if j, ok := pos[k]; ok && s.value[k] == unfixed {
				A.Set(i, j, 1)
			}
		}
		A.Set(i, nv+i, -1)
		b[i] = 1
	}
	for j := 0; j < nv; j++ {
		A.Set(nr+j, j, 1)
		A.Set(nr+j, nv+nr+j, 1)
		b[nr+j] = 1
	}

	// y = 1, s = G·1 − 1 ≥ 0, t = 0 is basic feasible with basis {y, s}:
	// that block is nonsingular and every open row has a free variable.
	basic := make([]int, nv+nr)
	for i := range basic {
		basic[i] = i
	}

	s.stats.LPSolves++
	z, x, err := simplexLP(c, A, b, s.tol, basic)
	if err != nil {
		return 0, nil, err
	}

	return z, x[:nv], nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
