package relax

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewSimplex_DefaultTolerance(t *testing.T) {
	s, err := NewSimplex(Problem{Cost: []float64{1}}, WithTolerance(0))
	require.NoError(t, err)
	require.Equal(t, DefaultTolerance, s.tol)

	s, err = NewSimplex(Problem{Cost: []float64{1}}, WithTolerance(1e-6))
	require.NoError(t, err)
	require.Equal(t, 1e-6, s.tol)
}

// TestSolve_LPFailureFallsBackToFixedCost replaces the LP backend with one that
// always fails and checks that nodes without a dead row stay feasible with the
// fixed-cost bound.
func TestSolve_LPFailureFallsBackToFixedCost(t *testing.T) {
	orig := simplexLP
	t.Cleanup(func() { simplexLP = orig })
	var gotTol float64
	simplexLP = func(_ []float64, _ mat.Matrix, _ []float64, tol float64, _ []int) (float64, []float64, error) {
		gotTol = tol
		return 0, nil, errors.New("lp: bland: all replacements are negative or cause ill-conditioned ab")
	}

	s, err := NewSimplex(Problem{
		Cost: []float64{2, 1, 1, 1},
		Rows: [][]int{{0, 3}, {0, 2}, {2, 3}},
	})
	require.NoError(t, err)
	ctx := context.Background()

	rel, err := s.Solve(ctx, nil)
	require.NoError(t, err)
	require.True(t, rel.Feasible)
	require.Equal(t, 0.0, rel.Objective)
	require.Equal(t, []float64{0.5, 0, 0.5, 0.5}, rel.Values)
	require.Equal(t, DefaultTolerance, gotTol)

	rel, err = s.Solve(ctx, []Fix{{Index: 0, Value: 1}, {Index: 1, Value: 1}})
	require.NoError(t, err)
	require.True(t, rel.Feasible)
	require.Equal(t, 3.0, rel.Objective)
	require.Equal(t, 1.0, rel.Values[0])

	// Dead rows are still detected without the backend.
	rel, err = s.Solve(ctx, []Fix{{Index: 0, Value: 0}, {Index: 2, Value: 0}})
	require.NoError(t, err)
	require.False(t, rel.Feasible)

	require.Equal(t, 2, s.Stats().Fallback)
}
