package bnb_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/testsel/bnb"
)

func TestSmallestValue_Select(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		assigned []bool
		values   []float64
		want     int
	}{
		{"plain minimum", []bool{false, false, false}, []float64{0.7, 0.2, 0.5}, 1},
		{"tie goes to smallest index", []bool{false, false, false}, []float64{0.5, 0.2, 0.2}, 1},
		{"assigned minimum is skipped", []bool{false, true, false}, []float64{0.7, 0.0, 0.5}, 2},
		{"single free", []bool{true, true, false}, []float64{0, 0, 1}, 2},
		{"all zero", []bool{false, false}, []float64{0, 0}, 0},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := bnb.SmallestValue{}.Select(tc.assigned, tc.values)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSmallestValue_Errors(t *testing.T) {
	_, err := bnb.SmallestValue{}.Select([]bool{true, true}, []float64{0, 1})
	require.ErrorIs(t, err, bnb.ErrNoFreeVariable)

	_, err = bnb.SmallestValue{}.Select([]bool{false}, []float64{0, 1})
	require.ErrorIs(t, err, bnb.ErrBranchInput)
}

func TestFirstFree_Select(t *testing.T) {
	k, err := bnb.FirstFree{}.Select([]bool{true, false, false}, []float64{0, 0.9, 0.1})
	require.NoError(t, err)
	require.Equal(t, 1, k)

	_, err = bnb.FirstFree{}.Select([]bool{true}, nil)
	require.ErrorIs(t, err, bnb.ErrNoFreeVariable)
}

func TestBrancherByName(t *testing.T) {
	for name, want := range map[string]bnb.Brancher{
		"":               bnb.SmallestValue{},
		"smallest-value": bnb.SmallestValue{},
		"first-free":     bnb.FirstFree{},
	} {
		got, err := bnb.BrancherByName(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := bnb.BrancherByName("random")
	require.ErrorIs(t, err, bnb.ErrUnknownBrancher)
}
