package bnb

import (
	"fmt"
	"slices"
)

// Brancher chooses the next variable to branch on.
//
// assigned[k] reports whether x_k is fixed on the current path and values are
// the fractional relaxation values at the current node (same length). Select
// must return an unassigned index, or ErrNoFreeVariable when none is left.
type Brancher interface {
	Select(assigned []bool, values []float64) (int, error)
}

// Names of the built-in branching rules, as accepted by BrancherByName.
const (
	BranchSmallestValue = "smallest-value"
	BranchFirstFree     = "first-free"
)

// SmallestValue picks the unassigned variable with the smallest fractional
// value; ties go to the smallest index.
type SmallestValue struct{}

// Select implements Brancher.
//
// Complexity: O(n).
func (SmallestValue) Select(assigned []bool, values []float64) (int, error) {
	if len(assigned) != len(values) {
		return -1, fmt.Errorf("%w: %d assigned flags, %d values", ErrBranchInput, len(assigned), len(values))
	}
	var best = -1
	for k, a := range assigned {
		if a {
			continue
		}
		if best < 0 || values[k] < values[best] {
			best = k
		}
	}
	if best < 0 {
		return -1, ErrNoFreeVariable
	}

	return best, nil
}

func (SmallestValue) String() string { return BranchSmallestValue }

// FirstFree picks the smallest unassigned index, ignoring values.
type FirstFree struct{}

// Select implements Brancher.
//
// Complexity: O(n).
func (FirstFree) Select(assigned []bool, _ []float64) (int, error) {
	if k := slices.Index(assigned, false); k >= 0 {
		return k, nil
	}

	return -1, ErrNoFreeVariable
}

func (FirstFree) String() string { return BranchFirstFree }

// BrancherByName maps a rule name to its Brancher ("" selects the default).
func BrancherByName(name string) (Brancher, error) {
	switch name {
	case "", BranchSmallestValue:
		return SmallestValue{}, nil
	case BranchFirstFree:
		return FirstFree{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownBrancher, name, BranchSmallestValue, BranchFirstFree)
	}
}
