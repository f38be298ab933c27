// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for common validation checks.
//   - Return sentinel errors tagged with the validator name so call sites can
//     wrap uniformly and still match with errors.Is.
//
// Note:
//   - Validators run NotNil before any value check.
//   - ValidateBinary assumes m is not nil (caller must ensure).

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// A typed nil *Dense stored in the interface is also rejected.
//
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateBinary ensures every entry of m is exactly 0 or 1.
// NaN and ±Inf are reported as ErrNaNInf, any other value as ErrNonBinary.
//
// Complexity: O(r*c).
func ValidateBinary(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateBinary", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf("ValidateBinary", fmt.Errorf("(%d,%d): %w", i, j, ErrNaNInf))
			}
			if v != 0 && v != 1 {
				return validatorErrorf("ValidateBinary", fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNonBinary))
			}
		}
	}

	return nil
}
