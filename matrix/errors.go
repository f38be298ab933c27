// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All functions return these sentinels (possibly wrapped with call-site context)
// and tests check them via errors.Is. No function panics on caller input.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping across logs.

var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	// Public indexers (At/Set/Row) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates that a matrix or an input row does not have
	// the dimensions required by the caller (ragged rows, wrong r×c).
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNonBinary signals an entry other than exactly 0 or 1 in a matrix that
	// must be a 0/1 incidence pattern.
	ErrNonBinary = errors.New("matrix: non-binary entry")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")
)
