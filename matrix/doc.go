// Package matrix provides the dense row-major matrix used to hold test/disease
// coverage data, plus the sentinel errors and validators shared by callers.
//
// It holds a Matrix interface with bounds-checked At/Set, one concrete Dense
// implementation, and validators returning plain sentinels for call sites to
// wrap.
//
// Complexity:
//
//	Rows, Cols, At and Set run in O(1).
//	Row and Clone copy in O(cols) and O(rows*cols).
//	Validators run in O(rows*cols) and allocate nothing.
package matrix
