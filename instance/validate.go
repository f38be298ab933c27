package instance

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/testsel/matrix"
)

// Validate reports whether the selection x distinguishes every pair of
// diseases in coverage: restricted to the rows k with x[k] == 1, all disease
// columns must be pairwise distinct bit-strings.
//
// Validate is independent of any solver and usable on hand-built matrices.
// It returns false for a nil coverage, len(x) != coverage.Rows(), an entry of x
// other than 0/1, or an unreadable entry of coverage. Any non-zero coverage
// entry counts as a positive result.
//
// Complexity: O(n·m) to build one bitmap per disease over the selected rows,
// plus O(m²) bitmap comparisons.
func Validate(x []int, coverage matrix.Matrix) bool {
	if matrix.ValidateNotNil(coverage) != nil || len(x) != coverage.Rows() {
		return false
	}
	var (
		n, m = coverage.Rows(), coverage.Cols()
		cols = make([]*roaring.Bitmap, m)
		j, k int
		v    float64
		err  error
	)
	for j = 0; j < m; j++ {
		cols[j] = roaring.New()
	}
	for k = 0; k < n; k++ {
		switch x[k] {
		case 0:
			continue
		case 1:
		default:
			return false
		}
		for j = 0; j < m; j++ {
			if v, err = coverage.At(k, j); err != nil {
				return false
			}
			if v != 0 {
				cols[j].Add(uint32(k))
			}
		}
	}

	// Equal bitmaps mean equal column signatures over the selected rows.
	var i int
	for i = 0; i < m; i++ {
		for j = i + 1; j < m; j++ {
			if cols[i].GetCardinality() == cols[j].GetCardinality() && cols[i].Equals(cols[j]) {
				return false
			}
		}
	}

	return true
}
