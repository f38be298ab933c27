package instance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/testsel/matrix"
)

// Instance is the immutable problem data. Obtain one through New, Parse or
// Generate; all accessors return copies.
type Instance struct {
	n, m     int
	cost     []float64
	coverage *matrix.Dense

	// positive[j] holds the tests whose result is 1 for disease j.
	positive []*roaring.Bitmap
}

// Pair is one distinguishing constraint: diseases I < J must be separated by at
// least one selected test among Tests (ascending), the tests whose results
// differ between the two diseases. An empty Tests means the pair can never be
// distinguished and the instance is infeasible.
type Pair struct {
	I, J  int
	Tests []int
}

// New validates cost and coverage and returns an Instance holding deep copies.
//
// Contracts:
//   - len(cost) == n > 0 and every cost is finite and > 0.
//   - coverage has n rows of equal length m > 0, all entries exactly 0 or 1.
//
// Errors: ErrInvalidInstance for cost problems; matrix.ErrBadShape,
// matrix.ErrDimensionMismatch, matrix.ErrNonBinary or matrix.ErrNaNInf (wrapped)
// for coverage problems.
//
// Complexity: O(n·m).
func New(cost []float64, coverage [][]float64) (*Instance, error) {
	var n = len(cost)
	if n == 0 {
		return nil, fmt.Errorf("%w: no tests", ErrInvalidInstance)
	}
	if len(coverage) != n {
		return nil, fmt.Errorf("%w: %d costs but %d coverage rows", ErrInvalidInstance, n, len(coverage))
	}
	var k int
	for k = 0; k < n; k++ {
		if math.IsNaN(cost[k]) || math.IsInf(cost[k], 0) || cost[k] <= 0 {
			return nil, fmt.Errorf("%w: cost[%d]=%g must be finite and positive", ErrInvalidInstance, k, cost[k])
		}
	}

	cov, err := matrix.NewDenseFromRows(coverage)
	if err != nil {
		return nil, fmt.Errorf("instance: coverage: %w", err)
	}
	if err = matrix.ValidateBinary(cov); err != nil {
		return nil, fmt.Errorf("instance: coverage: %w", err)
	}

	inst := &Instance{
		n:        n,
		m:        cov.Cols(),
		cost:     append([]float64(nil), cost...),
		coverage: cov,
	}
	inst.indexPositives()

	return inst, nil
}

// indexPositives builds the per-disease bitmaps from the validated coverage.
func (in *Instance) indexPositives() {
	var (
		j, k int
		v    float64
	)
	in.positive = make([]*roaring.Bitmap, in.m)
	for j = 0; j < in.m; j++ {
		in.positive[j] = roaring.New()
	}
	for k = 0; k < in.n; k++ {
		for j = 0; j < in.m; j++ {
			// Indices are in range by construction.
			v, _ = in.coverage.At(k, j)
			if v == 1 {
				in.positive[j].Add(uint32(k))
			}
		}
	}
	for j = 0; j < in.m; j++ {
		in.positive[j].RunOptimize()
	}
}

// NumTests returns n.
func (in *Instance) NumTests() int { return in.n }

// NumDiseases returns m.
func (in *Instance) NumDiseases() int { return in.m }

// Cost returns a copy of the cost vector.
func (in *Instance) Cost() []float64 { return append([]float64(nil), in.cost...) }

// CostOf returns the cost of test k; it panics if k is out of range, like a
// slice index would.
func (in *Instance) CostOf(k int) float64 { return in.cost[k] }

// Covers reports whether test k is positive for disease j.
func (in *Instance) Covers(k, j int) bool {
	if k < 0 || k >= in.n || j < 0 || j >= in.m {
		return false
	}

	return in.positive[j].Contains(uint32(k))
}

// Coverage returns a deep copy of the coverage matrix.
func (in *Instance) Coverage() *matrix.Dense { return in.coverage.Clone().(*matrix.Dense) }

// Row returns test k's result pattern as 0/1 ints, or nil if k is out of range.
func (in *Instance) Row(k int) []int {
	if k < 0 || k >= in.n {
		return nil
	}
	row := make([]int, in.m)
	var j int
	for j = 0; j < in.m; j++ {
		if in.Covers(k, j) {
			row[j] = 1
		}
	}

	return row
}

// FormatSelection lists the tests with x[k] == 1 in index order, one line
// each, as "test k cost c: <result pattern>". Entries of x past NumTests are
// ignored. An empty selection renders as "Selected tests: none".
func (in *Instance) FormatSelection(x []int) string {
	var (
		sb    strings.Builder
		count int
	)
	sb.WriteString("Selected tests:")
	for k, v := range x {
		if v != 1 || k >= in.n {
			continue
		}
		count++
		fmt.Fprintf(&sb, "\ntest %d cost %s:", k, strconv.FormatFloat(in.CostOf(k), 'g', -1, 64))
		// k < n, so the row exists.
		row, _ := in.coverage.Row(k)
		for _, v := range row {
			sb.WriteByte(' ')
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	if count == 0 {
		sb.WriteString(" none")
	}
	sb.WriteByte('\n')

	return sb.String()
}

// Pairs returns the m(m−1)/2 distinguishing constraints in lexicographic (I, J)
// order. Each Tests set is the symmetric difference of the two diseases'
// positive sets.
//
// Complexity: O(m²·n) worst case.
func (in *Instance) Pairs() []Pair {
	var (
		out  = make([]Pair, 0, in.m*(in.m-1)/2)
		i, j int
	)
	for i = 0; i < in.m; i++ {
		for j = i + 1; j < in.m; j++ {
			diff := roaring.Xor(in.positive[i], in.positive[j])
			tests := make([]int, 0, diff.GetCardinality())
			it := diff.Iterator()
			for it.HasNext() {
				tests = append(tests, int(it.Next()))
			}
			out = append(out, Pair{I: i, J: j, Tests: tests})
		}
	}

	return out
}

// Rows returns the covering rows of the relaxation, one per Pair in Pairs order:
// Σ_{k ∈ row} x_k ≥ 1.
func (in *Instance) Rows() [][]int {
	pairs := in.Pairs()
	rows := make([][]int, len(pairs))
	for i := range pairs {
		rows[i] = pairs[i].Tests
	}

	return rows
}

// AssignmentCost returns Σ cost[k]·x[k].
// Errors: ErrAssignment when len(x) != n or an entry is not 0/1.
func (in *Instance) AssignmentCost(x []int) (float64, error) {
	if len(x) != in.n {
		return 0, fmt.Errorf("%w: length %d, want %d", ErrAssignment, len(x), in.n)
	}
	var sum float64
	for k, v := range x {
		switch v {
		case 0:
		case 1:
			sum += in.cost[k]
		default:
			return 0, fmt.Errorf("%w: x[%d]=%d", ErrAssignment, k, v)
		}
	}

	return sum, nil
}

// String renders a human-readable summary: sizes, costs and the coverage rows.
func (in *Instance) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Number of tests: %d\n", in.n)
	fmt.Fprintf(&sb, "Number of diseases: %d\n", in.m)
	sb.WriteString("Cost of tests:")
	for _, c := range in.cost {
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
	}
	sb.WriteString("\nA:\n")
	in.writeRows(&sb)

	return sb.String()
}

// writeRows writes the coverage rows as space-separated 0/1 digits, one test
// per line.
func (in *Instance) writeRows(sb *strings.Builder) {
	var k, j int
	for k = 0; k < in.n; k++ {
		for j = 0; j < in.m; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if in.positive[j].Contains(uint32(k)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
}
