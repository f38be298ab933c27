package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/testsel/matrix"
)

// ExampleNewDenseFromRows builds a coverage matrix and checks that it is binary.
func ExampleNewDenseFromRows() {
	m, err := matrix.NewDenseFromRows([][]float64{
		{0, 1, 1},
		{1, 0, 1},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	v, _ := m.At(1, 2)
	fmt.Println(m.Rows(), m.Cols(), v)
	fmt.Println(matrix.ValidateBinary(m) == nil)
	fmt.Print(m)
	// Output:
	// 2 3 1
	// true
	// [0, 1, 1]
	// [1, 0, 1]
}
