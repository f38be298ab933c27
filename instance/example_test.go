package instance_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/testsel/instance"
)

// ExampleValidate checks two selections against the worked 4×3 instance.
func ExampleValidate() {
	inst, err := instance.Parse(strings.NewReader("4\n3\n1 1 1 1\n0 1 1\n1 1 1\n1 1 0\n1 0 1\n"))
	if err != nil {
		fmt.Println("parse:", err)
		return
	}

	fmt.Println(instance.Validate([]int{1, 0, 1, 0}, inst.Coverage()))
	fmt.Println(instance.Validate([]int{1, 1, 0, 0}, inst.Coverage()))
	// Output:
	// true
	// false
}

// ExampleInstance_Pairs lists the tests able to separate each pair of diseases.
func ExampleInstance_Pairs() {
	inst, _ := instance.New([]float64{1, 1, 1, 1}, [][]float64{
		{0, 1, 1},
		{1, 1, 1},
		{1, 1, 0},
		{1, 0, 1},
	})
	for _, p := range inst.Pairs() {
		fmt.Printf("(%d,%d) %v\n", p.I, p.J, p.Tests)
	}
	// Output:
	// (0,1) [0 3]
	// (0,2) [0 2]
	// (1,2) [2 3]
}
