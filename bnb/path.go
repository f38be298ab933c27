package bnb

import (
	"fmt"

	"github.com/katalvlaran/testsel/relax"
)

// branchPath is the stack of decisions currently fixed, with an O(1)
// membership index. No variable appears twice; depth ≤ n.
type branchPath struct {
	fixes    []relax.Fix
	assigned []bool
}

func newBranchPath(n int) branchPath {
	return branchPath{
		fixes:    make([]relax.Fix, 0, n),
		assigned: make([]bool, n),
	}
}

func (p *branchPath) depth() int { return len(p.fixes) }

// push appends f. Fixing an assigned variable is a driver defect.
func (p *branchPath) push(f relax.Fix) {
	if p.assigned[f.Index] {
		panic(fmt.Sprintf("bnb: internal invariant violated: %v pushed while x%d is on the path", f, f.Index))
	}
	p.assigned[f.Index] = true
	p.fixes = append(p.fixes, f)
}

// truncate pops decisions until depth d remains.
func (p *branchPath) truncate(d int) {
	if d > len(p.fixes) {
		panic(fmt.Sprintf("bnb: internal invariant violated: truncate to %d above depth %d", d, len(p.fixes)))
	}
	for _, f := range p.fixes[d:] {
		p.assigned[f.Index] = false
	}
	p.fixes = p.fixes[:d]
}

// snapshot returns an independent copy of the decisions.
func (p *branchPath) snapshot() []relax.Fix {
	return append([]relax.Fix(nil), p.fixes...)
}

// assignment expands a full-depth path into x[0..n).
func (p *branchPath) assignment() []int {
	x := make([]int, len(p.assigned))
	for _, f := range p.fixes {
		x[f.Index] = f.Value
	}

	return x
}

// pending is a decision awaiting exploration together with the path depth at
// which it was pushed; popping it truncates the path to that depth.
type pending struct {
	fix   relax.Fix
	depth int
}

// pendingStack is the LIFO frontier of the depth-first search.
type pendingStack []pending

func (s *pendingStack) push(e pending) { *s = append(*s, e) }

func (s *pendingStack) pop() pending {
	old := *s
	e := old[len(old)-1]
	*s = old[:len(old)-1]

	return e
}

func (s pendingStack) empty() bool { return len(s) == 0 }
