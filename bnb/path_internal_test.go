package bnb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/testsel/relax"
)

func TestBranchPath_PushTruncate(t *testing.T) {
	p := newBranchPath(4)
	p.push(relax.Fix{Index: 2, Value: 1})
	p.push(relax.Fix{Index: 0, Value: 0})
	p.push(relax.Fix{Index: 3, Value: 1})
	require.Equal(t, 3, p.depth())
	require.Equal(t, []bool{true, false, true, true}, p.assigned)

	snap := p.snapshot()
	p.truncate(1)
	require.Equal(t, 1, p.depth())
	require.Equal(t, []bool{false, false, true, false}, p.assigned)
	require.Len(t, snap, 3, "snapshot must not alias the path")

	p.push(relax.Fix{Index: 0, Value: 1})
	p.push(relax.Fix{Index: 1, Value: 0})
	p.push(relax.Fix{Index: 3, Value: 1})
	require.Equal(t, []int{1, 0, 1, 1}, p.assignment())
	require.Equal(t, relax.Fix{Index: 0, Value: 0}, snap[1])

	require.Panics(t, func() { p.push(relax.Fix{Index: 3, Value: 0}) })
	require.Panics(t, func() { p.truncate(9) })
}

func TestPendingStack_LIFO(t *testing.T) {
	var s pendingStack
	require.True(t, s.empty())
	s.push(pending{fix: relax.Fix{Index: 1, Value: 0}, depth: 0})
	s.push(pending{fix: relax.Fix{Index: 1, Value: 1}, depth: 0})
	s.push(pending{fix: relax.Fix{Index: 2, Value: 1}, depth: 1})

	require.Equal(t, 1, s.pop().depth)
	require.Equal(t, relax.Fix{Index: 1, Value: 1}, s.pop().fix)
	require.Equal(t, relax.Fix{Index: 1, Value: 0}, s.pop().fix)
	require.True(t, s.empty())
}
