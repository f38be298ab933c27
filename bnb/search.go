package bnb

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/testsel/instance"
	"github.com/katalvlaran/testsel/relax"
)

// engine holds the state of one search. It is not reused across runs.
type engine struct {
	n      int
	oracle relax.Oracle
	opts   Options
	log    logrus.FieldLogger

	start time.Time

	path    branchPath
	pending pendingStack

	// Incumbent.
	best     float64
	bestX    []int
	bestPath []relax.Fix

	stats Stats
	seq   int
}

// Search runs depth-first branch-and-bound over n binary variables, using
// oracle for node relaxations.
//
// The returned Result carries the best assignment found. Budgets (TimeLimit,
// MaxNodes) and ctx cancellation stop the search early with a limit status and
// a nil error; an oracle failure other than infeasibility aborts it with the
// wrapped oracle error.
//
// Errors:
//   - ErrNilOracle, ErrNoVariables, ErrBadOptions for invalid input.
//   - any oracle error, wrapped with the failing node's path.
//
// Panics when the Brancher violates its contract (no free variable at an
// internal node, or an index that is out of range or already assigned).
func Search(ctx context.Context, oracle relax.Oracle, n int, opts Options) (Result, error) {
	if oracle == nil {
		return Result{}, ErrNilOracle
	}
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: n=%d", ErrNoVariables, n)
	}
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}
	if opts.Brancher == nil {
		opts.Brancher = SmallestValue{}
	}
	e := &engine{
		n:      n,
		oracle: oracle,
		opts:   opts,
		log:    opts.Logger,
		start:  time.Now(),
		path:   newBranchPath(n),
		best:   math.Inf(1),
	}
	if e.log == nil {
		e.log = discardLogger()
	}

	status, err := e.run(ctx)
	res := e.result(status)
	if err != nil {
		return res, err
	}
	fields := logrus.Fields{
		"status":  status.String(),
		"nodes":   res.Stats.Nodes,
		"elapsed": res.Elapsed.String(),
	}
	// JSON formatters reject ±Inf and NaN.
	if res.Found() {
		fields["objective"] = res.Objective
	}
	e.log.WithFields(fields).Info("search finished")

	return res, nil
}

// Solve builds a simplex relaxation oracle for inst and runs Search on it.
func Solve(ctx context.Context, inst *instance.Instance, opts Options) (Result, error) {
	if inst == nil {
		return Result{}, fmt.Errorf("%w: nil instance", instance.ErrInvalidInstance)
	}
	oracle, err := relax.NewSimplex(relax.Problem{Cost: inst.Cost(), Rows: inst.Rows()})
	if err != nil {
		return Result{}, fmt.Errorf("bnb: build oracle: %w", err)
	}

	return Search(ctx, oracle, inst.NumTests(), opts)
}

// run drives the search and returns its final status.
func (e *engine) run(ctx context.Context) (Status, error) {
	rel, err := e.oracle.Solve(ctx, nil)
	if err != nil {
		return e.oracleFailure(ctx, err)
	}
	e.stats.Nodes++
	if !rel.Feasible {
		e.stats.Infeasible++
		e.emit(Node{Kind: NodeRoot, Bound: math.NaN()})
		e.log.Info("root relaxation infeasible")

		return StatusInfeasible, nil
	}
	e.stats.Branched++
	e.emit(Node{Kind: NodeRoot, Bound: rel.Objective})
	e.expand(rel.Values)

	for !e.pending.empty() {
		if st, stop := e.budgetExceeded(ctx); stop {
			return st, nil
		}

		entry := e.pending.pop()
		e.path.truncate(entry.depth)
		e.path.push(entry.fix)
		depth := e.path.depth()
		if depth > e.stats.MaxDepth {
			e.stats.MaxDepth = depth
		}

		rel, err = e.oracle.Solve(ctx, e.path.fixes)
		if err != nil {
			return e.oracleFailure(ctx, err)
		}
		e.stats.Nodes++
		node := Node{Depth: depth, Fix: entry.fix, Bound: rel.Objective}

		switch {
		case !rel.Feasible:
			e.stats.Infeasible++
			node.Kind, node.Bound = NodeInfeasible, math.NaN()
		case rel.Objective >= e.best-e.opts.Eps:
			e.stats.Pruned++
			node.Kind = NodePruned
		case depth == e.n:
			e.stats.Leaves++
			node.Kind = NodeLeaf
			if rel.Objective < e.best-e.opts.Eps {
				e.improve(rel.Objective)
				node.Improved = true
			}
		default:
			e.stats.Branched++
			node.Kind = NodeBranch
			e.expand(rel.Values)
		}
		e.emit(node)
	}

	if e.bestX == nil {
		return StatusInfeasible, nil
	}

	return StatusOptimal, nil
}

// expand asks the Brancher for the next variable and pushes both decisions,
// value 0 first so that value 1 is popped first.
func (e *engine) expand(values []float64) {
	k, err := e.opts.Brancher.Select(e.path.assigned, values)
	if err != nil {
		panic(fmt.Sprintf("bnb: internal invariant violated: brancher at depth %d: %v", e.path.depth(), err))
	}
	if k < 0 || k >= e.n || e.path.assigned[k] {
		panic(fmt.Sprintf("bnb: internal invariant violated: brancher returned %d at depth %d", k, e.path.depth()))
	}
	d := e.path.depth()
	e.pending.push(pending{fix: relax.Fix{Index: k, Value: 0}, depth: d})
	e.pending.push(pending{fix: relax.Fix{Index: k, Value: 1}, depth: d})
}

// improve records the current full-depth path as the incumbent.
func (e *engine) improve(obj float64) {
	e.best = obj
	e.bestX = e.path.assignment()
	e.bestPath = e.path.snapshot()
	e.stats.Incumbents++
	e.log.WithFields(logrus.Fields{
		"objective": obj,
		"node":      e.stats.Nodes,
	}).Info("new incumbent")
}

// budgetExceeded checks cancellation, the time limit and the node limit.
func (e *engine) budgetExceeded(ctx context.Context) (Status, bool) {
	switch {
	case ctx.Err() != nil:
		return StatusCanceled, true
	case e.opts.TimeLimit > 0 && time.Since(e.start) >= e.opts.TimeLimit:
		return StatusTimeLimit, true
	case e.opts.MaxNodes > 0 && e.stats.Nodes >= e.opts.MaxNodes:
		return StatusNodeLimit, true
	}

	return 0, false
}

// oracleFailure maps an oracle error: cancellation ends the search with
// StatusCanceled, anything else aborts it.
func (e *engine) oracleFailure(ctx context.Context, err error) (Status, error) {
	if ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return StatusCanceled, nil
	}

	return StatusCanceled, fmt.Errorf("bnb: relaxation at %v: %w", e.path.fixes, err)
}

func (e *engine) emit(node Node) {
	node.Seq = e.seq
	e.seq++
	fields := logrus.Fields{
		"seq":   node.Seq,
		"depth": node.Depth,
		"kind":  node.Kind.String(),
	}
	if !math.IsNaN(node.Bound) {
		fields["bound"] = node.Bound
	}
	if node.Depth > 0 {
		fields["fix"] = node.Fix.String()
	}
	e.log.WithFields(fields).Debug("node")
	if e.opts.OnNode != nil {
		e.opts.OnNode(node)
	}
}

func (e *engine) result(status Status) Result {
	return Result{
		Status:     status,
		Objective:  e.best,
		Assignment: e.bestX,
		Path:       e.bestPath,
		Stats:      e.stats,
		Elapsed:    time.Since(e.start),
	}
}
