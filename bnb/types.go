package bnb

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/testsel/relax"
)

// DefaultEps is the default pruning/improvement tolerance.
const DefaultEps = 1e-9

var (
	// ErrBadOptions reports an invalid Options value (negative Eps, TimeLimit
	// or MaxNodes).
	ErrBadOptions = errors.New("bnb: invalid options")

	// ErrNilOracle is returned by Search when no oracle is supplied.
	ErrNilOracle = errors.New("bnb: nil oracle")

	// ErrNoVariables is returned by Search when n <= 0.
	ErrNoVariables = errors.New("bnb: no decision variables")

	// ErrNoFreeVariable is returned by a Brancher asked to choose when every
	// variable is already assigned. Search treats it as an internal invariant
	// violation.
	ErrNoFreeVariable = errors.New("bnb: no unassigned variable")

	// ErrBranchInput is returned by a Brancher when assigned and values differ
	// in length.
	ErrBranchInput = errors.New("bnb: brancher input length mismatch")

	// ErrUnknownBrancher is returned by BrancherByName.
	ErrUnknownBrancher = errors.New("bnb: unknown branching rule")
)

// Options configures Search and Solve. The zero value is not valid for Eps
// semantics; start from DefaultOptions.
type Options struct {
	// Brancher picks the next branch variable (nil ⇒ SmallestValue).
	Brancher Brancher

	// Eps is the tolerance of the pruning rule bound ≥ incumbent − Eps and of
	// the improvement rule objective < incumbent − Eps.
	Eps float64

	// TimeLimit is a soft wall-clock budget (0 ⇒ none).
	TimeLimit time.Duration

	// MaxNodes bounds the number of evaluated nodes, root included (0 ⇒ none).
	MaxNodes int

	// Logger receives Debug per node and Info on incumbents and termination
	// (nil ⇒ discard).
	Logger logrus.FieldLogger

	// OnNode, when set, is called synchronously once per evaluated node.
	OnNode func(Node)
}

// DefaultOptions returns the deterministic default configuration.
func DefaultOptions() Options {
	return Options{
		Brancher: SmallestValue{},
		Eps:      DefaultEps,
	}
}

func validateOptions(opts Options) error {
	switch {
	case opts.Eps < 0 || math.IsNaN(opts.Eps):
		return errors.Join(ErrBadOptions, errors.New("eps must be >= 0"))
	case opts.TimeLimit < 0:
		return errors.Join(ErrBadOptions, errors.New("time limit must be >= 0"))
	case opts.MaxNodes < 0:
		return errors.Join(ErrBadOptions, errors.New("max nodes must be >= 0"))
	}

	return nil
}

// discardLogger returns a logger that drops everything.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// NodeKind classifies an evaluated node.
type NodeKind int

const (
	// NodeRoot: the relaxation with nothing fixed.
	NodeRoot NodeKind = iota
	// NodeInfeasible: the relaxation is infeasible; the subtree is dropped.
	NodeInfeasible
	// NodePruned: bound ≥ incumbent − Eps; the subtree is dropped.
	NodePruned
	// NodeLeaf: every variable fixed and the assignment is feasible.
	NodeLeaf
	// NodeBranch: internal node whose two children were pushed.
	NodeBranch
)

func (k NodeKind) String() string {
	switch k {
	case NodeRoot:
		return "root"
	case NodeInfeasible:
		return "infeasible"
	case NodePruned:
		return "pruned"
	case NodeLeaf:
		return "leaf"
	case NodeBranch:
		return "branch"
	default:
		return "unknown"
	}
}

// Node describes one evaluated node, reported through Options.OnNode.
type Node struct {
	Seq      int       // 0 for the root, then +1 per evaluated node
	Depth    int       // path length at evaluation (0 for the root)
	Fix      relax.Fix // decision applied last (zero value for the root)
	Kind     NodeKind
	Bound    float64 // relaxation objective; NaN when infeasible
	Improved bool    // leaf that replaced the incumbent
}

// Status is the outcome of a search.
type Status int

const (
	// StatusOptimal: the tree was exhausted and an incumbent exists.
	StatusOptimal Status = iota
	// StatusInfeasible: the tree was exhausted without any feasible leaf.
	StatusInfeasible
	// StatusTimeLimit: Options.TimeLimit expired; the result holds the best
	// incumbent so far, if any.
	StatusTimeLimit
	// StatusNodeLimit: Options.MaxNodes was reached.
	StatusNodeLimit
	// StatusCanceled: the context was canceled or its deadline passed.
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusTimeLimit:
		return "time-limit"
	case StatusNodeLimit:
		return "node-limit"
	case StatusCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Stats counts search activity.
type Stats struct {
	Nodes      int // evaluated nodes, root included
	Branched   int
	Leaves     int
	Pruned     int
	Infeasible int
	Incumbents int // incumbent replacements
	MaxDepth   int
}

// Result is the outcome of Search. Objective, Assignment and Path describe the
// incumbent and are set only when Found reports true (Objective is +Inf
// otherwise).
type Result struct {
	Status     Status
	Objective  float64
	Assignment []int       // x[0..n), x[k] ∈ {0,1}
	Path       []relax.Fix // decisions in the order they were fixed
	Stats      Stats
	Elapsed    time.Duration
}

// Found reports whether the result carries an assignment.
func (r Result) Found() bool { return r.Assignment != nil }
