// Package solverbackend defines a narrow trait over 0-1 ILP / CP-SAT
// engines: declare a Bool var, add a linear ≤/= constraint, add a bounded
// integer var, set the objective, solve under a wall-clock budget, read a
// value. Any engine satisfying this trait may be substituted;
// internal/solverbackend/ortools and internal/solverbackend/greedy are the
// two implementations this repository ships.
package solverbackend

import (
	"context"
	"time"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/constraintmodel"
)

// Status is the outcome of a Solve call.
type Status int

const (
	StatusUnknown Status = iota
	StatusOptimal
	StatusFeasible
	StatusInfeasible
)

// Result carries the solved variable values, keyed by bool-var index into
// the Model's binding list. IntVars are not reported back — the caller
// only needs to know which bindings were chosen.
type Result struct {
	Status     Status
	BoolValues []bool // parallel to Model.NumBoolVars
}

// Backend runs a constraintmodel.Model under a wall-clock budget.
type Backend interface {
	// Solve must be deterministic for a fixed backend and input, and must
	// return within the budget. The greedy backend also stops early when ctx
	// is done; the ortools backend does not interrupt a running CP-SAT solve
	// on ctx cancellation.
	Solve(ctx context.Context, model *constraintmodel.Model, budget time.Duration) (Result, error)
}
