// Package greedy implements a deterministic solverbackend.Backend that
// callers inject through scheduler.Options.Backend in place of CP-SAT (the
// scheduler tests do so). The repair planner's greedy fallback is its own
// placer in internal/repair and does not use this package. This backend
// only reasons about the hard (bool-var-only) constraints the constraint
// model builder emits — demand, no-overlap, and
// faculty caps — and ignores the soft-objective scaffolding (the
// department co-location and distribution-penalty auxiliaries), since
// those never gate feasibility, only the ranking among feasible solutions.
package greedy

import (
	"context"
	"sort"
	"time"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/constraintmodel"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend"
)

// Backend is a first-fit greedy solverbackend.Backend.
type Backend struct{}

// New constructs a greedy backend.
func New() *Backend {
	return &Backend{}
}

// Solve performs a deterministic first-fit assignment: demand constraints
// (sorted by fewest candidate terms first, then by name) are satisfied by
// picking terms in declaration order, skipping any that would violate an
// already-tight no-overlap or weekly-cap constraint. If a demand
// constraint cannot be met exactly, the whole solve is infeasible.
func (b *Backend) Solve(ctx context.Context, model *constraintmodel.Model, budget time.Duration) (solverbackend.Result, error) {
	deadline := time.Now().Add(budget)

	var eqConstraints []constraintmodel.Constraint
	var leConstraints []constraintmodel.Constraint
	for _, c := range model.Constraints {
		if hasIntTerm(c) {
			continue // soft-objective scaffolding; not a hard invariant
		}
		switch c.Op {
		case constraintmodel.OpEq:
			eqConstraints = append(eqConstraints, c)
		case constraintmodel.OpLE:
			leConstraints = append(leConstraints, c)
		}
	}

	sort.SliceStable(eqConstraints, func(i, j int) bool {
		if len(eqConstraints[i].Terms) != len(eqConstraints[j].Terms) {
			return len(eqConstraints[i].Terms) < len(eqConstraints[j].Terms)
		}
		return eqConstraints[i].Name < eqConstraints[j].Name
	})

	varToLE := make(map[int][]int)
	for i, c := range leConstraints {
		for _, t := range c.Terms {
			if t.Ref.Kind == constraintmodel.BoolVarKind {
				varToLE[t.Ref.Index] = append(varToLE[t.Ref.Index], i)
			}
		}
	}
	runningSum := make([]float64, len(leConstraints))
	assigned := make([]bool, model.NumBoolVars)

	for _, c := range eqConstraints {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return solverbackend.Result{Status: solverbackend.StatusInfeasible}, nil
		}
		need := int(c.RHS)
		count := 0
		for _, t := range c.Terms {
			if count >= need {
				break
			}
			idx := t.Ref.Index
			if assigned[idx] {
				count++
				continue
			}
			ok := true
			for _, leIdx := range varToLE[idx] {
				if runningSum[leIdx]+1 > leConstraints[leIdx].RHS {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
			assigned[idx] = true
			for _, leIdx := range varToLE[idx] {
				runningSum[leIdx]++
			}
			count++
		}
		if count < need {
			return solverbackend.Result{Status: solverbackend.StatusInfeasible}, nil
		}
	}

	return solverbackend.Result{Status: solverbackend.StatusOptimal, BoolValues: assigned}, nil
}

func hasIntTerm(c constraintmodel.Constraint) bool {
	for _, t := range c.Terms {
		if t.Ref.Kind == constraintmodel.IntVarKind {
			return true
		}
	}
	return false
}
