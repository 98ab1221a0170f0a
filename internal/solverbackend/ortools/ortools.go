// Package ortools is the production solverbackend.Backend. It translates a
// constraintmodel.Model into a CP-SAT model using Google OR-Tools' Go
// bindings and solves it under a wall-clock budget.
//
// Grounded on the CP-SAT Go API shape (cpmodel.NewCpModelBuilder,
// NewBoolVar, AddBoolOr/AddLinearConstraint, SolveCpModelWithParameters,
// SolutionBooleanValue) as used in or-tools' own no_overlap_sample_sat.
package ortools

import (
	"context"
	"fmt"
	"time"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sspb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/constraintmodel"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend"
)

// Backend delegates to the CP-SAT solver.
type Backend struct{}

// New constructs the CP-SAT backed solver.
func New() *Backend {
	return &Backend{}
}

// Solve builds a cpmodel.CpModelBuilder from model, runs
// SolveCpModelWithParameters under
// the given wall-clock budget, and extracts Boolean decision values.
func (b *Backend) Solve(ctx context.Context, model *constraintmodel.Model, budget time.Duration) (solverbackend.Result, error) {
	builder := cpmodel.NewCpModelBuilder()

	boolVars := make([]cpmodel.BoolVar, model.NumBoolVars)
	for i := range boolVars {
		boolVars[i] = builder.NewBoolVar()
	}

	intVars := make([]cpmodel.IntVar, len(model.IntVars))
	for i, spec := range model.IntVars {
		intVars[i] = builder.NewIntVar(int64(spec.Lo), int64(spec.Hi))
	}

	for _, c := range model.Constraints {
		expr := cpmodel.NewLinearExpr()
		for _, term := range c.Terms {
			switch term.Ref.Kind {
			case constraintmodel.BoolVarKind:
				expr.AddTerm(boolVars[term.Ref.Index], int64(term.Coeff))
			case constraintmodel.IntVarKind:
				expr.AddTerm(intVars[term.Ref.Index], int64(term.Coeff))
			}
		}
		switch c.Op {
		case constraintmodel.OpEq:
			builder.AddEquality(expr, cpmodel.NewConstant(int64(c.RHS)))
		case constraintmodel.OpLE:
			builder.AddLessOrEqual(expr, cpmodel.NewConstant(int64(c.RHS)))
		}
	}

	objective := cpmodel.NewLinearExpr()
	for _, term := range model.Objective {
		switch term.Ref.Kind {
		case constraintmodel.BoolVarKind:
			objective.AddTerm(boolVars[term.Ref.Index], int64(term.Coeff))
		case constraintmodel.IntVarKind:
			objective.AddTerm(intVars[term.Ref.Index], int64(term.Coeff))
		}
	}
	builder.Maximize(objective)

	cp, err := builder.Model()
	if err != nil {
		return solverbackend.Result{}, fmt.Errorf("ortools: instantiate model: %w", err)
	}

	params := &sspb.SatParameters{
		MaxTimeInSeconds: float64Ptr(budget.Seconds()),
	}
	response, err := cpmodel.SolveCpModelWithParameters(cp, params)
	if err != nil {
		return solverbackend.Result{}, fmt.Errorf("ortools: solve: %w", err)
	}

	if ctx.Err() != nil {
		log.Warningf("ortools: context cancelled after solve returned: %v", ctx.Err())
	}

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		values := make([]bool, model.NumBoolVars)
		for i, v := range boolVars {
			values[i] = cpmodel.SolutionBooleanValue(response, v)
		}
		status := solverbackend.StatusFeasible
		if response.GetStatus() == cmpb.CpSolverStatus_OPTIMAL {
			status = solverbackend.StatusOptimal
		}
		return solverbackend.Result{Status: status, BoolValues: values}, nil
	default:
		return solverbackend.Result{Status: solverbackend.StatusInfeasible}, nil
	}
}

func float64Ptr(f float64) *float64 {
	return &f
}
