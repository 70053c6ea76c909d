// Package nlp provides a small constrained nonlinear minimizer used by the
// dispatch planner. Constraints are enforced with a sequential quadratic
// penalty; each round is minimized with the derivative-free Nelder-Mead
// method from gonum. The problems solved here are tiny (two variables) and
// smooth, so a handful of penalty rounds reaches the feasible optimum.
package nlp

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"
)

// Constraint is a scalar function of the decision vector. Equality
// constraints are satisfied when the value is zero, inequality constraints
// when the value is non-negative.
type Constraint func(x []float64) float64

// Problem describes a bound- and constraint-limited minimization.
type Problem struct {
	Objective func(x []float64) float64
	// Bounds holds one [lower, upper] pair per decision variable.
	Bounds [][2]float64
	// EqCons must evaluate to zero at a feasible point.
	EqCons []Constraint
	// IneqCons must evaluate to a non-negative value at a feasible point.
	IneqCons []Constraint
	// X0 is the starting point. It must have one entry per bound pair.
	X0 []float64
}

// Result holds the solver output.
type Result struct {
	X []float64
	F float64
	// Violation is the largest remaining constraint violation at X.
	Violation float64
}

// ErrNoConvergence reports that the penalized minimization finished without
// reaching a point satisfying the constraints within tolerance.
var ErrNoConvergence = errors.New("nlp: no convergence to a feasible point")

// penaltyWeights are applied in sequence, warm-starting each round from the
// previous round's minimizer.
var penaltyWeights = []float64{1e2, 1e4, 1e6, 1e8}

// Solve minimizes the problem and returns the best feasible point found.
// tol is the absolute constraint-violation tolerance accepted at the final
// point.
func Solve(p Problem, tol float64) (*Result, error) {
	if p.Objective == nil {
		return nil, fmt.Errorf("nlp: objective is required")
	}
	if len(p.X0) == 0 || len(p.X0) != len(p.Bounds) {
		return nil, fmt.Errorf("nlp: starting point has %d entries for %d bounds", len(p.X0), len(p.Bounds))
	}

	x := make([]float64, len(p.X0))
	copy(x, p.X0)

	for _, mu := range penaltyWeights {
		problem := optimize.Problem{Func: penalized(p, mu)}
		settings := &optimize.Settings{
			Converger: &optimize.FunctionConverge{Absolute: 1e-10, Iterations: 100},
		}
		res, err := optimize.Minimize(problem, x, settings, &optimize.NelderMead{})
		if res != nil && len(res.X) == len(x) {
			copy(x, res.X)
		}
		if err != nil && res == nil {
			return nil, fmt.Errorf("nlp: penalty round (mu=%g): %w", mu, err)
		}
	}

	v := maxViolation(p, x)
	out := &Result{X: x, F: p.Objective(x), Violation: v}
	if v > tol {
		return out, fmt.Errorf("%w: violation %g exceeds tolerance %g", ErrNoConvergence, v, tol)
	}
	return out, nil
}

// penalized builds the unconstrained objective for one penalty round.
func penalized(p Problem, mu float64) func(x []float64) float64 {
	return func(x []float64) float64 {
		f := p.Objective(x)
		for i, b := range p.Bounds {
			if d := b[0] - x[i]; d > 0 {
				f += mu * d * d
			}
			if d := x[i] - b[1]; d > 0 {
				f += mu * d * d
			}
		}
		for _, eq := range p.EqCons {
			v := eq(x)
			f += mu * v * v
		}
		for _, ineq := range p.IneqCons {
			if v := ineq(x); v < 0 {
				f += mu * v * v
			}
		}
		return f
	}
}

func maxViolation(p Problem, x []float64) float64 {
	var v float64
	for i, b := range p.Bounds {
		v = math.Max(v, b[0]-x[i])
		v = math.Max(v, x[i]-b[1])
	}
	for _, eq := range p.EqCons {
		v = math.Max(v, math.Abs(eq(x)))
	}
	for _, ineq := range p.IneqCons {
		v = math.Max(v, -ineq(x))
	}
	return v
}
