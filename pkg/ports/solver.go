package ports

import (
	"context"
	"time"

	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/streams"
)

// SolveOptions bound one solve invocation.
type SolveOptions struct {
	// MaxTime is the search budget. Zero means no budget.
	MaxTime time.Duration
	// Strategy names the search strategy, interpreted by the solver.
	Strategy string
}

// Solution is the outcome of one solve invocation. A nil Plan means no
// plan was found within budget.
type Solution struct {
	Plan        []domain.Step
	Evaluations int
}

// Solver is the external search algorithm. It consumes the compiled
// problem and the stream registry and returns an ordered plan of
// grounded steps, every one of whose preconditions holds at its point of
// application.
type Solver interface {
	Solve(ctx context.Context, p *domain.Problem, reg *streams.Registry, opts SolveOptions) (*Solution, error)
}
