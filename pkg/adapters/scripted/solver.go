// Package scripted provides a deterministic solver for tests and demos.
// A plan source proposes a candidate plan; the solver validates it
// against the action model before returning it. It performs no search.
package scripted

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/ports"
	"github.com/aretw0/gantry/pkg/streams"
)

// PlanFunc proposes a candidate plan for a compiled problem, together
// with the stream graph atoms certified while assembling it.
type PlanFunc func(ctx context.Context, p *domain.Problem, reg *streams.Registry) ([]domain.Step, []domain.Atom, error)

// Solver validates scripted plans. It implements ports.Solver.
type Solver struct {
	fn     PlanFunc
	logger *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a solver around a plan source.
func New(fn PlanFunc, opts ...Option) *Solver {
	s := &Solver{fn: fn, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fixed creates a solver that always proposes the same plan.
func Fixed(plan []domain.Step, certified []domain.Atom) *Solver {
	return New(func(context.Context, *domain.Problem, *streams.Registry) ([]domain.Step, []domain.Atom, error) {
		return plan, certified, nil
	})
}

// Solve asks the plan source for a candidate and checks every step's
// preconditions by replaying the plan over the initial state extended
// with the certified atoms. A candidate that fails a precondition is
// reported as unsolved, not as an error.
func (s *Solver) Solve(ctx context.Context, p *domain.Problem, reg *streams.Registry, opts ports.SolveOptions) (*ports.Solution, error) {
	if opts.MaxTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.MaxTime)
		defer cancel()
	}

	plan, certified, err := s.fn(ctx, p, reg)
	if err != nil {
		if errors.Is(err, streams.ErrNoCandidate) {
			// An exhausted stream is a dead search branch, not a failure
			// of the solve itself.
			s.logger.Debug("plan source exhausted a stream", "err", err)
			return &ports.Solution{Evaluations: p.Initial.Len()}, nil
		}
		return nil, err
	}

	evals := p.Initial.Len() + len(certified)
	state := p.Initial.Clone()
	for _, a := range certified {
		if err := state.Add(a); err != nil {
			return nil, err
		}
	}

	final, err := p.Model.ApplyPlan(state, plan)
	if err != nil {
		if errors.Is(err, domain.ErrPreconditionFailed) {
			s.logger.Debug("scripted plan rejected", "err", err)
			return &ports.Solution{Evaluations: evals}, nil
		}
		return nil, err
	}
	if !p.GoalSatisfied(final) {
		s.logger.Debug("scripted plan does not reach the goal")
		return &ports.Solution{Evaluations: evals}, nil
	}

	return &ports.Solution{Plan: plan, Evaluations: evals}, nil
}
