// Package cli wires scenarios, the in-memory world and the nominal
// solver into the command-line and server entry points.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/gantry"
	httpadapter "github.com/aretw0/gantry/internal/adapters/http"
	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/observability"
	"github.com/aretw0/gantry/pkg/ports"
	"github.com/aretw0/gantry/pkg/scenario"
)

// Runner resolves scenario names and runs each solve in a fresh world.
// It implements the HTTP adapter's SolveRunner.
type Runner struct {
	logger *slog.Logger
	store  ports.PlanStore
	hooks  *observability.Hooks
}

// NewRunner creates a runner. The store is shared across solves so
// reports stay addressable; hooks may be nil.
func NewRunner(logger *slog.Logger, store ports.PlanStore, hooks *observability.Hooks) *Runner {
	return &Runner{logger: logger, store: store, hooks: hooks}
}

// Scenario resolves a name to a builtin scenario, falling back to a
// YAML file path.
func (r *Runner) Scenario(name string) (*scenario.Scenario, error) {
	if sc, err := scenario.Builtin(name); err == nil {
		return sc, nil
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %s", httpadapter.ErrUnknownScenario, name)
	}
	return scenario.Load(name)
}

// Solve builds a fresh in-memory world for the named scenario and runs
// the engine over it.
func (r *Runner) Solve(ctx context.Context, name string, opts gantry.RunOptions) (*gantry.Result, error) {
	sc, err := r.Scenario(name)
	if err != nil {
		return nil, err
	}

	sim, err := memory.FromScenario(sc)
	if err != nil {
		return nil, err
	}
	sc.Samplers = memory.Samplers(sim, sc)

	eng, err := gantry.New(
		gantry.WithSimulator(sim),
		gantry.WithSolver(gantry.NominalSolver(sc)),
		gantry.WithPlanStore(r.store),
		gantry.WithHooks(r.hooks),
		gantry.WithLogger(r.logger),
	)
	if err != nil {
		return nil, err
	}
	return eng.Run(ctx, sc, opts)
}

// Report loads a stored report by ID.
func (r *Runner) Report(ctx context.Context, id string) (*domain.Report, error) {
	return r.store.Load(ctx, id)
}

// Reports lists stored report IDs when the store supports listing.
func (r *Runner) Reports(ctx context.Context) ([]string, error) {
	if l, ok := r.store.(interface {
		List(context.Context) ([]string, error)
	}); ok {
		return l.List(ctx)
	}
	return nil, nil
}
