package gantry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/gantry/internal/compiler"
	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/internal/runtime"
	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/adapters/scripted"
	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/observability"
	"github.com/aretw0/gantry/pkg/ports"
	"github.com/aretw0/gantry/pkg/scenario"
	"github.com/aretw0/gantry/pkg/streams"
)

// Engine is the high-level entry point for the library. It wires the
// problem compiler, an external solver, the plan compiler and the
// command executor around a simulator backend.
type Engine struct {
	solver ports.Solver
	sim    ports.Simulator
	store  ports.PlanStore
	hooks  *observability.Hooks
	gate   runtime.StepGate
	bound  streams.BoundPolicy
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSolver injects the search backend.
func WithSolver(s ports.Solver) Option {
	return func(e *Engine) { e.solver = s }
}

// WithSimulator injects the world backend.
func WithSimulator(sim ports.Simulator) Option {
	return func(e *Engine) { e.sim = sim }
}

// WithPlanStore injects the report store. Defaults to an in-memory map.
func WithPlanStore(store ports.PlanStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithHooks registers observability hooks.
func WithHooks(hooks *observability.Hooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithStepGate installs a per-step continuation gate for replay.
func WithStepGate(gate runtime.StepGate) Option {
	return func(e *Engine) { e.gate = gate }
}

// WithBoundPolicy overrides the optimistic-object policy handed to the
// problem compiler.
func WithBoundPolicy(bound streams.BoundPolicy) Option {
	return func(e *Engine) { e.bound = bound }
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New initializes an Engine. A solver and a simulator are required;
// everything else has in-process defaults.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.solver == nil {
		return nil, fmt.Errorf("gantry: no solver configured")
	}
	if e.sim == nil {
		return nil, fmt.Errorf("gantry: no simulator configured")
	}
	if e.store == nil {
		e.store = memory.NewReportStore()
	}
	return e, nil
}

// RunOptions bound a single Run.
type RunOptions struct {
	// MaxTime is the solver budget. Zero means no budget.
	MaxTime time.Duration
	// Strategy names the search strategy, interpreted by the solver.
	Strategy string
	// Visualize replays the compiled commands against the simulator
	// after a successful solve.
	Visualize bool
}

// Result is the outcome of a Run.
type Result struct {
	Report   domain.Report
	Plan     []domain.Step
	Commands []command.Command
}

// Run compiles the scenario, solves it, compiles the plan to commands,
// and optionally replays them. The report is persisted whether or not a
// plan was found.
func (e *Engine) Run(ctx context.Context, sc *scenario.Scenario, opts RunOptions) (*Result, error) {
	pcOpts := []compiler.Option{compiler.WithLogger(e.logger)}
	if e.bound != nil {
		pcOpts = append(pcOpts, compiler.WithBoundPolicy(e.bound))
	}
	pc := compiler.NewProblemCompiler(pcOpts...)

	problem, reg, err := pc.Compile(ctx, e.sim, sc)
	if err != nil {
		return nil, fmt.Errorf("compile problem: %w", err)
	}

	e.hooks.EmitSolveStart(sc.Name)
	start := time.Now()
	sol, err := e.solver.Solve(ctx, problem, reg, ports.SolveOptions{
		MaxTime:  opts.MaxTime,
		Strategy: opts.Strategy,
	})
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	report := domain.Report{
		ID:          uuid.NewString(),
		Scenario:    sc.Name,
		Solved:      sol.Plan != nil,
		Length:      len(sol.Plan),
		Cost:        planCost(problem.Model, sol.Plan),
		Evaluations: sol.Evaluations,
		Elapsed:     elapsed,
	}
	for _, step := range sol.Plan {
		report.Plan = append(report.Plan, step.String())
	}
	e.hooks.EmitSolveEnd(observability.EventFromReport(&report))
	e.logger.Info("solve finished",
		"scenario", sc.Name,
		"solved", report.Solved,
		"length", report.Length,
		"cost", report.Cost,
		"elapsed", elapsed,
	)

	if err := e.store.Save(ctx, &report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	result := &Result{Report: report, Plan: sol.Plan}
	if sol.Plan == nil {
		return result, nil
	}

	planc, err := compiler.NewPlanCompiler(problem.Model, sc)
	if err != nil {
		return nil, fmt.Errorf("compile plan: %w", err)
	}
	result.Commands, err = planc.Compile(sol.Plan)
	if err != nil {
		return nil, fmt.Errorf("compile plan: %w", err)
	}

	if opts.Visualize {
		if err := e.Replay(ctx, result.Commands); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
	}
	return result, nil
}

// Replay executes commands against the engine's simulator.
func (e *Engine) Replay(ctx context.Context, cmds []command.Command) error {
	exec := runtime.NewExecutor(e.sim,
		runtime.WithLogger(e.logger),
		runtime.WithHooks(e.hooks),
		runtime.WithStepGate(e.gate),
	)
	return exec.Replay(ctx, cmds)
}

// Report loads a stored report by ID.
func (e *Engine) Report(ctx context.Context, id string) (*domain.Report, error) {
	return e.store.Load(ctx, id)
}

// NominalSolver returns a solver that deterministically assembles and
// validates the obvious plan for the scenario's goal. It is the default
// search backend for demos; real search plugs in via WithSolver.
func NominalSolver(sc *scenario.Scenario, opts ...scripted.Option) ports.Solver {
	return scripted.New(scripted.PlanFunc(compiler.NominalPlanner(sc)), opts...)
}

func planCost(m *domain.Model, plan []domain.Step) float64 {
	var cost float64
	for _, step := range plan {
		if action, ok := m.Action(step.Action); ok {
			cost += action.Cost
		}
	}
	return cost
}
