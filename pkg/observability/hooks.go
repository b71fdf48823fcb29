package observability

import (
	"time"

	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/domain"
)

// SolveEvent describes the outcome of a single solver run.
type SolveEvent struct {
	Scenario    string
	Solved      bool
	PlanLength  int
	Cost        float64
	Evaluations int
	Elapsed     time.Duration
}

// CommandEvent describes one command handed to the executor during replay.
type CommandEvent struct {
	Command command.Command
}

// Hooks carries optional callbacks invoked at engine lifecycle points.
// Any field may be nil; a zero Hooks is valid and does nothing.
type Hooks struct {
	// OnSolveStart fires when the engine hands a problem to the solver.
	OnSolveStart func(scenario string)
	// OnSolveEnd fires once the solver returns, solved or not.
	OnSolveEnd func(SolveEvent)
	// OnCommand fires before each command is replayed.
	OnCommand func(CommandEvent)
	// OnStep fires after every simulator step inside a trajectory.
	OnStep func()
}

// EmitSolveStart invokes OnSolveStart if set.
func (h *Hooks) EmitSolveStart(scenario string) {
	if h != nil && h.OnSolveStart != nil {
		h.OnSolveStart(scenario)
	}
}

// EmitSolveEnd invokes OnSolveEnd if set.
func (h *Hooks) EmitSolveEnd(ev SolveEvent) {
	if h != nil && h.OnSolveEnd != nil {
		h.OnSolveEnd(ev)
	}
}

// EmitCommand invokes OnCommand if set.
func (h *Hooks) EmitCommand(cmd command.Command) {
	if h != nil && h.OnCommand != nil {
		h.OnCommand(CommandEvent{Command: cmd})
	}
}

// EmitStep invokes OnStep if set.
func (h *Hooks) EmitStep() {
	if h != nil && h.OnStep != nil {
		h.OnStep()
	}
}

// EventFromReport converts a finished report into a SolveEvent.
func EventFromReport(r *domain.Report) SolveEvent {
	return SolveEvent{
		Scenario:    r.Scenario,
		Solved:      r.Solved,
		PlanLength:  r.Length,
		Cost:        r.Cost,
		Evaluations: r.Evaluations,
		Elapsed:     r.Elapsed,
	}
}
