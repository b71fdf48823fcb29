// Package runtime replays compiled command sequences against a
// simulator, maintaining rigid attachments so carried bodies track their
// carriers step by step.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/observability"
	"github.com/aretw0/gantry/pkg/ports"
)

// ExecutionError reports a command the executor cannot replay.
type ExecutionError struct {
	Command command.Command
	Reason  string
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("cannot execute %T: %s", e.Command, e.Reason)
}

// StepGate is called after every simulation step. Returning an error
// aborts the replay; blocking pauses it. A nil gate continues
// immediately, which is the non-interactive default.
type StepGate func(ctx context.Context) error

// Executor replays commands against a simulator. It is not safe for
// concurrent use; a replay owns the simulator until it returns.
type Executor struct {
	sim         ports.Simulator
	logger      *slog.Logger
	gate        StepGate
	hooks       *observability.Hooks
	attachments map[motion.BodyID]*command.Attach
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithStepGate installs a per-step continuation gate.
func WithStepGate(gate StepGate) Option {
	return func(e *Executor) { e.gate = gate }
}

// WithHooks installs lifecycle hooks.
func WithHooks(hooks *observability.Hooks) Option {
	return func(e *Executor) { e.hooks = hooks }
}

// NewExecutor builds an executor bound to a simulator.
func NewExecutor(sim ports.Simulator, opts ...Option) *Executor {
	e := &Executor{
		sim:         sim,
		logger:      logging.NewNop(),
		attachments: make(map[motion.BodyID]*command.Attach),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Attached returns the currently carried bodies in name order.
func (e *Executor) Attached() []motion.BodyID {
	out := make([]motion.BodyID, 0, len(e.attachments))
	for body := range e.attachments {
		out = append(out, body)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Replay executes commands in order. It stops at the first error,
// leaving the simulator in the state reached so far.
func (e *Executor) Replay(ctx context.Context, cmds []command.Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.hooks.EmitCommand(cmd)
		e.logger.Debug("executing command", "command", cmd.String())
		if err := e.execute(ctx, cmd); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) execute(ctx context.Context, cmd command.Command) error {
	switch c := cmd.(type) {
	case *command.Trajectory:
		return e.followTrajectory(ctx, c)
	case *command.Attach:
		if prev, ok := e.attachments[c.Body]; ok {
			return &ExecutionError{
				Command: cmd,
				Reason:  fmt.Sprintf("body %s already attached via %s", c.Body, prev.Grasp.Name()),
			}
		}
		e.attachments[c.Body] = c
		return nil
	case *command.Detach:
		if _, ok := e.attachments[c.Body]; !ok {
			return &ExecutionError{
				Command: cmd,
				Reason:  fmt.Sprintf("body %s is not attached", c.Body),
			}
		}
		delete(e.attachments, c.Body)
		return nil
	case *command.Clean:
		return e.sim.MarkClean(ctx, c.Body)
	case *command.Cook:
		return e.sim.MarkCooked(ctx, c.Body)
	default:
		return &ExecutionError{Command: cmd, Reason: "unknown command type"}
	}
}

// followTrajectory steps the simulator through the path. The first
// configuration is assumed already reached, so replay starts from the
// second entry. After each configuration every attached body is snapped
// to its carrier link, then the simulator syncs and ticks once.
func (e *Executor) followTrajectory(ctx context.Context, c *command.Trajectory) error {
	if len(c.Path.Path) == 0 {
		return &ExecutionError{Command: c, Reason: "empty trajectory"}
	}
	for _, conf := range c.Path.Path[1:] {
		if err := e.sim.ApplyConf(ctx, conf); err != nil {
			return err
		}
		if err := e.updateAttachments(ctx); err != nil {
			return err
		}
		if err := e.sim.Sync(ctx); err != nil {
			return err
		}
		if err := e.sim.Step(ctx); err != nil {
			return err
		}
		e.hooks.EmitStep()
		if e.gate != nil {
			if err := e.gate(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// updateAttachments recomputes each carried body's pose from its carrier
// link and grasp offset, in a deterministic body order.
func (e *Executor) updateAttachments(ctx context.Context) error {
	for _, body := range e.Attached() {
		att := e.attachments[body]
		link, err := e.sim.LinkPose(ctx, att.Robot, att.Link)
		if err != nil {
			return err
		}
		if err := e.sim.SetBodyPose(ctx, body, link.Compose(att.Grasp.Offset)); err != nil {
			return err
		}
	}
	return nil
}
