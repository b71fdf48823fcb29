package compiler

import (
	"fmt"

	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/scenario"
)

// PlanCompilationError reports an action name with no entry in the plan
// compiler's table. It is fatal: no command is emitted, since it marks a
// mismatch between the domain's action set and this compiler.
type PlanCompilationError struct {
	Action string
}

func (e *PlanCompilationError) Error() string {
	return fmt.Sprintf("plan compilation: no command mapping for action %q", e.Action)
}

// PlanCompiler deterministically maps each grounded step of a solved
// plan to one or more commands via an exhaustive table over the closed
// action set.
type PlanCompiler struct {
	robot motion.BodyID
	links map[string]string
}

// NewPlanCompiler checks, at construction time, that every action in the
// model has a command mapping.
func NewPlanCompiler(model *domain.Model, sc *scenario.Scenario) (*PlanCompiler, error) {
	for _, name := range model.ActionNames() {
		switch name {
		case domain.ActionPick, domain.ActionPlace, domain.ActionMove,
			domain.ActionClean, domain.ActionCook:
		default:
			return nil, &PlanCompilationError{Action: string(name)}
		}
	}
	return &PlanCompiler{robot: sc.Robot, links: sc.ArmLinks}, nil
}

// Compile is pure: the same plan always yields an identical command
// sequence. It fails before emitting anything if any step's action is
// outside the table.
func (pc *PlanCompiler) Compile(plan []domain.Step) ([]command.Command, error) {
	for _, step := range plan {
		switch step.Action {
		case domain.ActionPick, domain.ActionPlace, domain.ActionMove,
			domain.ActionClean, domain.ActionCook:
		default:
			return nil, &PlanCompilationError{Action: string(step.Action)}
		}
	}

	var commands []command.Command
	for _, step := range plan {
		next, err := pc.compileStep(step)
		if err != nil {
			return nil, err
		}
		commands = append(commands, next...)
	}
	return commands, nil
}

func (pc *PlanCompiler) compileStep(step domain.Step) ([]command.Command, error) {
	switch step.Action {
	case domain.ActionMove:
		// move(q, q2, bt): emit the base trajectory as-is.
		t, err := trajArg(step, 2)
		if err != nil {
			return nil, err
		}
		return []command.Command{command.NewTrajectory(t)}, nil

	case domain.ActionPick:
		// pick(a, o, p, g, q, at): approach, grab, retreat.
		arm, body, grasp, t, err := pc.manipArgs(step)
		if err != nil {
			return nil, err
		}
		approach := command.NewTrajectory(t)
		attach := &command.Attach{
			Robot: pc.robot,
			Arm:   arm,
			Link:  pc.links[arm],
			Grasp: grasp,
			Body:  body,
		}
		return []command.Command{approach, attach, approach.Reverse()}, nil

	case domain.ActionPlace:
		// place(a, o, p, g, q, at): approach, release, retreat.
		arm, body, _, t, err := pc.manipArgs(step)
		if err != nil {
			return nil, err
		}
		approach := command.NewTrajectory(t)
		detach := &command.Detach{Robot: pc.robot, Arm: arm, Body: body}
		return []command.Command{approach, detach, approach.Reverse()}, nil

	case domain.ActionClean:
		body, err := bodyArg(step, 0)
		if err != nil {
			return nil, err
		}
		return []command.Command{&command.Clean{Body: body}}, nil

	case domain.ActionCook:
		body, err := bodyArg(step, 0)
		if err != nil {
			return nil, err
		}
		return []command.Command{&command.Cook{Body: body}}, nil
	}
	return nil, &PlanCompilationError{Action: string(step.Action)}
}

// manipArgs destructures the shared pick/place argument tuple.
func (pc *PlanCompiler) manipArgs(step domain.Step) (arm string, body motion.BodyID, grasp *motion.Grasp, t *motion.Trajectory, err error) {
	if len(step.Args) != 6 {
		return "", "", nil, nil, fmt.Errorf("step %s: want 6 arguments, got %d", step, len(step.Args))
	}
	arm = step.Args[0].Name()
	body = motion.BodyID(step.Args[1].Name())
	grasp, ok := step.Args[3].(*motion.Grasp)
	if !ok {
		return "", "", nil, nil, fmt.Errorf("step %s: argument 3 is not a grasp", step)
	}
	t, err = trajArg(step, 5)
	return arm, body, grasp, t, err
}

func trajArg(step domain.Step, i int) (*motion.Trajectory, error) {
	if i >= len(step.Args) {
		return nil, fmt.Errorf("step %s: missing argument %d", step, i)
	}
	t, ok := step.Args[i].(*motion.Trajectory)
	if !ok {
		return nil, fmt.Errorf("step %s: argument %d is not a trajectory", step, i)
	}
	return t, nil
}

func bodyArg(step domain.Step, i int) (motion.BodyID, error) {
	if i >= len(step.Args) {
		return "", fmt.Errorf("step %s: missing argument %d", step, i)
	}
	return motion.BodyID(step.Args[i].Name()), nil
}
