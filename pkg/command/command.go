// Package command defines the vocabulary of concrete simulator
// directives a solved plan compiles into. The set is closed: the
// executor rejects any other command type with an ExecutionError.
package command

import (
	"fmt"

	"github.com/aretw0/gantry/pkg/motion"
)

// Command is one time-ordered simulator directive.
type Command interface {
	fmt.Stringer
	command()
}

// Trajectory replays a configuration sequence, one simulation tick per
// configuration after the first (already-reached) entry.
type Trajectory struct {
	Path *motion.Trajectory
}

// NewTrajectory wraps a motion trajectory as a replay command.
func NewTrajectory(t *motion.Trajectory) *Trajectory {
	return &Trajectory{Path: t}
}

// Reverse returns a command replaying the time-reversed path.
func (t *Trajectory) Reverse() *Trajectory {
	return &Trajectory{Path: t.Path.Reverse()}
}

func (*Trajectory) command() {}

func (t *Trajectory) String() string {
	return fmt.Sprintf("trajectory(%s, %d confs)", t.Path.Name(), len(t.Path.Path))
}

// Attach records that a body is now rigidly carried by a robot arm
// through a grasp. While attached, the body follows the carrier on every
// trajectory step.
type Attach struct {
	Robot motion.BodyID
	Arm   string
	Link  string
	Grasp *motion.Grasp
	Body  motion.BodyID
}

func (*Attach) command() {}

func (a *Attach) String() string {
	return fmt.Sprintf("attach(%s, %s, %s)", a.Arm, a.Grasp.Name(), a.Body)
}

// Detach releases a carried body.
type Detach struct {
	Robot motion.BodyID
	Arm   string
	Body  motion.BodyID
}

func (*Detach) command() {}

func (d *Detach) String() string {
	return fmt.Sprintf("detach(%s, %s)", d.Arm, d.Body)
}

// Clean marks a body as cleaned in a single one-shot step.
type Clean struct {
	Body motion.BodyID
}

func (*Clean) command() {}

func (c *Clean) String() string { return fmt.Sprintf("clean(%s)", c.Body) }

// Cook marks a body as cooked in a single one-shot step.
type Cook struct {
	Body motion.BodyID
}

func (*Cook) command() {}

func (c *Cook) String() string { return fmt.Sprintf("cook(%s)", c.Body) }
