// Package scenario describes concrete planning worlds: the robot, its
// arms, the movable bodies and surfaces, the declarative goal, and the
// samplers backing each stream. A scenario plus a simulator snapshot is
// everything the problem compiler needs.
package scenario

import (
	"fmt"

	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/streams"
)

// HoldingGoal asks for an arm to end up holding a body.
type HoldingGoal struct {
	Arm  string
	Body motion.BodyID
}

// OnGoal asks for a body to end up supported by a surface.
type OnGoal struct {
	Body    motion.BodyID
	Surface motion.BodyID
}

// Goal is the structured goal specification of a scenario.
type Goal struct {
	// BaseConf, if set, is the required final base configuration.
	BaseConf *motion.Conf
	Holding  []HoldingGoal
	On       []OnGoal
	Cleaned  []motion.BodyID
	Cooked   []motion.BodyID
}

// Samplers are the external generators backing the scenario's streams,
// one per stream shape the fixed stream set uses.
type Samplers struct {
	// Motion connects two base configurations with a trajectory, or
	// yields nothing.
	Motion streams.Fn
	// Grasp eagerly enumerates grasp candidates for a body.
	Grasp streams.List
	// Support lazily produces stable placement poses on a surface.
	Support streams.Gen
	// IKIR lazily produces (base conf, arm trajectory) pairs satisfying
	// inverse kinematics and reachability.
	IKIR streams.Gen
}

// Scenario is one concrete planning world.
type Scenario struct {
	Name     string
	Robot    motion.BodyID
	Arms     []string
	ArmLinks map[string]string
	Movable  []motion.BodyID
	Surfaces []motion.BodyID
	Sinks    []motion.BodyID
	Stoves   []motion.BodyID

	// InitialPoses seeds kinematic simulators; physics backends that
	// load their own scene may ignore it.
	InitialPoses map[motion.BodyID]*motion.Pose

	Goal     Goal
	Samplers Samplers
}

// Validate checks internal consistency: arms have links, and goal
// references stay within the declared bodies. Goal typing against the
// compiled initial atoms is re-checked by the problem compiler.
func (s *Scenario) Validate() error {
	if s.Robot == "" {
		return fmt.Errorf("scenario %s: no robot", s.Name)
	}
	if len(s.Arms) == 0 {
		return fmt.Errorf("scenario %s: no arms", s.Name)
	}
	for _, arm := range s.Arms {
		if _, ok := s.ArmLinks[arm]; !ok {
			return fmt.Errorf("scenario %s: arm %s has no gripper link", s.Name, arm)
		}
	}
	movable := make(map[motion.BodyID]bool, len(s.Movable))
	for _, b := range s.Movable {
		movable[b] = true
	}
	surfaces := make(map[motion.BodyID]bool, len(s.Surfaces))
	for _, b := range s.Surfaces {
		surfaces[b] = true
	}
	for _, h := range s.Goal.Holding {
		if !movable[h.Body] {
			return fmt.Errorf("scenario %s: holding goal references non-movable %s", s.Name, h.Body)
		}
	}
	for _, on := range s.Goal.On {
		if !movable[on.Body] {
			return fmt.Errorf("scenario %s: on goal references non-movable %s", s.Name, on.Body)
		}
		if !surfaces[on.Surface] {
			return fmt.Errorf("scenario %s: on goal references unknown surface %s", s.Name, on.Surface)
		}
	}
	for _, b := range s.Goal.Cleaned {
		if !movable[b] {
			return fmt.Errorf("scenario %s: cleaned goal references non-movable %s", s.Name, b)
		}
	}
	for _, b := range s.Goal.Cooked {
		if !movable[b] {
			return fmt.Errorf("scenario %s: cooked goal references non-movable %s", s.Name, b)
		}
	}
	return nil
}
