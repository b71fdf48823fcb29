package scenario

import (
	"fmt"
	"sort"

	"github.com/aretw0/gantry/pkg/motion"
)

// Canonical body names shared by the builtin worlds.
const (
	RobotPR2 motion.BodyID = "pr2"
	Table    motion.BodyID = "table"
	Sink     motion.BodyID = "sink"
	Stove    motion.BodyID = "stove"
	Celery   motion.BodyID = "celery"
	Radish   motion.BodyID = "radish"
)

// GripperLink is the tool link carrying grasped bodies on the builtin
// robot.
const GripperLink = "l_gripper_tool_frame"

func kitchen(name string) *Scenario {
	return &Scenario{
		Name:     name,
		Robot:    RobotPR2,
		Arms:     []string{"left"},
		ArmLinks: map[string]string{"left": GripperLink},
		Movable:  []motion.BodyID{Celery, Radish},
		Surfaces: []motion.BodyID{Table, Sink, Stove},
		Sinks:    []motion.BodyID{Sink},
		Stoves:   []motion.BodyID{Stove},
		InitialPoses: map[motion.BodyID]*motion.Pose{
			RobotPR2: motion.NewPose(RobotPR2, motion.Point{0, -1.2, 0}, motion.QuatIdentity),
			Table:    motion.NewPose(Table, motion.Point{0, 0, 0}, motion.QuatIdentity),
			Sink:     motion.NewPose(Sink, motion.Point{2, 0, 0}, motion.QuatIdentity),
			Stove:    motion.NewPose(Stove, motion.Point{-2, 0, 0}, motion.QuatIdentity),
			Celery:   motion.NewPose(Celery, motion.Point{0, 0.4, 0.75}, motion.QuatIdentity),
			Radish:   motion.NewPose(Radish, motion.Point{0, -0.4, 0.75}, motion.QuatIdentity),
		},
	}
}

// Holding is a world whose goal is to hold the celery in the left
// gripper.
func Holding() *Scenario {
	s := kitchen("holding")
	s.Goal = Goal{Holding: []HoldingGoal{{Arm: "left", Body: Celery}}}
	return s
}

// Stacking is a world whose goal rearranges the movable bodies onto new
// surfaces.
func Stacking() *Scenario {
	s := kitchen("stacking")
	s.Goal = Goal{On: []OnGoal{
		{Body: Celery, Surface: Sink},
		{Body: Radish, Surface: Stove},
	}}
	return s
}

// Cleaning is a world whose goal is a cleaned celery, which requires
// placing it in the sink first.
func Cleaning() *Scenario {
	s := kitchen("cleaning")
	s.Goal = Goal{Cleaned: []motion.BodyID{Celery}}
	return s
}

// Cooking is a world whose goal is a cooked celery: washed in the sink,
// then moved to the stove.
func Cooking() *Scenario {
	s := kitchen("cooking")
	s.Goal = Goal{Cooked: []motion.BodyID{Celery}}
	return s
}

var builtins = map[string]func() *Scenario{
	"holding":  Holding,
	"stacking": Stacking,
	"cleaning": Cleaning,
	"cooking":  Cooking,
}

// Builtin returns a builtin world by name.
func Builtin(name string) (*Scenario, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, BuiltinNames())
	}
	return fn(), nil
}

// BuiltinNames lists the builtin worlds in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
