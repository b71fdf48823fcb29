package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/scenario"
	"github.com/aretw0/gantry/pkg/streams"
)

// Geometry constants for the naive samplers. The gripper offset mirrors
// the link registered by FromScenario, so a grasp held at the gripper
// pose puts the body back at a plausible carry height.
const (
	graspDepth    = 0.1  // body origin below the gripper frame
	surfaceTop    = 0.75 // placement height above a surface origin
	baseStandoff  = 0.6  // base distance behind a manipulation target
	motionSteps   = 4    // interpolated confs between two base poses
	placementRing = 0.15 // spread between successive placement candidates
)

// Samplers builds the scenario sampler set over an in-memory world.
// They are purely kinematic: every grasp succeeds, every base pose is
// reachable, and trajectories interpolate straight lines.
func Samplers(sim *Simulator, sc *scenario.Scenario) scenario.Samplers {
	return scenario.Samplers{
		Motion:  motionSampler(sc.Robot),
		Grasp:   graspSampler(),
		Support: supportSampler(sim),
		IKIR:    ikirSampler(sc.Robot),
	}
}

// motionSampler connects two base configurations with a linearly
// interpolated trajectory. The path starts at the first input conf and
// ends at the second, so replay can skip the already-reached start.
func motionSampler(robot motion.BodyID) streams.Fn {
	return func(_ context.Context, in []domain.Object) ([]domain.Object, error) {
		q1, err := confArg(in, 0)
		if err != nil {
			return nil, err
		}
		q2, err := confArg(in, 1)
		if err != nil {
			return nil, err
		}
		if q1.Pose == nil || q2.Pose == nil {
			// Joint-space motion has no base path to interpolate.
			return []domain.Object{motion.NewTrajectory(q1, q2)}, nil
		}
		path := []*motion.Conf{q1}
		for i := 1; i <= motionSteps; i++ {
			f := float64(i) / float64(motionSteps+1)
			p := motion.Point{
				q1.Pose.Point[0] + f*(q2.Pose.Point[0]-q1.Pose.Point[0]),
				q1.Pose.Point[1] + f*(q2.Pose.Point[1]-q1.Pose.Point[1]),
				q1.Pose.Point[2] + f*(q2.Pose.Point[2]-q1.Pose.Point[2]),
			}
			path = append(path, motion.NewBaseConf(robot, motion.NewPose(robot, p, q2.Pose.Quat)))
		}
		path = append(path, q2)
		return []domain.Object{motion.NewTrajectory(path...)}, nil
	}
}

// graspSampler enumerates a single top grasp per body.
func graspSampler() streams.List {
	return func(_ context.Context, in []domain.Object) ([][]domain.Object, error) {
		body, err := bodyArg(in, 0)
		if err != nil {
			return nil, err
		}
		offset := motion.NewPose(body.Body, motion.Point{0, 0, -graspDepth}, motion.QuatIdentity)
		return [][]domain.Object{{motion.NewGrasp(body.Body, offset)}}, nil
	}
}

// supportSampler lazily produces placement poses on a surface, fanning
// candidates out around the surface origin.
func supportSampler(sim *Simulator) streams.Gen {
	return func(ctx context.Context, in []domain.Object) streams.Generator {
		return &supportGen{sim: sim, in: in}
	}
}

type supportGen struct {
	sim *Simulator
	in  []domain.Object
	i   int
}

func (g *supportGen) Next(ctx context.Context) ([]domain.Object, bool, error) {
	body, err := bodyArg(g.in, 0)
	if err != nil {
		return nil, false, err
	}
	surface, err := bodyArg(g.in, 1)
	if err != nil {
		return nil, false, err
	}
	base, err := g.sim.BodyPose(ctx, surface.Body)
	if err != nil {
		return nil, false, err
	}
	dx, dy := ringOffset(g.i)
	g.i++
	p := motion.NewPose(body.Body, motion.Point{
		base.Point[0] + dx,
		base.Point[1] + dy,
		base.Point[2] + surfaceTop,
	}, motion.QuatIdentity)
	return []domain.Object{p}, true, nil
}

// ringOffset spreads the i-th candidate on a small deterministic grid.
func ringOffset(i int) (dx, dy float64) {
	if i == 0 {
		return 0, 0
	}
	step := (i-1)/4 + 1
	switch (i - 1) % 4 {
	case 0:
		return placementRing * float64(step), 0
	case 1:
		return -placementRing * float64(step), 0
	case 2:
		return 0, placementRing * float64(step)
	default:
		return 0, -placementRing * float64(step)
	}
}

// ikirSampler yields (base conf, arm trajectory) pairs for manipulating
// a body at a pose. The base stands off behind the target; the arm
// trajectory is a short reach in joint space.
func ikirSampler(robot motion.BodyID) streams.Gen {
	return func(ctx context.Context, in []domain.Object) streams.Generator {
		return &ikirGen{robot: robot, in: in}
	}
}

type ikirGen struct {
	robot motion.BodyID
	in    []domain.Object
	i     int
}

// Standoff directions tried in order: behind, ahead, left, right.
var standoffs = [][2]float64{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}

func (g *ikirGen) Next(ctx context.Context) ([]domain.Object, bool, error) {
	if g.i >= len(standoffs) {
		return nil, false, nil
	}
	target, err := poseArg(g.in, 2)
	if err != nil {
		return nil, false, err
	}
	dir := standoffs[g.i]
	g.i++
	base := motion.NewPose(g.robot, motion.Point{
		target.Point[0] + dir[0]*baseStandoff,
		target.Point[1] + dir[1]*baseStandoff,
		0,
	}, motion.QuatIdentity)
	q := motion.NewBaseConf(g.robot, base)
	reach := motion.NewTrajectory(
		motion.NewJointConf(g.robot, 0),
		motion.NewJointConf(g.robot, 0.5),
		motion.NewJointConf(g.robot, 1),
	)
	return []domain.Object{q, reach}, true, nil
}

func confArg(in []domain.Object, i int) (*motion.Conf, error) {
	if i >= len(in) {
		return nil, fmt.Errorf("missing input %d", i)
	}
	q, ok := in[i].(*motion.Conf)
	if !ok {
		return nil, fmt.Errorf("input %d: want configuration, got %T", i, in[i])
	}
	return q, nil
}

func poseArg(in []domain.Object, i int) (*motion.Pose, error) {
	if i >= len(in) {
		return nil, fmt.Errorf("missing input %d", i)
	}
	p, ok := in[i].(*motion.Pose)
	if !ok {
		return nil, fmt.Errorf("input %d: want pose, got %T", i, in[i])
	}
	return p, nil
}

// bodyArg resolves a body-valued input to a motion body handle.
type bodyHandle struct {
	Body motion.BodyID
}

func bodyArg(in []domain.Object, i int) (bodyHandle, error) {
	if i >= len(in) {
		return bodyHandle{}, fmt.Errorf("missing input %d", i)
	}
	return bodyHandle{Body: motion.BodyID(in[i].Name())}, nil
}
