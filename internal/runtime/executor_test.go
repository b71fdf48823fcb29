package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/internal/runtime"
	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/observability"
)

const (
	robot   motion.BodyID = "pr2"
	crate   motion.BodyID = "crate"
	gripper               = "l_gripper_tool_frame"
)

func newWorld(t *testing.T) *memory.Simulator {
	t.Helper()
	sim := memory.NewSimulator()
	sim.AddBody(robot, motion.NewPose(robot, motion.Point{0, 0, 0}, motion.QuatIdentity))
	sim.AddBody(crate, motion.NewPose(crate, motion.Point{1, 0, 0.75}, motion.QuatIdentity))
	sim.AddLink(robot, gripper, motion.NewPose(robot, motion.Point{0.4, 0, 0.9}, motion.QuatIdentity))
	return sim
}

func basePath(points ...motion.Point) *motion.Trajectory {
	confs := make([]*motion.Conf, len(points))
	for i, p := range points {
		confs[i] = motion.NewBaseConf(robot, motion.NewPose(robot, p, motion.QuatIdentity))
	}
	return motion.NewTrajectory(confs...)
}

func TestReplayTrajectory(t *testing.T) {
	sim := newWorld(t)
	exec := runtime.NewExecutor(sim)

	traj := basePath(
		motion.Point{0, 0, 0},
		motion.Point{0.5, 0, 0},
		motion.Point{1, 0, 0},
	)
	err := exec.Replay(context.Background(), []command.Command{command.NewTrajectory(traj)})
	require.NoError(t, err)

	// the first configuration is already reached, so two steps remain
	assert.Equal(t, 2, sim.Ticks())

	pose, err := sim.BodyPose(context.Background(), robot)
	require.NoError(t, err)
	assert.Equal(t, motion.Point{1, 0, 0}, pose.Point)
}

func TestReplayAttachmentFollowsCarrier(t *testing.T) {
	ctx := context.Background()
	sim := newWorld(t)
	exec := runtime.NewExecutor(sim)

	grasp := motion.NewGrasp(crate, motion.NewPose(crate, motion.Point{0, 0, -0.1}, motion.QuatIdentity))
	attach := &command.Attach{Robot: robot, Arm: "left", Link: gripper, Grasp: grasp, Body: crate}
	carry := basePath(motion.Point{0, 0, 0}, motion.Point{2, 0, 0})

	err := exec.Replay(ctx, []command.Command{attach, command.NewTrajectory(carry)})
	require.NoError(t, err)
	assert.Equal(t, []motion.BodyID{crate}, exec.Attached())

	// crate pose = gripper link pose composed with the grasp offset
	link, err := sim.LinkPose(ctx, robot, gripper)
	require.NoError(t, err)
	got, err := sim.BodyPose(ctx, crate)
	require.NoError(t, err)
	assert.True(t, got.ApproxEqual(link.Compose(grasp.Offset), 1e-9))
	assert.Equal(t, motion.Point{2.4, 0, 0.8}, got.Point)

	// after a detach the crate stays where it was released
	err = exec.Replay(ctx, []command.Command{
		&command.Detach{Robot: robot, Arm: "left", Body: crate},
		command.NewTrajectory(basePath(motion.Point{2, 0, 0}, motion.Point{0, 0, 0})),
	})
	require.NoError(t, err)
	assert.Empty(t, exec.Attached())

	after, err := sim.BodyPose(ctx, crate)
	require.NoError(t, err)
	assert.Equal(t, got.Point, after.Point)
}

func TestReplayErrors(t *testing.T) {
	ctx := context.Background()
	grasp := motion.NewGrasp(crate, motion.NewPose(crate, motion.Point{0, 0, -0.1}, motion.QuatIdentity))
	attach := func() *command.Attach {
		return &command.Attach{Robot: robot, Arm: "left", Link: gripper, Grasp: grasp, Body: crate}
	}

	t.Run("attach twice", func(t *testing.T) {
		exec := runtime.NewExecutor(newWorld(t))
		err := exec.Replay(ctx, []command.Command{attach(), attach()})
		var xerr *runtime.ExecutionError
		require.ErrorAs(t, err, &xerr)
		assert.Contains(t, xerr.Reason, "already attached")
	})

	t.Run("detach unattached", func(t *testing.T) {
		exec := runtime.NewExecutor(newWorld(t))
		err := exec.Replay(ctx, []command.Command{&command.Detach{Robot: robot, Arm: "left", Body: crate}})
		var xerr *runtime.ExecutionError
		require.ErrorAs(t, err, &xerr)
		assert.Contains(t, xerr.Reason, "not attached")
	})

	t.Run("empty trajectory", func(t *testing.T) {
		exec := runtime.NewExecutor(newWorld(t))
		err := exec.Replay(ctx, []command.Command{command.NewTrajectory(motion.NewTrajectory())})
		var xerr *runtime.ExecutionError
		require.ErrorAs(t, err, &xerr)
		assert.Contains(t, xerr.Reason, "empty trajectory")
	})
}

func TestReplayCleanAndCook(t *testing.T) {
	ctx := context.Background()
	sim := newWorld(t)
	exec := runtime.NewExecutor(sim)

	err := exec.Replay(ctx, []command.Command{
		&command.Clean{Body: crate},
		&command.Cook{Body: crate},
	})
	require.NoError(t, err)
	assert.True(t, sim.Cleaned(crate))
	assert.True(t, sim.Cooked(crate))
}

func TestReplayStepGate(t *testing.T) {
	sim := newWorld(t)
	stop := errors.New("stop requested")
	steps := 0
	exec := runtime.NewExecutor(sim, runtime.WithStepGate(func(context.Context) error {
		steps++
		if steps == 2 {
			return stop
		}
		return nil
	}))

	traj := basePath(
		motion.Point{0, 0, 0},
		motion.Point{1, 0, 0},
		motion.Point{2, 0, 0},
		motion.Point{3, 0, 0},
	)
	err := exec.Replay(context.Background(), []command.Command{command.NewTrajectory(traj)})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, sim.Ticks(), "replay halts at the gate")
}

func TestReplayContextCancel(t *testing.T) {
	sim := newWorld(t)
	exec := runtime.NewExecutor(sim)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := exec.Replay(ctx, []command.Command{&command.Clean{Body: crate}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, sim.Cleaned(crate))
}

func TestReplayEmitsHooks(t *testing.T) {
	sim := newWorld(t)
	var commands, steps int
	hooks := &observability.Hooks{
		OnCommand: func(observability.CommandEvent) { commands++ },
		OnStep:    func() { steps++ },
	}
	exec := runtime.NewExecutor(sim, runtime.WithHooks(hooks))

	traj := basePath(motion.Point{0, 0, 0}, motion.Point{1, 0, 0})
	err := exec.Replay(context.Background(), []command.Command{
		command.NewTrajectory(traj),
		&command.Clean{Body: crate},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, commands)
	assert.Equal(t, 1, steps)
}
