package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/pkg/adapters/memory"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/scenario"
)

func kitchenWorld(t *testing.T) (*scenario.Scenario, *memory.Simulator) {
	t.Helper()
	sc, err := scenario.Builtin("cleaning")
	require.NoError(t, err)
	sim, err := memory.FromScenario(sc)
	require.NoError(t, err)
	return sc, sim
}

func TestFromScenario(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)

	pose, err := sim.BodyPose(ctx, sc.Robot)
	require.NoError(t, err)
	assert.Equal(t, sc.InitialPoses[sc.Robot].Point, pose.Point)

	link, err := sim.LinkPose(ctx, sc.Robot, scenario.GripperLink)
	require.NoError(t, err)
	assert.Equal(t, motion.Point{0.4, -1.2, 0.9}, link.Point)

	t.Run("no poses", func(t *testing.T) {
		_, err := memory.FromScenario(&scenario.Scenario{Name: "empty"})
		require.Error(t, err)
	})

	t.Run("robot pose required", func(t *testing.T) {
		bare := &scenario.Scenario{
			Name:  "bare",
			Robot: "pr2",
			InitialPoses: map[motion.BodyID]*motion.Pose{
				"table": motion.NewPose("table", motion.Point{}, motion.QuatIdentity),
			},
		}
		_, err := memory.FromScenario(bare)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no initial pose for robot")
	})
}

func TestSimulatorApplyConf(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)

	target := motion.NewPose(sc.Robot, motion.Point{1, 1, 0}, motion.QuatIdentity)
	require.NoError(t, sim.ApplyConf(ctx, motion.NewBaseConf(sc.Robot, target)))

	pose, err := sim.BodyPose(ctx, sc.Robot)
	require.NoError(t, err)
	assert.Equal(t, motion.Point{1, 1, 0}, pose.Point)

	// joint confs leave the base pose alone
	require.NoError(t, sim.ApplyConf(ctx, motion.NewJointConf(sc.Robot, 0.5)))
	pose, err = sim.BodyPose(ctx, sc.Robot)
	require.NoError(t, err)
	assert.Equal(t, motion.Point{1, 1, 0}, pose.Point)

	t.Run("unknown body", func(t *testing.T) {
		err := sim.ApplyConf(ctx, motion.NewJointConf("ghost", 0))
		require.Error(t, err)
	})
}

func TestSimulatorMarks(t *testing.T) {
	ctx := context.Background()
	_, sim := kitchenWorld(t)

	assert.False(t, sim.Cleaned(scenario.Celery))
	require.NoError(t, sim.MarkClean(ctx, scenario.Celery))
	require.NoError(t, sim.MarkCooked(ctx, scenario.Radish))
	assert.True(t, sim.Cleaned(scenario.Celery))
	assert.True(t, sim.Cooked(scenario.Radish))
	assert.False(t, sim.Cooked(scenario.Celery))
}

func TestMotionSampler(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)
	samplers := memory.Samplers(sim, sc)

	q1 := motion.NewBaseConf(sc.Robot, motion.NewPose(sc.Robot, motion.Point{0, 0, 0}, motion.QuatIdentity))
	q2 := motion.NewBaseConf(sc.Robot, motion.NewPose(sc.Robot, motion.Point{2, 0, 0}, motion.QuatIdentity))

	out, err := samplers.Motion(ctx, []domain.Object{q1, q2})
	require.NoError(t, err)
	require.Len(t, out, 1)

	traj, ok := out[0].(*motion.Trajectory)
	require.True(t, ok)
	require.GreaterOrEqual(t, len(traj.Path), 2)
	assert.Same(t, q1, traj.Path[0], "path starts at the input conf")
	assert.Same(t, q2, traj.Path[len(traj.Path)-1])

	// intermediate confs interpolate monotonically in x
	prev := 0.0
	for _, q := range traj.Path[1:] {
		require.NotNil(t, q.Pose)
		assert.Greater(t, q.Pose.Point[0], prev)
		prev = q.Pose.Point[0]
	}
}

func TestGraspSampler(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)
	samplers := memory.Samplers(sim, sc)

	tuples, err := samplers.Grasp(ctx, []domain.Object{domain.Sym("celery", domain.KindBody)})
	require.NoError(t, err)
	require.Len(t, tuples, 1)

	g, ok := tuples[0][0].(*motion.Grasp)
	require.True(t, ok)
	assert.Equal(t, scenario.Celery, g.Body)
	assert.Negative(t, g.Offset.Point[2], "body hangs below the gripper frame")
}

func TestSupportSampler(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)
	samplers := memory.Samplers(sim, sc)

	gen := samplers.Support(ctx, []domain.Object{
		domain.Sym("celery", domain.KindBody),
		domain.Sym("sink", domain.KindBody),
	})

	seen := make(map[motion.Point]bool)
	for i := 0; i < 3; i++ {
		out, ok, err := gen.Next(ctx)
		require.NoError(t, err)
		require.True(t, ok, "support generator never exhausts")
		p, isPose := out[0].(*motion.Pose)
		require.True(t, isPose)
		assert.Equal(t, scenario.Celery, p.Body)
		assert.InDelta(t, 0.75, p.Point[2], 1e-9, "placement sits on the surface top")
		assert.False(t, seen[p.Point], "candidates fan out to distinct spots")
		seen[p.Point] = true
	}
}

func TestIKIRSampler(t *testing.T) {
	ctx := context.Background()
	sc, sim := kitchenWorld(t)
	samplers := memory.Samplers(sim, sc)

	target := motion.NewPose(scenario.Celery, motion.Point{0, 0.4, 0.75}, motion.QuatIdentity)
	grasp := motion.NewGrasp(scenario.Celery, motion.NewPose(scenario.Celery, motion.Point{0, 0, -0.1}, motion.QuatIdentity))
	gen := samplers.IKIR(ctx, []domain.Object{
		domain.Sym("left", domain.KindArm),
		domain.Sym("celery", domain.KindBody),
		target,
		grasp,
	})

	count := 0
	for {
		out, ok, err := gen.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		count++
		require.Len(t, out, 2)
		q, isConf := out[0].(*motion.Conf)
		require.True(t, isConf)
		require.NotNil(t, q.Pose)
		assert.Zero(t, q.Pose.Point[2], "base stays on the floor")
		_, isTraj := out[1].(*motion.Trajectory)
		assert.True(t, isTraj)
	}
	assert.Equal(t, 4, count, "one candidate per standoff direction")
}
