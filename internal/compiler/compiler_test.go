package compiler_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/internal/compiler"
	"github.com/aretw0/gantry/internal/testutils"
	"github.com/aretw0/gantry/pkg/command"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/scenario"
)

func TestVocabularyModel(t *testing.T) {
	v := compiler.NewVocabulary()
	m, err := v.Model()
	require.NoError(t, err)
	assert.Len(t, m.ActionNames(), 5)
	assert.Same(t, v.TotalCost, m.Cost)
}

func TestProblemCompile(t *testing.T) {
	sc, sim := testutils.World(t, "cooking")
	c := compiler.NewProblemCompiler()

	p, reg, err := c.Compile(context.Background(), sim, sc)
	require.NoError(t, err)

	v := c.Vocabulary()
	left := domain.Sym("left", domain.KindArm)
	celery := domain.Sym("celery", domain.KindBody)
	sink := domain.Sym("sink", domain.KindBody)
	stove := domain.Sym("stove", domain.KindBody)

	assert.True(t, p.Initial.Holds(v.CanMove.Atom()))
	assert.True(t, p.Initial.Holds(v.IsArm.Atom(left)))
	assert.True(t, p.Initial.Holds(v.HandEmpty.Atom(left)))
	assert.True(t, p.Initial.Holds(v.IsMovable.Atom(celery)))
	assert.True(t, p.Initial.Holds(v.Stackable.Atom(celery, sink)))
	assert.True(t, p.Initial.Holds(v.Washer.Atom(sink)))
	assert.True(t, p.Initial.Holds(v.Stove.Atom(stove)))

	require.Len(t, p.Goal, 1)
	assert.Equal(t, "cooked", p.Goal[0].Atom.Pred.Name())
	assert.False(t, p.Goal[0].Negated)

	require.Len(t, reg.Streams(), 4)
	for _, name := range []string{
		compiler.StreamMotion, compiler.StreamGrasp,
		compiler.StreamSupport, compiler.StreamIKIR,
	} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, "stream %s not registered", name)
	}
}

func TestProblemCompileGoalTyping(t *testing.T) {
	sc, sim := testutils.World(t, "holding")
	sc.Goal.Holding[0].Arm = "right"

	_, _, err := compiler.NewProblemCompiler().Compile(context.Background(), sim, sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "untyped in the initial atoms")
}

func TestProblemCompileMissingSamplers(t *testing.T) {
	sc, sim := testutils.World(t, "holding")
	sc.Samplers.Support = nil

	_, _, err := compiler.NewProblemCompiler().Compile(context.Background(), sim, sc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing stream samplers")
}

func TestNominalPlannerCleaning(t *testing.T) {
	sc, sim := testutils.World(t, "cleaning")
	c := compiler.NewProblemCompiler()
	p, reg, err := c.Compile(context.Background(), sim, sc)
	require.NoError(t, err)

	plan, certified, err := compiler.NominalPlanner(sc)(context.Background(), p, reg)
	require.NoError(t, err)
	require.NotEmpty(t, certified)

	var actions []domain.ActionName
	for _, step := range plan {
		actions = append(actions, step.Action)
	}
	assert.Equal(t, []domain.ActionName{
		domain.ActionMove, domain.ActionPick,
		domain.ActionMove, domain.ActionPlace,
		domain.ActionClean,
	}, actions)

	// the certified atoms plus the initial state must admit the plan
	state := p.Initial.Clone()
	for _, a := range certified {
		require.NoError(t, state.Add(a))
	}
	final, err := p.Model.ApplyPlan(state, plan)
	require.NoError(t, err)
	assert.True(t, p.GoalSatisfied(final))
	assert.Equal(t, 4.0, final.Fluent(p.Objective))
}

// TestCleaningPlanSemantics applies a hand-built pick/move/place/clean
// plan at the model level: the robot starts at the picking conf, so only
// three physical actions are needed.
func TestCleaningPlanSemantics(t *testing.T) {
	v := compiler.NewVocabulary()
	m, err := v.Model()
	require.NoError(t, err)

	left := domain.Sym("left", domain.KindArm)
	celery := domain.Sym("celery", domain.KindBody)
	sink := domain.Sym("sink", domain.KindBody)
	p0, p1 := domain.Sym("p0", domain.KindPose), domain.Sym("p1", domain.KindPose)
	g := domain.Sym("g1", domain.KindGrasp)
	q0, q1 := domain.Sym("q0", domain.KindConf), domain.Sym("q1", domain.KindConf)
	at0, at1 := domain.Sym("at0", domain.KindTraj), domain.Sym("at1", domain.KindTraj)
	bt := domain.Sym("bt", domain.KindTraj)

	initial, err := domain.NewState(
		v.IsArm.Atom(left), v.HandEmpty.Atom(left),
		v.IsMovable.Atom(celery), v.Stackable.Atom(celery, sink), v.Washer.Atom(sink),
		v.IsPose.Atom(celery, p0), v.AtPose.Atom(celery, p0),
		v.IsPose.Atom(celery, p1), v.IsSupported.Atom(p1, sink),
		v.IsGrasp.Atom(celery, g),
		v.IsBConf.Atom(q0), v.IsBConf.Atom(q1), v.AtBConf.Atom(q0),
		v.IsKin.Atom(left, celery, p0, g, q0, at0),
		v.IsKin.Atom(left, celery, p1, g, q1, at1),
		v.IsMotion.Atom(q0, q1, bt),
		v.CanMove.Atom(),
	)
	require.NoError(t, err)

	plan := []domain.Step{
		{Action: domain.ActionPick, Args: []domain.Object{left, celery, p0, g, q0, at0}},
		{Action: domain.ActionMove, Args: []domain.Object{q0, q1, bt}},
		{Action: domain.ActionPlace, Args: []domain.Object{left, celery, p1, g, q1, at1}},
		{Action: domain.ActionClean, Args: []domain.Object{celery, sink}},
	}
	final, err := m.ApplyPlan(initial, plan)
	require.NoError(t, err)

	assert.True(t, final.HoldsWith(v.Cleaned.Atom(celery), m.Axioms))
	assert.False(t, final.HoldsWith(v.Cooked.Atom(celery), m.Axioms))
	assert.Equal(t, 3.0, final.Fluent(v.TotalCost), "clean is free, the physical actions cost one each")
}

func nominalPlan(t *testing.T, name string) (*scenario.Scenario, []domain.Step, *compiler.PlanCompiler) {
	t.Helper()
	sc, sim := testutils.World(t, name)
	c := compiler.NewProblemCompiler()
	p, reg, err := c.Compile(context.Background(), sim, sc)
	require.NoError(t, err)
	plan, _, err := compiler.NominalPlanner(sc)(context.Background(), p, reg)
	require.NoError(t, err)
	pc, err := compiler.NewPlanCompiler(p.Model, sc)
	require.NoError(t, err)
	return sc, plan, pc
}

func TestPlanCompilerStructure(t *testing.T) {
	sc, plan, pc := nominalPlan(t, "cleaning")

	commands, err := pc.Compile(plan)
	require.NoError(t, err)

	// move=1, pick=3, move=1, place=3, clean=1
	require.Len(t, commands, 9)

	_, ok := commands[0].(*command.Trajectory)
	assert.True(t, ok)

	attach, ok := commands[2].(*command.Attach)
	require.True(t, ok)
	assert.Equal(t, sc.Robot, attach.Robot)
	assert.Equal(t, scenario.Celery, attach.Body)
	assert.Equal(t, scenario.GripperLink, attach.Link)

	// the pick retreat replays the approach backwards
	approach := commands[1].(*command.Trajectory)
	retreat := commands[3].(*command.Trajectory)
	require.Equal(t, len(approach.Path.Path), len(retreat.Path.Path))
	assert.Same(t, approach.Path.Path[0], retreat.Path.Path[len(retreat.Path.Path)-1])

	detach, ok := commands[6].(*command.Detach)
	require.True(t, ok)
	assert.Equal(t, scenario.Celery, detach.Body)

	clean, ok := commands[8].(*command.Clean)
	require.True(t, ok)
	assert.Equal(t, scenario.Celery, clean.Body)
}

func TestPlanCompilerPure(t *testing.T) {
	_, plan, pc := nominalPlan(t, "stacking")

	first, err := pc.Compile(plan)
	require.NoError(t, err)
	second, err := pc.Compile(plan)
	require.NoError(t, err)

	diff := cmp.Diff(first, second, cmpopts.IgnoreUnexported(
		motion.Trajectory{}, motion.Conf{}, motion.Pose{}, motion.Grasp{},
	))
	assert.Empty(t, diff, "recompiling the same plan must yield the same commands")
}

func TestPlanCompilerUnknownAction(t *testing.T) {
	_, plan, pc := nominalPlan(t, "cleaning")

	bad := append([]domain.Step{}, plan...)
	bad = append(bad, domain.Step{Action: "teleport"})

	commands, err := pc.Compile(bad)
	require.Error(t, err)
	assert.Nil(t, commands, "nothing may be emitted for a partially compilable plan")

	var perr *compiler.PlanCompilationError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "teleport", perr.Action)
}
