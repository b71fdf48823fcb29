package streams_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/streams"
)

var (
	isMovable = domain.NewPredicate("is_movable", domain.KindBody)
	isGrasp   = domain.NewPredicate("is_grasp", domain.KindBody, domain.KindGrasp)
	isMotion  = domain.NewPredicate("is_motion", domain.KindConf, domain.KindConf, domain.KindTraj)
	isBConf   = domain.NewPredicate("is_bconf", domain.KindConf)
)

func graspStream(list streams.List) *streams.Stream {
	o, g := domain.Variable("?o"), domain.Variable("?g")
	return &streams.Stream{
		Name:    "grasp",
		Shape:   streams.ShapeList,
		Inputs:  []domain.Variable{o},
		Domain:  []domain.Atom{isMovable.Atom(o)},
		Outputs: []domain.Variable{g},
		Graph:   []domain.Atom{isGrasp.Atom(o, g)},
		Bound:   streams.NewSharedBound(),
		List:    list,
	}
}

func TestStreamValidate(t *testing.T) {
	o, g := domain.Variable("?o"), domain.Variable("?g")

	t.Run("sampler must match shape", func(t *testing.T) {
		s := graspStream(nil)
		s.Fn = func(context.Context, []domain.Object) ([]domain.Object, error) { return nil, nil }
		err := s.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shape")
	})

	t.Run("exactly one sampler", func(t *testing.T) {
		s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		s.Test = func(context.Context, []domain.Object) (bool, error) { return true, nil }
		require.Error(t, s.Validate())
	})

	t.Run("output shadows input", func(t *testing.T) {
		s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		s.Outputs = []domain.Variable{o}
		s.Graph = []domain.Atom{isGrasp.Atom(o, o)}
		require.Error(t, s.Validate())
	})

	t.Run("domain atom over non-input", func(t *testing.T) {
		s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		s.Domain = []domain.Atom{isGrasp.Atom(o, g)}
		require.Error(t, s.Validate())
	})

	t.Run("test streams declare no outputs", func(t *testing.T) {
		s := &streams.Stream{
			Name:    "collision_free",
			Shape:   streams.ShapeTest,
			Inputs:  []domain.Variable{o},
			Outputs: []domain.Variable{g},
			Graph:   []domain.Atom{isGrasp.Atom(o, g)},
			Test:    func(context.Context, []domain.Object) (bool, error) { return true, nil },
		}
		require.Error(t, s.Validate())
	})

	t.Run("well formed", func(t *testing.T) {
		s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		require.NoError(t, s.Validate())
	})
}

func TestOutputKinds(t *testing.T) {
	s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
	kinds, err := s.OutputKinds()
	require.NoError(t, err)
	require.Len(t, kinds, 1)
	assert.Equal(t, domain.KindGrasp, kinds[0])

	t.Run("output absent from graph", func(t *testing.T) {
		s := graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		s.Graph = []domain.Atom{isMovable.Atom(domain.Variable("?o"))}
		_, err := s.OutputKinds()
		require.Error(t, err)
	})
}

func TestRegistryInvoke(t *testing.T) {
	ctx := context.Background()
	celery := domain.Sym("celery", domain.KindBody)
	g1 := domain.Sym("g1", domain.KindGrasp)

	t.Run("list yields tuples", func(t *testing.T) {
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(graspStream(
			func(context.Context, []domain.Object) ([][]domain.Object, error) {
				return [][]domain.Object{{g1}}, nil
			},
		)))
		tuples, err := reg.Invoke(ctx, "grasp", []domain.Object{celery})
		require.NoError(t, err)
		require.Len(t, tuples, 1)
		assert.Equal(t, "g1", tuples[0][0].Name())
	})

	t.Run("empty list is no candidate", func(t *testing.T) {
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(graspStream(
			func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil },
		)))
		_, err := reg.Invoke(ctx, "grasp", []domain.Object{celery})
		require.Error(t, err)
		assert.ErrorIs(t, err, streams.ErrNoCandidate)

		var ierr *streams.InvocationError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "grasp", ierr.Stream)
	})

	t.Run("fn nil tuple is no candidate", func(t *testing.T) {
		q1 := domain.Variable("?q1")
		q2 := domain.Variable("?q2")
		bt := domain.Variable("?bt")
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(&streams.Stream{
			Name:    "motion",
			Shape:   streams.ShapeFn,
			Inputs:  []domain.Variable{q1, q2},
			Domain:  []domain.Atom{isBConf.Atom(q1), isBConf.Atom(q2)},
			Outputs: []domain.Variable{bt},
			Graph:   []domain.Atom{isMotion.Atom(q1, q2, bt)},
			Fn:      func(context.Context, []domain.Object) ([]domain.Object, error) { return nil, nil },
		}))
		_, err := reg.Invoke(ctx, "motion", []domain.Object{
			domain.Sym("qa", domain.KindConf), domain.Sym("qb", domain.KindConf),
		})
		assert.ErrorIs(t, err, streams.ErrNoCandidate)
	})

	t.Run("test certifies with an empty tuple", func(t *testing.T) {
		pass := true
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(&streams.Stream{
			Name:   "collision_free",
			Shape:  streams.ShapeTest,
			Inputs: []domain.Variable{domain.Variable("?o")},
			Domain: []domain.Atom{isMovable.Atom(domain.Variable("?o"))},
			Test: func(context.Context, []domain.Object) (bool, error) {
				return pass, nil
			},
		}))

		tuples, err := reg.Invoke(ctx, "collision_free", []domain.Object{celery})
		require.NoError(t, err)
		require.Len(t, tuples, 1)
		assert.Empty(t, tuples[0])

		pass = false
		_, err = reg.Invoke(ctx, "collision_free", []domain.Object{celery})
		assert.ErrorIs(t, err, streams.ErrNoCandidate)
	})

	t.Run("wrong input arity", func(t *testing.T) {
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(graspStream(
			func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil },
		)))
		_, err := reg.Invoke(ctx, "grasp", nil)
		require.Error(t, err)
	})

	t.Run("duplicate registration", func(t *testing.T) {
		reg := streams.NewRegistry()
		mk := func() *streams.Stream {
			return graspStream(func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil })
		}
		require.NoError(t, reg.Register(mk()))
		require.Error(t, reg.Register(mk()))
	})
}

type countingGen struct {
	n, limit int
}

func (g *countingGen) Next(context.Context) ([]domain.Object, bool, error) {
	if g.n >= g.limit {
		return nil, false, nil
	}
	g.n++
	return []domain.Object{domain.Sym("g", domain.KindGrasp)}, true, nil
}

func TestRegistryOpen(t *testing.T) {
	ctx := context.Background()
	celery := domain.Sym("celery", domain.KindBody)

	t.Run("generator streams stay lazy", func(t *testing.T) {
		o, g := domain.Variable("?o"), domain.Variable("?g")
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(&streams.Stream{
			Name:    "grasp",
			Shape:   streams.ShapeGen,
			Inputs:  []domain.Variable{o},
			Domain:  []domain.Atom{isMovable.Atom(o)},
			Outputs: []domain.Variable{g},
			Graph:   []domain.Atom{isGrasp.Atom(o, g)},
			Gen: func(context.Context, []domain.Object) streams.Generator {
				return &countingGen{limit: 2}
			},
		}))

		gen, err := reg.Open(ctx, "grasp", []domain.Object{celery})
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			_, ok, err := gen.Next(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		_, ok, err := gen.Next(ctx)
		require.NoError(t, err)
		assert.False(t, ok, "generator must report exhaustion")
	})

	t.Run("eager shapes adapt to a generator", func(t *testing.T) {
		g1 := domain.Sym("g1", domain.KindGrasp)
		reg := streams.NewRegistry()
		require.NoError(t, reg.Register(graspStream(
			func(context.Context, []domain.Object) ([][]domain.Object, error) {
				return [][]domain.Object{{g1}}, nil
			},
		)))
		gen, err := reg.Open(ctx, "grasp", []domain.Object{celery})
		require.NoError(t, err)
		out, ok, err := gen.Next(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "g1", out[0].Name())
		_, ok, _ = gen.Next(ctx)
		assert.False(t, ok)
	})
}

func TestCertified(t *testing.T) {
	celery := domain.Sym("celery", domain.KindBody)
	g1 := domain.Sym("g1", domain.KindGrasp)

	reg := streams.NewRegistry()
	require.NoError(t, reg.Register(graspStream(
		func(context.Context, []domain.Object) ([][]domain.Object, error) {
			return [][]domain.Object{{g1}}, nil
		},
	)))

	atoms, err := reg.Certified("grasp", []domain.Object{celery}, []domain.Object{g1})
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, "is_grasp(celery, g1)", atoms[0].String())
	assert.True(t, atoms[0].Ground())
}

func TestSharedBound(t *testing.T) {
	bound := streams.NewSharedBound()
	celery := domain.Sym("celery", domain.KindBody)
	radish := domain.Sym("radish", domain.KindBody)
	outputs := []domain.Variable{"?g"}
	kinds := []domain.Kind{domain.KindGrasp}

	first := bound.Bind("grasp", []domain.Object{celery}, outputs, kinds)
	again := bound.Bind("grasp", []domain.Object{celery}, outputs, kinds)
	other := bound.Bind("grasp", []domain.Object{radish}, outputs, kinds)

	require.Len(t, first, 1)
	assert.Equal(t, first[0].Name(), again[0].Name(), "identical inputs must intern to the same placeholder")
	assert.NotEqual(t, first[0].Name(), other[0].Name())
	assert.True(t, strings.HasPrefix(first[0].Name(), "#grasp"), "placeholder names carry the kind")
	assert.Equal(t, domain.KindGrasp, first[0].Kind())
}

func TestUniqueBound(t *testing.T) {
	bound := streams.UniqueBound{}
	celery := domain.Sym("celery", domain.KindBody)
	outputs := []domain.Variable{"?g"}
	kinds := []domain.Kind{domain.KindGrasp}

	first := bound.Bind("grasp", []domain.Object{celery}, outputs, kinds)
	again := bound.Bind("grasp", []domain.Object{celery}, outputs, kinds)
	assert.NotEqual(t, first[0].Name(), again[0].Name())
}

func TestOptimisticAndResolve(t *testing.T) {
	celery := domain.Sym("celery", domain.KindBody)
	reg := streams.NewRegistry()
	require.NoError(t, reg.Register(graspStream(
		func(context.Context, []domain.Object) ([][]domain.Object, error) { return nil, nil },
	)))

	placeholders, atoms, err := reg.Optimistic("grasp", []domain.Object{celery})
	require.NoError(t, err)
	require.Len(t, placeholders, 1)
	require.Len(t, atoms, 1)
	assert.True(t, atoms[0].Ground(), "optimistic atoms are ground over placeholders")

	// resolving swaps placeholders for verified objects
	g1 := domain.Sym("g1", domain.KindGrasp)
	resolved := streams.Resolve(atoms, map[string]domain.Object{placeholders[0].Name(): g1})
	assert.Equal(t, "is_grasp(celery, g1)", resolved[0].String())

	plan := []domain.Step{{Action: domain.ActionPick, Args: []domain.Object{celery, placeholders[0]}}}
	rp := streams.ResolvePlan(plan, map[string]domain.Object{placeholders[0].Name(): g1})
	assert.Equal(t, "g1", rp[0].Args[1].Name())
}
