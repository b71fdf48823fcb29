package compiler

import (
	"context"
	"log/slog"

	"github.com/aretw0/gantry/internal/logging"
	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/ports"
	"github.com/aretw0/gantry/pkg/scenario"
	"github.com/aretw0/gantry/pkg/streams"
)

// Stream names of the fixed stream set.
const (
	StreamMotion  = "motion"
	StreamGrasp   = "grasp"
	StreamSupport = "support"
	StreamIKIR    = "ik_ir"
)

// ProblemCompiler builds a concrete problem instance from live simulator
// state and a scenario's declarative goal.
type ProblemCompiler struct {
	vocab  *Vocabulary
	bound  streams.BoundPolicy
	logger *slog.Logger
}

// Option configures a ProblemCompiler.
type Option func(*ProblemCompiler)

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *ProblemCompiler) { c.logger = logger }
}

// WithBoundPolicy overrides the optimistic-object policy attached to
// every stream.
func WithBoundPolicy(bound streams.BoundPolicy) Option {
	return func(c *ProblemCompiler) { c.bound = bound }
}

// NewProblemCompiler creates a compiler with a fresh vocabulary.
func NewProblemCompiler(opts ...Option) *ProblemCompiler {
	c := &ProblemCompiler{
		vocab:  NewVocabulary(),
		bound:  streams.NewSharedBound(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Vocabulary exposes the compiler's predicate set.
func (c *ProblemCompiler) Vocabulary() *Vocabulary { return c.vocab }

// Compile snapshots the simulator, builds the initial atom set and goal
// literals, and registers the stream contracts. It fails with a
// DomainError before any solving begins if the goal references an object
// untyped in the initial atoms.
func (c *ProblemCompiler) Compile(ctx context.Context, sim ports.Simulator, sc *scenario.Scenario) (*domain.Problem, *streams.Registry, error) {
	if err := sc.Validate(); err != nil {
		return nil, nil, err
	}
	model, err := c.vocab.Model()
	if err != nil {
		return nil, nil, err
	}
	v := c.vocab

	robotPose, err := sim.BodyPose(ctx, sc.Robot)
	if err != nil {
		return nil, nil, err
	}
	initialBQ := motion.NewBaseConf(sc.Robot, robotPose)

	atoms := []domain.Atom{
		v.CanMove.Atom(),
		v.IsBConf.Atom(initialBQ),
		v.AtBConf.Atom(initialBQ),
	}
	for _, arm := range sc.Arms {
		sym := domain.Sym(arm, domain.KindArm)
		atoms = append(atoms, v.IsArm.Atom(sym), v.HandEmpty.Atom(sym))
	}
	for _, body := range sc.Movable {
		pose, err := sim.BodyPose(ctx, body)
		if err != nil {
			return nil, nil, err
		}
		sym := domain.Sym(string(body), domain.KindBody)
		atoms = append(atoms,
			v.IsMovable.Atom(sym),
			v.IsPose.Atom(sym, pose),
			v.AtPose.Atom(sym, pose),
		)
		for _, surface := range sc.Surfaces {
			atoms = append(atoms, v.Stackable.Atom(sym, domain.Sym(string(surface), domain.KindBody)))
		}
	}
	for _, sink := range sc.Sinks {
		atoms = append(atoms, v.Washer.Atom(domain.Sym(string(sink), domain.KindBody)))
	}
	for _, stove := range sc.Stoves {
		atoms = append(atoms, v.Stove.Atom(domain.Sym(string(stove), domain.KindBody)))
	}

	var goal []domain.Literal
	if sc.Goal.BaseConf != nil {
		atoms = append(atoms, v.IsBConf.Atom(sc.Goal.BaseConf))
		goal = append(goal, domain.Pos(v.AtBConf.Atom(sc.Goal.BaseConf)))
	}

	initial, err := domain.NewState(atoms...)
	if err != nil {
		return nil, nil, err
	}

	for _, h := range sc.Goal.Holding {
		arm := domain.Sym(h.Arm, domain.KindArm)
		body := domain.Sym(string(h.Body), domain.KindBody)
		if !initial.Holds(v.IsArm.Atom(arm)) {
			return nil, nil, domain.Errorf("goal arm %s is untyped in the initial atoms", h.Arm)
		}
		if err := c.requireMovable(initial, body); err != nil {
			return nil, nil, err
		}
		goal = append(goal, domain.Pos(v.Holding.Atom(arm, body)))
	}
	for _, on := range sc.Goal.On {
		body := domain.Sym(string(on.Body), domain.KindBody)
		surface := domain.Sym(string(on.Surface), domain.KindBody)
		if err := c.requireMovable(initial, body); err != nil {
			return nil, nil, err
		}
		if !initial.Holds(v.Stackable.Atom(body, surface)) {
			return nil, nil, domain.Errorf("goal surface %s is untyped in the initial atoms", on.Surface)
		}
		goal = append(goal, domain.Pos(v.On.Atom(body, surface)))
	}
	for _, b := range sc.Goal.Cleaned {
		body := domain.Sym(string(b), domain.KindBody)
		if err := c.requireMovable(initial, body); err != nil {
			return nil, nil, err
		}
		goal = append(goal, domain.Pos(v.Cleaned.Atom(body)))
	}
	for _, b := range sc.Goal.Cooked {
		body := domain.Sym(string(b), domain.KindBody)
		if err := c.requireMovable(initial, body); err != nil {
			return nil, nil, err
		}
		goal = append(goal, domain.Pos(v.Cooked.Atom(body)))
	}

	problem := &domain.Problem{
		Initial:   initial,
		Goal:      goal,
		Model:     model,
		Objective: v.TotalCost,
	}
	if err := problem.Validate(); err != nil {
		return nil, nil, err
	}

	registry, err := c.registerStreams(sc)
	if err != nil {
		return nil, nil, err
	}

	c.logger.Debug("problem compiled",
		"scenario", sc.Name,
		"atoms", initial.Len(),
		"goal", len(goal),
		"streams", len(registry.Streams()),
	)
	return problem, registry, nil
}

func (c *ProblemCompiler) requireMovable(initial *domain.State, body domain.Symbol) error {
	if !initial.Holds(c.vocab.IsMovable.Atom(body)) {
		return domain.Errorf("goal object %s is untyped in the initial atoms", body.Name())
	}
	return nil
}

// registerStreams builds the fixed stream set over the scenario's
// samplers.
func (c *ProblemCompiler) registerStreams(sc *scenario.Scenario) (*streams.Registry, error) {
	s := sc.Samplers
	if s.Motion == nil || s.Grasp == nil || s.Support == nil || s.IKIR == nil {
		return nil, domain.Errorf("scenario %s: missing stream samplers", sc.Name)
	}
	v := c.vocab
	a, o, o2 := domain.Term(varArm), domain.Term(varObj), domain.Term(varObj2)
	p, g := domain.Term(varPose), domain.Term(varGrasp)
	q, q2 := domain.Term(varBQ), domain.Term(varBQ2)
	at, bt := domain.Term(varArmTr), domain.Term(varBaseTr)

	registry := streams.NewRegistry()
	specs := []*streams.Stream{
		{
			Name:    StreamMotion,
			Shape:   streams.ShapeFn,
			Inputs:  []domain.Variable{varBQ, varBQ2},
			Domain:  []domain.Atom{v.IsBConf.Atom(q), v.IsBConf.Atom(q2)},
			Outputs: []domain.Variable{varBaseTr},
			Graph:   []domain.Atom{v.IsMotion.Atom(q, q2, bt), v.IsBaseTraj.Atom(bt)},
			Bound:   c.bound,
			Fn:      s.Motion,
		},
		{
			Name:    StreamGrasp,
			Shape:   streams.ShapeList,
			Inputs:  []domain.Variable{varObj},
			Domain:  []domain.Atom{v.IsMovable.Atom(o)},
			Outputs: []domain.Variable{varGrasp},
			Graph:   []domain.Atom{v.IsGrasp.Atom(o, g)},
			Bound:   c.bound,
			List:    s.Grasp,
		},
		{
			Name:    StreamSupport,
			Shape:   streams.ShapeGen,
			Inputs:  []domain.Variable{varObj, varObj2},
			Domain:  []domain.Atom{v.Stackable.Atom(o, o2)},
			Outputs: []domain.Variable{varPose},
			Graph:   []domain.Atom{v.IsPose.Atom(o, p), v.IsSupported.Atom(p, o2)},
			Bound:   c.bound,
			Gen:     s.Support,
		},
		{
			Name:    StreamIKIR,
			Shape:   streams.ShapeGen,
			Inputs:  []domain.Variable{varArm, varObj, varPose, varGrasp},
			Domain:  []domain.Atom{v.IsArm.Atom(a), v.IsPose.Atom(o, p), v.IsGrasp.Atom(o, g)},
			Outputs: []domain.Variable{varBQ, varArmTr},
			Graph:   []domain.Atom{v.IsKin.Atom(a, o, p, g, q, at), v.IsBConf.Atom(q), v.IsArmTraj.Atom(at)},
			Bound:   c.bound,
			Gen:     s.IKIR,
		},
	}
	for _, spec := range specs {
		if err := registry.Register(spec); err != nil {
			return nil, err
		}
	}
	return registry, nil
}
