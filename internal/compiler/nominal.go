package compiler

import (
	"context"

	"github.com/aretw0/gantry/pkg/domain"
	"github.com/aretw0/gantry/pkg/scenario"
	"github.com/aretw0/gantry/pkg/streams"
)

// NominalPlanner returns a plan source that deterministically assembles
// the obvious move/pick/move/place chain for each goal by pulling from
// the problem's streams. There is no search: it exists to drive the
// scripted solver adapter, the CLI demos and the end-to-end tests. A
// real search algorithm plugs in through ports.Solver instead.
//
// The returned function yields the plan plus every graph atom certified
// along the way, so a validating solver can extend the evaluation set
// before checking preconditions.
func NominalPlanner(sc *scenario.Scenario) func(context.Context, *domain.Problem, *streams.Registry) ([]domain.Step, []domain.Atom, error) {
	return func(ctx context.Context, p *domain.Problem, reg *streams.Registry) ([]domain.Step, []domain.Atom, error) {
		n := &nominal{
			reg:  reg,
			pose: make(map[string]domain.Object),
		}
		if err := n.init(p); err != nil {
			return nil, nil, err
		}
		for _, on := range sc.Goal.On {
			if err := n.transfer(ctx, sym(string(on.Body)), sym(string(on.Surface))); err != nil {
				return nil, nil, err
			}
		}
		for _, b := range sc.Goal.Cleaned {
			if err := n.clean(ctx, sc, sym(string(b))); err != nil {
				return nil, nil, err
			}
		}
		for _, b := range sc.Goal.Cooked {
			if err := n.cook(ctx, sc, sym(string(b))); err != nil {
				return nil, nil, err
			}
		}
		for _, h := range sc.Goal.Holding {
			if _, err := n.pickUp(ctx, sym(string(h.Body))); err != nil {
				return nil, nil, err
			}
		}
		if sc.Goal.BaseConf != nil {
			if err := n.moveTo(ctx, sc.Goal.BaseConf); err != nil {
				return nil, nil, err
			}
		}
		return n.steps, n.certified, nil
	}
}

func sym(name string) domain.Object {
	return domain.Sym(name, domain.KindBody)
}

type nominal struct {
	reg       *streams.Registry
	arm       domain.Object
	cur       domain.Object
	pose      map[string]domain.Object
	steps     []domain.Step
	certified []domain.Atom
}

// init reads the current base conf, the arm, and every body pose out of
// the compiled initial atoms.
func (n *nominal) init(p *domain.Problem) error {
	for _, a := range p.Initial.Atoms() {
		switch a.Pred.Name() {
		case "at_bconf":
			n.cur = a.Args[0].(domain.Object)
		case "at_pose":
			body := a.Args[0].(domain.Object)
			n.pose[body.Name()] = a.Args[1].(domain.Object)
		case "is_arm":
			if n.arm == nil {
				n.arm = a.Args[0].(domain.Object)
			}
		}
	}
	if n.cur == nil {
		return domain.Errorf("initial atoms carry no base configuration")
	}
	if n.arm == nil {
		return domain.Errorf("initial atoms carry no arm")
	}
	return nil
}

// pull takes the first tuple from a stream and records its certified
// graph atoms.
func (n *nominal) pull(ctx context.Context, name string, in ...domain.Object) ([]domain.Object, error) {
	gen, err := n.reg.Open(ctx, name, in)
	if err != nil {
		return nil, err
	}
	out, ok, err := gen.Next(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &streams.InvocationError{Stream: name, Inputs: in}
	}
	cert, err := n.reg.Certified(name, in, out)
	if err != nil {
		return nil, err
	}
	n.certified = append(n.certified, cert...)
	return out, nil
}

func (n *nominal) moveTo(ctx context.Context, q domain.Object) error {
	if n.cur.Name() == q.Name() {
		return nil
	}
	out, err := n.pull(ctx, StreamMotion, n.cur, q)
	if err != nil {
		return err
	}
	n.steps = append(n.steps, domain.Step{
		Action: domain.ActionMove,
		Args:   []domain.Object{n.cur, q, out[0]},
	})
	n.cur = q
	return nil
}

// pickUp grasps a body at its current pose, moving the base first when
// the kinematics ask for a different configuration.
func (n *nominal) pickUp(ctx context.Context, body domain.Object) (domain.Object, error) {
	grasps, err := n.pull(ctx, StreamGrasp, body)
	if err != nil {
		return nil, err
	}
	g := grasps[0]
	at := n.pose[body.Name()]
	if at == nil {
		return nil, domain.Errorf("body %s has no known pose", body.Name())
	}
	kin, err := n.pull(ctx, StreamIKIR, n.arm, body, at, g)
	if err != nil {
		return nil, err
	}
	q, traj := kin[0], kin[1]
	if err := n.moveTo(ctx, q); err != nil {
		return nil, err
	}
	n.steps = append(n.steps, domain.Step{
		Action: domain.ActionPick,
		Args:   []domain.Object{n.arm, body, at, g, q, traj},
	})
	delete(n.pose, body.Name())
	return g, nil
}

func (n *nominal) placeDown(ctx context.Context, body, surface, grasp domain.Object) error {
	sup, err := n.pull(ctx, StreamSupport, body, surface)
	if err != nil {
		return err
	}
	target := sup[0]
	kin, err := n.pull(ctx, StreamIKIR, n.arm, body, target, grasp)
	if err != nil {
		return err
	}
	q, traj := kin[0], kin[1]
	if err := n.moveTo(ctx, q); err != nil {
		return err
	}
	n.steps = append(n.steps, domain.Step{
		Action: domain.ActionPlace,
		Args:   []domain.Object{n.arm, body, target, grasp, q, traj},
	})
	n.pose[body.Name()] = target
	return nil
}

func (n *nominal) transfer(ctx context.Context, body, surface domain.Object) error {
	g, err := n.pickUp(ctx, body)
	if err != nil {
		return err
	}
	return n.placeDown(ctx, body, surface, g)
}

func (n *nominal) clean(ctx context.Context, sc *scenario.Scenario, body domain.Object) error {
	if len(sc.Sinks) == 0 {
		return domain.Errorf("scenario %s has no sink to clean in", sc.Name)
	}
	sink := sym(string(sc.Sinks[0]))
	if err := n.transfer(ctx, body, sink); err != nil {
		return err
	}
	n.steps = append(n.steps, domain.Step{
		Action: domain.ActionClean,
		Args:   []domain.Object{body, sink},
	})
	return nil
}

func (n *nominal) cook(ctx context.Context, sc *scenario.Scenario, body domain.Object) error {
	if len(sc.Stoves) == 0 {
		return domain.Errorf("scenario %s has no stove to cook on", sc.Name)
	}
	if err := n.clean(ctx, sc, body); err != nil {
		return err
	}
	stove := sym(string(sc.Stoves[0]))
	if err := n.transfer(ctx, body, stove); err != nil {
		return err
	}
	n.steps = append(n.steps, domain.Step{
		Action: domain.ActionCook,
		Args:   []domain.Object{body, stove},
	})
	return nil
}
