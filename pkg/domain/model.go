package domain

import "fmt"

// Model is the immutable domain vocabulary: predicates, action schemas,
// axioms and the cost fluent. It is constructed once per problem and
// shared by reference.
type Model struct {
	Predicates []*Predicate
	Actions    []Action
	Axioms     []Axiom
	Cost       *Fluent
}

// Validate checks the whole vocabulary: unique predicate names, schema
// arity discipline, and axiom well-formedness.
func (m *Model) Validate() error {
	seen := make(map[string]bool, len(m.Predicates))
	for _, p := range m.Predicates {
		if seen[p.Name()] {
			return Errorf("duplicate predicate %s", p.Name())
		}
		seen[p.Name()] = true
	}
	names := make(map[ActionName]bool, len(m.Actions))
	for _, a := range m.Actions {
		if names[a.Name] {
			return Errorf("duplicate action %s", a.Name)
		}
		names[a.Name] = true
		if err := a.Validate(); err != nil {
			return err
		}
	}
	for _, ax := range m.Axioms {
		if err := ax.Validate(); err != nil {
			return err
		}
	}
	if m.Cost == nil {
		return Errorf("model has no cost fluent")
	}
	return nil
}

// Action looks up a schema by name.
func (m *Model) Action(name ActionName) (Action, bool) {
	for _, a := range m.Actions {
		if a.Name == name {
			return a, true
		}
	}
	return Action{}, false
}

// ActionNames returns the schema names in declaration order.
func (m *Model) ActionNames() []ActionName {
	out := make([]ActionName, len(m.Actions))
	for i, a := range m.Actions {
		out[i] = a.Name
	}
	return out
}

// ApplyStep checks the step's preconditions against s and returns the
// successor state. Deletes are applied before adds, then the cost
// increase. The input state is not mutated.
func (m *Model) ApplyStep(s *State, step Step) (*State, error) {
	action, ok := m.Action(step.Action)
	if !ok {
		return nil, Errorf("unknown action %s", step.Action)
	}
	if len(step.Args) != len(action.Params) {
		return nil, Errorf("action %s expects %d arguments, got %d",
			action.Name, len(action.Params), len(step.Args))
	}
	b := make(Binding, len(action.Params))
	for i, p := range action.Params {
		b[p] = step.Args[i]
	}
	for _, pre := range action.Pre {
		g := pre.Substitute(b)
		if !g.Atom.Ground() {
			return nil, Errorf("action %s: unbound precondition %s", action.Name, g.Atom)
		}
		if s.HoldsWith(g.Atom, m.Axioms) == g.Negated {
			return nil, fmt.Errorf("%s: %s: %w", step, g, ErrPreconditionFailed)
		}
	}
	next := s.Clone()
	for _, eff := range action.Eff {
		if eff.Negated {
			next.Remove(eff.Atom.Substitute(b))
		}
	}
	for _, eff := range action.Eff {
		if eff.Negated {
			continue
		}
		if err := next.Add(eff.Atom.Substitute(b)); err != nil {
			return nil, err
		}
	}
	if err := next.Increase(m.Cost, action.Cost); err != nil {
		return nil, err
	}
	return next, nil
}

// ApplyPlan folds ApplyStep over a plan, returning the final state.
func (m *Model) ApplyPlan(s *State, plan []Step) (*State, error) {
	cur := s
	for _, step := range plan {
		next, err := m.ApplyStep(cur, step)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
