package domain

import "sort"

// State is a set of ground atoms plus fluent values. Derived predicates
// are never stored here; they are evaluated on demand against the
// explicit atoms.
type State struct {
	atoms   map[string]Atom
	fluents map[string]float64
}

// NewState builds a state from ground atoms, validating each.
func NewState(atoms ...Atom) (*State, error) {
	s := &State{
		atoms:   make(map[string]Atom, len(atoms)),
		fluents: make(map[string]float64),
	}
	for _, a := range atoms {
		if err := s.Add(a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a ground atom. Adding an atom that already holds is a
// no-op.
func (s *State) Add(a Atom) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if !a.Ground() {
		return Errorf("cannot add non-ground atom %s", a)
	}
	if a.Pred.Derived() {
		return Errorf("cannot add derived atom %s", a)
	}
	s.atoms[a.Key()] = a
	return nil
}

// Remove deletes a ground atom if present.
func (s *State) Remove(a Atom) {
	delete(s.atoms, a.Key())
}

// Holds reports whether the ground atom is explicitly present.
func (s *State) Holds(a Atom) bool {
	_, ok := s.atoms[a.Key()]
	return ok
}

// HoldsWith reports whether the atom holds explicitly or follows from
// the given axioms.
func (s *State) HoldsWith(a Atom, axioms []Axiom) bool {
	if s.Holds(a) {
		return true
	}
	if a.Pred.Derived() {
		return s.Derives(a, axioms)
	}
	return false
}

// Atoms returns the explicit atoms in deterministic (key) order.
func (s *State) Atoms() []Atom {
	keys := make([]string, 0, len(s.atoms))
	for k := range s.atoms {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Atom, len(keys))
	for i, k := range keys {
		out[i] = s.atoms[k]
	}
	return out
}

// Len returns the number of explicit atoms.
func (s *State) Len() int { return len(s.atoms) }

// Fluent returns the current value of a fluent (zero if never increased).
func (s *State) Fluent(f *Fluent) float64 {
	return s.fluents[f.Name()]
}

// Increase adds a non-negative amount to a fluent. Decreases do not
// exist: fluents are monotone along any action sequence.
func (s *State) Increase(f *Fluent, amount float64) error {
	if amount < 0 {
		return Errorf("fluent %s: negative increase %v", f.Name(), amount)
	}
	s.fluents[f.Name()] += amount
	return nil
}

// Clone returns an independent copy of the state.
func (s *State) Clone() *State {
	n := &State{
		atoms:   make(map[string]Atom, len(s.atoms)),
		fluents: make(map[string]float64, len(s.fluents)),
	}
	for k, a := range s.atoms {
		n.atoms[k] = a
	}
	for k, v := range s.fluents {
		n.fluents[k] = v
	}
	return n
}

// Derives reports whether the ground derived atom follows from the
// current atoms under the given axioms.
func (s *State) Derives(goal Atom, axioms []Axiom) bool {
	for _, ax := range axioms {
		if ax.Eff.Pred != goal.Pred {
			continue
		}
		b := Binding{}
		if !unifyArgs(ax.Eff.Args, goal.Args, b) {
			continue
		}
		if s.matchConjunction(ax.Pre, b, axioms) {
			return true
		}
	}
	return false
}

// Satisfies reports whether every goal literal holds (positively or
// negatively) in this state under the axioms.
func (s *State) Satisfies(goal []Literal, axioms []Axiom) bool {
	for _, l := range goal {
		held := s.HoldsWith(l.Atom, axioms)
		if held == l.Negated {
			return false
		}
	}
	return true
}

// matchConjunction searches for an extension of the binding that
// satisfies every literal against the explicit atoms. Negative literals
// must be fully bound by the time they are reached.
func (s *State) matchConjunction(lits []Literal, b Binding, axioms []Axiom) bool {
	if len(lits) == 0 {
		return true
	}
	l, rest := lits[0], lits[1:]
	if l.Negated {
		g := l.Atom.Substitute(b)
		if !g.Ground() {
			return false
		}
		return !s.HoldsWith(g, axioms) && s.matchConjunction(rest, b, axioms)
	}
	for _, cand := range s.byPred(l.Atom.Pred) {
		nb := b.Clone()
		if unifyArgs(l.Atom.Args, cand.Args, nb) && s.matchConjunction(rest, nb, axioms) {
			return true
		}
	}
	return false
}

func (s *State) byPred(p *Predicate) []Atom {
	var out []Atom
	for _, a := range s.atoms {
		if a.Pred == p {
			out = append(out, a)
		}
	}
	return out
}
