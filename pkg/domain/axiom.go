package domain

// Axiom defines a derived predicate by a conjunctive rule over current
// atoms. Its truth value is a pure function of the atom set: it is
// recomputed on demand and never persisted as explicit state.
type Axiom struct {
	Params []Variable
	Pre    []Literal
	Eff    Atom
}

// Validate checks that the head is a derived predicate and references
// only declared parameters.
func (ax Axiom) Validate() error {
	if ax.Eff.Pred == nil || !ax.Eff.Pred.Derived() {
		return Errorf("axiom head %s is not a derived predicate", ax.Eff)
	}
	declared := make(map[Variable]bool, len(ax.Params))
	for _, p := range ax.Params {
		declared[p] = true
	}
	for _, t := range ax.Eff.Args {
		if v, ok := t.(Variable); ok && !declared[v] {
			return Errorf("axiom head references undeclared parameter %s", v)
		}
	}
	if err := ax.Eff.Validate(); err != nil {
		return Errorf("axiom head: %v", err)
	}
	for _, l := range ax.Pre {
		if err := l.Atom.Validate(); err != nil {
			return Errorf("axiom body: %v", err)
		}
	}
	return nil
}
