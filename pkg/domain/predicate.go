package domain

// Predicate names a relation over a fixed, ordered list of typed slots.
// Arity is immutable after construction.
type Predicate struct {
	name    string
	slots   []Kind
	derived bool
}

// NewPredicate declares a predicate with the given parameter slots.
func NewPredicate(name string, slots ...Kind) *Predicate {
	return &Predicate{name: name, slots: slots}
}

// NewDerived declares a derived predicate. Derived predicates are
// recomputed from axioms on demand and are never action effect targets.
func NewDerived(name string, slots ...Kind) *Predicate {
	return &Predicate{name: name, slots: slots, derived: true}
}

// Name returns the predicate name.
func (p *Predicate) Name() string { return p.name }

// Arity returns the number of parameter slots.
func (p *Predicate) Arity() int { return len(p.slots) }

// Slots returns a copy of the ordered slot kinds.
func (p *Predicate) Slots() []Kind {
	out := make([]Kind, len(p.slots))
	copy(out, p.slots)
	return out
}

// Derived reports whether the predicate is defined by axioms.
func (p *Predicate) Derived() bool { return p.derived }

// Atom builds an atom over this predicate. Arity and kind discipline are
// enforced by Atom.Validate and by Model/State construction, not here, so
// schema literals can be written fluently.
func (p *Predicate) Atom(args ...Term) Atom {
	return Atom{Pred: p, Args: args}
}

// Fluent is a named numeric quantity. Only increase effects exist, so a
// fluent's value is non-decreasing along any action sequence.
type Fluent struct {
	name string
}

// NewFluent declares a fluent initialized to zero in every new state.
func NewFluent(name string) *Fluent {
	return &Fluent{name: name}
}

// Name returns the fluent name.
func (f *Fluent) Name() string { return f.name }
