package domain

import (
	"fmt"
	"strings"
)

// Atom is a predicate applied to a list of terms. A ground atom carries
// only objects; schema atoms may carry variables.
type Atom struct {
	Pred *Predicate
	Args []Term
}

// Ground reports whether every argument is a concrete object.
func (a Atom) Ground() bool {
	for _, t := range a.Args {
		if _, ok := t.(Object); !ok {
			return false
		}
	}
	return true
}

// Validate checks arity and, for object arguments, kind discipline.
func (a Atom) Validate() error {
	if a.Pred == nil {
		return Errorf("atom has no predicate")
	}
	if len(a.Args) != a.Pred.Arity() {
		return Errorf("%s expects %d arguments, got %d", a.Pred.Name(), a.Pred.Arity(), len(a.Args))
	}
	for i, t := range a.Args {
		obj, ok := t.(Object)
		if !ok {
			continue
		}
		if want := a.Pred.slots[i]; obj.Kind() != want {
			return Errorf("%s argument %d: want kind %s, got %s (%s)",
				a.Pred.Name(), i, want, obj.Kind(), obj.Name())
		}
	}
	return nil
}

// Key returns the canonical identity of a ground atom, used for set
// membership. Object identity is the object name.
func (a Atom) Key() string {
	return a.String()
}

func (a Atom) String() string {
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		switch v := t.(type) {
		case Object:
			parts[i] = v.Name()
		case Variable:
			parts[i] = string(v)
		}
	}
	return fmt.Sprintf("%s(%s)", a.Pred.Name(), strings.Join(parts, ", "))
}

// Substitute replaces variables according to the binding. Unbound
// variables are left in place.
func (a Atom) Substitute(b Binding) Atom {
	args := make([]Term, len(a.Args))
	for i, t := range a.Args {
		if v, ok := t.(Variable); ok {
			if obj, bound := b[v]; bound {
				args[i] = obj
				continue
			}
		}
		args[i] = t
	}
	return Atom{Pred: a.Pred, Args: args}
}

// Literal is an atom requirement: positive ("must hold") or negative
// ("must not currently hold").
type Literal struct {
	Atom    Atom
	Negated bool
}

// Pos wraps an atom as a positive literal.
func Pos(a Atom) Literal { return Literal{Atom: a} }

// Neg wraps an atom as a negative literal.
func Neg(a Atom) Literal { return Literal{Atom: a, Negated: true} }

// Substitute applies the binding to the underlying atom.
func (l Literal) Substitute(b Binding) Literal {
	return Literal{Atom: l.Atom.Substitute(b), Negated: l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Atom.String()
	}
	return l.Atom.String()
}

// unifyArgs matches schema terms against ground terms, extending the
// binding in place. It fails on object mismatch, binding conflict, or a
// kind violation.
func unifyArgs(schema, ground []Term, b Binding) bool {
	if len(schema) != len(ground) {
		return false
	}
	for i, t := range schema {
		obj, ok := ground[i].(Object)
		if !ok {
			return false
		}
		switch v := t.(type) {
		case Object:
			if v.Name() != obj.Name() {
				return false
			}
		case Variable:
			if bound, seen := b[v]; seen {
				if bound.Name() != obj.Name() {
					return false
				}
			} else {
				b[v] = obj
			}
		default:
			return false
		}
	}
	return true
}
