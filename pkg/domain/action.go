package domain

import (
	"fmt"
	"strings"
)

// ActionName enumerates the closed set of schema names. The plan
// compiler matches exhaustively on this set; adding or removing a schema
// is a compile-time-checked change there.
type ActionName string

const (
	ActionPick  ActionName = "pick"
	ActionPlace ActionName = "place"
	ActionMove  ActionName = "move"
	ActionClean ActionName = "clean"
	ActionCook  ActionName = "cook"
)

// Action is a parameterized operator schema. Preconditions are signed
// literals; effects are add literals (positive) and delete literals
// (negated) plus a non-negative increase of the cost fluent.
type Action struct {
	Name   ActionName
	Params []Variable
	Pre    []Literal
	Eff    []Literal
	Cost   float64
}

// Validate checks arity discipline and that effects reference only the
// action's declared parameters and never target derived predicates.
func (a Action) Validate() error {
	declared := make(map[Variable]bool, len(a.Params))
	for _, p := range a.Params {
		declared[p] = true
	}
	if a.Cost < 0 {
		return Errorf("action %s: negative cost %v", a.Name, a.Cost)
	}
	for _, l := range a.Pre {
		if err := l.Atom.Validate(); err != nil {
			return Errorf("action %s precondition: %v", a.Name, err)
		}
	}
	for _, l := range a.Eff {
		if err := l.Atom.Validate(); err != nil {
			return Errorf("action %s effect: %v", a.Name, err)
		}
		if l.Atom.Pred.Derived() {
			return Errorf("action %s: effect targets derived predicate %s", a.Name, l.Atom.Pred.Name())
		}
		for _, t := range l.Atom.Args {
			if v, ok := t.(Variable); ok && !declared[v] {
				return Errorf("action %s: effect references undeclared parameter %s", a.Name, v)
			}
		}
	}
	return nil
}

// Step is one grounded element of a solved plan: an action name applied
// to a concrete argument tuple.
type Step struct {
	Action ActionName
	Args   []Object
}

func (s Step) String() string {
	parts := make([]string, len(s.Args))
	for i, o := range s.Args {
		parts[i] = o.Name()
	}
	return fmt.Sprintf("%s(%s)", s.Action, strings.Join(parts, ", "))
}
