package streams

import (
	"context"

	"github.com/aretw0/gantry/pkg/domain"
)

// Shape is the invocation discipline of a stream's sampler.
type Shape int

const (
	// ShapeFn produces at most one output tuple per invocation.
	ShapeFn Shape = iota
	// ShapeList eagerly enumerates every candidate tuple at once.
	ShapeList
	// ShapeGen lazily produces tuples one at a time until exhausted or
	// the caller stops pulling.
	ShapeGen
	// ShapeTest produces no outputs; it only certifies its graph atoms.
	ShapeTest
)

func (s Shape) String() string {
	switch s {
	case ShapeFn:
		return "fn"
	case ShapeList:
		return "list"
	case ShapeGen:
		return "gen"
	case ShapeTest:
		return "test"
	}
	return "unknown"
}

// Fn is a deterministic single-result sampler. A nil tuple with a nil
// error signals no candidate.
type Fn func(ctx context.Context, in []domain.Object) ([]domain.Object, error)

// List is an eager batch sampler.
type List func(ctx context.Context, in []domain.Object) ([][]domain.Object, error)

// Gen opens a lazy, potentially unbounded generator.
type Gen func(ctx context.Context, in []domain.Object) Generator

// Generator pulls output tuples one at a time. ok is false once the
// generator is exhausted.
type Generator interface {
	Next(ctx context.Context) (out []domain.Object, ok bool, err error)
}

// Test certifies a condition over its inputs.
type Test func(ctx context.Context, in []domain.Object) (bool, error)

// Stream is the pure specification of one generator contract. The
// sampler field matching Shape must be set; the generating function
// itself remains external.
type Stream struct {
	Name    string
	Shape   Shape
	Inputs  []domain.Variable
	Domain  []domain.Atom
	Outputs []domain.Variable
	Graph   []domain.Atom
	Bound   BoundPolicy

	Fn   Fn
	List List
	Gen  Gen
	Test Test
}

// Validate checks the contract: exactly one sampler matching the shape,
// no outputs on tests, domain atoms over inputs only, and graph atoms
// over inputs and outputs only.
func (s *Stream) Validate() error {
	if s.Name == "" {
		return domain.Errorf("stream has no name")
	}
	set := 0
	if s.Fn != nil {
		set++
	}
	if s.List != nil {
		set++
	}
	if s.Gen != nil {
		set++
	}
	if s.Test != nil {
		set++
	}
	if set != 1 {
		return domain.Errorf("stream %s: want exactly one sampler, got %d", s.Name, set)
	}
	ok := false
	switch s.Shape {
	case ShapeFn:
		ok = s.Fn != nil
	case ShapeList:
		ok = s.List != nil
	case ShapeGen:
		ok = s.Gen != nil
	case ShapeTest:
		ok = s.Test != nil
	}
	if !ok {
		return domain.Errorf("stream %s: sampler does not match shape %s", s.Name, s.Shape)
	}
	if s.Shape == ShapeTest && len(s.Outputs) > 0 {
		return domain.Errorf("stream %s: test streams declare no outputs", s.Name)
	}
	in := make(map[domain.Variable]bool, len(s.Inputs))
	for _, v := range s.Inputs {
		in[v] = true
	}
	out := make(map[domain.Variable]bool, len(s.Outputs))
	for _, v := range s.Outputs {
		if in[v] {
			return domain.Errorf("stream %s: output %s shadows an input", s.Name, v)
		}
		out[v] = true
	}
	for _, a := range s.Domain {
		for _, t := range a.Args {
			if v, isVar := t.(domain.Variable); isVar && !in[v] {
				return domain.Errorf("stream %s: domain atom %s references non-input %s", s.Name, a, v)
			}
		}
	}
	for _, a := range s.Graph {
		for _, t := range a.Args {
			if v, isVar := t.(domain.Variable); isVar && !in[v] && !out[v] {
				return domain.Errorf("stream %s: graph atom %s references unknown %s", s.Name, a, v)
			}
		}
	}
	return nil
}

// OutputKinds infers each output variable's kind from the graph atoms.
func (s *Stream) OutputKinds() ([]domain.Kind, error) {
	kinds := make([]domain.Kind, len(s.Outputs))
	for i, v := range s.Outputs {
		found := false
		for _, a := range s.Graph {
			for j, t := range a.Args {
				if av, isVar := t.(domain.Variable); isVar && av == v {
					kinds[i] = a.Pred.Slots()[j]
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return nil, domain.Errorf("stream %s: output %s appears in no graph atom", s.Name, v)
		}
	}
	return kinds, nil
}

// binding builds the variable binding for one invocation.
func (s *Stream) binding(in, out []domain.Object) domain.Binding {
	b := make(domain.Binding, len(in)+len(out))
	for i, v := range s.Inputs {
		if i < len(in) {
			b[v] = in[i]
		}
	}
	for i, v := range s.Outputs {
		if i < len(out) {
			b[v] = out[i]
		}
	}
	return b
}

// DomainAtoms instantiates the invocation precondition for an input
// tuple.
func (s *Stream) DomainAtoms(in []domain.Object) []domain.Atom {
	b := s.binding(in, nil)
	out := make([]domain.Atom, len(s.Domain))
	for i, a := range s.Domain {
		out[i] = a.Substitute(b)
	}
	return out
}

// GraphAtoms instantiates the certified atoms for one produced tuple.
func (s *Stream) GraphAtoms(in, out []domain.Object) []domain.Atom {
	b := s.binding(in, out)
	atoms := make([]domain.Atom, len(s.Graph))
	for i, a := range s.Graph {
		atoms[i] = a.Substitute(b)
	}
	return atoms
}
