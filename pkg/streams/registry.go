package streams

import (
	"context"

	"github.com/aretw0/gantry/pkg/domain"
)

// Registry holds the stream contracts of one problem. It is constructed
// by the problem compiler and immutable thereafter.
type Registry struct {
	streams map[string]*Stream
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{streams: make(map[string]*Stream)}
}

// Register validates and adds a stream contract.
func (r *Registry) Register(s *Stream) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if _, exists := r.streams[s.Name]; exists {
		return domain.Errorf("duplicate stream %s", s.Name)
	}
	if _, err := s.OutputKinds(); err != nil {
		return err
	}
	r.streams[s.Name] = s
	r.order = append(r.order, s.Name)
	return nil
}

// Lookup returns a stream by name.
func (r *Registry) Lookup(name string) (*Stream, bool) {
	s, ok := r.streams[name]
	return s, ok
}

// Streams returns the contracts in registration order.
func (r *Registry) Streams() []*Stream {
	out := make([]*Stream, len(r.order))
	for i, name := range r.order {
		out[i] = r.streams[name]
	}
	return out
}

// Invoke runs a non-generator stream eagerly and returns its output
// tuples. A sampler that yields nothing fails with an InvocationError;
// test streams return a single empty tuple when the condition certifies.
func (r *Registry) Invoke(ctx context.Context, name string, in []domain.Object) ([][]domain.Object, error) {
	s, ok := r.streams[name]
	if !ok {
		return nil, domain.Errorf("unknown stream %s", name)
	}
	if len(in) != len(s.Inputs) {
		return nil, domain.Errorf("stream %s expects %d inputs, got %d", name, len(s.Inputs), len(in))
	}
	switch s.Shape {
	case ShapeFn:
		out, err := s.Fn(ctx, in)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, &InvocationError{Stream: name, Inputs: in}
		}
		return [][]domain.Object{out}, nil
	case ShapeList:
		tuples, err := s.List(ctx, in)
		if err != nil {
			return nil, err
		}
		if len(tuples) == 0 {
			return nil, &InvocationError{Stream: name, Inputs: in}
		}
		return tuples, nil
	case ShapeTest:
		pass, err := s.Test(ctx, in)
		if err != nil {
			return nil, err
		}
		if !pass {
			return nil, &InvocationError{Stream: name, Inputs: in}
		}
		return [][]domain.Object{{}}, nil
	case ShapeGen:
		return nil, domain.Errorf("stream %s is a generator, use Open", name)
	}
	return nil, domain.Errorf("stream %s: unknown shape", name)
}

// Open starts pulling from a stream lazily. Non-generator shapes are
// adapted into a generator over their eager results.
func (r *Registry) Open(ctx context.Context, name string, in []domain.Object) (Generator, error) {
	s, ok := r.streams[name]
	if !ok {
		return nil, domain.Errorf("unknown stream %s", name)
	}
	if len(in) != len(s.Inputs) {
		return nil, domain.Errorf("stream %s expects %d inputs, got %d", name, len(s.Inputs), len(in))
	}
	if s.Shape == ShapeGen {
		return s.Gen(ctx, in), nil
	}
	tuples, err := r.Invoke(ctx, name, in)
	if err != nil {
		return nil, err
	}
	return &sliceGenerator{tuples: tuples}, nil
}

// Certified instantiates the graph atoms a produced tuple asserts true.
func (r *Registry) Certified(name string, in, out []domain.Object) ([]domain.Atom, error) {
	s, ok := r.streams[name]
	if !ok {
		return nil, domain.Errorf("unknown stream %s", name)
	}
	return s.GraphAtoms(in, out), nil
}

// Optimistic returns placeholder outputs for an invocation, per the
// stream's bound policy, together with the graph atoms over them.
func (r *Registry) Optimistic(name string, in []domain.Object) ([]domain.Object, []domain.Atom, error) {
	s, ok := r.streams[name]
	if !ok {
		return nil, nil, domain.Errorf("unknown stream %s", name)
	}
	if s.Bound == nil {
		return nil, nil, domain.Errorf("stream %s has no bound policy", name)
	}
	kinds, err := s.OutputKinds()
	if err != nil {
		return nil, nil, err
	}
	out := s.Bound.Bind(s.Name, in, s.Outputs, kinds)
	return out, s.GraphAtoms(in, out), nil
}

type sliceGenerator struct {
	tuples [][]domain.Object
	next   int
}

func (g *sliceGenerator) Next(context.Context) ([]domain.Object, bool, error) {
	if g.next >= len(g.tuples) {
		return nil, false, nil
	}
	out := g.tuples[g.next]
	g.next++
	return out, true, nil
}
