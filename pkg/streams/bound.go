package streams

import (
	"strings"
	"sync/atomic"

	"github.com/aretw0/gantry/pkg/domain"
)

// BoundPolicy governs the identity of optimistic placeholder objects: the
// values standing in for as-yet-unverified stream outputs during search.
// Sharing placeholders across invocations with identical inputs prevents
// unbounded duplication of equivalent candidates across search branches.
type BoundPolicy interface {
	// Bind returns one placeholder per output variable for the given
	// stream and input tuple.
	Bind(stream string, inputs []domain.Object, outputs []domain.Variable, kinds []domain.Kind) []domain.Object
}

var optSeq atomic.Uint64

// Optimistic is a placeholder object produced by a bound policy.
type Optimistic struct {
	domain.TermMarker
	name   string
	kind   domain.Kind
	Stream string
}

var _ domain.Object = (*Optimistic)(nil)

// NewOptimistic mints a fresh placeholder for a stream output.
func NewOptimistic(stream string, kind domain.Kind) *Optimistic {
	return &Optimistic{
		name:   "#" + string(kind) + itoa(optSeq.Add(1)),
		kind:   kind,
		Stream: stream,
	}
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Name returns the placeholder's unique identity.
func (o *Optimistic) Name() string { return o.name }

// Kind returns the kind inferred from the stream's graph atoms.
func (o *Optimistic) Kind() domain.Kind { return o.kind }

func (o *Optimistic) String() string { return o.name }

// SharedBound memoizes placeholders by (stream, input tuple): repeated
// calls with identical inputs return the same placeholder identities.
// This is the interning policy the external solver relies on for
// soundness and termination.
type SharedBound struct {
	cache map[string][]domain.Object
}

// NewSharedBound creates an empty interning policy.
func NewSharedBound() *SharedBound {
	return &SharedBound{cache: make(map[string][]domain.Object)}
}

// Bind returns the cached placeholders for this key, minting them on
// first use.
func (s *SharedBound) Bind(stream string, inputs []domain.Object, outputs []domain.Variable, kinds []domain.Kind) []domain.Object {
	key := boundKey(stream, inputs)
	if cached, ok := s.cache[key]; ok {
		return cached
	}
	out := mint(stream, outputs, kinds)
	s.cache[key] = out
	return out
}

// UniqueBound mints fresh placeholders on every call.
type UniqueBound struct{}

// Bind returns new placeholders regardless of prior calls.
func (UniqueBound) Bind(stream string, inputs []domain.Object, outputs []domain.Variable, kinds []domain.Kind) []domain.Object {
	return mint(stream, outputs, kinds)
}

func mint(stream string, outputs []domain.Variable, kinds []domain.Kind) []domain.Object {
	out := make([]domain.Object, len(outputs))
	for i := range outputs {
		kind := domain.Kind("obj")
		if i < len(kinds) {
			kind = kinds[i]
		}
		out[i] = NewOptimistic(stream, kind)
	}
	return out
}

func boundKey(stream string, inputs []domain.Object) string {
	var b strings.Builder
	b.WriteString(stream)
	for _, o := range inputs {
		b.WriteByte('|')
		b.WriteString(o.Name())
	}
	return b.String()
}
