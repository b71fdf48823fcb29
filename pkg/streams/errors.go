package streams

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/gantry/pkg/domain"
)

// ErrNoCandidate signals that a sampler produced nothing for an input
// tuple. It is absorbed by the external solver as "no solution via this
// branch" and must never propagate out of the planning core.
var ErrNoCandidate = errors.New("no candidate")

// InvocationError wraps ErrNoCandidate with the failing stream and
// inputs.
type InvocationError struct {
	Stream string
	Inputs []domain.Object
}

func (e *InvocationError) Error() string {
	names := make([]string, len(e.Inputs))
	for i, o := range e.Inputs {
		names[i] = o.Name()
	}
	return fmt.Sprintf("stream %s(%s): no candidate", e.Stream, strings.Join(names, ", "))
}

func (e *InvocationError) Unwrap() error { return ErrNoCandidate }
