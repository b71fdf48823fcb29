package motion

import "github.com/aretw0/gantry/pkg/domain"

// Trajectory is an ordered, finite sequence of configurations. It is
// plain data; stepping through it is owned by the command executor, and
// a trajectory is not reused after a successful replay.
type Trajectory struct {
	domain.TermMarker
	name string
	Path []*Conf
}

var _ domain.Object = (*Trajectory)(nil)

// NewTrajectory creates a trajectory over the given configurations.
func NewTrajectory(path ...*Conf) *Trajectory {
	return &Trajectory{name: nextName("t"), Path: path}
}

// Reverse returns a time-reversed copy. Reversing twice yields a
// trajectory whose path is pointwise equal to the original, in order.
func (t *Trajectory) Reverse() *Trajectory {
	rev := make([]*Conf, len(t.Path))
	for i, c := range t.Path {
		rev[len(t.Path)-1-i] = c
	}
	return &Trajectory{name: nextName("t"), Path: rev}
}

// Name returns the trajectory's unique identity.
func (t *Trajectory) Name() string { return t.name }

// Kind returns domain.KindTraj.
func (t *Trajectory) Kind() domain.Kind { return domain.KindTraj }

func (t *Trajectory) String() string { return t.name }
