package motion

import "github.com/aretw0/gantry/pkg/domain"

// Conf is a configuration of a body: a base pose, joint positions, or
// both.
type Conf struct {
	domain.TermMarker
	name   string
	Body   BodyID
	Pose   *Pose
	Joints []float64
}

var _ domain.Object = (*Conf)(nil)

// NewBaseConf creates a base configuration placing the body at a pose.
func NewBaseConf(body BodyID, pose *Pose) *Conf {
	return &Conf{name: nextName("q"), Body: body, Pose: pose}
}

// NewJointConf creates a joint-space configuration for a body.
func NewJointConf(body BodyID, joints ...float64) *Conf {
	return &Conf{name: nextName("q"), Body: body, Joints: joints}
}

// Name returns the configuration's unique identity.
func (c *Conf) Name() string { return c.name }

// Kind returns domain.KindConf.
func (c *Conf) Kind() domain.Kind { return domain.KindConf }

func (c *Conf) String() string { return c.name }
