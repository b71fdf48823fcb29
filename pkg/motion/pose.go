package motion

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/aretw0/gantry/pkg/domain"
)

// BodyID identifies a simulator body.
type BodyID string

// Point is a position in world or parent-frame coordinates.
type Point [3]float64

// Quat is a unit quaternion in (x, y, z, w) order.
type Quat [4]float64

// QuatIdentity is the no-rotation quaternion.
var QuatIdentity = Quat{0, 0, 0, 1}

var seq atomic.Uint64

func nextName(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, seq.Add(1))
}

// Pose is a rigid transform attached to a body.
type Pose struct {
	domain.TermMarker
	name  string
	Body  BodyID
	Point Point
	Quat  Quat
}

var _ domain.Object = (*Pose)(nil)

// NewPose creates a pose value for a body. Each call yields a distinct
// identity even for equal coordinates.
func NewPose(body BodyID, point Point, quat Quat) *Pose {
	return &Pose{name: nextName("p"), Body: body, Point: point, Quat: quat}
}

// Name returns the pose's unique identity.
func (p *Pose) Name() string { return p.name }

// Kind returns domain.KindPose.
func (p *Pose) Kind() domain.Kind { return domain.KindPose }

func (p *Pose) String() string { return p.name }

// Compose returns this pose followed by o, i.e. o expressed through
// this transform. The result is attached to o's body.
func (p *Pose) Compose(o *Pose) *Pose {
	return &Pose{
		name:  nextName("p"),
		Body:  o.Body,
		Point: add(p.Point, rotate(p.Quat, o.Point)),
		Quat:  quatMul(p.Quat, o.Quat),
	}
}

// Invert returns the inverse transform, attached to the same body.
func (p *Pose) Invert() *Pose {
	qi := conjugate(p.Quat)
	t := rotate(qi, p.Point)
	return &Pose{
		name:  nextName("p"),
		Body:  p.Body,
		Point: Point{-t[0], -t[1], -t[2]},
		Quat:  qi,
	}
}

// ApproxEqual reports whether two poses coincide within tol, comparing
// positions componentwise and rotations up to sign.
func (p *Pose) ApproxEqual(o *Pose, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(p.Point[i]-o.Point[i]) > tol {
			return false
		}
	}
	dot := p.Quat[0]*o.Quat[0] + p.Quat[1]*o.Quat[1] + p.Quat[2]*o.Quat[2] + p.Quat[3]*o.Quat[3]
	return math.Abs(math.Abs(dot)-1) <= tol
}

func add(a, b Point) Point {
	return Point{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func cross(a, b Point) Point {
	return Point{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// rotate applies a unit quaternion to a vector.
func rotate(q Quat, v Point) Point {
	u := Point{q[0], q[1], q[2]}
	t := cross(u, v)
	t = Point{2 * t[0], 2 * t[1], 2 * t[2]}
	return add(add(v, Point{q[3] * t[0], q[3] * t[1], q[3] * t[2]}), cross(u, t))
}

func quatMul(a, b Quat) Quat {
	return Quat{
		a[3]*b[0] + a[0]*b[3] + a[1]*b[2] - a[2]*b[1],
		a[3]*b[1] - a[0]*b[2] + a[1]*b[3] + a[2]*b[0],
		a[3]*b[2] + a[0]*b[1] - a[1]*b[0] + a[2]*b[3],
		a[3]*b[3] - a[0]*b[0] - a[1]*b[1] - a[2]*b[2],
	}
}

func conjugate(q Quat) Quat {
	return Quat{-q[0], -q[1], -q[2], q[3]}
}

// Grasp is the pose of a body expressed in the frame of the gripper link
// that carries it.
type Grasp struct {
	domain.TermMarker
	name   string
	Body   BodyID
	Offset *Pose
}

var _ domain.Object = (*Grasp)(nil)

// NewGrasp creates a grasp candidate for a body.
func NewGrasp(body BodyID, offset *Pose) *Grasp {
	return &Grasp{name: nextName("g"), Body: body, Offset: offset}
}

// Name returns the grasp's unique identity.
func (g *Grasp) Name() string { return g.name }

// Kind returns domain.KindGrasp.
func (g *Grasp) Kind() domain.Kind { return domain.KindGrasp }

func (g *Grasp) String() string { return g.name }
