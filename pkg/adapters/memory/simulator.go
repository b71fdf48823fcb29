// Package memory provides in-process adapters: a purely kinematic
// simulator, naive samplers backing the stream set, and a report store.
// It is the default backend for tests and the CLI; a physics engine
// plugs in through the same ports.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/gantry/pkg/motion"
	"github.com/aretw0/gantry/pkg/scenario"
)

type bodyState struct {
	pose    *motion.Pose
	joints  []float64
	cleaned bool
	cooked  bool
}

// Simulator is a kinematic world model. Bodies teleport; nothing
// collides, falls, or fails. It satisfies ports.Simulator and is safe
// for concurrent reads, though a replay should own it exclusively.
type Simulator struct {
	mu     sync.RWMutex
	bodies map[motion.BodyID]*bodyState
	links  map[motion.BodyID]map[string]*motion.Pose
	ticks  int
	syncs  int
}

// NewSimulator creates an empty world.
func NewSimulator() *Simulator {
	return &Simulator{
		bodies: make(map[motion.BodyID]*bodyState),
		links:  make(map[motion.BodyID]map[string]*motion.Pose),
	}
}

// FromScenario builds a world seeded with the scenario's initial poses
// and a gripper link per arm.
func FromScenario(sc *scenario.Scenario) (*Simulator, error) {
	if len(sc.InitialPoses) == 0 {
		return nil, fmt.Errorf("scenario %s carries no initial poses", sc.Name)
	}
	sim := NewSimulator()
	for body, pose := range sc.InitialPoses {
		sim.AddBody(body, pose)
	}
	for _, link := range sc.ArmLinks {
		// Gripper hangs ahead of and above the base origin.
		sim.AddLink(sc.Robot, link, motion.NewPose(sc.Robot, motion.Point{0.4, 0, 0.9}, motion.QuatIdentity))
	}
	if _, ok := sim.bodies[sc.Robot]; !ok {
		return nil, fmt.Errorf("scenario %s has no initial pose for robot %s", sc.Name, sc.Robot)
	}
	return sim, nil
}

// AddBody registers a body at an initial pose.
func (s *Simulator) AddBody(body motion.BodyID, pose *motion.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[body] = &bodyState{pose: pose}
}

// AddLink registers a named link on a body as a fixed offset from the
// body frame.
func (s *Simulator) AddLink(body motion.BodyID, link string, offset *motion.Pose) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.links[body] == nil {
		s.links[body] = make(map[string]*motion.Pose)
	}
	s.links[body][link] = offset
}

func (s *Simulator) body(body motion.BodyID) (*bodyState, error) {
	st, ok := s.bodies[body]
	if !ok {
		return nil, fmt.Errorf("unknown body %s", body)
	}
	return st, nil
}

// BodyPose returns the current world pose of a body.
func (s *Simulator) BodyPose(_ context.Context, body motion.BodyID) (*motion.Pose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, err := s.body(body)
	if err != nil {
		return nil, err
	}
	return st.pose, nil
}

// SetBodyPose teleports a body.
func (s *Simulator) SetBodyPose(_ context.Context, body motion.BodyID, pose *motion.Pose) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.body(body)
	if err != nil {
		return err
	}
	st.pose = pose
	return nil
}

// ApplyConf drives a body to a configuration. Base poses teleport the
// body; joint values are recorded as-is.
func (s *Simulator) ApplyConf(_ context.Context, conf *motion.Conf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.body(conf.Body)
	if err != nil {
		return err
	}
	if conf.Pose != nil {
		st.pose = conf.Pose
	}
	if conf.Joints != nil {
		st.joints = append([]float64(nil), conf.Joints...)
	}
	return nil
}

// LinkPose composes the body pose with the link's fixed offset.
func (s *Simulator) LinkPose(_ context.Context, body motion.BodyID, link string) (*motion.Pose, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, err := s.body(body)
	if err != nil {
		return nil, err
	}
	offset, ok := s.links[body][link]
	if !ok {
		return nil, fmt.Errorf("body %s has no link %s", body, link)
	}
	return st.pose.Compose(offset), nil
}

// MarkClean applies the one-shot cleaned effect.
func (s *Simulator) MarkClean(_ context.Context, body motion.BodyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.body(body)
	if err != nil {
		return err
	}
	st.cleaned = true
	return nil
}

// MarkCooked applies the one-shot cooked effect.
func (s *Simulator) MarkCooked(_ context.Context, body motion.BodyID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.body(body)
	if err != nil {
		return err
	}
	st.cooked = true
	return nil
}

// Sync is a no-op for the kinematic world beyond counting.
func (s *Simulator) Sync(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncs++
	return nil
}

// Step advances the tick counter; there is no physics to integrate.
func (s *Simulator) Step(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticks++
	return nil
}

// Cleaned reports whether a body has been cleaned.
func (s *Simulator) Cleaned(body motion.BodyID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.bodies[body]
	return ok && st.cleaned
}

// Cooked reports whether a body has been cooked.
func (s *Simulator) Cooked(body motion.BodyID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.bodies[body]
	return ok && st.cooked
}

// Ticks returns the number of simulation steps taken.
func (s *Simulator) Ticks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}
