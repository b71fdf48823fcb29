package ports

import (
	"context"

	"github.com/aretw0/gantry/pkg/motion"
)

// Simulator is the physics/geometry backend the core reads state from
// and replays commands against. During a replay the executor holds
// exclusive, blocking ownership of the simulator; no other component may
// touch it until the replay ends.
type Simulator interface {
	// BodyPose reads the current world pose of a body.
	BodyPose(ctx context.Context, body motion.BodyID) (*motion.Pose, error)

	// SetBodyPose teleports a body to a world pose.
	SetBodyPose(ctx context.Context, body motion.BodyID, pose *motion.Pose) error

	// ApplyConf drives a body to a configuration (base pose, joints, or
	// both).
	ApplyConf(ctx context.Context, conf *motion.Conf) error

	// LinkPose reads the current world pose of a named link on a body.
	LinkPose(ctx context.Context, body motion.BodyID, link string) (*motion.Pose, error)

	// MarkClean applies the one-shot cleaned effect to a body.
	MarkClean(ctx context.Context, body motion.BodyID) error

	// MarkCooked applies the one-shot cooked effect to a body.
	MarkCooked(ctx context.Context, body motion.BodyID) error

	// Sync refreshes cached object state after an attachment move.
	Sync(ctx context.Context) error

	// Step advances the physics clock by one tick.
	Step(ctx context.Context) error
}
