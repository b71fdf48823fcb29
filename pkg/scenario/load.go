package scenario

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/gantry/pkg/motion"
)

// fileScenario is the on-disk YAML shape. Decoded loosely first, then
// mapped onto the typed form so unknown keys fail loudly.
type fileScenario struct {
	Name     string               `mapstructure:"name"`
	Robot    string               `mapstructure:"robot"`
	Arms     []string             `mapstructure:"arms"`
	ArmLinks map[string]string    `mapstructure:"arm_links"`
	Movable  []string             `mapstructure:"movable"`
	Surfaces []string             `mapstructure:"surfaces"`
	Sinks    []string             `mapstructure:"sinks"`
	Stoves   []string             `mapstructure:"stoves"`
	Poses    map[string]filePose  `mapstructure:"poses"`
	Goal     fileGoal             `mapstructure:"goal"`
}

type filePose struct {
	Point [3]float64  `mapstructure:"point"`
	Quat  *[4]float64 `mapstructure:"quat"`
}

type fileGoal struct {
	Holding []fileHolding `mapstructure:"holding"`
	On      []fileOn      `mapstructure:"on"`
	Cleaned []string      `mapstructure:"cleaned"`
	Cooked  []string      `mapstructure:"cooked"`
}

type fileHolding struct {
	Arm  string `mapstructure:"arm"`
	Body string `mapstructure:"body"`
}

type fileOn struct {
	Body    string `mapstructure:"body"`
	Surface string `mapstructure:"surface"`
}

// Load reads a scenario from a YAML file. Samplers are not serializable
// and must be attached by the caller before solving.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scenario document.
func Parse(data []byte) (*Scenario, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse scenario yaml: %w", err)
	}

	var fs fileScenario
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &fs,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid scenario document: %w", err)
	}

	s := &Scenario{
		Name:         fs.Name,
		Robot:        motion.BodyID(fs.Robot),
		Arms:         fs.Arms,
		ArmLinks:     fs.ArmLinks,
		Movable:      bodies(fs.Movable),
		Surfaces:     bodies(fs.Surfaces),
		Sinks:        bodies(fs.Sinks),
		Stoves:       bodies(fs.Stoves),
		InitialPoses: make(map[motion.BodyID]*motion.Pose, len(fs.Poses)),
	}
	for name, fp := range fs.Poses {
		quat := motion.QuatIdentity
		if fp.Quat != nil {
			quat = motion.Quat(*fp.Quat)
		}
		body := motion.BodyID(name)
		s.InitialPoses[body] = motion.NewPose(body, motion.Point(fp.Point), quat)
	}
	for _, h := range fs.Goal.Holding {
		s.Goal.Holding = append(s.Goal.Holding, HoldingGoal{Arm: h.Arm, Body: motion.BodyID(h.Body)})
	}
	for _, on := range fs.Goal.On {
		s.Goal.On = append(s.Goal.On, OnGoal{Body: motion.BodyID(on.Body), Surface: motion.BodyID(on.Surface)})
	}
	s.Goal.Cleaned = bodies(fs.Goal.Cleaned)
	s.Goal.Cooked = bodies(fs.Goal.Cooked)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func bodies(names []string) []motion.BodyID {
	if len(names) == 0 {
		return nil
	}
	out := make([]motion.BodyID, len(names))
	for i, n := range names {
		out[i] = motion.BodyID(n)
	}
	return out
}
