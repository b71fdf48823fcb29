package domain

import "time"

// Problem is a fully compiled planning instance: initial atoms, goal
// literals, the vocabulary, and the objective fluent to minimize.
type Problem struct {
	Initial   *State
	Goal      []Literal
	Model     *Model
	Objective *Fluent
}

// Validate checks that the goal is ground and well-typed.
func (p *Problem) Validate() error {
	for _, l := range p.Goal {
		if err := l.Atom.Validate(); err != nil {
			return err
		}
		if !l.Atom.Ground() {
			return Errorf("goal literal %s is not ground", l)
		}
	}
	return p.Model.Validate()
}

// GoalSatisfied reports whether the goal holds in the given state.
func (p *Problem) GoalSatisfied(s *State) bool {
	return s.Satisfies(p.Goal, p.Model.Axioms)
}

// Report summarizes one solve invocation for logging, storage and the
// HTTP surface.
type Report struct {
	ID          string        `json:"id"`
	Scenario    string        `json:"scenario"`
	Solved      bool          `json:"solved"`
	Plan        []string      `json:"plan,omitempty"`
	Length      int           `json:"length"`
	Cost        float64       `json:"cost"`
	Evaluations int           `json:"evaluations"`
	Elapsed     time.Duration `json:"elapsed"`
}
