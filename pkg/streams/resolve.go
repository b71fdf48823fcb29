package streams

import "github.com/aretw0/gantry/pkg/domain"

// Resolve substitutes verified concrete objects for placeholders across
// atoms, keyed by placeholder name. Atoms without placeholders pass
// through unchanged. This is the resolution pass that follows optimistic
// instantiation.
func Resolve(atoms []domain.Atom, table map[string]domain.Object) []domain.Atom {
	out := make([]domain.Atom, len(atoms))
	for i, a := range atoms {
		args := make([]domain.Term, len(a.Args))
		for j, t := range a.Args {
			args[j] = resolveTerm(t, table)
		}
		out[i] = domain.Atom{Pred: a.Pred, Args: args}
	}
	return out
}

// ResolvePlan substitutes placeholders in a plan's argument tuples.
func ResolvePlan(plan []domain.Step, table map[string]domain.Object) []domain.Step {
	out := make([]domain.Step, len(plan))
	for i, step := range plan {
		args := make([]domain.Object, len(step.Args))
		for j, o := range step.Args {
			if r, ok := table[o.Name()]; ok {
				args[j] = r
			} else {
				args[j] = o
			}
		}
		out[i] = domain.Step{Action: step.Action, Args: args}
	}
	return out
}

func resolveTerm(t domain.Term, table map[string]domain.Object) domain.Term {
	if o, ok := t.(domain.Object); ok {
		if r, found := table[o.Name()]; found {
			return r
		}
	}
	return t
}
