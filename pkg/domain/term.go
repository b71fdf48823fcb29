package domain

// Kind classifies the objects a predicate slot accepts.
type Kind string

const (
	KindArm   Kind = "arm"
	KindBody  Kind = "body"
	KindPose  Kind = "pose"
	KindGrasp Kind = "grasp"
	KindConf  Kind = "conf"
	KindTraj  Kind = "traj"
)

// Term is either a Variable or a concrete Object.
type Term interface {
	term()
}

// TermMarker satisfies Term for Object implementations declared outside
// this package. Embed it as the first field of the implementing struct.
type TermMarker struct{}

func (TermMarker) term() {}

// Variable is a named placeholder in an action, axiom or stream schema,
// conventionally written with a leading question mark ("?o").
type Variable string

func (Variable) term() {}

// Object is a concrete value an atom can be grounded with. Identity is
// carried by Name: two objects with the same name are the same object.
type Object interface {
	Term
	Name() string
	Kind() Kind
}

// Symbol is a plain named object, such as an arm or a simulator body.
type Symbol struct {
	name string
	kind Kind
}

// Sym creates a named symbol of the given kind.
func Sym(name string, kind Kind) Symbol {
	return Symbol{name: name, kind: kind}
}

func (Symbol) term() {}

// Name returns the symbol's unique name.
func (s Symbol) Name() string { return s.name }

// Kind returns the symbol's kind.
func (s Symbol) Kind() Kind { return s.kind }

func (s Symbol) String() string { return s.name }

// Binding maps schema variables to the objects they are grounded with.
type Binding map[Variable]Object

// Clone returns an independent copy of the binding.
func (b Binding) Clone() Binding {
	nb := make(Binding, len(b))
	for k, v := range b {
		nb[k] = v
	}
	return nb
}
