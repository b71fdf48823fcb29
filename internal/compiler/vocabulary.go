// Package compiler builds concrete planning problems from live simulator
// state and compiles solved plans into simulator commands.
package compiler

import "github.com/aretw0/gantry/pkg/domain"

// Schema variables shared by the action, axiom and stream definitions.
const (
	varArm    = domain.Variable("?a")
	varObj    = domain.Variable("?o")
	varObj2   = domain.Variable("?o2")
	varPose   = domain.Variable("?p")
	varGrasp  = domain.Variable("?g")
	varBQ     = domain.Variable("?q")
	varBQ2    = domain.Variable("?q2")
	varArmTr  = domain.Variable("?at")
	varBaseTr = domain.Variable("?bt")
)

// Vocabulary is the fixed predicate set of the manipulation domain. It
// is built fresh per problem; nothing is registered globally.
type Vocabulary struct {
	// Type predicates.
	IsArm     *domain.Predicate
	IsMovable *domain.Predicate
	Stackable *domain.Predicate

	// Certified predicates, produced by streams.
	IsPose      *domain.Predicate
	IsSupported *domain.Predicate
	IsGrasp     *domain.Predicate
	IsBConf     *domain.Predicate
	IsArmTraj   *domain.Predicate
	IsBaseTraj  *domain.Predicate
	IsKin       *domain.Predicate
	IsReachable *domain.Predicate
	IsMotion    *domain.Predicate

	// Fluent predicates, changed by action effects.
	AtPose    *domain.Predicate
	AtBConf   *domain.Predicate
	HandEmpty *domain.Predicate
	HasGrasp  *domain.Predicate
	CanMove   *domain.Predicate
	Cleaned   *domain.Predicate
	Cooked    *domain.Predicate
	Washer    *domain.Predicate
	Stove     *domain.Predicate

	// Derived predicates, recomputed by axioms. Unsafe has no defining
	// axiom in this vocabulary; it exists for collision certifiers to
	// extend and therefore never holds here.
	Holding *domain.Predicate
	On      *domain.Predicate
	Unsafe  *domain.Predicate

	// TotalCost is the objective fluent.
	TotalCost *domain.Fluent
}

// NewVocabulary declares the fixed predicate set.
func NewVocabulary() *Vocabulary {
	arm, body := domain.KindArm, domain.KindBody
	pose, grasp := domain.KindPose, domain.KindGrasp
	conf, traj := domain.KindConf, domain.KindTraj

	return &Vocabulary{
		IsArm:     domain.NewPredicate("is_arm", arm),
		IsMovable: domain.NewPredicate("is_movable", body),
		Stackable: domain.NewPredicate("stackable", body, body),

		IsPose:      domain.NewPredicate("is_pose", body, pose),
		IsSupported: domain.NewPredicate("is_supported", pose, body),
		IsGrasp:     domain.NewPredicate("is_grasp", body, grasp),
		IsBConf:     domain.NewPredicate("is_bconf", conf),
		IsArmTraj:   domain.NewPredicate("is_arm_traj", traj),
		IsBaseTraj:  domain.NewPredicate("is_base_traj", traj),
		IsKin:       domain.NewPredicate("is_kin", arm, body, pose, grasp, conf, traj),
		IsReachable: domain.NewPredicate("is_reachable", conf),
		IsMotion:    domain.NewPredicate("is_motion", conf, conf, traj),

		AtPose:    domain.NewPredicate("at_pose", body, pose),
		AtBConf:   domain.NewPredicate("at_bconf", conf),
		HandEmpty: domain.NewPredicate("hand_empty", arm),
		HasGrasp:  domain.NewPredicate("has_grasp", arm, body, grasp),
		CanMove:   domain.NewPredicate("can_move"),
		Cleaned:   domain.NewPredicate("cleaned", body),
		Cooked:    domain.NewPredicate("cooked", body),
		Washer:    domain.NewPredicate("washer", body),
		Stove:     domain.NewPredicate("stove", body),

		Holding: domain.NewDerived("holding", arm, body),
		On:      domain.NewDerived("on", body, body),
		Unsafe:  domain.NewDerived("unsafe", traj),

		TotalCost: domain.NewFluent("total_cost"),
	}
}

// Predicates lists the full vocabulary.
func (v *Vocabulary) Predicates() []*domain.Predicate {
	return []*domain.Predicate{
		v.IsArm, v.IsMovable, v.Stackable,
		v.IsPose, v.IsSupported, v.IsGrasp, v.IsBConf, v.IsArmTraj,
		v.IsBaseTraj, v.IsKin, v.IsReachable, v.IsMotion,
		v.AtPose, v.AtBConf, v.HandEmpty, v.HasGrasp, v.CanMove,
		v.Cleaned, v.Cooked, v.Washer, v.Stove,
		v.Holding, v.On, v.Unsafe,
	}
}

// Model assembles and validates the immutable domain model: the five
// action schemas (flat cost of one unit per physical action) and the two
// derived-predicate axioms.
func (v *Vocabulary) Model() (*domain.Model, error) {
	a, o, o2 := domain.Term(varArm), domain.Term(varObj), domain.Term(varObj2)
	p, g := domain.Term(varPose), domain.Term(varGrasp)
	q, q2 := domain.Term(varBQ), domain.Term(varBQ2)
	at, bt := domain.Term(varArmTr), domain.Term(varBaseTr)

	actions := []domain.Action{
		{
			Name:   domain.ActionPick,
			Params: []domain.Variable{varArm, varObj, varPose, varGrasp, varBQ, varArmTr},
			Pre: []domain.Literal{
				domain.Pos(v.IsKin.Atom(a, o, p, g, q, at)),
				domain.Pos(v.HandEmpty.Atom(a)),
				domain.Pos(v.AtPose.Atom(o, p)),
				domain.Pos(v.AtBConf.Atom(q)),
				domain.Neg(v.Unsafe.Atom(at)),
			},
			Eff: []domain.Literal{
				domain.Pos(v.HasGrasp.Atom(a, o, g)),
				domain.Pos(v.CanMove.Atom()),
				domain.Neg(v.HandEmpty.Atom(a)),
				domain.Neg(v.AtPose.Atom(o, p)),
			},
			Cost: 1,
		},
		{
			Name:   domain.ActionPlace,
			Params: []domain.Variable{varArm, varObj, varPose, varGrasp, varBQ, varArmTr},
			Pre: []domain.Literal{
				domain.Pos(v.IsKin.Atom(a, o, p, g, q, at)),
				domain.Pos(v.HasGrasp.Atom(a, o, g)),
				domain.Pos(v.AtBConf.Atom(q)),
				domain.Neg(v.Unsafe.Atom(at)),
			},
			Eff: []domain.Literal{
				domain.Pos(v.HandEmpty.Atom(a)),
				domain.Pos(v.CanMove.Atom()),
				domain.Pos(v.AtPose.Atom(o, p)),
				domain.Neg(v.HasGrasp.Atom(a, o, g)),
			},
			Cost: 1,
		},
		{
			Name:   domain.ActionMove,
			Params: []domain.Variable{varBQ, varBQ2, varBaseTr},
			Pre: []domain.Literal{
				domain.Pos(v.IsMotion.Atom(q, q2, bt)),
				domain.Pos(v.CanMove.Atom()),
				domain.Pos(v.AtBConf.Atom(q)),
				domain.Neg(v.Unsafe.Atom(bt)),
			},
			Eff: []domain.Literal{
				domain.Pos(v.AtBConf.Atom(q2)),
				domain.Neg(v.CanMove.Atom()),
				domain.Neg(v.AtBConf.Atom(q)),
			},
			Cost: 1,
		},
		{
			Name:   domain.ActionClean,
			Params: []domain.Variable{varObj, varObj2},
			Pre: []domain.Literal{
				domain.Pos(v.Stackable.Atom(o, o2)),
				domain.Pos(v.Washer.Atom(o2)),
				domain.Neg(v.Cooked.Atom(o)),
				domain.Pos(v.On.Atom(o, o2)),
			},
			Eff: []domain.Literal{
				domain.Pos(v.Cleaned.Atom(o)),
			},
		},
		{
			Name:   domain.ActionCook,
			Params: []domain.Variable{varObj, varObj2},
			Pre: []domain.Literal{
				domain.Pos(v.Stackable.Atom(o, o2)),
				domain.Pos(v.Stove.Atom(o2)),
				domain.Pos(v.Cleaned.Atom(o)),
				domain.Pos(v.On.Atom(o, o2)),
			},
			Eff: []domain.Literal{
				domain.Pos(v.Cooked.Atom(o)),
				domain.Neg(v.Cleaned.Atom(o)),
			},
		},
	}

	axioms := []domain.Axiom{
		{
			Params: []domain.Variable{varArm, varObj, varGrasp},
			Pre: []domain.Literal{
				domain.Pos(v.IsArm.Atom(a)),
				domain.Pos(v.IsGrasp.Atom(o, g)),
				domain.Pos(v.HasGrasp.Atom(a, o, g)),
			},
			Eff: v.Holding.Atom(a, o),
		},
		{
			Params: []domain.Variable{varObj, varPose, varObj2},
			Pre: []domain.Literal{
				domain.Pos(v.IsPose.Atom(o, p)),
				domain.Pos(v.IsSupported.Atom(p, o2)),
				domain.Pos(v.AtPose.Atom(o, p)),
			},
			Eff: v.On.Atom(o, o2),
		},
	}

	m := &domain.Model{
		Predicates: v.Predicates(),
		Actions:    actions,
		Axioms:     axioms,
		Cost:       v.TotalCost,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
