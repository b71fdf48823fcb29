/*
Package domain defines the symbolic vocabulary of a task-and-motion
planning problem: predicates, grounded atoms, action schemas with signed
preconditions and effects, derived predicates (axioms), and the
non-decreasing cost fluent.

Everything here is pure data plus validation. The vocabulary is assembled
into an immutable Model once per problem and passed by reference into
every consuming component; there is no process-wide registration state.

Continuous values (poses, configurations, trajectories) live in
pkg/motion and plug into this package through the Object interface, so an
Atom can be grounded with a trajectory exactly as it is grounded with a
named body.
*/
package domain
