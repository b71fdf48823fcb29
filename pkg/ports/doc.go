/*
Package ports defines the driven ports (interfaces) of the planning
core.

These interfaces decouple the core from its external collaborators: the
search algorithm (Solver), the physics/geometry backend (Simulator), and
report persistence (PlanStore). The sampling generators behind each
stream are typed in pkg/streams, since their shapes are part of the
stream contract itself.
*/
package ports
