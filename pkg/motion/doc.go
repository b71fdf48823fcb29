/*
Package motion holds the continuously-valued quantities of a
task-and-motion planning problem: rigid poses, robot configurations,
grasps and trajectories.

Every type implements domain.Object so it can ground a symbolic atom
directly. Values are identity objects: each constructor assigns a fresh
unique name, mirroring how sampled poses and trajectories are distinct
candidates even when numerically equal.
*/
package motion
