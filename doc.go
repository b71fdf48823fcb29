/*
Package gantry is a task-and-motion planning core. It compiles a
scenario and a simulator snapshot into a symbolic planning problem with
streams, hands the problem to an external solver, compiles the solved
plan into simulator commands, and replays them while maintaining rigid
attachments.

The search algorithm, the samplers and the physics backend are ports;
the pkg/adapters tree provides in-process defaults good enough for tests
and demos.

Basic usage:

	sc, _ := scenario.Builtin("cleaning")
	sim, _ := memory.FromScenario(sc)
	sc.Samplers = memory.Samplers(sim, sc)

	eng, _ := gantry.New(
		gantry.WithSimulator(sim),
		gantry.WithSolver(gantry.NominalSolver(sc)),
	)
	res, _ := eng.Run(ctx, sc, gantry.RunOptions{Visualize: true})
*/
package gantry
