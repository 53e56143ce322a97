// Package dynamo is the physics core: circular bodies integrated under
// gravity and air friction, and a simulation that steps them and resolves
// pairwise elastic collisions.
//
//   - [Body]: physical state of one circle
//   - [Constants]: global gravity and terminal velocity
//   - [Simulation]: ordered body collection advanced one [Simulation.Tick] at a time
//   - [Ensemble]: independent simulations run in parallel
//
// # Example
//
//	s, _ := dynamo.NewSimulation(dynamo.DefaultConstants())
//	s.Spawn(dynamo.DefaultSpawn(vmath.V(500, 500)))
//	result, _ := s.Run(ctx, 600, dynamo.RunOptions{Record: true})
//
// # Thread Safety
//
// A Simulation is stepped from one goroutine. [Simulation.RequestSpawn] is the
// only method safe to call concurrently; requests are applied at the start of
// the next tick.
package dynamo
