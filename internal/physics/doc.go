// Package physics wraps a Chipmunk2D space behind a handle-based facade.
//
// The sandbox only needs a narrow contract from the engine:
//
//   - [World.CreateBody]: register a body and its collider
//   - [World.RemoveBody]: free them again
//   - [World.Step]: advance every dynamic body by one tick
//   - [World.ReadTransform], [World.ReadVelocity]: query the result
//
// Collision detection, the contact solver and sleeping all stay inside
// github.com/jakecoffman/cp. Handles are opaque, monotonic and never reused,
// so a handle that was removed can never alias a newer body.
//
// # Boundaries
//
// [New] adds three static colliders (ground, left wall, right wall) as thick
// boxes just outside the arena. They have elasticity 1; Chipmunk multiplies
// the elasticities of the two touching shapes, so a particle bounces exactly
// as much as its own restitution allows.
//
// # Thread Safety
//
// World instances are NOT thread-safe. The sandbox loop owns its world.
package physics
