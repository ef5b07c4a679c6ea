// Package sandbox runs the particle sandbox one tick at a time.
//
// A [Loop] owns the physics engine, the particle store and the framebuffer.
// Each call to [Loop.Tick] applies the input events of that tick, advances
// the engine once, copies body transforms into the particles, draws the
// frame and hands it to a [Surface]:
//
//	loop, err := sandbox.New(cfg, surface)
//	if err != nil {
//		return err
//	}
//	return loop.Run(ctx, source)
//
// An Exit event ends the tick before the engine steps. A Pause event only
// flips the flag reported by [Loop.Paused]; the engine keeps stepping.
//
// # Thread Safety
//
// A Loop is not safe for concurrent use. [Loop.Run] blocks only inside
// [EventSource.Next]; everything else happens on the calling goroutine.
package sandbox
