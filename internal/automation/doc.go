// Package automation scripts sandbox input for headless runs.
//
// A [Scenario] lists steps keyed by tick. A [Player] turns it into a
// [sandbox.EventSource] so that a loop can be benchmarked or replayed
// without a window:
//
//	name: pour
//	ticks: 600
//	steps:
//	  - {at: 0, action: select, material: STNE}
//	  - {at: 0, repeat: 50, action: spawn, x: 100, y: 300, dx: 4}
//	  - {at: 60, action: select, material: URAN}
//	  - {at: 60, repeat: 300, action: spawn, x: 200, y: 10}
//
// Actions are spawn, select, pause, clear and exit. Spawn positions are in
// arena pixels and advance by (dx, dy) on each repetition.
package automation
