// Package tui drives a sandbox [sandbox.Loop] from a terminal.
//
// Each terminal cell shows two arena samples stacked vertically with the
// upper half block '▀': the foreground carries the upper sample, the
// background the lower one. The arena is downsampled uniformly so that
// particles keep their aspect ratio.
//
// Mouse support requires a terminal that reports cell motion. Holding the
// left button paints with the current brush on every tick.
package tui
