// Package gui presents a sandbox in a raylib window.
//
// The arena is uploaded to a texture once per frame and drawn scaled by
// the configured integer factor. Input is polled between frames: the left
// mouse button paints, Escape or Q exits, Space toggles pause, C clears
// and the keys 1 through 6 pick a material.
//
// raylib requires every call to come from the main OS thread. Run must be
// called from main.
package gui
