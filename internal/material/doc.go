// Package material is the catalog of particle materials.
//
// Each [Variant] maps to a fixed [Params] row describing the collider shape,
// mass, restitution, friction and mobility of particles made of it:
//
//   - [Wood], [Stone], [C4]: static, infinite mass, used as anchors
//   - [Uranium], [Plutonium], [Deuterium]: dynamic, fall under gravity
//
// The table is the only place material behaviour is defined. Adding a
// material means adding a row, not a branch.
package material
