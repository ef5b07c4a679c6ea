// Package export writes benchmark results as JSON or CSV.
//
// A [Recorder] observes a loop tick by tick. After the run its samples and
// the loop's metric values are bundled into a [Report].
package export
