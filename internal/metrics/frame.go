package metrics

import (
	"iter"
	"time"

	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/particle"
)

// RestSpeed is the speed in px/s below which a dynamic particle counts as
// resting.
const RestSpeed = 1.0

// Frame summarises one tick of the sandbox.
type Frame struct {
	Tick      uint64
	Step      time.Duration
	Particles int
	Dynamic   int
	Resting   int
	Kinetic   float64
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Measure builds a frame from the synced particles of one tick.
func Measure(tick uint64, step time.Duration, particles iter.Seq[particle.Particle]) Frame {
	f := Frame{Tick: tick, Step: step}
	for p := range particles {
		f.Particles++
		if p.Mobility() != material.Dynamic {
			continue
		}
		f.Dynamic++

		v := p.Velocity()
		speed := v.Len()
		if speed < RestSpeed {
			f.Resting++
		}
		if params, ok := material.Lookup(p.Variant()); ok {
			f.Kinetic += 0.5 * params.Mass * speed * speed
		}
	}
	return f
}

// Defaults is the metric set reported by the bench command.
func Defaults() []Metric {
	return []Metric{
		NewStepTime(),
		NewKineticEnergy(),
		NewPopulation(),
		NewSettled(),
	}
}
