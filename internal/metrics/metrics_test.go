package metrics

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/particle"
	"github.com/san-kum/powderbox/internal/physics"
)

type movingBodies struct {
	next physics.BodyHandle
	vel  map[physics.BodyHandle]mgl64.Vec2
	pos  map[physics.BodyHandle]mgl64.Vec2
}

func newMovingBodies() *movingBodies {
	return &movingBodies{
		vel: make(map[physics.BodyHandle]mgl64.Vec2),
		pos: make(map[physics.BodyHandle]mgl64.Vec2),
	}
}

func (b *movingBodies) CreateBody(spec physics.BodySpec) (physics.BodyHandle, error) {
	b.next++
	b.pos[b.next] = spec.Position
	return b.next, nil
}

func (b *movingBodies) RemoveBody(h physics.BodyHandle) error {
	delete(b.pos, h)
	delete(b.vel, h)
	return nil
}

func (b *movingBodies) ReadTransform(h physics.BodyHandle) (mgl64.Vec2, bool) {
	p, ok := b.pos[h]
	return p, ok
}

func (b *movingBodies) ReadVelocity(h physics.BodyHandle) (mgl64.Vec2, bool) {
	return b.vel[h], true
}

func TestMeasure(t *testing.T) {
	bodies := newMovingBodies()
	store := particle.NewStore(bodies, 100, 100)
	c := color.RGBA{255, 255, 255, 255}

	store.Spawn(mgl64.Vec2{1, 1}, material.Wood, c)
	idA, _ := store.Spawn(mgl64.Vec2{2, 2}, material.Uranium, c)
	store.Spawn(mgl64.Vec2{3, 3}, material.Deuterium, c)

	a, _ := store.Get(idA)
	bodies.vel[a.Handle()] = mgl64.Vec2{3, 4}
	store.Sync()

	f := Measure(7, 2*time.Millisecond, store.All())
	if f.Tick != 7 || f.Particles != 3 || f.Dynamic != 2 || f.Resting != 1 {
		t.Errorf("unexpected frame %+v", f)
	}

	uranium, _ := material.Lookup(material.Uranium)
	expected := 0.5 * uranium.Mass * 25
	if math.Abs(f.Kinetic-expected) > 1e-9 {
		t.Errorf("expected kinetic %f, got %f", expected, f.Kinetic)
	}
}

func TestStepTime(t *testing.T) {
	m := NewStepTime()
	if m.Value() != 0 {
		t.Error("empty step time should be zero")
	}
	m.Observe(Frame{Step: time.Millisecond})
	m.Observe(Frame{Step: 3 * time.Millisecond})
	if math.Abs(m.Value()-2) > 1e-9 {
		t.Errorf("expected 2ms, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear")
	}
}

func TestPopulationTracksPeak(t *testing.T) {
	m := NewPopulation()
	for _, n := range []int{3, 10, 4} {
		m.Observe(Frame{Particles: n})
	}
	if m.Value() != 10 {
		t.Errorf("expected peak 10, got %f", m.Value())
	}
}

func TestSettled(t *testing.T) {
	m := NewSettled()
	if m.Value() != 1.0 {
		t.Error("empty arena should count as settled")
	}
	m.Observe(Frame{Dynamic: 4, Resting: 1})
	if m.Value() != 0.25 {
		t.Errorf("expected 0.25, got %f", m.Value())
	}
}

func TestKineticEnergyMean(t *testing.T) {
	m := NewKineticEnergy()
	m.Observe(Frame{Kinetic: 2})
	m.Observe(Frame{Kinetic: 4})
	if m.Value() != 3 {
		t.Errorf("expected 3, got %f", m.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
