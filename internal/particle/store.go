package particle

import (
	"errors"
	"fmt"
	"image/color"
	"iter"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/physics"
)

type ID uint64

// Particle is a read-only view of one grain. Position and velocity mirror
// the backing body as of the last Sync.
type Particle struct {
	id       ID
	pos      mgl64.Vec2
	vel      mgl64.Vec2
	variant  material.Variant
	color    color.RGBA
	mobility material.Mobility
	handle   physics.BodyHandle
}

func (p Particle) ID() ID                      { return p.id }
func (p Particle) Position() mgl64.Vec2        { return p.pos }
func (p Particle) Velocity() mgl64.Vec2        { return p.vel }
func (p Particle) Variant() material.Variant   { return p.variant }
func (p Particle) Color() color.RGBA           { return p.color }
func (p Particle) Mobility() material.Mobility { return p.mobility }
func (p Particle) Handle() physics.BodyHandle  { return p.handle }

// Bodies is the slice of the physics engine the store needs.
type Bodies interface {
	CreateBody(spec physics.BodySpec) (physics.BodyHandle, error)
	RemoveBody(h physics.BodyHandle) error
	ReadTransform(h physics.BodyHandle) (mgl64.Vec2, bool)
	ReadVelocity(h physics.BodyHandle) (mgl64.Vec2, bool)
}

// Store owns the particles in insertion order together with their bodies.
type Store struct {
	bodies    Bodies
	width     float64
	height    float64
	particles []Particle
	index     map[ID]int
	nextID    ID
}

func NewStore(bodies Bodies, width, height float64) *Store {
	return &Store{
		bodies:    bodies,
		width:     width,
		height:    height,
		particles: make([]Particle, 0, 1024),
		index:     make(map[ID]int),
	}
}

// InBounds reports whether pos lies in [0, width) x [0, height).
func (s *Store) InBounds(pos mgl64.Vec2) bool {
	return pos[0] >= 0 && pos[0] < s.width && pos[1] >= 0 && pos[1] < s.height
}

// Spawn creates a particle and its body. Either both exist afterwards or
// neither does.
func (s *Store) Spawn(pos mgl64.Vec2, v material.Variant, c color.RGBA) (ID, error) {
	params, ok := material.Lookup(v)
	if !ok {
		return 0, &SpawnError{Pos: pos, Variant: v, Err: ErrUnknownMaterial}
	}
	if !s.InBounds(pos) {
		return 0, &SpawnError{Pos: pos, Variant: v, Err: ErrOutOfBounds}
	}

	h, err := s.bodies.CreateBody(physics.SpecFor(pos, params))
	if err != nil {
		return 0, &SpawnError{Pos: pos, Variant: v, Err: err}
	}

	s.nextID++
	p := Particle{
		id:       s.nextID,
		pos:      pos,
		variant:  v,
		color:    c,
		mobility: params.Mobility,
		handle:   h,
	}
	s.index[p.id] = len(s.particles)
	s.particles = append(s.particles, p)
	return p.id, nil
}

// Clear removes every body and then every particle. The store is empty
// afterwards even when some removals fail; those failures are joined into
// the returned error.
func (s *Store) Clear() error {
	var errs []error
	for _, p := range s.particles {
		if err := s.bodies.RemoveBody(p.handle); err != nil {
			errs = append(errs, fmt.Errorf("particle %d: %w", p.id, err))
		}
	}
	clear(s.particles)
	s.particles = s.particles[:0]
	clear(s.index)
	return errors.Join(errs...)
}

// Sync copies the current transform and velocity of every body into its
// particle. It is the only writer of particle positions after spawn.
func (s *Store) Sync() {
	for i := range s.particles {
		p := &s.particles[i]
		if pos, ok := s.bodies.ReadTransform(p.handle); ok {
			p.pos = pos
		}
		if vel, ok := s.bodies.ReadVelocity(p.handle); ok {
			p.vel = vel
		}
	}
}

// All yields the particles in insertion order. The sequence can be ranged
// over any number of times.
func (s *Store) All() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, p := range s.particles {
			if !yield(p) {
				return
			}
		}
	}
}

func (s *Store) Get(id ID) (Particle, bool) {
	i, ok := s.index[id]
	if !ok {
		return Particle{}, false
	}
	return s.particles[i], true
}

func (s *Store) Len() int { return len(s.particles) }

func (s *Store) Counts() map[material.Variant]int {
	counts := make(map[material.Variant]int)
	for _, p := range s.particles {
		counts[p.variant]++
	}
	return counts
}
