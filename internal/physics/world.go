package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/powderbox/internal/material"
)

// wallThickness keeps fast grains from tunnelling through the boundaries.
const wallThickness = 50.0

type BodyHandle uint32

type Params struct {
	Width         float64
	Height        float64
	Substeps      int
	Iterations    int
	CollisionSlop float64
	// SleepTime is how long a body must stay idle before it sleeps.
	// Zero or negative disables sleeping.
	SleepTime float64
	Damping   float64
}

type BodySpec struct {
	Position       mgl64.Vec2
	Shape          material.Shape
	Mass           float64
	Restitution    float64
	Friction       float64
	Mobility       material.Mobility
	RotationLocked bool
}

// SpecFor builds the body spec for a particle of the given material.
func SpecFor(pos mgl64.Vec2, p material.Params) BodySpec {
	return BodySpec{
		Position:       pos,
		Shape:          p.Shape,
		Mass:           p.Mass,
		Restitution:    p.Restitution,
		Friction:       p.Friction,
		Mobility:       p.Mobility,
		RotationLocked: p.RotationLocked,
	}
}

type entry struct {
	body  *cp.Body
	shape *cp.Shape
}

type World struct {
	space   *cp.Space
	params  Params
	gravity mgl64.Vec2
	bodies  map[BodyHandle]entry
	next    BodyHandle
	walls   []entry
}

func New(p Params) (*World, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	space := cp.NewSpace()
	space.Iterations = uint(p.Iterations)
	space.SetCollisionSlop(p.CollisionSlop)
	space.SetDamping(p.Damping)
	if p.SleepTime > 0 {
		space.SleepTimeThreshold = p.SleepTime
	} else {
		space.SleepTimeThreshold = cp.INFINITY
	}

	w := &World{
		space:  space,
		params: p,
		bodies: make(map[BodyHandle]entry),
		next:   1,
	}
	w.addBoundaries()
	return w, nil
}

func (p Params) validate() error {
	switch {
	case !(p.Width > 0) || !(p.Height > 0):
		return fmt.Errorf("%w: arena %gx%g", ErrInvalidParams, p.Width, p.Height)
	case p.Substeps < 1:
		return fmt.Errorf("%w: substeps %d", ErrInvalidParams, p.Substeps)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations %d", ErrInvalidParams, p.Iterations)
	case !(p.Damping > 0 && p.Damping <= 1):
		return fmt.Errorf("%w: damping %g", ErrInvalidParams, p.Damping)
	}
	return nil
}

func (w *World) addBoundaries() {
	width, height, t := w.params.Width, w.params.Height, wallThickness

	boxes := []struct{ cx, cy, bw, bh float64 }{
		{width / 2, height + t/2, width + 2*t, t}, // ground
		{-t / 2, 0, t, 2*height + 2*t},            // left wall
		{width + t/2, 0, t, 2*height + 2*t},       // right wall
	}

	for _, b := range boxes {
		body := w.space.AddBody(cp.NewStaticBody())
		body.SetPosition(cp.Vector{X: b.cx, Y: b.cy})
		shape := w.space.AddShape(cp.NewBox(body, b.bw, b.bh, 0))
		shape.SetElasticity(1)
		shape.SetFriction(1)
		w.walls = append(w.walls, entry{body: body, shape: shape})
	}
}

func (s BodySpec) validate() error {
	if !finite(s.Position[0]) || !finite(s.Position[1]) {
		return fmt.Errorf("%w: position %v", ErrInvalidBody, s.Position)
	}
	switch s.Shape.Kind {
	case material.Circle:
		if !(s.Shape.Radius > 0) {
			return fmt.Errorf("%w: radius %g", ErrInvalidBody, s.Shape.Radius)
		}
	case material.Box:
		if !(s.Shape.HalfWidth > 0) || !(s.Shape.HalfHeight > 0) {
			return fmt.Errorf("%w: box %gx%g", ErrInvalidBody, s.Shape.HalfWidth, s.Shape.HalfHeight)
		}
	default:
		return fmt.Errorf("%w: shape kind %d", ErrInvalidBody, s.Shape.Kind)
	}
	if s.Mobility == material.Dynamic && (!(s.Mass > 0) || math.IsInf(s.Mass, 0)) {
		return fmt.Errorf("%w: dynamic mass %g", ErrInvalidBody, s.Mass)
	}
	if !(s.Restitution >= 0) || !(s.Friction >= 0) {
		return fmt.Errorf("%w: restitution %g friction %g", ErrInvalidBody, s.Restitution, s.Friction)
	}
	return nil
}

// CreateBody registers a body and its collider. Nothing is added to the
// space when the spec is rejected.
func (w *World) CreateBody(spec BodySpec) (BodyHandle, error) {
	if err := spec.validate(); err != nil {
		return 0, err
	}

	var body *cp.Body
	if spec.Mobility == material.Static {
		body = cp.NewStaticBody()
	} else {
		moment := cp.INFINITY
		if !spec.RotationLocked {
			moment = momentFor(spec.Shape, spec.Mass)
		}
		body = cp.NewBody(spec.Mass, moment)
	}

	w.space.AddBody(body)
	body.SetPosition(cp.Vector{X: spec.Position[0], Y: spec.Position[1]})

	shape := w.space.AddShape(newShape(body, spec.Shape))
	shape.SetElasticity(spec.Restitution)
	shape.SetFriction(spec.Friction)

	h := w.next
	w.next++
	w.bodies[h] = entry{body: body, shape: shape}
	return h, nil
}

func momentFor(s material.Shape, mass float64) float64 {
	if s.Kind == material.Box {
		return cp.MomentForBox(mass, 2*s.HalfWidth, 2*s.HalfHeight)
	}
	return cp.MomentForCircle(mass, 0, s.Radius, cp.Vector{})
}

func newShape(body *cp.Body, s material.Shape) *cp.Shape {
	if s.Kind == material.Box {
		return cp.NewBox(body, 2*s.HalfWidth, 2*s.HalfHeight, 0)
	}
	return cp.NewCircle(body, s.Radius, cp.Vector{})
}

// RemoveBody detaches the collider and body behind h. Removing the same
// handle twice returns ErrUnknownBody.
func (w *World) RemoveBody(h BodyHandle) error {
	e, ok := w.bodies[h]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBody, h)
	}
	w.space.RemoveShape(e.shape)
	w.space.RemoveBody(e.body)
	delete(w.bodies, h)
	return nil
}

// Step advances the space by dt, split into equal substeps.
func (w *World) Step(dt float64, gravity mgl64.Vec2) {
	// cp wakes every sleeping body on SetGravity.
	if gravity != w.gravity {
		w.space.SetGravity(cp.Vector{X: gravity[0], Y: gravity[1]})
		w.gravity = gravity
	}

	h := dt / float64(w.params.Substeps)
	for i := 0; i < w.params.Substeps; i++ {
		w.space.Step(h)
	}
}

func (w *World) ReadTransform(h BodyHandle) (mgl64.Vec2, bool) {
	e, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec2{}, false
	}
	p := e.body.Position()
	return mgl64.Vec2{p.X, p.Y}, true
}

func (w *World) ReadVelocity(h BodyHandle) (mgl64.Vec2, bool) {
	e, ok := w.bodies[h]
	if !ok {
		return mgl64.Vec2{}, false
	}
	v := e.body.Velocity()
	return mgl64.Vec2{v.X, v.Y}, true
}

// Sleeping reports whether the engine has put the body to sleep. Static
// bodies and unknown handles report false.
func (w *World) Sleeping(h BodyHandle) bool {
	e, ok := w.bodies[h]
	if !ok {
		return false
	}
	return e.body.IsSleeping()
}

func (w *World) Contains(h BodyHandle) bool {
	_, ok := w.bodies[h]
	return ok
}

// Len is the number of live particle bodies. Boundaries are not counted.
func (w *World) Len() int { return len(w.bodies) }

// SpaceBodies counts every body the engine itself still holds, boundaries
// included.
func (w *World) SpaceBodies() int {
	n := 0
	w.space.EachBody(func(*cp.Body) { n++ })
	return n
}

func (w *World) Boundaries() int { return len(w.walls) }

func (w *World) Params() Params { return w.params }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
