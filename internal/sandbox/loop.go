package sandbox

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"iter"
	"log"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/config"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/metrics"
	"github.com/san-kum/powderbox/internal/particle"
	"github.com/san-kum/powderbox/internal/physics"
	"github.com/san-kum/powderbox/internal/render"
)

type State uint8

const (
	Running State = iota
	Terminated
)

func (s State) String() string {
	if s == Terminated {
		return "terminated"
	}
	return "running"
}

// Engine is everything the loop needs from the physics backend.
type Engine interface {
	particle.Bodies
	Step(dt float64, gravity mgl64.Vec2)
}

type Observer interface {
	OnTick(f metrics.Frame)
}

type Option func(*Loop)

func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithEngine replaces the default Chipmunk world.
func WithEngine(e Engine) Option {
	return func(l *Loop) { l.engine = e }
}

// WithVerbose logs every dropped spawn request.
func WithVerbose(v bool) Option {
	return func(l *Loop) { l.verbose = v }
}

// Loop owns the whole simulation: engine, particles, framebuffer. It is
// driven from a single goroutine.
type Loop struct {
	dt       float64
	gravity  mgl64.Vec2
	palette  []color.RGBA
	engine   Engine
	store    *particle.Store
	renderer *render.Renderer
	frame    *render.Framebuffer
	surface  Surface
	rng      *rand.Rand
	logger   *log.Logger
	verbose  bool

	brush   material.Variant
	paused  bool
	state   State
	tick    uint64
	dropped int

	metrics   []metrics.Metric
	observers []Observer
}

func New(cfg *config.Config, surface Surface, opts ...Option) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sprite, err := render.SpriteByName(cfg.Sprite)
	if err != nil {
		return nil, err
	}
	if surface == nil {
		surface = Discard
	}

	l := &Loop{
		dt:       cfg.Dt,
		gravity:  cfg.GravityVec(),
		palette:  cfg.PaletteRGBA(),
		renderer: render.New(cfg.Background.RGBA(), sprite),
		frame:    render.NewFramebuffer(cfg.Width, cfg.Height),
		surface:  surface,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		logger:   log.New(io.Discard, "", 0),
		brush:    cfg.BrushVariant(),
		state:    Running,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.engine == nil {
		world, err := physics.New(cfg.PhysicsParams())
		if err != nil {
			return nil, err
		}
		l.engine = world
	}
	l.store = particle.NewStore(l.engine, float64(cfg.Width), float64(cfg.Height))
	return l, nil
}

func (l *Loop) AddMetric(m metrics.Metric)             { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer)                 { l.observers = append(l.observers, o) }
func (l *Loop) State() State                           { return l.state }
func (l *Loop) Paused() bool                           { return l.paused }
func (l *Loop) Brush() material.Variant                { return l.brush }
func (l *Loop) Ticks() uint64                          { return l.tick }
func (l *Loop) Dropped() int                           { return l.dropped }
func (l *Loop) Len() int                               { return l.store.Len() }
func (l *Loop) Frame() *render.Framebuffer             { return l.frame }
func (l *Loop) Engine() Engine                         { return l.engine }
func (l *Loop) Particles() iter.Seq[particle.Particle] { return l.store.All() }

// Metrics returns the current value of every registered metric.
func (l *Loop) Metrics() map[string]float64 {
	out := make(map[string]float64, len(l.metrics))
	for _, m := range l.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Tick runs one frame: apply input, step, sync, draw, present. An exit
// event ends the tick before the step. A presentation failure terminates
// the loop and is returned as *PresentError.
func (l *Loop) Tick(events []Event) error {
	if l.state == Terminated {
		return ErrTerminated
	}

	for _, ev := range events {
		l.apply(ev)
		if l.state == Terminated {
			return nil
		}
	}

	// The pause flag is only reported; stepping continues regardless.
	start := time.Now()
	l.engine.Step(l.dt, l.gravity)
	elapsed := time.Since(start)

	l.store.Sync()
	l.tick++
	l.observe(elapsed)

	l.renderer.Draw(l.frame, l.store.All())
	if err := l.surface.Present(l.frame); err != nil {
		l.state = Terminated
		perr := &PresentError{Tick: l.tick, Err: err}
		l.logger.Printf("fatal: %v", perr)
		return perr
	}
	return nil
}

func (l *Loop) apply(ev Event) {
	switch ev.Kind {
	case PointerHeld:
		l.spawn(ev.Pos)
	case Exit:
		l.state = Terminated
	case Pause:
		l.paused = !l.paused
	case SelectMaterial:
		if ev.Material.Valid() {
			l.brush = ev.Material
		}
	case Clear:
		if err := l.store.Clear(); err != nil {
			l.logger.Printf("clear: %v", err)
		}
	}
}

func (l *Loop) spawn(pos mgl64.Vec2) {
	c := l.palette[l.rng.IntN(len(l.palette))]
	if _, err := l.store.Spawn(pos, l.brush, c); err != nil {
		l.dropped++
		if l.verbose {
			l.logger.Printf("dropped: %v", err)
		}
	}
}

func (l *Loop) observe(step time.Duration) {
	if len(l.metrics) == 0 && len(l.observers) == 0 {
		return
	}
	f := metrics.Measure(l.tick, step, l.store.All())
	for _, m := range l.metrics {
		m.Observe(f)
	}
	for _, o := range l.observers {
		o.OnTick(f)
	}
}

// Run ticks until the loop terminates, the source fails or ctx is done.
// Waiting on src is the only point where it blocks.
func (l *Loop) Run(ctx context.Context, src EventSource) error {
	for l.state == Running {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		events, err := src.Next(ctx)
		if err != nil {
			return fmt.Errorf("sandbox: input: %w", err)
		}
		if err := l.Tick(events); err != nil {
			return err
		}
	}
	return nil
}
