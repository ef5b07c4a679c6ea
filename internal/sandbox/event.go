package sandbox

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/render"
)

type EventKind uint8

const (
	// PointerHeld asks for a particle at Pos with the current brush.
	PointerHeld EventKind = iota + 1
	Exit
	// Pause flips the pause flag. The flag does not stop stepping.
	Pause
	SelectMaterial
	Clear
)

func (k EventKind) String() string {
	switch k {
	case PointerHeld:
		return "pointer-held"
	case Exit:
		return "exit"
	case Pause:
		return "pause"
	case SelectMaterial:
		return "select-material"
	case Clear:
		return "clear"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind     EventKind
	Pos      mgl64.Vec2
	Material material.Variant
}

func PointerAt(x, y float64) Event { return Event{Kind: PointerHeld, Pos: mgl64.Vec2{x, y}} }

func Select(v material.Variant) Event { return Event{Kind: SelectMaterial, Material: v} }

// EventSource blocks until the next refresh and returns the input gathered
// since the previous call.
type EventSource interface {
	Next(ctx context.Context) ([]Event, error)
}

// Surface shows a finished frame.
type Surface interface {
	Present(fb *render.Framebuffer) error
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(fb *render.Framebuffer) error

func (f SurfaceFunc) Present(fb *render.Framebuffer) error { return f(fb) }

// Discard accepts every frame and shows nothing.
var Discard Surface = SurfaceFunc(func(*render.Framebuffer) error { return nil })
