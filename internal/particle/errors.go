package particle

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/material"
)

var (
	// ErrOutOfBounds indicates a spawn position outside the arena.
	ErrOutOfBounds = errors.New("particle: position out of bounds")

	// ErrUnknownMaterial indicates a variant outside the catalog.
	ErrUnknownMaterial = errors.New("particle: unknown material")
)

// SpawnError wraps a failed spawn with the request that caused it.
type SpawnError struct {
	Pos     mgl64.Vec2
	Variant material.Variant
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s at (%.1f, %.1f): %v", e.Variant, e.Pos[0], e.Pos[1], e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
