package material

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrUnknownVariant = errors.New("material: unknown variant")

type Variant uint8

const (
	Wood Variant = iota
	Stone
	Uranium
	Plutonium
	Deuterium
	C4

	numVariants
)

var tags = [numVariants]string{"WOOD", "STNE", "URAN", "PLUT", "DEUT", "C4"}

func (v Variant) String() string {
	if !v.Valid() {
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
	return tags[v]
}

func (v Variant) Valid() bool { return v < numVariants }

// Parse accepts the four-letter tags ("STNE", "uran", ...) and the long
// display names ("stone", "uranium", ...).
func Parse(s string) (Variant, error) {
	s = strings.TrimSpace(s)
	for v := Variant(0); v < numVariants; v++ {
		if strings.EqualFold(s, tags[v]) || strings.EqualFold(s, infos[v].Name) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// All returns every variant in declaration order.
func All() []Variant {
	out := make([]Variant, numVariants)
	for i := range out {
		out[i] = Variant(i)
	}
	return out
}

type Mobility uint8

const (
	Static Mobility = iota
	Dynamic
)

func (m Mobility) String() string {
	if m == Dynamic {
		return "dynamic"
	}
	return "static"
}

type ShapeKind uint8

const (
	Circle ShapeKind = iota
	Box
)

func (k ShapeKind) String() string {
	if k == Box {
		return "box"
	}
	return "circle"
}

// Shape is a collider centred on the body position.
type Shape struct {
	Kind       ShapeKind
	Radius     float64
	HalfWidth  float64
	HalfHeight float64
}

// HalfExtent is the vertical distance from the centre to the lowest point.
func (s Shape) HalfExtent() float64 {
	if s.Kind == Box {
		return s.HalfHeight
	}
	return s.Radius
}

type Params struct {
	Shape          Shape
	Mass           float64
	Restitution    float64
	Friction       float64
	Mobility       Mobility
	RotationLocked bool
}

type Info struct {
	Name        string
	Key         rune
	Description string
}

var infinite = math.Inf(1)

var table = [numVariants]Params{
	Wood: {
		Shape:          Shape{Kind: Box, HalfWidth: 2, HalfHeight: 2},
		Mass:           infinite,
		Restitution:    0.2,
		Friction:       0.8,
		Mobility:       Static,
		RotationLocked: true,
	},
	Stone: {
		Shape:          Shape{Kind: Box, HalfWidth: 2, HalfHeight: 2},
		Mass:           infinite,
		Restitution:    0.1,
		Friction:       0.9,
		Mobility:       Static,
		RotationLocked: true,
	},
	Uranium: {
		Shape:          Shape{Kind: Circle, Radius: 2},
		Mass:           19.1,
		Restitution:    0,
		Friction:       0.7,
		Mobility:       Dynamic,
		RotationLocked: true,
	},
	Plutonium: {
		Shape:       Shape{Kind: Circle, Radius: 2},
		Mass:        19.8,
		Restitution: 0.15,
		Friction:    0.6,
		Mobility:    Dynamic,
	},
	Deuterium: {
		Shape:       Shape{Kind: Circle, Radius: 1.5},
		Mass:        0.2,
		Restitution: 0.5,
		Friction:    0.2,
		Mobility:    Dynamic,
	},
	C4: {
		Shape:          Shape{Kind: Box, HalfWidth: 2, HalfHeight: 2},
		Mass:           infinite,
		Restitution:    0,
		Friction:       0.6,
		Mobility:       Static,
		RotationLocked: true,
	},
}

var infos = [numVariants]Info{
	Wood:      {Name: "wood", Key: '1', Description: "immovable anchor"},
	Stone:     {Name: "stone", Key: '2', Description: "immovable obstacle, high friction"},
	Uranium:   {Name: "uranium", Key: '3', Description: "heavy grain, no bounce"},
	Plutonium: {Name: "plutonium", Key: '4', Description: "heavy grain, slight bounce, rolls"},
	Deuterium: {Name: "deuterium", Key: '5', Description: "light bouncy grain"},
	C4:        {Name: "c4", Key: '6', Description: "immovable putty, no bounce"},
}

// Lookup returns the physical parameters for v. The result is a copy of a
// process-wide table and is identical for every call with the same variant.
func Lookup(v Variant) (Params, bool) {
	if !v.Valid() {
		return Params{}, false
	}
	return table[v], true
}

func InfoOf(v Variant) (Info, bool) {
	if !v.Valid() {
		return Info{}, false
	}
	return infos[v], true
}

// ByKey maps a hotkey to its variant.
func ByKey(r rune) (Variant, bool) {
	for v := Variant(0); v < numVariants; v++ {
		if infos[v].Key == r {
			return v, true
		}
	}
	return 0, false
}
