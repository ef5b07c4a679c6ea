package render

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownSprite = errors.New("render: unknown sprite")

// Sprite is a fixed-size bitmap mask. A set cell is painted in the particle
// colour; the particle's pixel coordinate lands on the anchor cell.
type Sprite struct {
	Name    string
	Width   int
	Height  int
	AnchorX int
	AnchorY int
	Mask    []bool
}

func (s Sprite) set(x, y int) bool { return s.Mask[y*s.Width+x] }

var sprites = map[string]Sprite{
	"pixel": {Name: "pixel", Width: 1, Height: 1, Mask: []bool{true}},
	"dot": {
		Name: "dot", Width: 3, Height: 3, AnchorX: 1, AnchorY: 1,
		Mask: []bool{
			false, true, false,
			true, true, true,
			false, true, false,
		},
	},
	"block": {
		Name: "block", Width: 2, Height: 2,
		Mask: []bool{
			true, true,
			true, true,
		},
	},
}

func SpriteByName(name string) (Sprite, error) {
	s, ok := sprites[name]
	if !ok {
		return Sprite{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownSprite, name, SpriteNames())
	}
	return s, nil
}

func SpriteNames() []string {
	names := make([]string, 0, len(sprites))
	for name := range sprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
