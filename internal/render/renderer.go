package render

import (
	"image/color"
	"iter"

	"github.com/san-kum/powderbox/internal/particle"
)

type Renderer struct {
	background color.RGBA
	sprite     Sprite
}

func New(background color.RGBA, sprite Sprite) *Renderer {
	return &Renderer{background: background, sprite: sprite}
}

func (r *Renderer) Background() color.RGBA { return r.background }
func (r *Renderer) Sprite() Sprite         { return r.sprite }

// Draw clears fb and paints the particles in sequence order. Positions are
// truncated toward zero; later particles overwrite earlier ones and pixels
// outside fb are skipped.
func (r *Renderer) Draw(fb *Framebuffer, particles iter.Seq[particle.Particle]) {
	fb.Clear(r.background)
	for p := range particles {
		pos := p.Position()
		r.blit(fb, int(pos[0]), int(pos[1]), p.Color())
	}
}

func (r *Renderer) blit(fb *Framebuffer, x, y int, c color.RGBA) {
	s := r.sprite
	if s.Width == 1 && s.Height == 1 {
		fb.Set(x, y, c)
		return
	}
	ox, oy := x-s.AnchorX, y-s.AnchorY
	for sy := 0; sy < s.Height; sy++ {
		for sx := 0; sx < s.Width; sx++ {
			if s.set(sx, sy) {
				fb.Set(ox+sx, oy+sy, c)
			}
		}
	}
}
