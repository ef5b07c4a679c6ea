package render

import "image/color"

const bytesPerPixel = 4

// Framebuffer is a fixed-size RGBA8 pixel array, row-major, 4 bytes per pixel.
type Framebuffer struct {
	width  int
	height int
	pix    []byte
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*bytesPerPixel),
	}
}

func (f *Framebuffer) Width() int  { return f.width }
func (f *Framebuffer) Height() int { return f.height }

// Pix exposes the backing bytes. Callers must not retain it across ticks.
func (f *Framebuffer) Pix() []byte { return f.pix }

// Clear fills every pixel with c using doubling copies.
func (f *Framebuffer) Clear(c color.RGBA) {
	if len(f.pix) == 0 {
		return
	}
	f.pix[0], f.pix[1], f.pix[2], f.pix[3] = c.R, c.G, c.B, c.A
	for filled := bytesPerPixel; filled < len(f.pix); filled *= 2 {
		copy(f.pix[filled:], f.pix[:filled])
	}
}

func (f *Framebuffer) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// Set writes one opaque pixel. Coordinates outside the buffer are ignored.
func (f *Framebuffer) Set(x, y int, c color.RGBA) {
	if !f.inBounds(x, y) {
		return
	}
	i := (y*f.width + x) * bytesPerPixel
	f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3] = c.R, c.G, c.B, c.A
}

func (f *Framebuffer) At(x, y int) color.RGBA {
	if !f.inBounds(x, y) {
		return color.RGBA{}
	}
	i := (y*f.width + x) * bytesPerPixel
	return color.RGBA{f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]}
}

// CopyTo copies the pixels into dst, which must have the same dimensions.
func (f *Framebuffer) CopyTo(dst *Framebuffer) bool {
	if dst.width != f.width || dst.height != f.height {
		return false
	}
	copy(dst.pix, f.pix)
	return true
}
