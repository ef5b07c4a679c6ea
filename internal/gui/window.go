package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/powderbox/internal/config"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/render"
	"github.com/san-kum/powderbox/internal/sandbox"
)

var ErrWindowClosed = errors.New("gui: window closed")

var (
	ColHUD    = rl.NewColor(230, 230, 230, 255)
	ColHUDDim = rl.NewColor(140, 140, 140, 255)
	ColPaused = rl.NewColor(255, 200, 0, 255)
)

var materialKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix}

// Status feeds the overlay drawn on top of each frame.
type Status struct {
	Brush     material.Variant
	Paused    bool
	Particles int
}

// Window is a raylib window that acts as both the event source and the
// presentation surface of a loop. All methods must be called from the
// goroutine that opened it.
type Window struct {
	width  int
	height int
	scale  float32
	tex    rl.Texture2D
	pixels []color.RGBA
	status func() Status
	closed bool
}

// Open creates a window of width*scale by height*scale screen pixels and
// paces it at tps frames per second.
func Open(cfg *config.Config) *Window {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Width*cfg.Scale), int32(cfg.Height*cfg.Scale), "powderbox")
	rl.SetTargetFPS(int32(cfg.TPS))
	rl.SetExitKey(0)

	img := rl.GenImageColor(cfg.Width, cfg.Height, cfg.Background.RGBA())
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &Window{
		width:  cfg.Width,
		height: cfg.Height,
		scale:  float32(cfg.Scale),
		tex:    tex,
		pixels: make([]color.RGBA, cfg.Width*cfg.Height),
	}
}

func (w *Window) SetStatus(f func() Status) { w.status = f }

func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true
	rl.UnloadTexture(w.tex)
	rl.CloseWindow()
}

// Next polls input gathered since the last frame. Frame pacing happens in
// Present, so Next never blocks.
func (w *Window) Next(ctx context.Context) ([]sandbox.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if w.closed {
		return nil, ErrWindowClosed
	}

	var events []sandbox.Event
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyQ) {
		return append(events, sandbox.Event{Kind: sandbox.Exit}), nil
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		events = append(events, sandbox.Event{Kind: sandbox.Pause})
	}
	if rl.IsKeyPressed(rl.KeyC) {
		events = append(events, sandbox.Event{Kind: sandbox.Clear})
	}
	for i, k := range materialKeys {
		if rl.IsKeyPressed(k) {
			if v, ok := material.ByKey(rune('1' + i)); ok {
				events = append(events, sandbox.Select(v))
			}
		}
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		m := rl.GetMousePosition()
		x, y := toArena(m.X, m.Y, w.scale)
		events = append(events, sandbox.PointerAt(x, y))
	}
	return events, nil
}

// Present uploads the frame, scales it to the window and draws the overlay.
// EndDrawing waits for the next refresh.
func (w *Window) Present(fb *render.Framebuffer) error {
	if w.closed || !rl.IsWindowReady() {
		return ErrWindowClosed
	}
	if err := unpack(w.pixels, fb); err != nil {
		return err
	}
	rl.UpdateTexture(w.tex, w.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTextureEx(w.tex, rl.NewVector2(0, 0), 0, w.scale, rl.White)
	w.drawHUD()
	rl.EndDrawing()
	return nil
}

func (w *Window) drawHUD() {
	if w.status == nil {
		return
	}
	s := w.status()
	rl.DrawText(s.Brush.String(), 6, 6, 10, ColHUD)
	rl.DrawText(fmt.Sprintf("%d", s.Particles), 6, 18, 10, ColHUDDim)
	if s.Paused {
		rl.DrawText("PAUSED", 6, 30, 10, ColPaused)
	}
	rl.SetWindowTitle(fmt.Sprintf("powderbox - %s", s.Brush))
}

// toArena converts a window position into arena coordinates.
func toArena(x, y, scale float32) (float64, float64) {
	return float64(x / scale), float64(y / scale)
}

// unpack copies the RGBA bytes of fb into dst.
func unpack(dst []color.RGBA, fb *render.Framebuffer) error {
	pix := fb.Pix()
	if len(pix) != 4*len(dst) {
		return fmt.Errorf("gui: frame is %dx%d, texture holds %d pixels", fb.Width(), fb.Height(), len(dst))
	}
	for i := range dst {
		dst[i] = color.RGBA{pix[4*i], pix[4*i+1], pix[4*i+2], pix[4*i+3]}
	}
	return nil
}

// Run opens a window and drives a loop from it until the user exits or
// ctx is done.
func Run(ctx context.Context, cfg *config.Config, opts ...sandbox.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	w := Open(cfg)
	defer w.Close()

	loop, err := sandbox.New(cfg, w, opts...)
	if err != nil {
		return err
	}
	w.SetStatus(func() Status {
		return Status{Brush: loop.Brush(), Paused: loop.Paused(), Particles: loop.Len()}
	})
	return loop.Run(ctx, w)
}
