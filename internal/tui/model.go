package tui

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/powderbox/internal/config"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/render"
	"github.com/san-kum/powderbox/internal/sandbox"
)

const (
	headerLines = 1
	footerLines = 1
)

var errFrameSize = errors.New("tui: frame size changed")

type tickMsg time.Time

// canvas keeps the last presented frame until the next View.
type canvas struct {
	fb *render.Framebuffer
}

func (c *canvas) Present(fb *render.Framebuffer) error {
	if c.fb == nil {
		c.fb = render.NewFramebuffer(fb.Width(), fb.Height())
	}
	if !fb.CopyTo(c.fb) {
		return errFrameSize
	}
	return nil
}

type Model struct {
	loop       *sandbox.Loop
	canvas     *canvas
	background color.RGBA
	arenaW     int
	arenaH     int
	interval   time.Duration
	grid       grid
	styles     cellStyles

	pending []sandbox.Event
	held    bool
	clicked bool
	cellX   int
	cellY   int
	err     error
}

func New(cfg *config.Config, opts ...sandbox.Option) (Model, error) {
	c := &canvas{}
	loop, err := sandbox.New(cfg, c, opts...)
	if err != nil {
		return Model{}, err
	}
	return Model{
		loop:       loop,
		canvas:     c,
		background: cfg.Background.RGBA(),
		arenaW:     cfg.Width,
		arenaH:     cfg.Height,
		interval:   time.Second / time.Duration(cfg.TPS),
		grid:       newGrid(cfg.Width, cfg.Height, 80, 24-headerLines-footerLines),
		styles:     make(cellStyles),
	}, nil
}

func (m Model) Loop() *sandbox.Loop { return m.loop }

// Err is the error that stopped the loop, if any.
func (m Model) Err() error { return m.err }

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.grid = newGrid(m.arenaW, m.arenaH, msg.Width, msg.Height-headerLines-footerLines)
	case tea.KeyMsg:
		m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tickMsg:
		return m.step()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	switch s := msg.String(); s {
	case "esc", "q", "ctrl+c":
		m.pending = append(m.pending, sandbox.Event{Kind: sandbox.Exit})
	case " ":
		m.pending = append(m.pending, sandbox.Event{Kind: sandbox.Pause})
	case "c", "C":
		m.pending = append(m.pending, sandbox.Event{Kind: sandbox.Clear})
	default:
		if len(s) != 1 {
			return
		}
		if v, ok := material.ByKey(rune(s[0])); ok {
			m.pending = append(m.pending, sandbox.Select(v))
		}
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.held, m.clicked = true, true
	case tea.MouseActionRelease:
		m.held = false
	}
	m.cellX, m.cellY = msg.X, msg.Y-headerLines
}

// step forwards the queued input to the loop. A press and release that
// both land between two ticks still produce one spawn.
func (m Model) step() (tea.Model, tea.Cmd) {
	events := m.pending
	m.pending = nil
	if (m.held || m.clicked) && m.grid.contains(m.cellX, m.cellY) {
		x, y := m.grid.arena(m.cellX, m.cellY)
		events = append(events, sandbox.PointerAt(x, y))
	}
	m.clicked = false

	if err := m.loop.Tick(events); err != nil {
		m.err = err
		return m, tea.Quit
	}
	if m.loop.State() == sandbox.Terminated {
		return m, tea.Quit
	}
	return m, m.tick()
}

func (m Model) pixel(fb *render.Framebuffer, x, y int) color.RGBA {
	if x >= fb.Width() || y >= fb.Height() {
		return m.background
	}
	return fb.At(x, y)
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')

	if fb := m.canvas.fb; fb != nil {
		for y := 0; y < m.grid.rows; y++ {
			for x := 0; x < m.grid.cols; x++ {
				tx, ty := m.grid.sample(x, 2*y)
				bx, by := m.grid.sample(x, 2*y+1)
				st := m.styles.get(m.pixel(fb, tx, ty), m.pixel(fb, bx, by))
				b.WriteString(st.Render("▀"))
			}
			b.WriteByte('\n')
		}
	}

	b.WriteString(dim.Render(" 1-6 brush  space pause  c clear  esc quit"))
	return b.String()
}

func (m Model) header() string {
	status := running.Render("running")
	switch {
	case m.err != nil:
		status = failed.Render("failed")
	case m.loop.Paused():
		status = paused.Render("paused")
	}
	return fmt.Sprintf(" %s  %s  %s  %s",
		title.Render("powderbox"),
		white.Render(m.loop.Brush().String()),
		status,
		dim.Render(fmt.Sprintf("particles %d  tick %d  dropped %d", m.loop.Len(), m.loop.Ticks(), m.loop.Dropped())),
	)
}

// Run opens the alternate screen and blocks until the user exits.
func Run(cfg *config.Config, opts ...sandbox.Option) error {
	m, err := New(cfg, opts...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
