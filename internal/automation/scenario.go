package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/sandbox"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted input sequence for headless runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Ticks       int    `yaml:"ticks"`
	Steps       []Step `yaml:"steps"`
}

// Step emits one event per tick for Repeat ticks starting at tick At.
// Spawn positions advance by (DX, DY) on each repetition.
type Step struct {
	At       int     `yaml:"at"`
	Repeat   int     `yaml:"repeat,omitempty"`
	Action   string  `yaml:"action"`
	Material string  `yaml:"material,omitempty"`
	X        float64 `yaml:"x,omitempty"`
	Y        float64 `yaml:"y,omitempty"`
	DX       float64 `yaml:"dx,omitempty"`
	DY       float64 `yaml:"dy,omitempty"`
}

func (s Step) span() int { return max(s.Repeat, 1) }

func (s Step) event(i int) sandbox.Event {
	switch s.Action {
	case "spawn":
		return sandbox.Event{
			Kind: sandbox.PointerHeld,
			Pos:  mgl64.Vec2{s.X + float64(i)*s.DX, s.Y + float64(i)*s.DY},
		}
	case "select":
		v, _ := material.Parse(s.Material)
		return sandbox.Select(v)
	case "pause":
		return sandbox.Event{Kind: sandbox.Pause}
	case "clear":
		return sandbox.Event{Kind: sandbox.Clear}
	default:
		return sandbox.Event{Kind: sandbox.Exit}
	}
}

func (s *Scenario) Validate() error {
	if s.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, s.Ticks)
	}
	for i, st := range s.Steps {
		if st.At < 0 || st.Repeat < 0 {
			return fmt.Errorf("%w: step %d: negative tick", ErrInvalidScenario, i+1)
		}
		switch st.Action {
		case "spawn", "pause", "clear", "exit":
		case "select":
			if _, err := material.Parse(st.Material); err != nil {
				return fmt.Errorf("%w: step %d: %v", ErrInvalidScenario, i+1, err)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScenario, i+1, st.Action)
		}
	}
	return nil
}

// Events returns the events scheduled for tick, in step order.
func (s *Scenario) Events(tick int) []sandbox.Event {
	var out []sandbox.Event
	for _, st := range s.Steps {
		if i := tick - st.At; i >= 0 && i < st.span() {
			out = append(out, st.event(i))
		}
	}
	return out
}

func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("automation: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

// Rain builds the default bench script: a floor of wood across the lower
// third, then a pointer sweeping back and forth near the top while the
// brush cycles through the dynamic materials.
func Rain(width, height, ticks int) *Scenario {
	w, h := float64(width), float64(height)
	floor := h * 2 / 3
	s := &Scenario{
		Name:        "rain",
		Description: "wood shelf with a sweeping pour of grains",
		Ticks:       ticks,
		Steps: []Step{
			{At: 0, Action: "select", Material: "WOOD"},
			{At: 0, Repeat: int(w / 8 / 2), Action: "spawn", X: w / 4, Y: floor, DX: 4},
		},
	}

	grains := []string{"URAN", "PLUT", "DEUT"}
	start := s.Steps[1].span()
	sweep := max(int(w/8)-1, 1)
	for i, at := 0, start; at < ticks; i, at = i+1, at+sweep {
		x, dx := 8.0, 8.0
		if i%2 == 1 {
			x, dx = w-8, -8
		}
		s.Steps = append(s.Steps,
			Step{At: at, Action: "select", Material: grains[i%len(grains)]},
			Step{At: at, Repeat: min(sweep, ticks-at), Action: "spawn", X: x, Y: 8, DX: dx},
		)
	}
	return s
}

// Player feeds a scenario to a loop one tick at a time and asks it to exit
// once the scenario is over.
type Player struct {
	scenario *Scenario
	tick     int
}

func NewPlayer(s *Scenario) *Player { return &Player{scenario: s} }

func (p *Player) Tick() int { return p.tick }

func (p *Player) Next(ctx context.Context) ([]sandbox.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.tick >= p.scenario.Ticks {
		return []sandbox.Event{{Kind: sandbox.Exit}}, nil
	}
	events := p.scenario.Events(p.tick)
	p.tick++
	return events, nil
}
