package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/powderbox/internal/config"
	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/sandbox"
)

const pour = `
name: pour
ticks: 5
steps:
  - {at: 0, action: select, material: stone}
  - {at: 0, repeat: 3, action: spawn, x: 100, y: 300, dx: 4}
  - {at: 3, action: pause}
`

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(pour))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "pour" || s.Ticks != 5 || len(s.Steps) != 3 {
		t.Fatalf("scenario = %+v", s)
	}

	ev := s.Events(0)
	if len(ev) != 2 {
		t.Fatalf("tick 0: %d events", len(ev))
	}
	if ev[0] != sandbox.Select(material.Stone) {
		t.Errorf("tick 0 first event = %+v", ev[0])
	}
	if ev[1].Pos != (mgl64.Vec2{100, 300}) {
		t.Errorf("tick 0 spawn at %v", ev[1].Pos)
	}

	ev = s.Events(2)
	if len(ev) != 1 || ev[0].Pos != (mgl64.Vec2{108, 300}) {
		t.Errorf("tick 2 = %+v", ev)
	}
	ev = s.Events(3)
	if len(ev) != 1 || ev[0].Kind != sandbox.Pause {
		t.Errorf("tick 3 = %+v", ev)
	}
	if ev = s.Events(4); len(ev) != 0 {
		t.Errorf("tick 4 = %+v", ev)
	}
}

func TestParseScenarioRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no ticks", "steps: []"},
		{"unknown action", "ticks: 1\nsteps: [{at: 0, action: explode}]"},
		{"unknown material", "ticks: 1\nsteps: [{at: 0, action: select, material: lava}]"},
		{"negative tick", "ticks: 1\nsteps: [{at: -1, action: pause}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.data))
			if !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("err = %v, want ErrInvalidScenario", err)
			}
		})
	}
	if _, err := ParseScenario([]byte("ticks: [")); err == nil {
		t.Error("malformed yaml accepted")
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pour.yaml")
	if err := os.WriteFile(path, []byte(pour), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "pour" {
		t.Errorf("name = %q", s.Name)
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestRainIsValid(t *testing.T) {
	s := Rain(400, 400, 600)
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	for tick := 0; tick < s.Ticks; tick++ {
		for _, ev := range s.Events(tick) {
			if ev.Kind != sandbox.PointerHeld {
				continue
			}
			if ev.Pos[0] < 0 || ev.Pos[0] >= 400 || ev.Pos[1] < 0 || ev.Pos[1] >= 400 {
				t.Fatalf("tick %d: spawn outside the arena at %v", tick, ev.Pos)
			}
		}
	}
}

func TestPlayerDrivesLoop(t *testing.T) {
	s, err := ParseScenario([]byte(pour))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Seed = 1
	loop, err := sandbox.New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	p := NewPlayer(s)
	if err := loop.Run(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if loop.Ticks() != 5 {
		t.Errorf("ticks = %d, want 5", loop.Ticks())
	}
	if loop.Len() != 3 {
		t.Errorf("particles = %d, want 3", loop.Len())
	}
	if !loop.Paused() {
		t.Error("pause step not applied")
	}
	if loop.State() != sandbox.Terminated {
		t.Errorf("state = %v", loop.State())
	}
}

func TestPlayerHonoursContext(t *testing.T) {
	p := NewPlayer(&Scenario{Ticks: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if p.Tick() != 0 {
		t.Errorf("tick advanced to %d", p.Tick())
	}
}
