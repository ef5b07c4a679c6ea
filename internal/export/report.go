package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/san-kum/powderbox/internal/metrics"
)

var ErrNoSamples = errors.New("export: no samples recorded")

// Sample is one tick of a recorded run.
type Sample struct {
	Tick      uint64  `json:"tick"`
	StepMs    float64 `json:"step_ms"`
	Particles int     `json:"particles"`
	Resting   int     `json:"resting"`
	Kinetic   float64 `json:"kinetic"`
}

// Recorder collects one sample per tick. Register it with
// sandbox.Loop.AddObserver.
type Recorder struct {
	samples []Sample
}

func (r *Recorder) OnTick(f metrics.Frame) {
	r.samples = append(r.samples, Sample{
		Tick:      f.Tick,
		StepMs:    float64(f.Step.Microseconds()) / 1000,
		Particles: f.Particles,
		Resting:   f.Resting,
		Kinetic:   f.Kinetic,
	})
}

func (r *Recorder) Samples() []Sample { return r.samples }

// StepMs returns the step time series, ready for plotting.
func (r *Recorder) StepMs() []float64 {
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = s.StepMs
	}
	return out
}

// Population returns the particle count series.
func (r *Recorder) Population() []float64 {
	out := make([]float64, len(r.samples))
	for i, s := range r.samples {
		out[i] = float64(s.Particles)
	}
	return out
}

// Report is the summary of a benchmark run.
type Report struct {
	Scenario  string             `json:"scenario"`
	Seed      uint64             `json:"seed"`
	Ticks     uint64             `json:"ticks"`
	Particles int                `json:"particles"`
	Dropped   int                `json:"dropped"`
	ElapsedMs float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
	Samples   []Sample           `json:"samples"`
}

func WriteJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// WriteCSV writes the per-tick samples, one row per tick.
func WriteCSV(w io.Writer, samples []Sample) error {
	if len(samples) == 0 {
		return ErrNoSamples
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"tick", "step_ms", "particles", "resting", "kinetic"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatUint(s.Tick, 10),
			strconv.FormatFloat(s.StepMs, 'f', 3, 64),
			strconv.Itoa(s.Particles),
			strconv.Itoa(s.Resting),
			strconv.FormatFloat(s.Kinetic, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
