package metrics

// Population is the peak particle count seen.
type Population struct {
	name string
	peak int
}

func NewPopulation() *Population {
	return &Population{name: "peak_particles"}
}

func (p *Population) Name() string { return p.name }

func (p *Population) Observe(f Frame) {
	p.peak = max(p.peak, f.Particles)
}

func (p *Population) Value() float64 { return float64(p.peak) }

func (p *Population) Reset() { p.peak = 0 }
