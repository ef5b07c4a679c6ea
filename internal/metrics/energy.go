package metrics

type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(f Frame) {
	k.total += f.Kinetic
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// Settled is the fraction of dynamic particles at rest in the latest frame.
// An arena with no dynamic particles is fully settled.
type Settled struct {
	name    string
	dynamic int
	resting int
}

func NewSettled() *Settled {
	return &Settled{name: "settled"}
}

func (s *Settled) Name() string { return s.name }

func (s *Settled) Observe(f Frame) {
	s.dynamic = f.Dynamic
	s.resting = f.Resting
}

func (s *Settled) Value() float64 {
	if s.dynamic == 0 {
		return 1.0
	}
	return float64(s.resting) / float64(s.dynamic)
}

func (s *Settled) Reset() {
	s.dynamic = 0
	s.resting = 0
}
