package physics_test

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/powderbox/internal/material"
	"github.com/san-kum/powderbox/internal/physics"
)

const dt = 1.0 / 60.0

var gravity = mgl64.Vec2{0, 500}

func defaultParams() physics.Params {
	return physics.Params{
		Width:         400,
		Height:        400,
		Substeps:      4,
		Iterations:    10,
		CollisionSlop: 0.1,
		SleepTime:     0.5,
		Damping:       1,
	}
}

func spec(v material.Variant, x, y float64) physics.BodySpec {
	p, ok := material.Lookup(v)
	Expect(ok).To(BeTrue())
	return physics.SpecFor(mgl64.Vec2{x, y}, p)
}

func mustCreate(w *physics.World, s physics.BodySpec) physics.BodyHandle {
	h, err := w.CreateBody(s)
	Expect(err).NotTo(HaveOccurred())
	return h
}

func position(w *physics.World, h physics.BodyHandle) mgl64.Vec2 {
	p, ok := w.ReadTransform(h)
	Expect(ok).To(BeTrue())
	return p
}

var _ = Describe("World", func() {
	var w *physics.World

	BeforeEach(func() {
		var err error
		w, err = physics.New(defaultParams())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("creates exactly three boundary colliders", func() {
			Expect(w.Boundaries()).To(Equal(3))
			Expect(w.SpaceBodies()).To(Equal(3))
			Expect(w.Len()).To(BeZero())
		})

		DescribeTable("rejects bad parameters",
			func(mutate func(*physics.Params)) {
				p := defaultParams()
				mutate(&p)
				_, err := physics.New(p)
				Expect(err).To(MatchError(physics.ErrInvalidParams))
			},
			Entry("zero width", func(p *physics.Params) { p.Width = 0 }),
			Entry("NaN height", func(p *physics.Params) { p.Height = math.NaN() }),
			Entry("no substeps", func(p *physics.Params) { p.Substeps = 0 }),
			Entry("no iterations", func(p *physics.Params) { p.Iterations = 0 }),
			Entry("zero damping", func(p *physics.Params) { p.Damping = 0 }),
		)
	})

	Describe("CreateBody", func() {
		DescribeTable("rejects specs the engine cannot represent",
			func(mutate func(*physics.BodySpec)) {
				s := spec(material.Uranium, 100, 100)
				mutate(&s)
				_, err := w.CreateBody(s)
				Expect(err).To(MatchError(physics.ErrInvalidBody))
				Expect(w.Len()).To(BeZero())
				Expect(w.SpaceBodies()).To(Equal(3))
			},
			Entry("NaN position", func(s *physics.BodySpec) { s.Position[0] = math.NaN() }),
			Entry("infinite position", func(s *physics.BodySpec) { s.Position[1] = math.Inf(1) }),
			Entry("zero radius", func(s *physics.BodySpec) { s.Shape.Radius = 0 }),
			Entry("flat box", func(s *physics.BodySpec) {
				s.Shape = material.Shape{Kind: material.Box, HalfWidth: 2}
			}),
			Entry("infinite dynamic mass", func(s *physics.BodySpec) { s.Mass = math.Inf(1) }),
			Entry("negative restitution", func(s *physics.BodySpec) { s.Restitution = -1 }),
		)

		It("issues distinct handles", func() {
			a := mustCreate(w, spec(material.Wood, 10, 10))
			b := mustCreate(w, spec(material.Wood, 20, 10))
			Expect(a).NotTo(Equal(b))
			Expect(w.Len()).To(Equal(2))
			Expect(w.SpaceBodies()).To(Equal(5))
		})

		It("places the body at the requested position", func() {
			h := mustCreate(w, spec(material.Plutonium, 123.5, 45.25))
			Expect(position(w, h)).To(Equal(mgl64.Vec2{123.5, 45.25}))
		})
	})

	Describe("RemoveBody", func() {
		It("frees the body exactly once", func() {
			h := mustCreate(w, spec(material.Uranium, 50, 50))
			Expect(w.RemoveBody(h)).To(Succeed())
			Expect(w.Contains(h)).To(BeFalse())
			Expect(w.SpaceBodies()).To(Equal(3))

			_, ok := w.ReadTransform(h)
			Expect(ok).To(BeFalse())
			_, ok = w.ReadVelocity(h)
			Expect(ok).To(BeFalse())

			Expect(w.RemoveBody(h)).To(MatchError(physics.ErrUnknownBody))
		})

		It("never reuses a removed handle", func() {
			old := mustCreate(w, spec(material.Stone, 50, 50))
			Expect(w.RemoveBody(old)).To(Succeed())
			fresh := mustCreate(w, spec(material.Stone, 50, 50))
			Expect(fresh).NotTo(Equal(old))
		})

		It("removes sleeping bodies", func() {
			h := mustCreate(w, spec(material.Uranium, 200, 390))
			for i := 0; i < 240; i++ {
				w.Step(dt, gravity)
			}
			Expect(w.RemoveBody(h)).To(Succeed())
			Expect(w.SpaceBodies()).To(Equal(3))
		})
	})

	Describe("Step", func() {
		It("never moves static bodies", func() {
			h := mustCreate(w, spec(material.Wood, 100, 100))
			for i := 0; i < 10; i++ {
				w.Step(dt, gravity)
				Expect(position(w, h)).To(Equal(mgl64.Vec2{100, 100}))
			}
			v, ok := w.ReadVelocity(h)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(mgl64.Vec2{}))
		})

		It("drops a dynamic grain onto the ground where it comes to rest", func() {
			h := mustCreate(w, spec(material.Uranium, 200, 10))
			params, _ := material.Lookup(material.Uranium)
			rest := 400 - params.Shape.HalfExtent()

			prev := position(w, h)
			for i := 0; i < 300; i++ {
				w.Step(dt, gravity)
				p := position(w, h)
				Expect(math.IsNaN(p[1]) || math.IsInf(p[1], 0)).To(BeFalse())
				// penetration correction may lift the grain by a fraction of a pixel
				Expect(p[1]).To(BeNumerically(">=", prev[1]-3))
				Expect(p[0]).To(BeNumerically("~", 200, 1e-6))
				prev = p
			}

			Expect(prev[1]).To(BeNumerically("~", rest, 1))
			Expect(w.Sleeping(h)).To(BeTrue())

			for i := 0; i < 60; i++ {
				w.Step(dt, gravity)
			}
			Expect(position(w, h)).To(Equal(prev))
		})

		It("lets a bouncy grain rebound", func() {
			h := mustCreate(w, spec(material.Deuterium, 100, 200))
			rebounded := false
			landed := false
			for i := 0; i < 120; i++ {
				w.Step(dt, gravity)
				v, _ := w.ReadVelocity(h)
				p := position(w, h)
				if p[1] > 390 {
					landed = true
				}
				if landed && v[1] < -50 {
					rebounded = true
					break
				}
			}
			Expect(landed).To(BeTrue())
			Expect(rebounded).To(BeTrue())
		})

		It("stacks a grain on a static particle", func() {
			mustCreate(w, spec(material.Wood, 200, 200))
			h := mustCreate(w, spec(material.Uranium, 200, 150))
			for i := 0; i < 240; i++ {
				w.Step(dt, gravity)
			}
			Expect(position(w, h)[1]).To(BeNumerically("~", 196, 1))
		})

		It("keeps a sleeping grain asleep while gravity is unchanged", func() {
			h := mustCreate(w, spec(material.Uranium, 300, 390))
			for i := 0; i < 240; i++ {
				w.Step(dt, gravity)
			}
			Expect(w.Sleeping(h)).To(BeTrue())

			before := position(w, h)
			for i := 0; i < 30; i++ {
				w.Step(dt, gravity)
			}
			Expect(w.Sleeping(h)).To(BeTrue())
			Expect(position(w, h)).To(Equal(before))
		})

		It("is deterministic across independent worlds", func() {
			build := func() (*physics.World, []physics.BodyHandle) {
				world, err := physics.New(defaultParams())
				Expect(err).NotTo(HaveOccurred())
				handles := []physics.BodyHandle{
					mustCreate(world, spec(material.Uranium, 60, 20)),
					mustCreate(world, spec(material.Plutonium, 160, 40)),
					mustCreate(world, spec(material.Deuterium, 260, 60)),
					mustCreate(world, spec(material.Stone, 340, 300)),
				}
				return world, handles
			}

			a, ha := build()
			b, hb := build()
			for i := 0; i < 200; i++ {
				a.Step(dt, gravity)
				b.Step(dt, gravity)
				for j := range ha {
					Expect(position(a, ha[j])).To(Equal(position(b, hb[j])))
				}
			}
		})
	})
})
