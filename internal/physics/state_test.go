package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/collide/internal/params"
	"github.com/san-kum/collide/internal/physics"
)

// runUntilCollision ticks until the first collision and returns the tick
// count, or -1 if none happens within limit ticks.
func runUntilCollision(st *physics.State, limit int) int {
	for i := 1; i <= limit; i++ {
		if st.Tick().Collided {
			return i
		}
	}
	return -1
}

var _ = Describe("State", func() {
	var layout physics.Layout

	BeforeEach(func() {
		layout = physics.DefaultLayout()
	})

	Describe("New", func() {
		It("places the bodies on the start layout and starts running", func() {
			st := physics.New(params.Set{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: 0}, layout)

			Expect(st.Phase).To(Equal(physics.Running))
			Expect(st.Debounce).To(BeFalse())
			Expect(st.Ticks).To(BeZero())
			Expect(st.A.Position).To(Equal(physics.DefaultStartA))
			Expect(st.B.Position).To(Equal(physics.DefaultStartB))
			Expect(st.A.Radius).To(Equal(14.0))
			Expect(st.B.Radius).To(Equal(10.0))
			Expect(st.Overlapping()).To(BeFalse())
		})

		It("uses a default layout that cannot start in contact", func() {
			Expect(layout.Validate()).To(Succeed())
		})
	})

	Describe("Tick", func() {
		It("swaps velocities for equal masses on first contact", func() {
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 5, Velocity2: -5}, layout)

			Expect(runUntilCollision(st, 200)).To(Equal(59))
			Expect(st.A.Velocity).To(Equal(-5.0))
			Expect(st.B.Velocity).To(Equal(5.0))
			Expect(st.Debounce).To(BeTrue())

			st.Tick()
			Expect(st.Debounce).To(BeFalse())
		})

		It("applies the unequal-mass exchange and conserves momentum", func() {
			st := physics.New(params.Set{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: 0}, layout)
			before := st.Momentum()

			Expect(runUntilCollision(st, 500)).To(Equal(145))
			Expect(st.A.Velocity).To(BeNumerically("~", 2, 1e-12))
			Expect(st.B.Velocity).To(BeNumerically("~", 6, 1e-12))
			Expect(st.Momentum()).To(BeNumerically("~", before, 1e-9))
			Expect(before).To(Equal(12.0))
		})

		It("reports the exchange velocities", func() {
			st := physics.New(params.Set{Mass1: 3, Mass2: 1, Velocity1: 4, Velocity2: 0}, layout)
			var ev physics.TickEvents
			for !ev.Collided {
				ev = st.Tick()
			}

			Expect(ev.Exchange.BeforeA).To(Equal(4.0))
			Expect(ev.Exchange.BeforeB).To(Equal(0.0))
			Expect(ev.Exchange.AfterA).To(Equal(st.A.Velocity))
			Expect(ev.Exchange.AfterB).To(Equal(st.B.Velocity))
		})

		It("does not re-trigger the exchange while contact persists", func() {
			layout.StartA, layout.StartB = 500, 505
			st := physics.New(params.Set{Mass1: 3, Mass2: 1, Velocity1: 1, Velocity2: 0.9}, layout)

			Expect(st.Tick().Collided).To(BeTrue())
			va, vb := st.A.Velocity, st.B.Velocity
			Expect(va).To(BeNumerically("~", 0.95, 1e-12))
			Expect(vb).To(BeNumerically("~", 1.05, 1e-12))

			for i := 0; i < 50; i++ {
				ev := st.Tick()
				Expect(ev.Collided).To(BeFalse())
				Expect(st.Overlapping()).To(BeTrue())
				Expect(st.Debounce).To(BeTrue())
				Expect(st.A.Velocity).To(Equal(va))
				Expect(st.B.Velocity).To(Equal(vb))
			}
		})

		It("is idempotent when nothing moves", func() {
			st := physics.New(params.Set{Mass1: 1, Mass2: 2, Velocity1: 0, Velocity2: 0}, layout)
			for i := 0; i < 100; i++ {
				ev := st.Tick()
				Expect(ev).To(Equal(physics.TickEvents{}))
			}
			Expect(st.A.Position).To(Equal(physics.DefaultStartA))
			Expect(st.B.Position).To(Equal(physics.DefaultStartB))
			Expect(st.Ticks).To(Equal(100))
		})

		It("does nothing while paused", func() {
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 5, Velocity2: -5}, layout)
			st.SetPaused(true)
			Expect(st.Phase).To(Equal(physics.Paused))

			for i := 0; i < 10; i++ {
				Expect(st.Tick()).To(Equal(physics.TickEvents{}))
			}
			Expect(st.A.Position).To(Equal(physics.DefaultStartA))
			Expect(st.Ticks).To(BeZero())

			st.SetPaused(false)
			Expect(st.Phase).To(Equal(physics.Running))
			st.Tick()
			Expect(st.A.Position).To(Equal(physics.DefaultStartA + 5))
		})

		It("scales displacement by the step multiplier", func() {
			layout.Step = 0.5
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 4, Velocity2: -2}, layout)
			st.Tick()
			Expect(st.A.Position).To(Equal(physics.DefaultStartA + 2))
			Expect(st.B.Position).To(Equal(physics.DefaultStartB - 1))
		})
	})

	Describe("wall reflection", func() {
		It("flips a body at the left wall exactly once", func() {
			layout.StartA = 10
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: -5, Velocity2: 0}, layout)
			Expect(st.A.Position).To(Equal(st.A.Radius))

			flips := 0
			for i := 0; i < 20; i++ {
				if st.Tick().WallA {
					flips++
				}
			}
			Expect(flips).To(Equal(1))
			Expect(st.A.Velocity).To(Equal(5.0))
		})

		It("leaves a body inside the wall zone alone while it moves inward", func() {
			layout.StartA = 5
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 3, Velocity2: 0}, layout)
			Expect(st.A.Position).To(BeNumerically("<", st.A.Radius))

			ev := st.Tick()
			Expect(ev.WallA).To(BeFalse())
			Expect(st.A.Position).To(Equal(8.0))
			Expect(st.A.Velocity).To(Equal(3.0))

			ev = st.Tick()
			Expect(ev.WallA).To(BeFalse())
			Expect(st.A.Position).To(Equal(11.0))
			Expect(st.A.Velocity).To(Equal(3.0))
		})

		It("flips a body pushed back into the wall zone once", func() {
			layout.StartA = 5
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 3, Velocity2: 0}, layout)
			st.Tick()

			st.A.Velocity = -3
			ev := st.Tick()
			Expect(ev.WallA).To(BeTrue())
			Expect(st.A.Velocity).To(Equal(3.0))

			ev = st.Tick()
			Expect(ev.WallA).To(BeFalse())
			Expect(st.A.Velocity).To(Equal(3.0))
		})

		It("does not clamp the position after an overshoot", func() {
			layout.StartA = 12
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: -5, Velocity2: 0}, layout)

			ev := st.Tick()
			Expect(ev.WallA).To(BeTrue())
			Expect(st.A.Position).To(Equal(7.0))
			Expect(st.A.Velocity).To(Equal(5.0))
		})

		It("reflects both bodies in the same tick", func() {
			layout.StartA, layout.StartB = 13, physics.DefaultViewportWidth-13
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: -4, Velocity2: 4}, layout)

			ev := st.Tick()
			Expect(ev.WallA).To(BeTrue())
			Expect(ev.WallB).To(BeTrue())
			Expect(st.A.Velocity).To(Equal(4.0))
			Expect(st.B.Velocity).To(Equal(-4.0))
		})

		It("keeps a bouncing pair inside the viewport for a long run", func() {
			st := physics.New(params.Set{Mass1: 7, Mass2: 0.3, Velocity1: 13, Velocity2: -19}, layout)
			for i := 0; i < 20000; i++ {
				st.Tick()
				Expect(st.A.Position).To(BeNumerically(">", -100))
				Expect(st.A.Position).To(BeNumerically("<", physics.DefaultViewportWidth+100))
				Expect(st.B.Position).To(BeNumerically(">", -100))
				Expect(st.B.Position).To(BeNumerically("<", physics.DefaultViewportWidth+100))
			}
			Expect(st.KineticEnergy()).To(BeNumerically("~", 0.5*7*13*13+0.5*0.3*19*19, 1e-6))
		})
	})

	Describe("Reset", func() {
		It("replaces the run wholesale", func() {
			st := physics.New(params.Set{Mass1: 1, Mass2: 1, Velocity1: 5, Velocity2: -5}, layout)
			runUntilCollision(st, 200)
			st.SetPaused(true)

			st.Reset(params.Set{Mass1: 4, Mass2: 9, Velocity1: 1, Velocity2: 2})
			Expect(st.Phase).To(Equal(physics.Running))
			Expect(st.Debounce).To(BeFalse())
			Expect(st.Ticks).To(BeZero())
			Expect(st.A).To(Equal(physics.Body{Position: physics.DefaultStartA, Velocity: 1, Mass: 4, Radius: 16}))
			Expect(st.B).To(Equal(physics.Body{Position: physics.DefaultStartB, Velocity: 2, Mass: 9, Radius: 22}))
		})
	})

	Describe("degenerate masses", func() {
		It("stays finite for masses many orders of magnitude apart", func() {
			st := physics.New(params.Set{Mass1: 1e300, Mass2: 1e-300, Velocity1: 1, Velocity2: -20}, layout)
			Expect(runUntilCollision(st, 1000)).To(BeNumerically(">", 0))
			Expect(st.Finite()).To(BeTrue())
			Expect(st.A.Radius).To(Equal(physics.DefaultMaxRadius))
			Expect(st.B.Radius).To(Equal(4.0))
		})

		It("does not panic when the mass sum overflows", func() {
			st := physics.New(params.Set{Mass1: 1e308, Mass2: 1e308, Velocity1: 5, Velocity2: -5}, layout)
			Expect(func() {
				for i := 0; i < 200; i++ {
					st.Tick()
				}
			}).NotTo(Panic())
		})
	})
})

var _ = Describe("Layout", func() {
	DescribeTable("Validate",
		func(l physics.Layout, want error) {
			Expect(l.Validate()).To(MatchError(want))
		},
		Entry("zero width", physics.Layout{StartA: 200, StartB: 800, ViewportWidth: 0, MinRadius: 1, MaxRadius: 45, Step: 1}, physics.ErrInvalidLayout),
		Entry("zero step", physics.Layout{StartA: 200, StartB: 800, ViewportWidth: 1000, MinRadius: 1, MaxRadius: 45, Step: 0}, physics.ErrInvalidLayout),
		Entry("inverted radii", physics.Layout{StartA: 200, StartB: 800, ViewportWidth: 1000, MinRadius: 50, MaxRadius: 45, Step: 1}, physics.ErrInvalidLayout),
		Entry("too close", physics.Layout{StartA: 200, StartB: 280, ViewportWidth: 1000, MinRadius: 1, MaxRadius: 45, Step: 1}, physics.ErrOverlappingStart),
	)
})
