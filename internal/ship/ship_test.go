package ship_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/input"
	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/ship"
)

func held(actions ...input.Action) input.Snapshot {
	var s input.Snapshot
	for _, a := range actions {
		s[a] = true
	}
	return s
}

var _ = Describe("Ship", func() {
	var s *ship.Ship

	BeforeEach(func() {
		s = ship.New(ship.Config{
			X: 400, Y: 300, Heading: 0,
			Speed: 100, TurnRate: math.Pi, Size: 10,
			Color: render.MustColor("white"),
		}, 800, 600)
	})

	It("stays put with no keys held", func() {
		s.Update(1, input.Snapshot{})
		Expect(s.X).To(Equal(400.0))
		Expect(s.Y).To(Equal(300.0))
		Expect(s.Thrusting).To(BeFalse())
	})

	It("turns at the configured rate", func() {
		s.Update(0.25, held(input.TurnRight))
		Expect(s.Heading).To(BeNumerically("~", math.Pi/4, 1e-12))
		s.Update(0.5, held(input.TurnLeft))
		Expect(s.Heading).To(BeNumerically("~", -math.Pi/4, 1e-12))
	})

	It("cancels opposite turns", func() {
		s.Update(1, held(input.TurnLeft, input.TurnRight))
		Expect(s.Heading).To(BeNumerically("~", 0, 1e-12))
	})

	It("thrusts along the heading and reverses at half speed", func() {
		s.Update(1, held(input.Thrust))
		Expect(s.X).To(BeNumerically("~", 500, 1e-9))
		Expect(s.Thrusting).To(BeTrue())

		s.Heading = math.Pi / 2
		s.Update(1, held(input.Reverse))
		Expect(s.X).To(BeNumerically("~", 500, 1e-9))
		Expect(s.Y).To(BeNumerically("~", 250, 1e-9))
		Expect(s.Thrusting).To(BeFalse())
	})

	It("is clamped to the canvas bounds", func() {
		for i := 0; i < 100; i++ {
			s.Update(1, held(input.Thrust))
		}
		Expect(s.X).To(Equal(790.0))

		s.Heading = -math.Pi / 2
		for i := 0; i < 100; i++ {
			s.Update(1, held(input.Thrust))
		}
		Expect(s.Y).To(Equal(10.0))
	})

	It("re-clamps when the canvas shrinks", func() {
		s.SetBounds(100, 100)
		Expect(s.X).To(Equal(90.0))
		Expect(s.Y).To(Equal(90.0))

		s.SetBounds(5, 5)
		Expect(s.X).To(Equal(2.5))
	})

	It("keeps the heading within one turn", func() {
		for i := 0; i < 50; i++ {
			s.Update(1, held(input.TurnRight))
		}
		Expect(math.Abs(s.Heading)).To(BeNumerically("<=", math.Pi))
	})

	It("resets to its spawn point", func() {
		s.Update(1, held(input.Thrust, input.TurnLeft))
		s.Reset()
		Expect(s.X).To(Equal(400.0))
		Expect(s.Y).To(Equal(300.0))
		Expect(s.Heading).To(BeZero())
	})

	It("draws the hull in its own translated and rotated frame", func() {
		s.Heading = math.Pi / 2
		rec := render.NewRecorder()
		s.Draw(rec)

		polys := rec.Filter(render.OpFillPolygon)
		Expect(polys).To(HaveLen(1))
		Expect(rec.Depth()).To(BeZero())
		Expect(polys[0].Transform.Angle()).To(BeNumerically("~", math.Pi/2, 1e-12))

		nose := polys[0].Transform.ApplyPoint(polys[0].Points[0])
		Expect(nose.X).To(BeNumerically("~", 400, 1e-9))
		Expect(nose.Y).To(BeNumerically("~", 310, 1e-9))
	})

	It("adds a flame while thrusting", func() {
		s.Update(0.01, held(input.Thrust))
		rec := render.NewRecorder()
		s.Draw(rec)
		Expect(rec.Filter(render.OpFillPolygon)).To(HaveLen(2))
	})
})
