package orbit_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orrery/internal/orbit"
	"github.com/san-kum/orrery/internal/render"
)

var _ = Describe("Body", func() {
	var sun, earth, moon, mars *orbit.Body

	BeforeEach(func() {
		sun = orbit.NewBody(orbit.Options{Name: "sun", Radius: 50, Color: render.MustColor("yellow")})
		earth = orbit.NewBody(orbit.Options{Name: "earth", Radius: 20, Color: render.MustColor("blue"), OrbitRadius: 200, OrbitSpeed: 0.6})
		moon = orbit.NewBody(orbit.Options{Name: "moon", Radius: 5, Color: render.MustColor("grey"), OrbitRadius: 40, OrbitSpeed: 3})
		mars = orbit.NewBody(orbit.Options{Name: "mars", Radius: 15, Color: render.MustColor("red"), OrbitRadius: 300, OrbitSpeed: 0.48})

		Expect(sun.AddChild(earth)).To(Succeed())
		Expect(earth.AddChild(moon)).To(Succeed())
		Expect(sun.AddChild(mars)).To(Succeed())
	})

	Describe("AddChild", func() {
		It("links parent and child", func() {
			Expect(moon.Parent()).To(Equal(earth))
			Expect(sun.Children()).To(HaveExactElements(earth, mars))
			Expect(moon.Depth()).To(Equal(2))
			Expect(sun.Count()).To(Equal(4))
		})

		It("rejects nil, self, reparenting and cycles", func() {
			Expect(sun.AddChild(nil)).To(MatchError(orbit.ErrNilChild))
			Expect(sun.AddChild(sun)).To(MatchError(orbit.ErrSelfChild))
			Expect(mars.AddChild(moon)).To(MatchError(orbit.ErrHasParent))

			loose := orbit.NewBody(orbit.Options{Name: "loose"})
			Expect(loose.AddChild(sun)).To(Succeed())
			other := orbit.NewBody(orbit.Options{Name: "other"})
			Expect(moon.AddChild(other)).To(Succeed())
			// sun already sits under loose; loose cannot go under sun's subtree
			Expect(other.AddChild(loose)).To(MatchError(orbit.ErrCycle))
		})
	})

	Describe("Update", func() {
		It("advances every angle by speed * dt", func() {
			sun.Update(0.5)
			Expect(sun.Angle).To(BeZero())
			Expect(earth.Angle).To(BeNumerically("~", 0.3, 1e-12))
			Expect(moon.Angle).To(BeNumerically("~", 1.5, 1e-12))
			Expect(mars.Angle).To(BeNumerically("~", 0.24, 1e-12))
		})

		It("keeps angles within one turn", func() {
			for i := 0; i < 10000; i++ {
				sun.Update(1.0 / 60)
			}
			sun.Walk(func(b *orbit.Body) bool {
				Expect(b.Angle).To(BeNumerically(">=", 0))
				Expect(b.Angle).To(BeNumerically("<", 2*math.Pi))
				return true
			})
		})

		It("wraps negative speeds into range", func() {
			retro := orbit.NewBody(orbit.Options{OrbitSpeed: -1})
			retro.Update(1)
			Expect(retro.Angle).To(BeNumerically("~", 2*math.Pi-1, 1e-12))
		})
	})

	Describe("WorldPosition", func() {
		It("places children relative to their parent's frame", func() {
			x, y := earth.WorldPosition()
			Expect(x).To(BeNumerically("~", 200, 1e-9))
			Expect(y).To(BeNumerically("~", 0, 1e-9))

			earth.Angle = math.Pi / 2
			x, y = moon.WorldPosition()
			// earth is straight down (y grows downward), moon inherits the rotation
			Expect(x).To(BeNumerically("~", 0, 1e-9))
			Expect(y).To(BeNumerically("~", 240, 1e-9))

			moon.Angle = math.Pi / 2
			x, y = moon.WorldPosition()
			Expect(x).To(BeNumerically("~", -40, 1e-9))
			Expect(y).To(BeNumerically("~", 200, 1e-9))
		})
	})

	Describe("Draw", func() {
		It("draws every body once with its subtree transform and balanced save/restore", func() {
			earth.Angle = math.Pi / 2
			moon.Angle = 0.25
			rec := render.NewRecorder()
			sun.Draw(rec)

			circles := rec.Filter(render.OpFillCircle)
			Expect(circles).To(HaveLen(4))
			Expect(rec.Depth()).To(Equal(0))
			Expect(rec.MaxDepth).To(Equal(3))

			names := []string{"sun", "earth", "moon", "mars"}
			for i, op := range circles {
				b := sun.Find(names[i])
				Expect(op.R).To(Equal(b.Radius))
				Expect(op.Color).To(Equal(b.Color))
				wx, wy := b.WorldPosition()
				cx, cy := op.Center()
				Expect(cx).To(BeNumerically("~", wx, 1e-9))
				Expect(cy).To(BeNumerically("~", wy, 1e-9))
			}

			// rotations compose down the tree
			Expect(circles[1].Transform.Angle()).To(BeNumerically("~", math.Pi/2, 1e-12))
			Expect(circles[2].Transform.Angle()).To(BeNumerically("~", math.Pi/2+0.25, 1e-12))

			// mars is a sibling of earth and must not inherit earth's rotation
			cx, cy := circles[3].Center()
			Expect(cx).To(BeNumerically("~", 300, 1e-9))
			Expect(cy).To(BeNumerically("~", 0, 1e-9))
			Expect(circles[3].Transform.Angle()).To(BeNumerically("~", 0, 1e-12))
		})

		It("skips the fill for zero-radius bodies but still draws children", func() {
			barycentre := orbit.NewBody(orbit.Options{Name: "bary"})
			star := orbit.NewBody(orbit.Options{Name: "star", Radius: 3, OrbitRadius: 10})
			Expect(barycentre.AddChild(star)).To(Succeed())

			rec := render.NewRecorder()
			barycentre.Draw(rec)
			Expect(rec.Filter(render.OpFillCircle)).To(HaveLen(1))
		})

		It("strokes the orbit of every body with a nonzero orbit radius", func() {
			rec := render.NewRecorder()
			sun.DrawOrbits(rec, render.MustColor("#333333"))
			rings := rec.Filter(render.OpStrokeCircle)
			Expect(rings).To(HaveLen(3))
			Expect(rings[0].R).To(Equal(200.0))
			Expect(rings[1].R).To(Equal(40.0))
			Expect(rings[2].R).To(Equal(300.0))
			Expect(rec.Depth()).To(Equal(0))

			// the moon's ring is centred on the earth
			cx, cy := rings[1].Center()
			ex, ey := earth.WorldPosition()
			Expect(cx).To(BeNumerically("~", ex, 1e-9))
			Expect(cy).To(BeNumerically("~", ey, 1e-9))
		})
	})

	It("finds bodies by name and resets angles", func() {
		Expect(sun.Find("moon")).To(BeIdenticalTo(moon))
		Expect(sun.Find("pluto")).To(BeNil())

		sun.Update(2)
		Expect(moon.Angle).NotTo(BeZero())
		sun.Reset()
		sun.Walk(func(b *orbit.Body) bool {
			Expect(b.Angle).To(BeZero())
			return true
		})
	})

	It("stops walking when the visitor returns false", func() {
		var seen []string
		sun.Walk(func(b *orbit.Body) bool {
			seen = append(seen, b.Name)
			return b.Name != "earth"
		})
		Expect(seen).To(Equal([]string{"sun", "earth"}))
	})
})
