package trace

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/orrery/internal/render"
	"github.com/san-kum/orrery/internal/scene"
)

// CanvasSVG writes every lit dot of a braille canvas as an SVG circle,
// scale pixels per dot, in the dot's own color.
func CanvasSVG(w io.Writer, canvas *render.Braille, scale float64) error {
	if canvas == nil {
		return nil
	}
	bw := bufio.NewWriter(w)

	dw, dh := canvas.DotSize()
	width := float64(dw) * scale
	height := float64(dh) * scale
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, canvas.Background().Hex())

	dotRadius := scale * 0.4
	for y := 0; y < dh; y++ {
		for x := 0; x < dw; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fill := canvas.Colors[y/4][x/2].Hex()
			fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" fill=\"%s\"/>\n", cx, cy, dotRadius, fill)
		}
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// PathSVG writes pts as a single polyline on a width x height canvas, in the
// same coordinates the scene uses.
func PathSVG(w io.Writer, pts []render.Point, width, height float64, stroke string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if len(pts) >= 2 {
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
		for i, p := range pts {
			if i == 0 {
				fmt.Fprintf(bw, "%.1f,%.1f", p.X, p.Y)
			} else {
				fmt.Fprintf(bw, " L%.1f,%.1f", p.X, p.Y)
			}
		}
		bw.WriteString("\"/>\n")
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}

// Track advances s steps times and returns the canvas position of the named
// body after each step. The ship is tracked under the name "ship".
func Track(s *scene.Scene, name string, steps int, dt float64) ([]render.Point, error) {
	if steps < 0 {
		return nil, ErrInvalidSteps
	}
	if steps > MaxTrackSteps {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySteps, steps, MaxTrackSteps)
	}
	pos := func() (float64, float64) { return s.Ship.X, s.Ship.Y }
	if name != "ship" {
		b := s.Root.Find(name)
		if b == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
		}
		pos = func() (float64, float64) { return s.Position(b) }
	}

	pts := make([]render.Point, 0, steps)
	for i := 0; i < steps; i++ {
		s.Update(dt)
		x, y := pos()
		pts = append(pts, render.Point{X: x, Y: y})
	}
	return pts, nil
}
