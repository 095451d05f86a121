package render

import colorful "github.com/lucasb-eyer/go-colorful"

// Context is an immediate-mode 2D surface with a save/restore transform
// stack. Coordinates are in the current frame; y grows downward.
type Context interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(theta float64)

	// Clear paints the whole surface. It leaves the transform untouched.
	Clear(bg colorful.Color)
	FillCircle(x, y, r float64, c colorful.Color)
	StrokeCircle(x, y, r float64, c colorful.Color)
	FillPolygon(pts []Point, c colorful.Color)
}

// FitViewport returns the transform that maps a w x h logical canvas into a
// dw x dh device area, preserving aspect ratio and centring the result.
func FitViewport(w, h, dw, dh float64) Affine {
	if w <= 0 || h <= 0 || dw <= 0 || dh <= 0 {
		return Identity()
	}
	s := dw / w
	if sy := dh / h; sy < s {
		s = sy
	}
	ox := (dw - w*s) / 2
	oy := (dh - h*s) / 2
	return Identity().Translate(ox, oy).Scale(s, s)
}
