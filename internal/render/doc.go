// Package render provides the immediate-mode 2D drawing surface used by the
// scene and its frontends.
//
// The package is organised around a small canvas-like [Context]:
//
//   - [Affine]: 2x3 transform in canvas setTransform layout
//   - [Stack]: save/restore of the current transform over a base matrix
//   - [Braille]: raster context backed by Unicode Braille cells (2x4 dots)
//   - [Recorder]: context that records draw calls, for inspection
//
// # Transform Order
//
// Translate and Rotate post-multiply the current matrix, so the last call
// applies first to drawn geometry, matching the HTML canvas:
//
//	ctx.Save()
//	ctx.Rotate(angle)
//	ctx.Translate(orbitRadius, 0)
//	ctx.FillCircle(0, 0, radius, c) // lands on the rotated orbit
//	ctx.Restore()
package render
