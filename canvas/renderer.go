// Package canvas draws a scroll map through a small renderer contract. Every
// coordinate handed to a Renderer is already in screen pixels.
package canvas

import (
	"image/color"

	"scroll-map/viewport"
)

// Renderer is the drawing surface for one frame.
type Renderer interface {
	Size() (w, h int)
	Clear(c color.Color)
	FillRect(r viewport.Rect, c color.Color)
	DrawLine(p1, p2 viewport.Point, c color.Color)
	// DrawText draws s centred on the screen at the given pixel size.
	DrawText(s string, size float64, c color.Color)
	// DrawLabel draws small UI text with its top-left corner at p.
	DrawLabel(s string, p viewport.Point, c color.Color)
	Present() error
}

func screenRect(r Renderer) viewport.Rect {
	w, h := r.Size()
	return viewport.Rect{W: float64(w), H: float64(h)}
}

// intersects reports whether a and b overlap, edges included.
func intersects(a, b viewport.Rect) bool {
	return a.X <= b.X+b.W && b.X <= a.X+a.W && a.Y <= b.Y+b.H && b.Y <= a.Y+a.H
}
