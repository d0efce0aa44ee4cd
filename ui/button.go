package ui

import (
	"image/color"

	"scroll-map/canvas"
	"scroll-map/viewport"
)

var (
	buttonColor = color.NRGBA{60, 60, 70, 200}
	labelColor  = color.White
)

type Button struct {
	Label   string
	X, Y    float64
	W, H    float64
	OnClick func()
}

func (b *Button) Rect() viewport.Rect {
	return viewport.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return b.Rect().Contains(viewport.Pt(float64(mx), float64(my)))
}

func (b *Button) Draw(r canvas.Renderer) {
	r.FillRect(b.Rect(), buttonColor)
	r.DrawLabel(b.Label, viewport.Pt(b.X+10, b.Y+8), labelColor)
}
