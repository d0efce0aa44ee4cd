package ui

import (
	"image/color"

	"scroll-map/canvas"
	"scroll-map/viewport"
)

// DebugPanel shows a status line in the top-left corner and the last error
// in the bottom-right one.
type DebugPanel struct {
	Status string
	Error  string

	PanelColor   color.Color
	WarningColor color.Color
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

func (d *DebugPanel) Draw(r canvas.Renderer) {
	if d == nil {
		return
	}
	if d.Status != "" {
		r.DrawLabel(d.Status, viewport.Pt(10, 10), labelColor)
	}
	if d.Error == "" {
		return
	}
	w, h := r.Size()
	// Panel size
	pw, ph := 300.0, 80.0
	x := float64(w) - pw - 10
	y := float64(h) - ph - 10
	r.FillRect(viewport.Rect{X: x, Y: y, W: pw, H: ph}, d.PanelColor)
	r.DrawLabel(d.Error, viewport.Pt(x+8, y+8), d.WarningColor)
}
