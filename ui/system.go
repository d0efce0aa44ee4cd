// Package ui draws the on-screen controls: zoom buttons and a debug panel.
package ui

import (
	"image/color"

	"scroll-map/canvas"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	ButtonSize   = 30.0
	ButtonMargin = 10.0
)

type UISystem struct {
	buttons       []*Button
	getScreenSize func() (int, int)
	Debug         *DebugPanel
}

func NewUISystem(getScreenSize func() (int, int), onZoomIn func(), onZoomOut func(), panel, warning color.Color) *UISystem {
	ui := &UISystem{
		getScreenSize: getScreenSize,
		Debug:         &DebugPanel{PanelColor: panel, WarningColor: warning},
	}
	zoomIn := &Button{Label: "+", W: ButtonSize, H: ButtonSize, OnClick: onZoomIn}
	zoomOut := &Button{Label: "-", W: ButtonSize, H: ButtonSize, OnClick: onZoomOut}
	ui.buttons = []*Button{zoomIn, zoomOut}
	ui.updateButtonPositions()
	return ui
}

// Position relative to top-right
func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	x := float64(w)
	for _, b := range ui.buttons {
		x -= b.W + ButtonMargin
		b.X = x
		b.Y = ButtonMargin
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Click runs the handler of the button under (mx, my) and reports whether
// one was hit.
func (ui *UISystem) Click(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Update() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		ui.Click(mx, my)
	}
}

func (ui *UISystem) Draw(r canvas.Renderer) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		b.Draw(r)
	}
	ui.Debug.Draw(r)
}
