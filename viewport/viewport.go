// Package viewport maps a 2D world onto a fixed-size screen and updates that
// mapping from drag and scroll input.
//
// Screen coordinates are pixels with the origin at the top-left corner and y
// growing downwards. A world point p lands on screen at (p - View) * PixelsPerUnit.
package viewport

import (
	"errors"
	"fmt"
)

const (
	// ZoomOutFactor and ZoomInFactor are reciprocal, so equal numbers of
	// in and out notches return to the starting scale.
	ZoomOutFactor = 0.8
	ZoomInFactor  = 1.25
)

var ErrInvalidDimensions = errors.New("viewport: invalid dimensions")

// Viewport is the world-to-screen mapping for one screen.
type Viewport struct {
	width, height int
	basePPU       float64

	scale float64
	ppu   float64

	focus Point // world point at screen centre
	view  Point // world point at screen top-left
}

// New returns a viewport at scale 1 centred on the world origin.
func New(width, height int, basePPU float64) (*Viewport, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if !(basePPU > 0) {
		return nil, fmt.Errorf("%w: base pixels per unit %v", ErrInvalidDimensions, basePPU)
	}
	v := &Viewport{
		width:   width,
		height:  height,
		basePPU: basePPU,
		scale:   1,
		ppu:     basePPU,
	}
	v.deriveView()
	return v, nil
}

func (v *Viewport) Width() int             { return v.width }
func (v *Viewport) Height() int            { return v.height }
func (v *Viewport) BasePPU() float64       { return v.basePPU }
func (v *Viewport) Scale() float64         { return v.scale }
func (v *Viewport) PixelsPerUnit() float64 { return v.ppu }
func (v *Viewport) Focus() Point           { return v.focus }
func (v *Viewport) View() Point            { return v.view }

// ScreenCenter is the screen-space pixel at the middle of the screen.
func (v *Viewport) ScreenCenter() Point { return v.halfScreen() }

func (v *Viewport) halfScreen() Point {
	return Point{float64(v.width) / 2, float64(v.height) / 2}
}

func (v *Viewport) String() string {
	return fmt.Sprintf("viewport{%dx%d scale=%.4g ppu=%.4g focus=(%.3f, %.3f) view=(%.3f, %.3f)}",
		v.width, v.height, v.scale, v.ppu, v.focus.X, v.focus.Y, v.view.X, v.view.Y)
}

// deriveView re-establishes view from focus and ppu.
func (v *Viewport) deriveView() {
	v.view = v.focus.Sub(v.halfScreen().Div(v.ppu))
}

// deriveFocus re-establishes focus from view and ppu.
func (v *Viewport) deriveFocus() {
	v.focus = v.view.Add(v.halfScreen().Div(v.ppu))
}

// Pan moves the world by a screen-space drag delta. Dragging right moves the
// focus left, so the content follows the cursor at any zoom level.
func (v *Viewport) Pan(motion Point) {
	v.focus = v.focus.Sub(motion.Div(v.ppu))
	v.deriveView()
}

// Zoom applies one scroll notch at the cursor. direction < 0 zooms out,
// direction > 0 zooms in, 0 does nothing. The notch is rejected when the new
// scale would fall outside [minScale, maxScale]; Zoom reports whether the
// viewport changed. The world point under cursor stays under cursor.
func (v *Viewport) Zoom(direction float64, cursor Point, minScale, maxScale float64) bool {
	var scale float64
	switch {
	case direction < 0:
		scale = v.scale * ZoomOutFactor
	case direction > 0:
		scale = v.scale * ZoomInFactor
	default:
		return false
	}
	if scale < minScale || scale > maxScale {
		return false
	}

	// Order matters: the anchor is captured with the old density.
	anchor := cursor.Div(v.ppu).Add(v.view)
	v.scale = scale
	v.ppu = v.basePPU * v.scale
	v.view = anchor.Sub(cursor.Div(v.ppu))
	v.deriveFocus()
	return true
}

// Fit centres the viewport on the bounding box of points and picks a density
// so the box, oversized by margin, spans the screen. An axis with zero extent
// does not constrain the density; with a single point only the focus moves.
func (v *Viewport) Fit(points []Point, margin float64) {
	box, ok := Enclose(points)
	if !ok {
		return
	}
	if margin <= 0 {
		margin = 1
	}
	v.focus = box.Center()

	ppu := 0.0
	if box.W > 0 {
		ppu = float64(v.width) / (box.W * margin)
	}
	if box.H > 0 {
		if y := float64(v.height) / (box.H * margin); y > ppu {
			ppu = y
		}
	}
	if ppu > 0 {
		v.ppu = ppu
		v.scale = v.ppu / v.basePPU
	}
	v.deriveView()
}

// ClampScale pulls the scale back into [minScale, maxScale], keeping the
// focus on screen centre. It reports whether the scale changed.
func (v *Viewport) ClampScale(minScale, maxScale float64) bool {
	scale := v.scale
	if scale > maxScale {
		scale = maxScale
	}
	if scale < minScale {
		scale = minScale
	}
	if scale == v.scale || scale <= 0 {
		return false
	}
	v.scale = scale
	v.ppu = v.basePPU * scale
	v.deriveView()
	return true
}

// Restore re-seats a previously saved focus and scale.
func (v *Viewport) Restore(focus Point, scale float64) {
	if scale > 0 {
		v.scale = scale
		v.ppu = v.basePPU * scale
	}
	v.focus = focus
	v.deriveView()
}

// Resize changes the screen size, keeping focus and scale.
func (v *Viewport) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.width, v.height = width, height
	v.deriveView()
}

func (v *Viewport) WorldToScreen(p Point) Point {
	return p.Sub(v.view).Mul(v.ppu)
}

func (v *Viewport) ScreenToWorld(s Point) Point {
	return s.Div(v.ppu).Add(v.view)
}

// VisibleBounds is the world rectangle currently covered by the screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{
		X: v.view.X,
		Y: v.view.Y,
		W: float64(v.width) / v.ppu,
		H: float64(v.height) / v.ppu,
	}
}
