package canvas

import (
	"image/color"
	"math"

	"scroll-map/viewport"
)

const (
	minGridSpacing = 16.0 // px
	originCross    = 15.0 // px
)

// gridStep scales base by powers of ten until lines are at least
// minGridSpacing pixels apart but no more than ten times that.
func gridStep(base, ppu float64) float64 {
	if !(base > 0 && ppu > 0) || math.IsInf(ppu, 0) {
		return base
	}
	step := base
	for step*ppu < minGridSpacing {
		step *= 10
	}
	for step*ppu > minGridSpacing*10 && !math.IsInf(step, 0) {
		step /= 10
	}
	return step
}

// resolvable reports whether float64 rounding in [lo, hi] stays below about
// a pixel for lines step apart. Deep zooms far from the origin fail this.
func resolvable(step, lo, hi float64) bool {
	m := math.Max(math.Abs(lo), math.Abs(hi))
	ulp := math.Nextafter(m, math.Inf(1)) - m
	return step > 0 && ulp*minGridSpacing*10 < step
}

// gridLines returns the world coordinates of the lines in [lo, hi], at most
// limit of them.
func gridLines(lo, hi, step float64, limit int) []float64 {
	if !resolvable(step, lo, hi) {
		return nil
	}
	start := math.Ceil(lo/step) * step
	var out []float64
	for i := 0; i < limit; i++ {
		v := start + float64(i)*step
		if v > hi {
			break
		}
		out = append(out, v)
	}
	return out
}

// DrawBackgroundGrid renders the world grid visible through vp and marks the
// world origin.
func DrawBackgroundGrid(r Renderer, vp *viewport.Viewport, gridSize float64, gridColor, originColor color.Color) {
	if gridSize <= 0 {
		return
	}
	w, h := r.Size()
	bounds := vp.VisibleBounds()
	step := gridStep(gridSize, vp.PixelsPerUnit())

	// Vertical lines
	for _, wx := range gridLines(bounds.X, bounds.X+bounds.W, step, w/int(minGridSpacing)+2) {
		sx := vp.WorldToScreen(viewport.Pt(wx, 0)).X
		r.DrawLine(viewport.Pt(sx, 0), viewport.Pt(sx, float64(h)), gridColor)
	}

	// Horizontal lines
	for _, wy := range gridLines(bounds.Y, bounds.Y+bounds.H, step, h/int(minGridSpacing)+2) {
		sy := vp.WorldToScreen(viewport.Pt(0, wy)).Y
		r.DrawLine(viewport.Pt(0, sy), viewport.Pt(float64(w), sy), gridColor)
	}

	o := vp.WorldToScreen(viewport.Pt(0, 0))
	r.DrawLine(viewport.Pt(o.X-originCross, o.Y), viewport.Pt(o.X+originCross, o.Y), originColor)
	r.DrawLine(viewport.Pt(o.X, o.Y-originCross), viewport.Pt(o.X, o.Y+originCross), originColor)
}
