package canvas

import (
	"image/color"

	"scroll-map/config"
	"scroll-map/scrollmap"
	"scroll-map/viewport"
)

// Style holds the colors and sizes used to draw a scene.
type Style struct {
	Background color.Color
	Grid       color.Color
	Origin     color.Color
	Box        color.Color
	Node       color.Color
	Line       color.Color
	Text       color.Color

	GridSize   float64
	MarkerSize float64 // node marker edge in pixels, independent of zoom
	Label      string
	TextSize   float64 // 0 means a tenth of the screen height
}

func StyleFromConfig(cfg config.Config) Style {
	def := config.Default().Colors
	c := func(s, fallback string) color.Color {
		return config.Color(s, config.Color(fallback, color.NRGBA{A: 0xff}))
	}
	return Style{
		Background: c(cfg.Colors.Background, def.Background),
		Grid:       c(cfg.Colors.Grid, def.Grid),
		Origin:     c(cfg.Colors.Origin, def.Origin),
		Box:        c(cfg.Colors.Box, def.Box),
		Node:       c(cfg.Colors.Node, def.Node),
		Line:       c(cfg.Colors.Line, def.Line),
		Text:       c(cfg.Colors.Text, def.Text),
		GridSize:   cfg.GridSize,
		MarkerSize: config.NodeMarkerSize,
		Label:      cfg.Text,
	}
}

// DrawScene draws one frame of sm without presenting it.
func DrawScene(r Renderer, sm *scrollmap.ScrollMap, st Style) {
	vp := sm.Viewport
	screen := screenRect(r)

	r.Clear(st.Background)
	DrawBackgroundGrid(r, vp, st.GridSize, st.Grid, st.Origin)

	// The box is in world units, so it scales with zoom.
	tl := vp.WorldToScreen(viewport.Pt(sm.Box.X, sm.Box.Y))
	box := viewport.Rect{X: tl.X, Y: tl.Y, W: sm.Box.W * vp.PixelsPerUnit(), H: sm.Box.H * vp.PixelsPerUnit()}
	if intersects(box, screen) {
		r.FillRect(box, st.Box)
	}

	if st.Label != "" {
		size := st.TextSize
		if size <= 0 {
			size = screen.H / 10
		}
		r.DrawText(st.Label, size, st.Text)
	}

	// Markers keep a fixed pixel size; consecutive nodes are joined.
	m := st.MarkerSize
	var prev viewport.Point
	for i, n := range sm.Nodes {
		s := vp.WorldToScreen(n)
		marker := viewport.Rect{X: s.X - m/2, Y: s.Y - m/2, W: m, H: m}
		if intersects(marker, screen) {
			r.FillRect(marker, st.Node)
		}
		if i > 0 && intersects(segmentBounds(prev, s), screen) {
			r.DrawLine(prev, s, st.Line)
		}
		prev = s
	}
}

// Frame draws and presents one frame.
func Frame(r Renderer, sm *scrollmap.ScrollMap, st Style) error {
	DrawScene(r, sm, st)
	return r.Present()
}

func segmentBounds(a, b viewport.Point) viewport.Rect {
	r, _ := viewport.Enclose([]viewport.Point{a, b})
	return r
}
