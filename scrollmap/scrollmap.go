// Package scrollmap ties a viewport to a set of projected map nodes.
package scrollmap

import (
	"fmt"

	"scroll-map/config"
	"scroll-map/log"
	"scroll-map/viewport"
)

// ScrollMap is the viewer's state: a viewport over projected nodes.
type ScrollMap struct {
	Viewport *viewport.Viewport
	Coords   []LatLon
	Nodes    []viewport.Point

	// Box is a world rectangle fixed at load time; it grows and shrinks with zoom.
	Box viewport.Rect

	limits viewport.Limits
	margin float64
}

// New creates the viewport described by cfg, loads cfg.NodesFile and fits the
// viewport to it.
func New(cfg config.Config, loader *Loader) (*ScrollMap, error) {
	vp, err := viewport.New(cfg.Width, cfg.Height, cfg.BasePPU)
	if err != nil {
		return nil, err
	}
	if loader == nil {
		loader = NewLoader(map[string]interface{}{"width": cfg.Width, "height": cfg.Height})
	}
	coords, err := loader.Load(cfg.NodesFile)
	if err != nil {
		return nil, err
	}
	log.InfoLog.Printf("loaded %d nodes from %s", len(coords), cfg.NodesFile)
	return FromCoords(vp, coords, cfg.FitMargin, viewport.Limits{MinScale: cfg.MinScale, MaxScale: cfg.MaxScale}), nil
}

// FromCoords builds a ScrollMap over vp and fits vp to coords.
func FromCoords(vp *viewport.Viewport, coords []LatLon, margin float64, limits viewport.Limits) *ScrollMap {
	sm := &ScrollMap{
		Viewport: vp,
		Coords:   coords,
		Nodes:    Project(coords),
		limits:   limits,
		margin:   margin,
	}
	sm.Refit()
	focus, view := vp.Focus(), vp.View()
	sm.Box = viewport.Rect{
		X: (focus.X + view.X) / 2,
		Y: (focus.Y + view.Y) / 2,
		W: focus.X - view.X,
		H: focus.Y - view.Y,
	}
	return sm
}

func (sm *ScrollMap) Limits() viewport.Limits { return sm.limits }

// Refit re-centres the viewport on all nodes. The fitted scale is held to the
// zoom limits so scroll notches keep working afterwards.
func (sm *ScrollMap) Refit() {
	sm.Viewport.Fit(sm.Nodes, sm.margin)
	if sm.Viewport.ClampScale(sm.limits.MinScale, sm.limits.MaxScale) {
		log.WarningLog.Printf("fit scale outside [%g, %g], clamped", sm.limits.MinScale, sm.limits.MaxScale)
	}
	log.InfoLog.Printf("fit %d nodes: %s", len(sm.Nodes), sm.Viewport)
}

// Apply feeds one frame of events to the viewport and reports whether a Quit
// was among them.
func (sm *ScrollMap) Apply(events []viewport.Event) bool {
	for _, e := range events {
		switch e := e.(type) {
		case viewport.Drag:
			log.InfoLog.Printf("drag (%.0f, %.0f)", e.Delta.X, e.Delta.Y)
		case viewport.Scroll:
			log.InfoLog.Printf("scroll %+.0f at (%.0f, %.0f)", e.Direction, e.Cursor.X, e.Cursor.Y)
		}
	}
	*sm.Viewport = viewport.ApplyAll(*sm.Viewport, events, sm.limits)
	return viewport.IsQuit(events)
}

// NodeAt returns the index of the node whose marker, markerSize pixels wide,
// covers the screen point s, or -1.
func (sm *ScrollMap) NodeAt(s viewport.Point, markerSize float64) int {
	for i := len(sm.Nodes) - 1; i >= 0; i-- {
		c := sm.Viewport.WorldToScreen(sm.Nodes[i])
		r := viewport.Rect{X: c.X - markerSize/2, Y: c.Y - markerSize/2, W: markerSize, H: markerSize}
		if r.Contains(s) {
			return i
		}
	}
	return -1
}

func (sm *ScrollMap) String() string {
	return fmt.Sprintf("scrollmap{%d nodes, %s}", len(sm.Nodes), sm.Viewport)
}
