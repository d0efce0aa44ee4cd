package main

import (
	"errors"
	"fmt"
	"image/color"
	"image/png"
	"os"

	"scroll-map/canvas"
	"scroll-map/config"
	"scroll-map/input"
	"scroll-map/log"
	"scroll-map/scrollmap"
	"scroll-map/ui"
	"scroll-map/viewport"

	"github.com/hajimehoshi/ebiten/v2"
)

type Game struct {
	cfg   config.Config
	sm    *scrollmap.ScrollMap
	style canvas.Style
	fonts *canvas.Fonts

	screenWidth  int
	screenHeight int

	// Sub-systems
	input *input.InputSystem
	ui    *ui.UISystem

	// scroll queued by the zoom buttons for the next frame
	pending []viewport.Event

	screenshotRequested bool
}

func NewGame(cfg config.Config, sm *scrollmap.ScrollMap, fonts *canvas.Fonts) *Game {
	g := &Game{
		cfg:          cfg,
		sm:           sm,
		style:        canvas.StyleFromConfig(cfg),
		fonts:        fonts,
		screenWidth:  cfg.Width,
		screenHeight: cfg.Height,
	}
	g.input = input.NewInputSystem(g)
	g.ui = ui.NewUISystem(
		g.ScreenSize,
		func() { g.zoomButton(1) },
		func() { g.zoomButton(-1) },
		config.Color(cfg.Colors.Panel, color.NRGBA{40, 40, 40, 220}),
		config.Color(cfg.Colors.Warning, color.NRGBA{255, 200, 50, 255}),
	)
	return g
}

func (g *Game) zoomButton(dir float64) {
	g.pending = append(g.pending, viewport.Scroll{Direction: dir, Cursor: g.sm.Viewport.ScreenCenter()})
}

func (g *Game) Update() error {
	// Delegate to sub-systems
	g.ui.Update()
	events := g.input.Update()

	hasScroll := false
	for _, e := range events {
		if _, ok := e.(viewport.Scroll); ok {
			hasScroll = true
		}
	}
	if !hasScroll {
		events = append(events, g.pending...)
	}
	g.pending = nil

	if g.sm.Apply(events) {
		return ebiten.Termination
	}

	vp := g.sm.Viewport
	cur := g.cursor()
	wx := vp.ScreenToWorld(cur)
	hover := ""
	if i := g.sm.NodeAt(cur, config.NodeMarkerSize); i >= 0 {
		c := g.sm.Coords[i]
		hover = fmt.Sprintf("   Node %d: %.4f, %.4f", i, c.Lat, c.Lon)
	}
	lim := g.sm.Limits()
	g.ui.Debug.Status = fmt.Sprintf(
		"Focus: (%.3f, %.3f) Scale: %.4g [%g, %g]\n"+
			"Mouse World: (%.3f, %.3f)%s\n"+
			"Drag: pan   Wheel: zoom   Home: fit",
		vp.Focus().X, vp.Focus().Y, vp.Scale(), lim.MinScale, lim.MaxScale, wx.X, wx.Y, hover)
	return nil
}

func (g *Game) cursor() viewport.Point {
	mx, my := ebiten.CursorPosition()
	return viewport.Pt(float64(mx), float64(my))
}

func (g *Game) Draw(screen *ebiten.Image) {
	r := canvas.NewScreenRenderer(screen, g.fonts)
	canvas.DrawScene(r, g.sm, g.style)
	g.ui.Draw(r)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		f, err := os.Create("screenshot.png")
		if err != nil {
			log.ErrorLog.Println("screenshot error:", err)
			return
		}
		defer f.Close()
		if err := png.Encode(f, screen); err != nil {
			log.ErrorLog.Println("screenshot error:", err)
		} else {
			log.InfoLog.Println("Screenshot saved as screenshot.png")
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.screenWidth = outsideWidth
		g.screenHeight = outsideHeight
		g.sm.Apply([]viewport.Event{viewport.ResizeEvent{Width: outsideWidth, Height: outsideHeight}})
	}
	return outsideWidth, outsideHeight
}

// input.Host

func (g *Game) ScreenSize() (int, int) { return g.screenWidth, g.screenHeight }

func (g *Game) IsMouseOver(mx, my int) bool { return g.ui.IsMouseOver(mx, my) }

func (g *Game) RequestScreenshot() { g.screenshotRequested = true }

func (g *Game) SaveState() error {
	if err := g.sm.SaveState(g.cfg.StateFile); err != nil {
		g.report("save failed", err)
		return err
	}
	log.InfoLog.Printf("view saved to %s", g.cfg.StateFile)
	g.ui.Debug.Clear()
	return nil
}

func (g *Game) LoadState() error {
	if err := g.sm.LoadState(g.cfg.StateFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("no saved view at %s", g.cfg.StateFile)
		}
		g.report("load failed", err)
		return err
	}
	log.InfoLog.Printf("view loaded from %s", g.cfg.StateFile)
	g.ui.Debug.Clear()
	return nil
}

func (g *Game) Refit() { g.sm.Refit() }

func (g *Game) report(what string, err error) {
	log.ErrorLog.Printf("%s: %v", what, err)
	g.ui.Debug.SetError(fmt.Sprintf("%s:\n%v", what, err))
}
