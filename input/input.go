// Package input turns ebiten's per-frame input state into viewport events and
// control actions.
package input

import (
	"scroll-map/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Host defines the callbacks the input system needs from the main game.
type Host interface {
	ScreenSize() (int, int)
	IsMouseOver(mx, my int) bool
	RequestScreenshot()
	SaveState() error
	LoadState() error
	Refit()
}

// Snapshot is the input state of a single frame.
type Snapshot struct {
	Cursor  viewport.Point
	Held    bool    // a drag button is down
	Wheel   float64 // vertical wheel delta
	ZoomIn  bool    // keyboard zoom in, just pressed
	ZoomOut bool    // keyboard zoom out, just pressed
	OverUI  bool    // cursor is over a UI control
	Quit    bool
	Shot    bool
	Save    bool
	Load    bool
	Refit   bool
}

type InputSystem struct {
	host Host

	// Panning state
	isPanning bool
	last      viewport.Point
}

func NewInputSystem(h Host) *InputSystem {
	return &InputSystem{host: h}
}

// Poll reads the current ebiten input state.
func (is *InputSystem) Poll() Snapshot {
	mx, my := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	return Snapshot{
		Cursor: viewport.Pt(float64(mx), float64(my)),
		Held: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) ||
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) ||
			ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Wheel:   wheel,
		ZoomIn:  inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd),
		ZoomOut: inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract),
		OverUI:  is.host.IsMouseOver(mx, my),
		Quit:    inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ),
		Shot:    inpututil.IsKeyJustPressed(ebiten.KeyF12),
		Save:    ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS),
		Load:    ctrl && inpututil.IsKeyJustPressed(ebiten.KeyL),
		Refit:   inpututil.IsKeyJustPressed(ebiten.KeyHome),
	}
}

// Update polls ebiten, runs control actions on the host and returns the
// frame's viewport events.
func (is *InputSystem) Update() []viewport.Event {
	return is.Handle(is.Poll())
}

// Handle runs control actions for s and returns its viewport events: at most
// one drag and one scroll, followed by Quit if requested.
func (is *InputSystem) Handle(s Snapshot) []viewport.Event {
	is.handleControlKeys(s)

	var events []viewport.Event
	if d, ok := is.handlePanning(s); ok {
		events = append(events, d)
	}
	if sc, ok := is.handleZoom(s); ok {
		events = append(events, sc)
	}
	if s.Quit {
		events = append(events, viewport.Quit{})
	}
	return events
}

func (is *InputSystem) handleControlKeys(s Snapshot) {
	if s.Shot {
		is.host.RequestScreenshot()
	}
	if s.Save {
		_ = is.host.SaveState()
	}
	if s.Load {
		_ = is.host.LoadState()
	}
	if s.Refit {
		is.host.Refit()
	}
}

func (is *InputSystem) handleZoom(s Snapshot) (viewport.Scroll, bool) {
	switch {
	case s.Wheel != 0:
		return viewport.Scroll{Direction: s.Wheel, Cursor: s.Cursor}, true
	case s.ZoomIn != s.ZoomOut:
		// keyboard zoom anchors on the screen centre
		w, h := is.host.ScreenSize()
		dir := 1.0
		if s.ZoomOut {
			dir = -1
		}
		return viewport.Scroll{Direction: dir, Cursor: viewport.Pt(float64(w)/2, float64(h)/2)}, true
	}
	return viewport.Scroll{}, false
}

func (is *InputSystem) handlePanning(s Snapshot) (viewport.Drag, bool) {
	if !is.isPanning {
		if s.Held && !s.OverUI {
			is.isPanning = true
			is.last = s.Cursor
		}
		return viewport.Drag{}, false
	}
	if !s.Held {
		is.isPanning = false
		return viewport.Drag{}, false
	}
	delta := s.Cursor.Sub(is.last)
	is.last = s.Cursor
	if delta == (viewport.Point{}) {
		return viewport.Drag{}, false
	}
	return viewport.Drag{Delta: delta}, true
}

// IsPanning reports whether a drag is in progress.
func (is *InputSystem) IsPanning() bool { return is.isPanning }
