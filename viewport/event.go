package viewport

// Event is one discrete input delivered to a viewport.
type Event interface {
	isEvent()
}

// Drag is a pointer motion in screen pixels while a button is held.
type Drag struct {
	Delta Point
}

// Scroll is one wheel notch at a screen position. Only the sign of Direction matters.
type Scroll struct {
	Direction float64
	Cursor    Point
}

// ResizeEvent reports a new screen size.
type ResizeEvent struct {
	Width, Height int
}

type Quit struct{}

func (Drag) isEvent()        {}
func (Scroll) isEvent()      {}
func (ResizeEvent) isEvent() {}
func (Quit) isEvent()        {}

// Limits bounds the zoom scale.
type Limits struct {
	MinScale, MaxScale float64
}

// Apply returns v updated by e. v itself is not modified. Quit and unknown
// events return v unchanged.
func Apply(v Viewport, e Event, lim Limits) Viewport {
	switch e := e.(type) {
	case Drag:
		v.Pan(e.Delta)
	case Scroll:
		v.Zoom(e.Direction, e.Cursor, lim.MinScale, lim.MaxScale)
	case ResizeEvent:
		v.Resize(e.Width, e.Height)
	}
	return v
}

// ApplyAll folds events over v in order.
func ApplyAll(v Viewport, events []Event, lim Limits) Viewport {
	for _, e := range events {
		v = Apply(v, e, lim)
	}
	return v
}

// IsQuit reports whether events contains a Quit.
func IsQuit(events []Event) bool {
	for _, e := range events {
		if _, ok := e.(Quit); ok {
			return true
		}
	}
	return false
}
