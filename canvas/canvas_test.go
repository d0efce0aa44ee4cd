package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"os"
	"testing"
	"time"

	"scroll-map/config"
	"scroll-map/log"
	"scroll-map/scrollmap"
	"scroll-map/viewport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Discard()
	os.Exit(m.Run())
}

type call struct {
	op    string
	rect  viewport.Rect
	p1    viewport.Point
	p2    viewport.Point
	text  string
	size  float64
	color color.Color
}

// recorder is a Renderer that remembers what it was asked to draw.
type recorder struct {
	w, h      int
	calls     []call
	presented int
}

func (r *recorder) Size() (int, int)    { return r.w, r.h }
func (r *recorder) Clear(c color.Color) { r.calls = append(r.calls, call{op: "clear", color: c}) }
func (r *recorder) FillRect(rect viewport.Rect, c color.Color) {
	r.calls = append(r.calls, call{op: "rect", rect: rect, color: c})
}
func (r *recorder) DrawLine(p1, p2 viewport.Point, c color.Color) {
	r.calls = append(r.calls, call{op: "line", p1: p1, p2: p2, color: c})
}
func (r *recorder) DrawText(s string, size float64, c color.Color) {
	r.calls = append(r.calls, call{op: "text", text: s, size: size, color: c})
}
func (r *recorder) DrawLabel(s string, p viewport.Point, c color.Color) {
	r.calls = append(r.calls, call{op: "label", text: s, p1: p, color: c})
}
func (r *recorder) Present() error { r.presented++; return nil }

func (r *recorder) filter(op string, c color.Color) []call {
	var out []call
	for _, cl := range r.calls {
		if cl.op == op && (c == nil || cl.color == c) {
			out = append(out, cl)
		}
	}
	return out
}

func testStyle() Style {
	st := StyleFromConfig(config.Default())
	st.GridSize = 0
	return st
}

func testMap(t *testing.T) *scrollmap.ScrollMap {
	t.Helper()
	vp, err := viewport.New(1000, 800, 100)
	require.NoError(t, err)
	// roughly the screen's aspect ratio, so every node lands on screen
	coords := []scrollmap.LatLon{{0, 0}, {0, 1.25}, {1, 0}, {1, 1.25}}
	return scrollmap.FromCoords(vp, coords, 1.5, viewport.Limits{MinScale: 1e-5, MaxScale: 1e5})
}

func TestDrawScene(t *testing.T) {
	sm := testMap(t)
	st := testStyle()
	r := &recorder{w: 1000, h: 800}

	require.NoError(t, Frame(r, sm, st))

	require.NotEmpty(t, r.calls)
	assert.Equal(t, "clear", r.calls[0].op)
	assert.Equal(t, st.Background, r.calls[0].color)
	assert.Equal(t, 1, r.presented)

	boxes := r.filter("rect", st.Box)
	require.Len(t, boxes, 1)
	assert.InDelta(t, 250, boxes[0].rect.X, 1e-6)
	assert.InDelta(t, 200, boxes[0].rect.Y, 1e-6)
	assert.InDelta(t, 500, boxes[0].rect.W, 1e-6)

	texts := r.filter("text", nil)
	require.Len(t, texts, 1)
	assert.Equal(t, config.DefaultText, texts[0].text)
	assert.Equal(t, 80.0, texts[0].size)

	markers := r.filter("rect", st.Node)
	require.Len(t, markers, 4)
	for i, m := range markers {
		center := sm.Viewport.WorldToScreen(sm.Nodes[i])
		assert.Equal(t, config.NodeMarkerSize, m.rect.W)
		assert.InDelta(t, center.X, m.rect.Center().X, 1e-9)
		assert.InDelta(t, center.Y, m.rect.Center().Y, 1e-9)
	}

	lines := r.filter("line", st.Line)
	require.Len(t, lines, 3)
	assert.Equal(t, sm.Viewport.WorldToScreen(sm.Nodes[0]), lines[0].p1)
	assert.Equal(t, sm.Viewport.WorldToScreen(sm.Nodes[1]), lines[0].p2)
}

func TestDrawSceneMarkerSizeIgnoresZoom(t *testing.T) {
	sm := testMap(t)
	st := testStyle()
	sm.Apply([]viewport.Event{viewport.Scroll{Direction: -1, Cursor: viewport.Pt(500, 400)}})

	r := &recorder{w: 1000, h: 800}
	DrawScene(r, sm, st)
	for _, m := range r.filter("rect", st.Node) {
		assert.Equal(t, config.NodeMarkerSize, m.rect.W)
	}
	assert.Equal(t, 0, r.presented)
}

func TestDrawSceneCullsOffscreen(t *testing.T) {
	sm := testMap(t)
	st := testStyle()
	// drag the map far off to the right
	sm.Apply([]viewport.Event{viewport.Drag{Delta: viewport.Pt(5000, 0)}})

	r := &recorder{w: 1000, h: 800}
	DrawScene(r, sm, st)

	assert.Empty(t, r.filter("rect", st.Node))
	assert.Empty(t, r.filter("rect", st.Box))
	assert.Empty(t, r.filter("line", st.Line))
	assert.Len(t, r.filter("text", nil), 1)
}

func TestDrawBackgroundGrid(t *testing.T) {
	vp, err := viewport.New(800, 600, 100)
	require.NoError(t, err)
	grid := color.NRGBA{1, 2, 3, 4}
	origin := color.NRGBA{5, 6, 7, 8}
	r := &recorder{w: 800, h: 600}

	DrawBackgroundGrid(r, vp, 1, grid, origin)

	// view spans x in [-4, 4] and y in [-3, 3] at one line per unit
	lines := r.filter("line", grid)
	assert.Len(t, lines, 9+7)
	for _, l := range lines {
		if l.p1.X == l.p2.X {
			assert.InDelta(t, 0, float64(int(l.p1.X)%100), 1e-9)
		}
	}
	cross := r.filter("line", origin)
	require.Len(t, cross, 2)
	assert.Equal(t, viewport.Pt(385, 300), cross[0].p1)
	assert.Equal(t, viewport.Pt(415, 300), cross[0].p2)
	assert.Equal(t, viewport.Pt(400, 285), cross[1].p1)
}

func TestDrawBackgroundGridDeepZoom(t *testing.T) {
	vp, err := viewport.New(800, 600, 100)
	require.NoError(t, err)
	// far from the origin the step drops below float64 resolution
	vp.Fit([]viewport.Point{{X: 4000, Y: -3000}, {X: 4000 + 4e-12, Y: -3000 + 4e-12}}, 1.5)
	require.Greater(t, vp.PixelsPerUnit(), 1e13)

	grid := color.NRGBA{1, 2, 3, 4}
	r := &recorder{w: 800, h: 600}
	done := make(chan struct{})
	go func() {
		DrawBackgroundGrid(r, vp, 1, grid, color.White)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("DrawBackgroundGrid did not return")
	}
	assert.Empty(t, r.filter("line", grid))
	assert.Len(t, r.filter("line", color.White), 2)
}

func TestDrawBackgroundGridLineCap(t *testing.T) {
	vp, err := viewport.New(800, 600, 100)
	require.NoError(t, err)
	vp.Restore(viewport.Pt(1e6, -1e6), 1e4)

	grid := color.NRGBA{1, 2, 3, 4}
	r := &recorder{w: 800, h: 600}
	DrawBackgroundGrid(r, vp, 1, grid, color.White)

	lines := r.filter("line", grid)
	assert.NotEmpty(t, lines)
	assert.LessOrEqual(t, len(lines), 800/16+2+600/16+2)
}

func TestGridLines(t *testing.T) {
	assert.Equal(t, []float64{-2, 0, 2, 4}, gridLines(-3, 4, 2, 10))
	assert.Len(t, gridLines(0, 100, 1, 5), 5)
	assert.Nil(t, gridLines(1e6, 1e6+1, 1e-12, 10))
	assert.Nil(t, gridLines(0, 1, 0, 10))
}

func TestGridStep(t *testing.T) {
	assert.Equal(t, 1.0, gridStep(1, 100))
	assert.Equal(t, 10.0, gridStep(1, 5))
	assert.InDelta(t, 0.01, gridStep(1, 10000), 1e-12)
	assert.Equal(t, 1.0, gridStep(1, 0))
	assert.Equal(t, 1.0, gridStep(1, math.Inf(1)))
}

func TestImageRenderer(t *testing.T) {
	var buf bytes.Buffer
	ir := NewImageRenderer(64, 48, LoadFontData(""), &buf)
	defer ir.Close()

	w, h := ir.Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)

	bg := color.NRGBA{0x20, 0x20, 0x20, 0xff}
	fill := color.NRGBA{0xff, 0x00, 0x40, 0xff}
	ir.Clear(bg)
	ir.FillRect(viewport.Rect{X: 10, Y: 10, W: 20, H: 20}, fill)
	ir.DrawLine(viewport.Pt(0, 40), viewport.Pt(63, 40), color.White)
	ir.DrawText("hi", 12, color.White)
	require.NoError(t, ir.Present())

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	assertColor(t, bg, img.At(2, 2))
	assertColor(t, fill, img.At(20, 20))
	assertColor(t, fill, ir.Image().At(15, 25))
}

func TestImageRendererWithoutFont(t *testing.T) {
	ir := NewImageRenderer(16, 16, nil, nil)
	defer ir.Close()
	ir.Clear(color.Black)
	ir.DrawText("ignored", 10, color.White)
	ir.DrawLabel("ignored", viewport.Pt(1, 1), color.White)
	assert.NoError(t, ir.Present())
}

func assertColor(t *testing.T, want color.Color, got color.Color) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	gr, gg, gb, ga := got.RGBA()
	const tol = 0x0300
	assert.InDelta(t, wr, gr, tol, "red")
	assert.InDelta(t, wg, gg, tol, "green")
	assert.InDelta(t, wb, gb, tol, "blue")
	assert.InDelta(t, wa, ga, tol, "alpha")
}

func TestFontsFallback(t *testing.T) {
	fs := NewFonts([]byte("not a font"))
	assert.NotNil(t, fs.Face(12))

	fs = NewFonts(LoadFontData("/nonexistent/font.ttf"))
	a := fs.Face(20)
	assert.Same(t, a, fs.Face(20))
	fs.Close()
}
