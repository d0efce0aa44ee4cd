package canvas

import (
	"image/color"
	"strings"

	"scroll-map/viewport"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const labelSize = 14.0

// ScreenRenderer draws onto an ebiten frame. ebiten presents the frame once
// Draw returns, so Present does nothing.
type ScreenRenderer struct {
	screen *ebiten.Image
	fonts  *Fonts
}

func NewScreenRenderer(screen *ebiten.Image, fonts *Fonts) *ScreenRenderer {
	return &ScreenRenderer{screen: screen, fonts: fonts}
}

func (s *ScreenRenderer) Size() (int, int) {
	b := s.screen.Bounds()
	return b.Dx(), b.Dy()
}

func (s *ScreenRenderer) Clear(c color.Color) {
	s.screen.Fill(c)
}

func (s *ScreenRenderer) FillRect(r viewport.Rect, c color.Color) {
	vector.DrawFilledRect(s.screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func (s *ScreenRenderer) DrawLine(p1, p2 viewport.Point, c color.Color) {
	vector.StrokeLine(s.screen, float32(p1.X), float32(p1.Y), float32(p2.X), float32(p2.Y), 1, c, false)
}

func (s *ScreenRenderer) DrawText(str string, size float64, c color.Color) {
	face := s.fonts.Face(size)
	w, h := s.Size()
	b := text.BoundString(face, str)
	x := (w - b.Dx()) / 2
	y := (h-b.Dy())/2 - b.Min.Y
	text.Draw(s.screen, str, face, x, y, c)
}

func (s *ScreenRenderer) DrawLabel(str string, p viewport.Point, c color.Color) {
	DrawTextLines(s.screen, s.fonts.Face(labelSize), str, int(p.X), int(p.Y), c)
}

func (s *ScreenRenderer) Present() error { return nil }

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// Treat provided y as the top of the first line. text.Draw expects baseline y,
	// so shift by ascent.
	baseY := y + ascent
	for i, line := range strings.Split(s, "\n") {
		text.Draw(screen, line, face, x, baseY+(i*lineHeight), clr)
	}
}
