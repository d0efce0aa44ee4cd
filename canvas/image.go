package canvas

import (
	"image"
	"image/color"
	"io"

	"scroll-map/log"
	"scroll-map/viewport"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// ImageRenderer rasterizes frames in memory with gg. Present encodes the
// frame as PNG to the writer it was created with, if any.
type ImageRenderer struct {
	dc     *gg.Context
	source *text.FontSource
	faces  map[float64]text.Face
	out    io.Writer
	err    error
}

// NewImageRenderer creates a w x h renderer. fontData may be nil, in which
// case text is skipped.
func NewImageRenderer(w, h int, fontData []byte, out io.Writer) *ImageRenderer {
	ir := &ImageRenderer{
		dc:    gg.NewContext(w, h),
		faces: make(map[float64]text.Face),
		out:   out,
	}
	if fontData != nil {
		source, err := text.NewFontSource(fontData)
		if err != nil {
			log.WarningLog.Printf("NewImageRenderer: font error, text disabled: %v", err)
		} else {
			ir.source = source
		}
	}
	return ir
}

func (ir *ImageRenderer) Size() (int, int) {
	return ir.dc.Width(), ir.dc.Height()
}

func (ir *ImageRenderer) Clear(c color.Color) {
	ir.dc.ClearWithColor(gg.FromColor(c))
}

func (ir *ImageRenderer) FillRect(r viewport.Rect, c color.Color) {
	ir.dc.SetColor(c)
	ir.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	ir.keep(ir.dc.Fill())
}

func (ir *ImageRenderer) DrawLine(p1, p2 viewport.Point, c color.Color) {
	ir.dc.SetColor(c)
	ir.dc.SetLineWidth(1)
	ir.dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	ir.keep(ir.dc.Stroke())
}

func (ir *ImageRenderer) face(size float64) text.Face {
	if ir.source == nil {
		return nil
	}
	if f, ok := ir.faces[size]; ok {
		return f
	}
	f := ir.source.Face(size)
	ir.faces[size] = f
	return f
}

func (ir *ImageRenderer) DrawText(s string, size float64, c color.Color) {
	face := ir.face(size)
	if face == nil {
		return
	}
	w, h := ir.Size()
	ir.dc.SetFont(face)
	ir.dc.SetColor(c)
	ir.dc.DrawStringAnchored(s, float64(w)/2, float64(h)/2, 0.5, 0.5)
}

func (ir *ImageRenderer) DrawLabel(s string, p viewport.Point, c color.Color) {
	face := ir.face(labelSize)
	if face == nil {
		return
	}
	ir.dc.SetFont(face)
	ir.dc.SetColor(c)
	ir.dc.DrawStringAnchored(s, p.X, p.Y, 0, 1)
}

// Present writes the frame and returns the first error seen while drawing it.
func (ir *ImageRenderer) Present() error {
	if err := ir.err; err != nil {
		ir.err = nil
		return err
	}
	if ir.out == nil {
		return nil
	}
	return ir.dc.EncodePNG(ir.out)
}

// Image returns the current frame.
func (ir *ImageRenderer) Image() image.Image {
	return ir.dc.Image()
}

func (ir *ImageRenderer) Close() error {
	if ir.source != nil {
		_ = ir.source.Close()
	}
	return ir.dc.Close()
}

func (ir *ImageRenderer) keep(err error) {
	if err != nil && ir.err == nil {
		ir.err = err
	}
}
