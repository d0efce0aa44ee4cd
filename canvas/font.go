package canvas

import (
	"os"
	"sync"

	"scroll-map/log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// LoadFontData reads the TTF at path. If that fails it returns the bundled Go
// Regular font.
func LoadFontData(path string) []byte {
	if path == "" {
		return goregular.TTF
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.WarningLog.Printf("LoadFontData: %s not found, using Go Regular: %v", path, err)
		return goregular.TTF
	}
	return data
}

// Fonts hands out x/image faces of one font at any size.
type Fonts struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
}

// NewFonts parses data. A parse failure leaves Fonts usable with basicfont.
func NewFonts(data []byte) *Fonts {
	f, err := opentype.Parse(data)
	if err != nil {
		log.WarningLog.Printf("NewFonts: parse error, using basic font: %v", err)
		f = nil
	}
	return &Fonts{font: f, faces: make(map[float64]font.Face)}
}

// Face returns a face at size pixels, or basicfont.Face7x13 when no font is loaded.
func (fs *Fonts) Face(size float64) font.Face {
	if fs == nil || fs.font == nil || size <= 0 {
		return basicfont.Face7x13
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if face, ok := fs.faces[size]; ok {
		return face
	}
	face, err := opentype.NewFace(fs.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.WarningLog.Printf("Fonts.Face: new face error, using basic font: %v", err)
		return basicfont.Face7x13
	}
	fs.faces[size] = face
	return face
}

// Close releases cached faces.
func (fs *Fonts) Close() {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for size, face := range fs.faces {
		_ = face.Close()
		delete(fs.faces, size)
	}
}
