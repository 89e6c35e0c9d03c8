package systems

import (
	"fmt"
	"image/color"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// UIFont draws GUI text
type UIFont struct {
	face       text.Face
	lineHeight float64
}

// NewUIFont loads a TrueType/OpenType font of the given size. An empty
// path gives the built-in 7x13 bitmap font. On error the bitmap font is
// returned together with the error.
func NewUIFont(path string, size float64) (*UIFont, error) {
	if path == "" {
		return basicUIFont(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return basicUIFont(), fmt.Errorf("reading font: %w", err)
	}
	parsed, err := opentype.Parse(raw)
	if err != nil {
		return basicUIFont(), fmt.Errorf("parsing font %s: %w", path, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicUIFont(), fmt.Errorf("creating font face: %w", err)
	}
	m := face.Metrics()
	return &UIFont{
		face:       text.NewGoXFace(face),
		lineHeight: float64((m.Ascent + m.Descent).Ceil()),
	}, nil
}

func basicUIFont() *UIFont {
	return &UIFont{
		face:       text.NewGoXFace(basicfont.Face7x13),
		lineHeight: 13,
	}
}

// LineHeight returns the height of one text line in pixels
func (f *UIFont) LineHeight() float64 {
	return f.lineHeight
}

// Measure returns the width of s in pixels
func (f *UIFont) Measure(s string) float64 {
	w, _ := text.Measure(s, f.face, f.lineHeight)
	return w
}

// Draw draws s with its top-left corner at (x, y)
func (f *UIFont) Draw(dst *ebiten.Image, s string, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LineSpacing = f.lineHeight
	text.Draw(dst, s, f.face, op)
}
