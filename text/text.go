// Package text draws centred strings into page addressed display buffers.
//
// Two faces are available: a large bitmap font that spans two pages and a small TrueType face
// that fits a single page.
package text

import (
	"image"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/bitmapfont/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/welcome/draw"
	"github.com/BeatGlow/welcome/pixel"
)

// SmallSize is the point size of the small face, rendered at 72 DPI.
const SmallSize = 7

var ink = image.NewUniform(pixel.On)

// Printer renders strings with a large and a small face.
type Printer struct {
	large font.Face
	small font.Face
}

// New returns a printer with the default faces.
func New() (*Printer, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, err
	}
	return NewWithFaces(bitmapfont.Face, truetype.NewFace(f, &truetype.Options{
		Size:    SmallSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})), nil
}

// NewWithFaces returns a printer that renders with the given faces.
func NewWithFaces(large, small font.Face) *Printer {
	return &Printer{
		large: large,
		small: small,
	}
}

// PrintString draws s with the large face with its top at page row of dst. When end is past
// start the string is centred between the two columns, otherwise it starts at column start.
func (p *Printer) PrintString(dst draw.Image, s string, start, end, row int) {
	p.print(dst, p.large, s, start, end, row)
}

// PrintStringSmall is like PrintString but uses the small face.
func (p *Printer) PrintStringSmall(dst draw.Image, s string, start, end, row int) {
	p.print(dst, p.small, s, start, end, row)
}

// Width is the ink width of s in pixels with the large face.
func (p *Printer) Width(s string) int {
	return inkWidth(p.large, s)
}

// SmallWidth is the ink width of s in pixels with the small face.
func (p *Printer) SmallWidth(s string) int {
	return inkWidth(p.small, s)
}

func inkWidth(face font.Face, s string) int {
	b, _ := font.BoundString(face, s)
	return (b.Max.X - b.Min.X).Ceil()
}

// print places the left edge of the glyph bounds at start, or centres the bounds between start
// and end. Glyph bearings are not part of the width.
func (p *Printer) print(dst draw.Image, face font.Face, s string, start, end, row int) {
	if s == "" {
		return
	}

	b, _ := font.BoundString(face, s)
	if end > start {
		width := (b.Max.X - b.Min.X).Ceil()
		start += ((end - start) - width + 1) / 2
	}

	d := &font.Drawer{
		Dst:  dst,
		Src:  ink,
		Face: face,
		Dot:  fixed.P(start-b.Min.X.Floor(), row*pixel.PageHeight+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
