// Package images holds the compiled-in welcome bitmaps.
package images

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"

	"github.com/sirupsen/logrus"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/draw"
	"github.com/BeatGlow/welcome/pixel"
)

// ErrSize is returned for images that do not cover exactly one screen.
var ErrSize = errors.New("images: image must be 128x64")

// Bitmap is a full screen in display page layout. Row 0 is the status line, rows 1 to 7 are
// the frame.
type Bitmap [display.Pages][display.Width]byte

// Pages returns the rows of the bitmap as page slices. The slices alias the bitmap.
func (b *Bitmap) Pages() [][]byte {
	pages := make([][]byte, len(b))
	for i := range b {
		pages[i] = b[i][:]
	}
	return pages
}

//go:embed banner.bin
var bannerData []byte

//go:embed portrait.bin
var portraitData []byte

// Names of the compiled-in bitmaps.
const (
	BannerName   = "banner"
	PortraitName = "portrait"
)

var (
	// Banner is a framed title card.
	Banner *Bitmap

	// Portrait is a full screen picture.
	Portrait *Bitmap
)

func init() {
	var err error
	if Banner, err = fromPages(bannerData); err != nil {
		logrus.Panicf("Can't load banner image: %v", err)
	}
	if Portrait, err = fromPages(portraitData); err != nil {
		logrus.Panicf("Can't load portrait image: %v", err)
	}
}

func fromPages(data []byte) (*Bitmap, error) {
	b := new(Bitmap)
	if len(data) != len(b)*len(b[0]) {
		return nil, fmt.Errorf("images: expected %d bytes of page data, got %d", len(b)*len(b[0]), len(data))
	}
	for i := range b {
		copy(b[i][:], data[i*len(b[i]):])
	}
	return b, nil
}

// FromImage converts img to a bitmap. Pixels brighter than mid gray are set.
func FromImage(img image.Image) (*Bitmap, error) {
	r := img.Bounds()
	if r.Dx() != display.Width || r.Dy() != display.Height {
		return nil, fmt.Errorf("%w, got %dx%d", ErrSize, r.Dx(), r.Dy())
	}

	mono := pixel.NewMonoVerticalLSBImage(display.Width, display.Height)
	draw.Draw(mono, mono.Bounds(), img, r.Min, draw.Src)

	b := new(Bitmap)
	for i := range b {
		copy(b[i][:], mono.Page(i))
	}
	return b, nil
}

// Load returns the compiled-in bitmap with the given name, or decodes the named image file.
func Load(name string) (*Bitmap, error) {
	switch name {
	case "", BannerName:
		return Banner, nil
	case PortraitName:
		return Portrait, nil
	}

	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("images: can't decode %s: %w", name, err)
	}
	logrus.Debugf("Loaded welcome image %s", name)
	return FromImage(img)
}
