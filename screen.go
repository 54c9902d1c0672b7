package display

import (
	"image/color"

	"github.com/BeatGlow/welcome/pixel"
)

// Screen dimensions.
const (
	Width      = 128
	Height     = 64
	Pages      = Height / pixel.PageHeight
	FramePages = Pages - 1
)

// Screen holds the two buffers shown on a [Panel]: a single page status line and the frame
// below it.
//
// The buffers are allocated once and reused for every render. A Screen is not safe for
// concurrent use.
type Screen struct {
	// StatusLine is the top page of the display.
	StatusLine *pixel.MonoVerticalLSBImage

	// Frame covers the remaining pages.
	Frame *pixel.MonoVerticalLSBImage
}

// NewScreen allocates the status line and frame buffers.
func NewScreen() *Screen {
	return &Screen{
		StatusLine: pixel.NewMonoVerticalLSBImage(Width, pixel.PageHeight),
		Frame:      pixel.NewMonoVerticalLSBImage(Width, FramePages*pixel.PageHeight),
	}
}

// Clear both buffers.
func (s *Screen) Clear() {
	s.StatusLine.Clear()
	s.Frame.Clear()
}

// Fill both buffers with a single color.
func (s *Screen) Fill(c color.Color) {
	s.StatusLine.Fill(c)
	s.Frame.Fill(c)
}

// CopyPages copies page 0 into the status line and pages 1 to 7 into the frame.
//
// It panics if there are not exactly [Pages] pages of [Width] bytes.
func (s *Screen) CopyPages(pages [][]byte) {
	if len(pages) != Pages {
		panic(ErrBounds)
	}
	for i, page := range pages {
		if len(page) != Width {
			panic(ErrBounds)
		}
		if i == 0 {
			copy(s.StatusLine.Pix, page)
		} else {
			copy(s.Frame.Page(i-1), page)
		}
	}
}
