package display

import (
	"fmt"
	"math/bits"

	"github.com/BeatGlow/welcome/pixel"
)

// Virtual is an in-memory panel. It keeps a copy of the display RAM that can be inspected or
// exported with [Virtual.Image].
type Virtual struct {
	ram      *pixel.MonoVerticalLSBImage
	on       bool
	contrast uint8
	rotation Rotation

	// Blits counts the transfers to the panel.
	Blits int
}

// NewVirtual returns a blank, switched on virtual panel.
func NewVirtual() *Virtual {
	return &Virtual{
		ram: pixel.NewMonoVerticalLSBImage(Width, Height),
		on:  true,
	}
}

func (v *Virtual) String() string {
	return fmt.Sprintf("virtual %dx%d", Width, Height)
}

func (v *Virtual) Close() error {
	v.on = false
	return nil
}

func (v *Virtual) Show(show bool) error {
	v.on = show
	return nil
}

// IsOn reports if the panel is switched on.
func (v *Virtual) IsOn() bool {
	return v.on
}

func (v *Virtual) SetContrast(level uint8) error {
	v.contrast = level
	return nil
}

func (v *Virtual) SetRotation(rotation Rotation) error {
	switch rotation % 4 {
	case NoRotation, Rotate180:
		v.rotation = rotation
		return nil
	default:
		return fmt.Errorf("%w: virtual panel can not rotate %s", ErrRotation, rotation)
	}
}

func (v *Virtual) BlitStatusLine(s *Screen) error {
	v.blitPage(0, s.StatusLine.Page(0))
	v.Blits++
	return nil
}

func (v *Virtual) BlitFullScreen(s *Screen) error {
	for page := 0; page < FramePages; page++ {
		v.blitPage(page+1, s.Frame.Page(page))
	}
	v.Blits++
	return nil
}

// blitPage stores a screen page in display RAM. Rotated by 180° the page order, the columns and
// the bits within each byte are reversed.
func (v *Virtual) blitPage(page int, data []byte) {
	if v.rotation%4 != Rotate180 {
		copy(v.ram.Page(page), data)
		return
	}
	dst := v.ram.Page(Pages - 1 - page)
	for x, b := range data {
		dst[len(dst)-1-x] = bits.Reverse8(b)
	}
}

// Image returns the display RAM. The image aliases the panel memory.
func (v *Virtual) Image() *pixel.MonoVerticalLSBImage {
	return v.ram
}
