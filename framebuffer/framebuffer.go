// Package framebuffer shows a [display.Screen] on the operating system's native framebuffer,
// such as the Linux fbtft drivers for the ST7565 and SSD1306 controllers.
//
// The framebuffer can be opened with the [Open] call, and will otherwise function like a regular
// panel. Framebuffers have no contrast control; [display.Panel.SetContrast] is a no-op.
package framebuffer

import (
	"errors"
	"fmt"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/pixel"
)

// Errors.
var (
	ErrNotSupported = errors.New("framebuffer: not supported")
	ErrFormat       = errors.New("framebuffer: unsupported pixel format")
)

// layout describes how pixels are stored in framebuffer memory.
type layout struct {
	width        int // visible pixels per line
	height       int // visible lines
	bitsPerPixel int
	lineLength   int // bytes per line
	rotation     display.Rotation
}

func (l layout) validate() error {
	if l.width < display.Width || l.height < display.Height {
		return fmt.Errorf("%w: %dx%d framebuffer is smaller than %dx%d", display.ErrBounds, l.width, l.height, display.Width, display.Height)
	}
	switch l.bitsPerPixel {
	case 1, 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d bits per pixel", ErrFormat, l.bitsPerPixel)
	}
	if l.lineLength*8 < l.width*l.bitsPerPixel {
		return fmt.Errorf("%w: line length %d is too short", ErrFormat, l.lineLength)
	}
	return nil
}

// set a pixel of the screen in framebuffer memory.
func (l layout) set(pix []byte, x, y int, on bool) {
	if l.rotation == display.Rotate180 {
		x, y = display.Width-1-x, display.Height-1-y
	}

	if l.bitsPerPixel == 1 {
		// Packed, most significant bit first.
		offset, bit := y*l.lineLength+x/8, byte(0x80)>>(x&7)
		if on {
			pix[offset] |= bit
		} else {
			pix[offset] &^= bit
		}
		return
	}

	var (
		size   = l.bitsPerPixel / 8
		offset = y*l.lineLength + x*size
		value  byte
	)
	if on {
		value = 0xff
	}
	for i := 0; i < size; i++ {
		pix[offset+i] = value
	}
}

// blit copies the pages of img to framebuffer memory, starting at screen page first.
func (l layout) blit(pix []byte, img *pixel.MonoVerticalLSBImage, first int) {
	for page := 0; page < img.Pages(); page++ {
		for x, b := range img.Page(page) {
			for bit := 0; bit < pixel.PageHeight; bit++ {
				l.set(pix, x, (first+page)*pixel.PageHeight+bit, b&(1<<bit) != 0)
			}
		}
	}
}
