// Package display contains drivers for page addressed monochrome displays and the screen
// buffers they transfer.
package display

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Errors
var (
	ErrBounds   = errors.New("display: out of display bounds")
	ErrRotation = errors.New("display: rotation not supported")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Panel is a page addressed monochrome display that shows a [Screen].
//
// Page 0 of the panel shows the status line, pages 1 to 7 show the frame.
type Panel interface {
	String() string

	// Close the display driver.
	Close() error

	// Show toggles the display on or off.
	Show(bool) error

	// SetContrast adjusts the contrast level.
	SetContrast(level uint8) error

	// SetRotation adjusts the pixel rotation.
	SetRotation(Rotation) error

	// BlitStatusLine transfers the status line buffer to the display.
	BlitStatusLine(*Screen) error

	// BlitFullScreen transfers the frame buffer to the display.
	BlitFullScreen(*Screen) error
}

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Rotation of the display.
	Rotation Rotation

	// Contrast level, zero selects the controller default.
	Contrast uint8

	// Backlight pin
	Backlight gpio.PinOut
}

type baseDisplay struct {
	c         Conn
	width     int
	height    int
	colOffset int
	rotation  Rotation
	backlight gpio.PinOut
}

func (d *baseDisplay) data(data ...byte) error {
	return d.c.Data(data...)
}

func (d *baseDisplay) command(command byte, data ...byte) error {
	return d.c.Command(command, data...)
}

func (d *baseDisplay) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *baseDisplay) setBacklight(on bool) error {
	if d.backlight == nil || d.backlight == gpio.INVALID {
		return nil
	}
	return d.backlight.Out(gpio.Level(on))
}
