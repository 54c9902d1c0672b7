// Package welcome renders the power-on screen and the release keys prompt into the status line
// and frame buffers of a [display.Screen].
//
// The power-on screen depends on the persisted [Mode]:
//
//   - [None] and [FullScreen] light up every pixel.
//   - [Voltage] shows the battery voltage and charge.
//   - [Message] and any unknown mode show the two welcome lines from storage.
//   - [Image] shows the compiled-in bitmap, or a blank screen without image support.
package welcome

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/draw"
	"github.com/BeatGlow/welcome/internal/images"
	"github.com/BeatGlow/welcome/internal/version"
	"github.com/BeatGlow/welcome/pixel"
)

// Storage offsets of the two welcome message lines.
const (
	MessageOffset1 = 0x0EB0
	MessageOffset2 = 0x0EC0
)

// Text placement, in frame pages.
const (
	rowLine1       = 0
	rowLine2       = 2
	rowVersion     = 6
	rowReleaseKeys = 1
	rowAllKeys     = 3
)

// Printer draws text into a display buffer. See [text.Printer].
type Printer interface {
	PrintString(dst draw.Image, s string, start, end, row int)
	PrintStringSmall(dst draw.Image, s string, start, end, row int)
}

// Blitter transfers the screen buffers to a display.
type Blitter interface {
	BlitStatusLine(*display.Screen) error
	BlitFullScreen(*display.Screen) error
}

// Config holds the collaborators of a [Composer].
type Config struct {
	// Storage holds the welcome message lines. Required.
	Storage io.ReaderAt

	// Printer draws the text lines. Required.
	Printer Printer

	// Percent converts a voltage in hundredths of a volt to a charge percentage.
	Percent func(voltage uint16) int

	// Image is shown in [Image] mode, nil selects [images.Banner].
	Image *images.Bitmap

	// ImageSupport enables the [Image] mode bitmap. Without it [Image] mode shows a blank
	// screen.
	ImageSupport bool

	// Version is shown below the welcome lines, empty selects the application version.
	Version string
}

// Composer renders screens into a [display.Screen] and hands them to a [Blitter].
//
// A Composer is not safe for concurrent use; it owns the screen buffers during a call.
type Composer struct {
	screen *display.Screen
	panel  Blitter
	config Config
	line1  Banner
	line2  Banner
}

// New returns a composer rendering into screen. It panics if config has no Storage or Printer.
func New(screen *display.Screen, panel Blitter, config Config) *Composer {
	if config.Storage == nil || config.Printer == nil {
		panic("welcome: composer needs a storage and a printer")
	}
	if config.Image == nil {
		config.Image = images.Banner
	}
	if config.Version == "" {
		config.Version = version.AppVersion.String()
	}
	if config.Percent == nil {
		config.Percent = func(uint16) int { return 0 }
	}
	return &Composer{
		screen: screen,
		panel:  panel,
		config: config,
	}
}

// Lines returns the welcome lines of the last power-on screen.
func (c *Composer) Lines() (string, string) {
	return c.line1.String(), c.line2.String()
}

// Welcome renders the power-on screen for mode. The voltage, in hundredths of a volt, is only
// used in [Voltage] mode.
//
// A failure to read the welcome lines aborts the render, except in [Image] mode where the lines
// are never visible.
func (c *Composer) Welcome(mode Mode, voltage uint16) error {
	logrus.WithField("mode", mode).Debugf("Display welcome screen")

	c.screen.Clear()

	if mode == None || mode == FullScreen {
		c.line1.Reset()
		c.line2.Reset()
		c.screen.Fill(pixel.On)
		return c.blit()
	}

	if err := c.compose(mode, voltage); err != nil {
		if mode != Image {
			return err
		}
		logrus.WithError(err).Debugf("Ignoring welcome lines in %s mode", mode)
	}

	c.config.Printer.PrintString(c.screen.Frame, c.line1.String(), 0, 127, rowLine1)
	c.config.Printer.PrintString(c.screen.Frame, c.line2.String(), 0, 127, rowLine2)
	c.config.Printer.PrintStringSmall(c.screen.Frame, c.config.Version, 0, 128, rowVersion)

	// The bitmap replaces the text drawn above.
	if mode == Image {
		if c.config.ImageSupport {
			c.screen.CopyPages(c.config.Image.Pages())
		} else {
			c.screen.Clear()
		}
	}

	return c.blit()
}

// compose fills the welcome lines.
func (c *Composer) compose(mode Mode, voltage uint16) error {
	c.line1.Reset()
	c.line2.Reset()

	if mode == Voltage {
		c.line1.SetString("VOLTAGE")
		c.line2.SetString(fmt.Sprintf("%d.%02dV %d%%",
			voltage/100,
			voltage%100,
			c.config.Percent(voltage)))
		return nil
	}

	if err := c.line1.Load(c.config.Storage, MessageOffset1); err != nil {
		c.line1.Reset()
		return fmt.Errorf("welcome: can't read line 1: %w", err)
	}
	if err := c.line2.Load(c.config.Storage, MessageOffset2); err != nil {
		c.line1.Reset()
		c.line2.Reset()
		return fmt.Errorf("welcome: can't read line 2: %w", err)
	}
	return nil
}

// ReleaseKeys renders the prompt asking to release all keys.
func (c *Composer) ReleaseKeys() error {
	logrus.Debugf("Display release keys")

	c.screen.Clear()
	c.config.Printer.PrintString(c.screen.Frame, "RELEASE", 0, 127, rowReleaseKeys)
	c.config.Printer.PrintString(c.screen.Frame, "ALL KEYS", 0, 127, rowAllKeys)
	return c.blit()
}

func (c *Composer) blit() error {
	if err := c.panel.BlitStatusLine(c.screen); err != nil {
		return fmt.Errorf("welcome: can't transfer status line: %w", err)
	}
	if err := c.panel.BlitFullScreen(c.screen); err != nil {
		return fmt.Errorf("welcome: can't transfer frame: %w", err)
	}
	return nil
}
