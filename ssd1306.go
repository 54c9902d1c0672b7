package display

import (
	"fmt"
)

type ssd1306 struct {
	monoDisplay
}

// SSD1306 is a driver for the Solomon Systech SSD1306 OLED controller.
//
// Only the 128x64 glass is supported, its eight pages map onto the status line and frame of a
// [Screen] the same way as on an ST7565.
func SSD1306(conn Conn, config *Config) (Panel, error) {
	d := &ssd1306{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c: conn,
			},
		},
	}
	d.pages = d

	if config.Width == 0 {
		config.Width = Width
	}
	if config.Height == 0 {
		config.Height = Height
	}

	if err := d.init(config); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *ssd1306) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *ssd1306) String() string {
	return fmt.Sprintf("SSD1306 OLED %dx%d", d.width, d.height)
}

func (d *ssd1306) init(config *Config) (err error) {
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetDisplayClockDiv, 0x80,
		ssd1xxxSetMultiplexRatio, byte(config.Height-1),
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetStartLine,
		ssd1xxxSetChargePump, 0x14,
		ssd1xxxSetMemoryMode, 0x00,
		ssd1xxxSetComPins, 0x12,
		ssd1xxxSetPrecharge, 0xF1,
		ssd1xxxSetVCOMDeselect, 0x40,
		ssd1xxxSetDisplayAllOnResume,
		ssd1xxxSetNormalDisplay,
	); err != nil {
		return err
	}
	if err = d.SetRotation(config.Rotation); err != nil {
		return
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = 0xCF
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	return d.Show(true)
}

func (d *ssd1306) SetRotation(rotation Rotation) error {
	switch rotation % 4 {
	case NoRotation:
		if err := d.command(ssd1xxxSetSegmentRemap, ssd1xxxSetComScanDec); err != nil {
			return err
		}
	case Rotate180:
		if err := d.command(ssd1xxxSetSegmentRemap&^0x01, ssd1xxxSetComScanInc); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: SSD1306 can not rotate %s", ErrRotation, rotation)
	}
	d.rotation = rotation
	return nil
}

func (d *ssd1306) selectPage(page int) error {
	return d.command(
		ssd1xxxSetColumnAddr, 0x00, byte(d.width-1),
		ssd1xxxSetPageAddr, byte(page), byte(Pages-1),
	)
}
