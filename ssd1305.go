package display

import (
	"fmt"
)

const (
	ssd1305SetPageStart    = 0xB0
	ssd1305SetLUT          = 0x91
	ssd1305SetMasterConfig = 0xAD
	ssd1305SetAreaColor    = 0xD8
	ssd1305ColOffset       = 4
)

type ssd1305 struct {
	monoDisplay
}

// SSD1305 is a driver for the Solomon Systech SSD1305 OLED controller.
//
// The controller has 132 columns, the 128x64 glass starts at column 4.
func SSD1305(conn Conn, config *Config) (Panel, error) {
	d := &ssd1305{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c:         conn,
				colOffset: ssd1305ColOffset,
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

func (d *ssd1305) String() string {
	return fmt.Sprintf("SSD1305 OLED %dx%d", d.width, d.height)
}

func (d *ssd1305) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *ssd1305) init(config *Config) (err error) {
	// init base
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	if err = d.command(
		ssd1xxxSetDisplayOff,
		ssd1xxxSetStartLine,
		ssd1xxxSetNormalDisplay,
		ssd1xxxSetMultiplexRatio, 0x3F,
		ssd1305SetMasterConfig, 0x8E,
		ssd1xxxSetDisplayOffset, 0x00,
		ssd1xxxSetDisplayClockDiv, 0xF0,
		ssd1305SetAreaColor, 0x05,
		ssd1xxxSetPrecharge, 0xF1,
		ssd1xxxSetComPins, 0x12,
		ssd1305SetLUT, 0x3F, 0x3F, 0x3F, 0x3F,
	); err != nil {
		return err
	}
	if err = d.SetRotation(config.Rotation); err != nil {
		return
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = 0x7F
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}
	return d.Show(true)
}

func (d *ssd1305) SetRotation(rotation Rotation) error {
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
		return fmt.Errorf("%w: SSD1305 can not rotate %s", ErrRotation, rotation)
	}
	d.rotation = rotation
	return nil
}

func (d *ssd1305) selectPage(page int) error {
	return d.command(
		ssd1305SetPageStart|byte(page&0x7),
		ssd1xxxSetLowColumn|byte(d.colOffset&0x0f),
		ssd1xxxSetHighColumn|byte(d.colOffset>>4),
	)
}
