package display

import (
	"fmt"
)

const (
	sh1106SetPageAddr = 0xB0
	sh1106ColOffset   = 2
)

type sh1106 struct {
	monoDisplay
}

// SH1106 is a driver for the Sino Wealth SH1106 OLED display.
//
// The controller has 132 columns, the 128x64 glass starts at column 2.
func SH1106(conn Conn, config *Config) (Panel, error) {
	d := &sh1106{
		monoDisplay: monoDisplay{
			baseDisplay: baseDisplay{
				c:         conn,
				colOffset: sh1106ColOffset,
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

func (d *sh1106) String() string {
	return fmt.Sprintf("SH1106 %dx%d", d.width, d.height)
}

func (d *sh1106) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *sh1106) init(config *Config) (err error) {
	// init base
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// init display
	for _, command := range [][]byte{
		{ssd1xxxSetDisplayOff},
		{ssd1xxxSetLowColumn},
		{ssd1xxxSetHighColumn},
		{ssd1xxxSetStartLine},
		{ssd1xxxSetNormalDisplay},
		{ssd1xxxSetMultiplexRatio, 0x3f},
		{ssd1xxxSetDisplayAllOnResume},
		{ssd1xxxSetDisplayOffset, 0x00},
		{ssd1xxxSetDisplayClockDiv, 0xF0},
		{ssd1xxxSetPrecharge, 0x22},
		{ssd1xxxSetComPins, 0x12},
		{ssd1xxxSetVCOMDeselect, 0x20},
		{ssd1xxxSetChargePump, 0x14},
	} {
		if err = d.commands(command); err != nil {
			return err
		}
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

func (d *sh1106) SetRotation(rotation Rotation) error {
	switch rotation % 4 {
	case NoRotation:
		if err := d.commands([]byte{ssd1xxxSetSegmentRemap}, []byte{ssd1xxxSetComScanDec}); err != nil {
			return err
		}
	case Rotate180:
		if err := d.commands([]byte{ssd1xxxSetSegmentRemap &^ 0x01}, []byte{ssd1xxxSetComScanInc}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: SH1106 can not rotate %s", ErrRotation, rotation)
	}
	d.rotation = rotation
	return nil
}

func (d *sh1106) selectPage(page int) error {
	return d.commands(
		[]byte{sh1106SetPageAddr | byte(page&0x7)},
		[]byte{ssd1xxxSetLowColumn | byte(d.colOffset&0x0f)},
		[]byte{ssd1xxxSetHighColumn | byte(d.colOffset>>4)},
	)
}
