package display

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	st7565Columns          = 132
	st7565SetPage          = 0xB0
	st7565SetColumnHigh    = 0x10
	st7565SetColumnLow     = 0x00
	st7565SetStartLine     = 0x40
	st7565SetElectronicVol = 0x81
	st7565SetSegmentNormal = 0xA0
	st7565SetSegmentRemap  = 0xA1
	st7565SetBias9         = 0xA2
	st7565SetAllPixelsOff  = 0xA4
	st7565SetNormalDisplay = 0xA6
	st7565SetComNormal     = 0xC0
	st7565SetComReverse    = 0xC8
	st7565Reset            = 0xE2
	st7565SetRegulation    = 0x20
	st7565SetPowerControl  = 0x28
	st7565PowerBooster     = 0x04
	st7565PowerRegulator   = 0x02
	st7565PowerFollower    = 0x01
	st7565DefaultContrast  = 0x1F
	st7565DefaultRatio     = 0x04
)

type st7565 struct {
	monoDisplay
}

// ST7565 is a driver for the Sitronix ST7565 LCD controller with a 128x64 glass.
//
// The controller has 132 columns of display RAM, the glass shows the 128 columns starting at
// column 4 in the default orientation. Every byte except pixel data is sent as a command, so the
// connection must keep DC low for command arguments; ST7565 never sends arguments as data.
func ST7565(conn Conn, config *Config) (Panel, error) {
	d := &st7565{
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

func (d *st7565) String() string {
	return fmt.Sprintf("ST7565 LCD %dx%d", d.width, d.height)
}

func (d *st7565) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			_ = d.c.Close()
			return err
		}
		d.halted = true
	}
	return d.c.Close()
}

func (d *st7565) init(config *Config) (err error) {
	if err = d.monoDisplay.init(config); err != nil {
		return
	}

	// Hardware reset.
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)

	if err = d.sequence(st7565Reset); err != nil {
		return
	}
	time.Sleep(120 * time.Millisecond)

	if err = d.sequence(
		st7565SetBias9,
		st7565SetAllPixelsOff,
		st7565SetNormalDisplay,
		st7565SetRegulation|st7565DefaultRatio,
	); err != nil {
		return
	}
	if err = d.SetRotation(config.Rotation); err != nil {
		return
	}

	contrast := config.Contrast
	if contrast == 0 {
		contrast = st7565DefaultContrast
	}
	if err = d.SetContrast(contrast); err != nil {
		return
	}

	// Bring up the internal power circuits one stage at a time.
	for _, stage := range []byte{
		st7565PowerBooster | st7565PowerFollower,
		st7565PowerBooster | st7565PowerRegulator,
		st7565PowerBooster | st7565PowerRegulator | st7565PowerFollower,
	} {
		if err = d.sequence(st7565SetPowerControl | stage); err != nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	if err = d.sequence(st7565SetStartLine); err != nil {
		return
	}
	return d.Show(true)
}

// sequence sends every byte as a separate command.
func (d *st7565) sequence(commands ...byte) error {
	for _, command := range commands {
		if err := d.command(command); err != nil {
			return err
		}
	}
	return nil
}

func (d *st7565) SetContrast(level uint8) error {
	return d.sequence(st7565SetElectronicVol, level&0x3f)
}

func (d *st7565) SetRotation(rotation Rotation) error {
	switch rotation % 4 {
	case NoRotation:
		d.colOffset = st7565Columns - Width
		if err := d.sequence(st7565SetSegmentRemap, st7565SetComNormal); err != nil {
			return err
		}
	case Rotate180:
		d.colOffset = 0
		if err := d.sequence(st7565SetSegmentNormal, st7565SetComReverse); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: ST7565 can not rotate %s", ErrRotation, rotation)
	}
	d.rotation = rotation
	return nil
}

func (d *st7565) selectPage(page int) error {
	return d.sequence(
		st7565SetStartLine,
		st7565SetPage|byte(page&0x0f),
		st7565SetColumnHigh|byte(d.colOffset>>4)&0x0f,
		st7565SetColumnLow|byte(d.colOffset)&0x0f,
	)
}
