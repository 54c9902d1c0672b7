package display

import "fmt"

// pageSelector moves the controller's write pointer to the first visible column of a page.
type pageSelector interface {
	selectPage(page int) error
}

type monoDisplay struct {
	baseDisplay
	pages  pageSelector
	halted bool
}

func (d *monoDisplay) init(config *Config) error {
	if config.Width != Width || config.Height != Height {
		return fmt.Errorf("display: screen layout needs %dx%d, got %dx%d", Width, Height, config.Width, config.Height)
	}
	d.width = config.Width
	d.height = config.Height
	d.rotation = config.Rotation
	d.backlight = config.Backlight
	return nil
}

func (d *monoDisplay) Close() error {
	if !d.halted {
		if err := d.Show(false); err != nil {
			return err
		}
		d.halted = true
	}
	return nil
}

func (d *monoDisplay) Show(show bool) error {
	if err := d.setBacklight(show); err != nil {
		return err
	}
	if show {
		d.halted = false
		return d.command(ssd1xxxSetDisplayOn)
	} else {
		return d.command(ssd1xxxSetDisplayOff)
	}
}

func (d *monoDisplay) SetContrast(level uint8) error {
	return d.command(ssd1xxxSetContrast, level)
}

func (d *monoDisplay) BlitStatusLine(s *Screen) error {
	if err := d.pages.selectPage(0); err != nil {
		return err
	}
	return d.data(s.StatusLine.Pix...)
}

func (d *monoDisplay) BlitFullScreen(s *Screen) error {
	for page := 0; page < FramePages; page++ {
		if err := d.pages.selectPage(page + 1); err != nil {
			return err
		}
		if err := d.data(s.Frame.Page(page)...); err != nil {
			return err
		}
	}
	return nil
}
