package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/welcome/battery"
	"github.com/BeatGlow/welcome/internal/images"
)

//go:embed default.yaml
var DefaultFile []byte

// Drivers and buses.
const (
	DriverST7565  = "st7565"
	DriverSSD1305 = "ssd1305"
	DriverSSD1306 = "ssd1306"
	DriverSH1106  = "sh1106"
	DriverVirtual = "virtual"
	DriverFBDev   = "fbdev"

	BusSPI = "spi"
	BusI2C = "i2c"
)

type Config struct {
	Display DisplayParam `yaml:"display"`
	EEPROM  string       `yaml:"eeprom"`
	Battery BatteryParam `yaml:"battery"`
	Image   ImageParam   `yaml:"image"`
	Version string       `yaml:"version"`
}

type DisplayParam struct {
	Driver    string   `yaml:"driver"`
	Bus       string   `yaml:"bus"`
	Rotation  int      `yaml:"rotation"`
	Contrast  uint8    `yaml:"contrast"`
	Backlight string   `yaml:"backlight"`
	Device    string   `yaml:"device"`
	SPI       SPIParam `yaml:"spi"`
	I2C       I2CParam `yaml:"i2c"`
}

type SPIParam struct {
	Port    string `yaml:"port"`
	SpeedHz uint32 `yaml:"speed_hz"`
	Reset   string `yaml:"reset"`
	DC      string `yaml:"dc"`
	CS      string `yaml:"cs"`
}

type I2CParam struct {
	Device  int    `yaml:"device"`
	Address uint8  `yaml:"address"`
	Reset   string `yaml:"reset"`
}

type BatteryParam struct {
	Type   string          `yaml:"type"`
	Points []battery.Point `yaml:"points,omitempty"`
}

type ImageParam struct {
	Name string `yaml:"name"`

	// Support overrides the build-time image support.
	Support *bool `yaml:"support,omitempty"`
}

// Default returns the embedded default configuration.
func Default() *Config {
	c := new(Config)
	if err := yaml.Unmarshal(DefaultFile, c); err != nil {
		logrus.Panicf("Unable to interpret default config file: %v", err)
	}
	return c
}

// Load reads the config file at path on top of the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, c.Validate()
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Debugf("No config file %s, using defaults", path)
		return c, c.Validate()
	} else if err != nil {
		return nil, err
	}

	if err = yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("config: unable to interpret %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate checks the display, battery and image settings.
func (c *Config) Validate() error {
	c.Display.Driver = strings.ToLower(c.Display.Driver)
	c.Display.Bus = strings.ToLower(c.Display.Bus)

	switch c.Display.Driver {
	case DriverST7565:
		if c.Display.Bus != BusSPI {
			return fmt.Errorf("config: %s requires the %s bus", DriverST7565, BusSPI)
		}
	case DriverSSD1305, DriverSSD1306, DriverSH1106:
		if c.Display.Bus != BusSPI && c.Display.Bus != BusI2C {
			return fmt.Errorf("config: invalid display bus %q", c.Display.Bus)
		}
	case DriverFBDev:
		if c.Display.Device == "" {
			return fmt.Errorf("config: %s requires a framebuffer device", DriverFBDev)
		}
	case DriverVirtual:
	default:
		return fmt.Errorf("config: invalid display driver %q", c.Display.Driver)
	}

	if c.Display.Rotation != 0 && c.Display.Rotation != 180 {
		return fmt.Errorf("config: invalid display rotation %d", c.Display.Rotation)
	}

	if _, err := c.Curve(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Curve returns the configured battery discharge curve.
func (c *Config) Curve() (battery.Curve, error) {
	if len(c.Battery.Points) > 0 {
		curve := battery.Curve(c.Battery.Points)
		return curve, curve.Validate()
	}
	return battery.CurveByName(c.Battery.Type)
}

// ImageSupport reports if the image mode shows a bitmap.
func (c *Config) ImageSupport() bool {
	if c.Image.Support != nil {
		return *c.Image.Support
	}
	return images.Enabled
}
