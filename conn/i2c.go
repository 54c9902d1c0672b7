package conn

import (
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// I2C is a write only connection to a device on an I²C bus.
type I2C struct {
	bus i2c.BusCloser
	dev *i2c.Dev
}

// OpenI2C opens the numbered I²C bus for the device at addr. A negative bus number selects the
// first available bus.
func OpenI2C(number int, addr uint8) (*I2C, error) {
	name := ""
	if number >= 0 {
		name = strconv.Itoa(number)
	}

	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("conn: can't open I²C bus %q: %w", name, err)
	}

	return &I2C{
		bus: bus,
		dev: &i2c.Dev{Bus: bus, Addr: uint16(addr)},
	}, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C %s addr=%#02x", c.bus, c.dev.Addr)
}

func (c *I2C) Close() error {
	return c.bus.Close()
}

// Write sends p in a single transaction.
func (c *I2C) Write(p []byte) (int, error) {
	if err := c.dev.Tx(p, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}
