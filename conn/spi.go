package conn

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPI is a write only connection to a device on a SPI port.
type SPI struct {
	port  spi.PortCloser
	conn  spi.Conn
	speed physic.Frequency
	mode  spi.Mode
}

// OpenSPI opens the named SPI port, use an empty name to select the first available port. The
// port is configured for 8 bits per word.
func OpenSPI(name string, speed physic.Frequency, mode spi.Mode) (*SPI, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}

	c, err := port.Connect(speed, mode, 8)
	if err != nil {
		_ = port.Close()
		return nil, err
	}

	return &SPI{
		port:  port,
		conn:  c,
		speed: speed,
		mode:  mode,
	}, nil
}

func (c *SPI) Close() error {
	return c.port.Close()
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s mode=%s speed=%s", c.port, c.mode, c.speed)
}

// MaxTxSize is the largest transaction the port accepts, zero if unlimited.
func (c *SPI) MaxTxSize() int {
	if l, ok := c.conn.(interface{ MaxTxSize() int }); ok {
		return l.MaxTxSize()
	}
	return 0
}

func (c *SPI) Write(b []byte) (n int, err error) {
	if err = c.conn.Tx(b, nil); err != nil {
		return 0, err
	}
	return len(b), nil
}
