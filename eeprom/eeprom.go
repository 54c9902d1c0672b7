// Package eeprom provides a byte addressed image of the radio's configuration EEPROM.
package eeprom

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Size of the EEPROM in bytes.
const Size = 0x2000

// ErrRange is returned for accesses outside of the EEPROM.
var ErrRange = errors.New("eeprom: access out of range")

// Image is an in-memory EEPROM image. It implements [io.ReaderAt] and [io.WriterAt].
type Image struct {
	data [Size]byte
}

// New returns an erased image, every byte reads as 0xFF.
func New() *Image {
	m := new(Image)
	for i := range m.data {
		m.data[i] = 0xff
	}
	return m
}

// Open reads an image from a dump file. Short dumps are padded with erased bytes.
func Open(name string) (*Image, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	if len(raw) > Size {
		return nil, fmt.Errorf("eeprom: %s is %d bytes, expected at most %d", name, len(raw), Size)
	}
	m := New()
	copy(m.data[:], raw)
	return m, nil
}

// Save writes the image to a dump file.
func (m *Image) Save(name string) error {
	return os.WriteFile(name, m.data[:], 0o644)
}

func (m *Image) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= Size {
		return 0, fmt.Errorf("%w: read at %#04x", ErrRange, off)
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *Image) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > Size {
		return 0, fmt.Errorf("%w: write of %d bytes at %#04x", ErrRange, len(p), off)
	}
	return copy(m.data[off:], p), nil
}
