// Package settings reads and writes the persisted power-on settings.
package settings

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/welcome/welcome"
)

// Storage layout.
const (
	BlockOffset = 0x0E90
	BlockSize   = 8

	powerOnDisplayModeIndex = 7
)

// Storage is persistent memory with random access.
type Storage interface {
	io.ReaderAt
	io.WriterAt
}

// Settings is the settings block at [BlockOffset].
type Settings struct {
	// PowerOnDisplayMode selects the power-on screen.
	PowerOnDisplayMode welcome.Mode

	block [BlockSize]byte
}

// Load reads the settings block. An unknown power-on display mode reads as [welcome.Voltage].
func Load(r io.ReaderAt) (*Settings, error) {
	s := new(Settings)
	if _, err := r.ReadAt(s.block[:], BlockOffset); err != nil {
		return nil, fmt.Errorf("settings: can't read block: %w", err)
	}

	s.PowerOnDisplayMode = welcome.Mode(s.block[powerOnDisplayModeIndex])
	if !s.PowerOnDisplayMode.Valid() {
		logrus.Debugf("Unknown power-on display mode %d, using %s", s.block[powerOnDisplayModeIndex], welcome.Voltage)
		s.PowerOnDisplayMode = welcome.Voltage
	}
	return s, nil
}

// Store writes the settings block, leaving the bytes it does not know about untouched.
func (s *Settings) Store(w io.WriterAt) error {
	s.block[powerOnDisplayModeIndex] = byte(s.PowerOnDisplayMode)
	if _, err := w.WriteAt(s.block[:], BlockOffset); err != nil {
		return fmt.Errorf("settings: can't write block: %w", err)
	}
	return nil
}

// SetPowerOnDisplayMode persists the power-on display mode.
func SetPowerOnDisplayMode(storage Storage, mode welcome.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("settings: invalid power-on display mode %s", mode)
	}
	s, err := Load(storage)
	if err != nil {
		return err
	}
	s.PowerOnDisplayMode = mode
	return s.Store(storage)
}

// SetWelcome persists the two welcome message lines. Lines longer than 15 bytes are truncated.
func SetWelcome(w io.WriterAt, line1, line2 string) error {
	var b welcome.Banner
	b.SetString(line1)
	if err := b.Store(w, welcome.MessageOffset1); err != nil {
		return fmt.Errorf("settings: can't write line 1: %w", err)
	}
	b.SetString(line2)
	if err := b.Store(w, welcome.MessageOffset2); err != nil {
		return fmt.Errorf("settings: can't write line 2: %w", err)
	}
	return nil
}
