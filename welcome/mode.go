package welcome

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects what the power-on screen shows.
type Mode uint8

// Power-on display modes, numbered as they are stored in the EEPROM.
const (
	FullScreen Mode = iota // All pixels set
	Message                // Two stored text lines
	Voltage                // Battery voltage and charge
	None                   // All pixels set, as FullScreen
	Image                  // Compiled-in bitmap
)

var modeNames = [...]string{
	FullScreen: "full-screen",
	Message:    "message",
	Voltage:    "voltage",
	None:       "none",
	Image:      "image",
}

// Valid reports if m is one of the known modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if m.Valid() {
		return modeNames[m]
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode parses a mode name or number.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if s == name {
			return Mode(m), nil
		}
	}
	if n, err := strconv.ParseUint(s, 0, 8); err == nil {
		return Mode(n), nil
	}
	return 0, fmt.Errorf("welcome: invalid power-on display mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) (err error) {
	*m, err = ParseMode(string(text))
	return
}
