//go:build !linux

package framebuffer

import display "github.com/BeatGlow/welcome"

// Open is only supported on Linux.
func Open(_ string) (display.Panel, error) {
	return nil, ErrNotSupported
}
