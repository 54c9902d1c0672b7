// Package ioctl wraps the ioctl system call.
package ioctl

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Mode is the IOCTL mode.
type Mode uint8

// Modes
const (
	None Mode = iota
	Write
	Read
)

// Command to be sent over ioctl.
type Command uintptr

func (c Command) String() string {
	var (
		mode = Mode(c >> 30 & 0x03)
		size = c >> 16 & 0x3fff
		cmd  = c & 0xffff
		str  string
	)
	if mode&Write > 0 {
		str += " write"
	}
	if mode&Read > 0 {
		str += " read"
	}
	return fmt.Sprintf("ioctl%s (%d bytes) %#04x", str, size, uintptr(cmd))
}

// Pointer executes command with a pointer argument.
func Pointer(fd uintptr, command Command, ptr unsafe.Pointer) error {
	return Call(fd, command, uintptr(ptr))
}

// Call does a plain ioctl system call.
func Call(fd uintptr, command Command, arg uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, uintptr(command), arg)
	if errno != 0 {
		return fmt.Errorf("%s failed: %w", command, errno)
	}
	return nil
}
