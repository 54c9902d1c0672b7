package framebuffer

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"github.com/sirupsen/logrus"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/internal/ioctl"
)

const (
	// From <linux/fb.h>
	fbioGetVScreenInfo ioctl.Command = 0x4600
	fbioGetFScreenInfo ioctl.Command = 0x4602
	fbioBlank          ioctl.Command = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4
)

type linuxFrameBuffer struct {
	name       string
	f          *os.File
	fd         uintptr
	pix        []byte
	info       linuxFixScreenInfo
	screenInfo linuxVarScreenInfo
	layout     layout
}

// Open a Linux FrameBuffer device (fbdev) by name, typically /dev/fb[0..x].
func Open(name string) (display.Panel, error) {
	f, err := os.OpenFile(name, os.O_RDWR, os.ModeDevice)
	if err != nil {
		return nil, err
	}

	fb := &linuxFrameBuffer{
		name: name,
		f:    f,
		fd:   f.Fd(),
	}
	if err = ioctl.Pointer(fb.fd, fbioGetFScreenInfo, unsafe.Pointer(&fb.info)); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Request virtual screen info.
	if err = ioctl.Pointer(fb.fd, fbioGetVScreenInfo, unsafe.Pointer(&fb.screenInfo)); err != nil {
		_ = f.Close()
		return nil, err
	}

	fb.layout = layout{
		width:        int(fb.screenInfo.Xres),
		height:       int(fb.screenInfo.Yres),
		bitsPerPixel: int(fb.screenInfo.BitsPerPixel),
		lineLength:   int(fb.info.LineLength),
	}
	if err = fb.layout.validate(); err != nil {
		_ = f.Close()
		return nil, err
	}

	// Map pixel buffer.
	if fb.pix, err = syscall.Mmap(int(fb.fd), 0, int(fb.info.SmemLen), syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED); err != nil {
		_ = f.Close()
		return nil, err
	}
	if need := fb.layout.height * fb.layout.lineLength; len(fb.pix) < need {
		_ = fb.Close()
		return nil, fmt.Errorf("%w: %d bytes mapped, need %d", ErrFormat, len(fb.pix), need)
	}

	logrus.Debugf("Framebuffer %s: %dx%d, %d bits per pixel, %d bytes per line",
		name, fb.layout.width, fb.layout.height, fb.layout.bitsPerPixel, fb.layout.lineLength)
	return fb, nil
}

func (fb *linuxFrameBuffer) String() string {
	return fmt.Sprintf("framebuffer %s %dx%d", fb.name, fb.layout.width, fb.layout.height)
}

// Close the framebuffer device
func (fb *linuxFrameBuffer) Close() error {
	if err := syscall.Munmap(fb.pix); err != nil {
		return err
	}
	return fb.f.Close()
}

// Show toggles the display on or off.
func (fb *linuxFrameBuffer) Show(show bool) error {
	var level uintptr = fbBlankPowerdown
	if show {
		level = fbBlankUnblank
	}
	return ioctl.Call(fb.fd, fbioBlank, level)
}

// SetContrast adjusts the contrast level.
func (fb *linuxFrameBuffer) SetContrast(_ uint8) error {
	return nil
}

// SetRotation adjusts the pixel rotation.
func (fb *linuxFrameBuffer) SetRotation(rotation display.Rotation) error {
	switch rotation {
	case display.NoRotation, display.Rotate180:
		fb.layout.rotation = rotation
		return nil
	default:
		return display.ErrRotation
	}
}

func (fb *linuxFrameBuffer) BlitStatusLine(s *display.Screen) error {
	fb.layout.blit(fb.pix, s.StatusLine, 0)
	return nil
}

func (fb *linuxFrameBuffer) BlitFullScreen(s *display.Screen) error {
	fb.layout.blit(fb.pix, s.Frame, 1)
	return nil
}

type linuxFixScreenInfo struct {
	ID           [16]byte  // Identification string eg "TT Builtin"
	SmemStart    uintptr   // Start of frame buffer mem
	SmemLen      uint32    // Length of frame buffer mem
	Type         uint32    // FB_TYPE_
	TypeAux      uint32    // Interleave for interleaved Planes
	Visual       uint32    // FB_VISUAL_
	Xpanstep     uint16    // Zero if no hardware panning
	Ypanstep     uint16    // Zero if no hardware panning
	Ywrapstep    uint16    // Zero if no hardware ywrap
	LineLength   uint32    // Length of a line in bytes
	MmioStart    uintptr   // Start of Memory Mapped I/O (physical address)
	MmioLen      uint32    // Length of Memory Mapped I/O
	Accel        uint32    // Type of acceleration available
	Capabilities uint16    // see FB_CAP_*
	Reserved     [2]uint16 // Reserved for future compatibility
}

// linuxBitField for the color
type linuxBitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// linuxVarScreenInfo contains device independent changeable information about a frame buffer device and a specific video mode.
type linuxVarScreenInfo struct {
	Xres                    uint32
	Yres                    uint32
	XresVirtual             uint32
	YresVirtual             uint32
	Xoffset                 uint32
	Yoffset                 uint32
	BitsPerPixel            uint32
	Grayscale               uint32
	Red, Green, Blue, Alpha linuxBitField
	Nonstd                  uint32
	Activate                uint32
	Height                  uint32
	Width                   uint32
	AccelFlags              uint32
	Pixclock                uint32
	LeftMargin              uint32
	RightMargin             uint32
	UpperMargin             uint32
	LowerMargin             uint32
	HsyncLen                uint32
	VsyncLen                uint32
	Sync                    uint32
	Vmode                   uint32
	Rotate                  uint32
	Colorspace              uint32
	Reserved                [4]uint32
}
