package welcome

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	display "github.com/BeatGlow/welcome"
	"github.com/BeatGlow/welcome/draw"
	"github.com/BeatGlow/welcome/internal/images"
)

type printed struct {
	Text  string
	Small bool
	Start int
	End   int
	Row   int
}

// recordPrinter records calls and marks the first byte of each printed row.
type recordPrinter struct {
	calls []printed
}

func (p *recordPrinter) PrintString(dst draw.Image, s string, start, end, row int) {
	p.calls = append(p.calls, printed{s, false, start, end, row})
	markRow(dst, row)
}

func (p *recordPrinter) PrintStringSmall(dst draw.Image, s string, start, end, row int) {
	p.calls = append(p.calls, printed{s, true, start, end, row})
	markRow(dst, row)
}

func markRow(dst draw.Image, row int) {
	if frame, ok := dst.(interface{ Page(int) []byte }); ok {
		frame.Page(row)[0] = 0x01
	}
}

type blit struct {
	StatusLine []byte
	Frame      [][]byte
}

type recordPanel struct {
	statusLines int
	frames      int
	blits       []blit
	err         error
}

func (p *recordPanel) BlitStatusLine(s *display.Screen) error {
	if p.err != nil {
		return p.err
	}
	p.statusLines++
	return nil
}

func (p *recordPanel) BlitFullScreen(s *display.Screen) error {
	if p.err != nil {
		return p.err
	}
	p.frames++
	b := blit{StatusLine: bytes.Clone(s.StatusLine.Pix)}
	for page := 0; page < display.FramePages; page++ {
		b.Frame = append(b.Frame, bytes.Clone(s.Frame.Page(page)))
	}
	p.blits = append(p.blits, b)
	return nil
}

// countingStorage serves reads from data and counts them.
type countingStorage struct {
	data  []byte
	reads int
}

func (s *countingStorage) ReadAt(p []byte, off int64) (int, error) {
	s.reads++
	if off < 0 || off+int64(len(p)) > int64(len(s.data)) {
		return 0, errors.New("out of range")
	}
	return copy(p, s.data[off:]), nil
}

func newStorage(line1, line2 string) *countingStorage {
	data := bytes.Repeat([]byte{0xff}, 0x1000)
	copy(data[MessageOffset1:MessageOffset1+BannerSize], append([]byte(line1), 0))
	copy(data[MessageOffset2:MessageOffset2+BannerSize], append([]byte(line2), 0))
	return &countingStorage{data: data}
}

type fixture struct {
	screen   *display.Screen
	panel    *recordPanel
	printer  *recordPrinter
	storage  *countingStorage
	percents []uint16
	composer *Composer
}

func newFixture(imageSupport bool) *fixture {
	f := &fixture{
		screen:  display.NewScreen(),
		panel:   new(recordPanel),
		printer: new(recordPrinter),
		storage: newStorage("HELLO", "WORLD"),
	}
	f.composer = New(f.screen, f.panel, Config{
		Storage: f.storage,
		Printer: f.printer,
		Percent: func(v uint16) int {
			f.percents = append(f.percents, v)
			return 62
		},
		Image:        images.Portrait,
		ImageSupport: imageSupport,
		Version:      "v1.2.3",
	})
	return f
}

func filled(b byte) blit {
	out := blit{StatusLine: bytes.Repeat([]byte{b}, display.Width)}
	for page := 0; page < display.FramePages; page++ {
		out.Frame = append(out.Frame, bytes.Repeat([]byte{b}, display.Width))
	}
	return out
}

func TestWelcomeFill(t *testing.T) {
	for _, mode := range []Mode{None, FullScreen} {
		t.Run(mode.String(), func(it *testing.T) {
			f := newFixture(true)
			if err := f.composer.Welcome(mode, 389); err != nil {
				it.Fatal(err)
			}
			if f.storage.reads != 0 {
				it.Errorf("expected no storage reads, got %d", f.storage.reads)
			}
			if len(f.printer.calls) != 0 {
				it.Errorf("expected no text, got %+v", f.printer.calls)
			}
			if len(f.percents) != 0 {
				it.Errorf("expected no percentage lookups, got %v", f.percents)
			}
			if f.panel.statusLines != 1 || f.panel.frames != 1 {
				it.Errorf("expected one status line and one frame transfer, got %d and %d", f.panel.statusLines, f.panel.frames)
			}
			if diff := cmp.Diff(filled(0xff), f.panel.blits[0]); diff != "" {
				it.Errorf("screen mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWelcomeVoltage(t *testing.T) {
	f := newFixture(true)
	if err := f.composer.Welcome(Voltage, 389); err != nil {
		t.Fatal(err)
	}

	line1, line2 := f.composer.Lines()
	if line1 != "VOLTAGE" {
		t.Errorf("expected line 1 %q, got %q", "VOLTAGE", line1)
	}
	if line2 != "3.89V 62%" {
		t.Errorf("expected line 2 %q, got %q", "3.89V 62%", line2)
	}
	if f.storage.reads != 0 {
		t.Errorf("expected no storage reads, got %d", f.storage.reads)
	}
	if diff := cmp.Diff([]uint16{389}, f.percents); diff != "" {
		t.Errorf("percentage lookups mismatch (-want +got):\n%s", diff)
	}

	want := []printed{
		{"VOLTAGE", false, 0, 127, 0},
		{"3.89V 62%", false, 0, 127, 2},
		{"v1.2.3", true, 0, 128, 6},
	}
	if diff := cmp.Diff(want, f.printer.calls); diff != "" {
		t.Errorf("printed text mismatch (-want +got):\n%s", diff)
	}
}

func TestWelcomeVoltageFormat(t *testing.T) {
	tests := []struct {
		voltage uint16
		want    string
	}{
		{0, "0.00V 62%"},
		{405, "4.05V 62%"},
		{790, "7.90V 62%"},
		{1234, "12.34V 62%"},
	}
	for _, test := range tests {
		f := newFixture(true)
		if err := f.composer.Welcome(Voltage, test.voltage); err != nil {
			t.Fatal(err)
		}
		if _, line2 := f.composer.Lines(); line2 != test.want {
			t.Errorf("expected %q for %d, got %q", test.want, test.voltage, line2)
		}
	}
}

func TestWelcomeMessage(t *testing.T) {
	for _, mode := range []Mode{Message, Mode(5), Mode(0xff)} {
		t.Run(mode.String(), func(it *testing.T) {
			f := newFixture(true)
			if err := f.composer.Welcome(mode, 389); err != nil {
				it.Fatal(err)
			}
			if line1, line2 := f.composer.Lines(); line1 != "HELLO" || line2 != "WORLD" {
				it.Errorf("expected HELLO/WORLD, got %q/%q", line1, line2)
			}
			if f.storage.reads != 2 {
				it.Errorf("expected 2 storage reads, got %d", f.storage.reads)
			}
			if len(f.percents) != 0 {
				it.Errorf("expected no percentage lookups, got %v", f.percents)
			}
			if len(f.printer.calls) != 3 {
				it.Fatalf("expected 3 printed lines, got %+v", f.printer.calls)
			}

			// Rows 0, 2 and 6 carry text, everything else is blank.
			b := f.panel.blits[0]
			want := filled(0x00)
			for _, row := range []int{0, 2, 6} {
				want.Frame[row][0] = 0x01
			}
			if diff := cmp.Diff(want, b); diff != "" {
				it.Errorf("screen mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWelcomeMessageTruncated(t *testing.T) {
	f := newFixture(true)
	copy(f.storage.data[MessageOffset1:], "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	copy(f.storage.data[MessageOffset2:], "0123456789abcdefghij")

	if err := f.composer.Welcome(Message, 0); err != nil {
		t.Fatal(err)
	}
	line1, line2 := f.composer.Lines()
	if line1 != "ABCDEFGHIJKLMNO" {
		t.Errorf("expected line 1 truncated to 15 bytes, got %q", line1)
	}
	if line2 != "0123456789abcde" {
		t.Errorf("expected line 2 truncated to 15 bytes, got %q", line2)
	}
}

func TestWelcomeMessageStorageError(t *testing.T) {
	f := newFixture(true)
	f.storage.data = f.storage.data[:MessageOffset1]

	if err := f.composer.Welcome(Message, 0); err == nil {
		t.Fatal("expected error reading a truncated storage")
	}
	if f.panel.frames != 0 {
		t.Errorf("expected no transfer, got %d", f.panel.frames)
	}
}

func TestWelcomeImage(t *testing.T) {
	f := newFixture(true)
	if err := f.composer.Welcome(Image, 389); err != nil {
		t.Fatal(err)
	}

	pages := images.Portrait.Pages()
	want := blit{StatusLine: pages[0], Frame: pages[1:]}
	if diff := cmp.Diff(want, f.panel.blits[0]); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
}

func TestWelcomeImageStorageError(t *testing.T) {
	f := newFixture(true)
	f.storage.data = f.storage.data[:MessageOffset1]

	if err := f.composer.Welcome(Image, 389); err != nil {
		t.Fatal(err)
	}
	pages := images.Portrait.Pages()
	want := blit{StatusLine: pages[0], Frame: pages[1:]}
	if diff := cmp.Diff(want, f.panel.blits[0]); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
	if line1, line2 := f.composer.Lines(); line1 != "" || line2 != "" {
		t.Errorf("expected empty lines, got %q/%q", line1, line2)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	for _, config := range []Config{
		{Printer: new(recordPrinter)},
		{Storage: newStorage("", "")},
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic for %+v", config)
				}
			}()
			New(display.NewScreen(), new(recordPanel), config)
		}()
	}
}

func TestWelcomeImageDisabled(t *testing.T) {
	f := newFixture(false)
	if err := f.composer.Welcome(Image, 389); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(filled(0x00), f.panel.blits[0]); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
}

func TestWelcomeClearsPreviousContent(t *testing.T) {
	f := newFixture(true)
	if err := f.composer.Welcome(FullScreen, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.composer.Welcome(Voltage, 389); err != nil {
		t.Fatal(err)
	}
	if f.panel.blits[1].StatusLine[0] != 0 {
		t.Error("expected status line to be cleared")
	}
	if f.panel.blits[1].Frame[1][0] != 0 {
		t.Error("expected frame to be cleared")
	}
}

func TestWelcomeDeterministic(t *testing.T) {
	for _, mode := range []Mode{FullScreen, Message, Voltage, None, Image} {
		f := newFixture(true)
		for i := 0; i < 2; i++ {
			if err := f.composer.Welcome(mode, 389); err != nil {
				t.Fatal(err)
			}
		}
		if diff := cmp.Diff(f.panel.blits[0], f.panel.blits[1]); diff != "" {
			t.Errorf("%s: screens differ (-first +second):\n%s", mode, diff)
		}
	}
}

func TestReleaseKeys(t *testing.T) {
	f := newFixture(true)
	for i := 0; i < 2; i++ {
		if err := f.composer.ReleaseKeys(); err != nil {
			t.Fatal(err)
		}
	}

	want := []printed{
		{"RELEASE", false, 0, 127, 1},
		{"ALL KEYS", false, 0, 127, 3},
	}
	if diff := cmp.Diff(append(want, want...), f.printer.calls); diff != "" {
		t.Errorf("printed text mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(f.panel.blits[0], f.panel.blits[1]); diff != "" {
		t.Errorf("screens differ (-first +second):\n%s", diff)
	}
	if f.panel.blits[0].StatusLine[0] != 0 {
		t.Error("expected status line to be cleared")
	}
	if f.storage.reads != 0 {
		t.Errorf("expected no storage reads, got %d", f.storage.reads)
	}
}

func TestBlitError(t *testing.T) {
	f := newFixture(true)
	f.panel.err = errors.New("bus")
	if err := f.composer.ReleaseKeys(); err == nil {
		t.Fatal("expected transfer error")
	} else if !errors.Is(err, f.panel.err) {
		t.Errorf("expected wrapped transfer error, got %v", err)
	}
}
