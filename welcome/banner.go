package welcome

import (
	"bytes"
	"io"
)

// BannerSize is the capacity of a [Banner] including the terminating NUL.
const BannerSize = 16

// Banner is a fixed capacity, NUL terminated welcome text line.
type Banner [BannerSize]byte

// Reset clears the banner.
func (b *Banner) Reset() {
	*b = Banner{}
}

// SetString stores s, truncated to BannerSize-1 bytes.
func (b *Banner) SetString(s string) {
	b.Reset()
	copy(b[:BannerSize-1], s)
}

// Load fills the banner from BannerSize bytes of r at off. The last byte is always replaced by
// the terminator.
func (b *Banner) Load(r io.ReaderAt, off int64) error {
	if _, err := r.ReadAt(b[:], off); err != nil {
		return err
	}
	b[BannerSize-1] = 0
	return nil
}

// Store writes the banner to BannerSize bytes of w at off.
func (b *Banner) Store(w io.WriterAt, off int64) error {
	_, err := w.WriteAt(b[:], off)
	return err
}

// String returns the text up to the terminator.
func (b Banner) String() string {
	if i := bytes.IndexByte(b[:], 0); i >= 0 {
		return string(b[:i])
	}
	return string(b[:])
}
