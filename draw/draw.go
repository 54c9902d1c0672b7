// Package draw composes images into display buffers.
package draw

import (
	"image"
	"image/draw"
)

// Image is a display buffer that can be drawn into, see [image/draw.Image].
type Image = draw.Image

// Src replaces the destination pixels with the source pixels.
const Src = draw.Src

// Draw copies the r sized area of src at sp into dst at r.Min, converting colors to the color
// model of dst.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op draw.Op) {
	draw.Draw(dst, r, src, sp, op)
}
