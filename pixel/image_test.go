package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoVerticalLSBImageImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalLSBImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoVerticalLSBImagePages(t *testing.T) {
	tests := []struct {
		size  image.Point
		pages int
	}{
		{image.Point{}, 0},
		{image.Pt(128, 1), 1},
		{image.Pt(128, 8), 1},
		{image.Pt(128, 9), 2},
		{image.Pt(128, 56), 7},
		{image.Pt(128, 64), 8},
	}
	for _, test := range tests {
		t.Run(test.size.String(), func(it *testing.T) {
			i := NewMonoVerticalLSBImage(test.size.X, test.size.Y)
			if v := i.Pages(); v != test.pages {
				it.Errorf("expected %d pages, got %d", test.pages, v)
			}
			if v := len(i.Pix); v != test.pages*test.size.X {
				it.Errorf("expected %d bytes, got %d", test.pages*test.size.X, v)
			}
		})
	}
}

func TestMonoVerticalLSBImagePage(t *testing.T) {
	i := NewMonoVerticalLSBImage(128, 64)

	// Pixel (5, 19) lives in page 2, bit 3.
	i.Set(5, 19, On)
	page := i.Page(2)
	if len(page) != 128 {
		t.Fatalf("expected page of 128 bytes, got %d", len(page))
	}
	if page[5] != 1<<3 {
		t.Errorf("expected page byte %#02x, got %#02x", 1<<3, page[5])
	}

	// Writes through the page alias the image.
	i.Page(7)[127] = 0x80
	if v := i.At(127, 63); v != On {
		t.Errorf("expected pixel (127,63) on, got %#+v", v)
	}

	// Appending to a page must not spill into the next one.
	_ = append(i.Page(0), 0xff)
	if i.Page(1)[0] != 0 {
		t.Error("append to page 0 overwrote page 1")
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		image.Point{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(128, 8),
		image.Pt(128, 56),
		image.Pt(256, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				i.Fill(On)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.At(x, y); v != On {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected on", x, y, v)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
