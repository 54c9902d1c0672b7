// Package pixel implements the monochrome color model and page addressed image buffer used by
// ST7565 and SSD1xxx style LCD and OLED controllers.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so fonts and images from the standard library can be drawn straight into a
// display buffer.
package pixel
