package display

// Commands shared by the SSD1xxx and SH1106 OLED controllers. ST7565 uses the same values for
// display on/off and contrast.
const (
	ssd1xxxSetLowColumn          = 0x00
	ssd1xxxSetHighColumn         = 0x10
	ssd1xxxSetMemoryMode         = 0x20
	ssd1xxxSetColumnAddr         = 0x21
	ssd1xxxSetPageAddr           = 0x22
	ssd1xxxSetStartLine          = 0x40
	ssd1xxxSetContrast           = 0x81
	ssd1xxxSetChargePump         = 0x8D
	ssd1xxxSetSegmentRemap       = 0xA1
	ssd1xxxSetDisplayAllOnResume = 0xA4
	ssd1xxxSetNormalDisplay      = 0xA6
	ssd1xxxSetMultiplexRatio     = 0xA8
	ssd1xxxSetDisplayOff         = 0xAE
	ssd1xxxSetDisplayOn          = 0xAF
	ssd1xxxSetComScanInc         = 0xC0
	ssd1xxxSetComScanDec         = 0xC8
	ssd1xxxSetDisplayOffset      = 0xD3
	ssd1xxxSetDisplayClockDiv    = 0xD5
	ssd1xxxSetPrecharge          = 0xD9
	ssd1xxxSetComPins            = 0xDA
	ssd1xxxSetVCOMDeselect       = 0xDB
)
