// Package battery converts battery voltage readings to a charge percentage.
package battery

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCurve is returned for discharge curves that can not be interpolated.
var ErrCurve = errors.New("battery: invalid discharge curve")

// Point on a discharge curve.
type Point struct {
	// Voltage in hundredths of a volt.
	Voltage uint16 `yaml:"voltage"`

	// Percent of charge left at Voltage.
	Percent int `yaml:"percent"`
}

// Curve is a discharge curve, ordered from the highest to the lowest voltage.
type Curve []Point

// Discharge curves of the stock battery packs.
var (
	Curve1600mAh = Curve{
		{828, 100},
		{814, 95},
		{760, 25},
		{729, 11},
		{630, 0},
	}
	Curve2200mAh = Curve{
		{832, 100},
		{813, 95},
		{740, 60},
		{707, 21},
		{682, 5},
		{630, 0},
	}
)

// CurveByName returns one of the stock discharge curves.
func CurveByName(name string) (Curve, error) {
	switch strings.ToLower(name) {
	case "", "1600mah":
		return Curve1600mAh, nil
	case "2200mah":
		return Curve2200mAh, nil
	default:
		return nil, fmt.Errorf("battery: unknown battery type %q", name)
	}
}

// Validate checks the curve has at least two points with strictly falling voltages.
func (c Curve) Validate() error {
	if len(c) < 2 {
		return fmt.Errorf("%w: need at least 2 points, got %d", ErrCurve, len(c))
	}
	for i := 1; i < len(c); i++ {
		if c[i].Voltage >= c[i-1].Voltage {
			return fmt.Errorf("%w: voltage %d at point %d is not below %d", ErrCurve, c[i].Voltage, i, c[i-1].Voltage)
		}
	}
	return nil
}

// Percent returns the charge left at voltage, in hundredths of a volt. The curve is linear
// between points and the result never exceeds 100. At or below the last point it is 0.
func (c Curve) Percent(voltage uint16) int {
	const scale = 1000
	v := int(voltage)
	for i := 1; i < len(c); i++ {
		if v > int(c[i].Voltage) {
			var (
				a = (c[i-1].Percent - c[i].Percent) * scale / (int(c[i-1].Voltage) - int(c[i].Voltage))
				b = c[i].Percent - a*int(c[i].Voltage)/scale
				p = a*v/scale + b
			)
			return max(min(p, 100), 0)
		}
	}
	return 0
}
