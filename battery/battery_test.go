package battery

import (
	"errors"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		curve   Curve
		voltage uint16
		want    int
	}{
		{"1600 full", Curve1600mAh, 828, 100},
		{"1600 over", Curve1600mAh, 900, 100},
		{"1600 knee", Curve1600mAh, 790, 64},
		{"1600 low", Curve1600mAh, 740, 16},
		{"1600 empty", Curve1600mAh, 630, 0},
		{"1600 dead", Curve1600mAh, 389, 0},
		{"2200 mid", Curve2200mAh, 760, 70},
		{"2200 low", Curve2200mAh, 690, 10},
		{"2200 dead", Curve2200mAh, 0, 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			if v := test.curve.Percent(test.voltage); v != test.want {
				it.Errorf("expected %d%% at %d, got %d%%", test.want, test.voltage, v)
			}
		})
	}
}

func TestPercentMonotonic(t *testing.T) {
	for _, curve := range []Curve{Curve1600mAh, Curve2200mAh} {
		last := 0
		for v := uint16(600); v <= 850; v++ {
			p := curve.Percent(v)
			if p < last-1 {
				t.Fatalf("percentage dropped from %d to %d at %d", last, p, v)
			}
			if p < 0 || p > 100 {
				t.Fatalf("percentage %d out of range at %d", p, v)
			}
			last = p
		}
	}
}

func TestCurveByName(t *testing.T) {
	for _, name := range []string{"", "1600mAh", "2200MAH"} {
		c, err := CurveByName(name)
		if err != nil {
			t.Errorf("%q: %v", name, err)
			continue
		}
		if err = c.Validate(); err != nil {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := CurveByName("3000mAh"); err == nil {
		t.Error("expected unknown battery type to fail")
	}
}

func TestValidate(t *testing.T) {
	for _, test := range []struct {
		name  string
		curve Curve
	}{
		{"empty", Curve{}},
		{"single", Curve{{800, 100}}},
		{"rising", Curve{{700, 0}, {800, 100}}},
		{"flat", Curve{{800, 100}, {800, 0}}},
	} {
		if err := test.curve.Validate(); !errors.Is(err, ErrCurve) {
			t.Errorf("%s: expected %v, got %v", test.name, ErrCurve, err)
		}
	}
}
