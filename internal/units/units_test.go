package units

import (
	"math"
	"testing"
)

func TestConversions(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(float64) float64
		in       float64
		expected float64
	}{
		{"50 km to m", KiloToBase, 50, 50000},
		{"1500 m to km", BaseToKilo, 1500, 1.5},
		{"3 GHz to Hz", GHzToHz, 3, 3e9},
		{"3e9 Hz to GHz", HzToGHz, 3e9, 3},
		{"5 min to s", MinutesToSeconds, 5, 300},
		{"90 s to min", SecondsToMinutes, 90, 1.5},
		{"250 ms to s", MillisToSeconds, 250, 0.25},
		{"100 W to dB", WattsToDB, 100, 20},
		{"30 dB to W", DBToWatts, 30, 1000},
		{"3283 deg2 to sr", DegSqToSteradian, 3283, 1},
		{"180 deg to rad", DegToRad, 180, math.Pi},
		{"pi rad to deg", RadToDeg, math.Pi, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.fn(tt.in)
			if math.Abs(result-tt.expected) > 1e-9*math.Max(1, math.Abs(tt.expected)) {
				t.Errorf("got %g, want %g", result, tt.expected)
			}
		})
	}
}

func TestWavelength(t *testing.T) {
	// S-band, 3 GHz, is roughly 10 cm.
	got := Wavelength(GHzToHz(3))
	if math.Abs(got-0.0999308) > 1e-6 {
		t.Errorf("Wavelength(3 GHz) = %f, want ~0.0999", got)
	}
}

func TestDecibelRoundTrip(t *testing.T) {
	for _, w := range []float64{1e-20, 0.5, 1, 42, 1e6} {
		if got := DBToWatts(WattsToDB(w)); math.Abs(got-w)/w > 1e-12 {
			t.Errorf("DBToWatts(WattsToDB(%g)) = %g", w, got)
		}
	}
}
