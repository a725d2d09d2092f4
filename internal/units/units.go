// Package units provides the physical constants and unit conversions shared
// by the simulation. Everything inside the engine is SI (metres, seconds,
// hertz, watts) except angles, which stay in degrees, and gains/losses, which
// stay in decibels.
package units

import "math"

// Physical constants
const (
	SpeedOfLight   = 299792458.0  // m/s
	Boltzmann      = 1.380649e-23 // J/K
	NoiseTempK     = 290.0        // standard reference temperature (K)
	SquareDegPerSr = 3283.0       // square degrees per steradian, as used by the range equation
)

// KiloToBase converts a kilo-prefixed value (km, kHz, kW) to base units.
func KiloToBase(kilo float64) float64 {
	return kilo * 1e3
}

// BaseToKilo converts base units to a kilo-prefixed value.
func BaseToKilo(base float64) float64 {
	return base / 1e3
}

// GHzToHz converts gigahertz to hertz.
func GHzToHz(ghz float64) float64 {
	return ghz * 1e9
}

// HzToGHz converts hertz to gigahertz.
func HzToGHz(hz float64) float64 {
	return hz / 1e9
}

// MinutesToSeconds converts minutes to seconds.
func MinutesToSeconds(min float64) float64 {
	return min * 60
}

// SecondsToMinutes converts seconds to minutes.
func SecondsToMinutes(sec float64) float64 {
	return sec / 60
}

// MillisToSeconds converts milliseconds to seconds.
func MillisToSeconds(ms float64) float64 {
	return ms / 1e3
}

// WattsToDB converts a power ratio to decibels.
func WattsToDB(watts float64) float64 {
	return 10 * math.Log10(watts)
}

// DBToWatts converts decibels to a power ratio.
func DBToWatts(db float64) float64 {
	return math.Pow(10, db/10)
}

// DegSqToSteradian converts a solid angle in square degrees to steradians.
func DegSqToSteradian(degSq float64) float64 {
	return degSq / SquareDegPerSr
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Wavelength returns the free-space wavelength (m) for a frequency in hertz.
func Wavelength(freqHz float64) float64 {
	return SpeedOfLight / freqHz
}
