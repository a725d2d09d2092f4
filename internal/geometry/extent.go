package geometry

// Extent is a closed interval [Min, Max] used for elevation and range limits.
type Extent struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the closed interval.
func (e Extent) Contains(v float64) bool {
	return v >= e.Min && v <= e.Max
}

// Width is Max-Min.
func (e Extent) Width() float64 {
	return e.Max - e.Min
}

// Ordered reports whether Min <= Max.
func (e Extent) Ordered() bool {
	return e.Min <= e.Max
}

// AzExtent is an azimuth interval running clockwise-in-the-config sense from
// Start to End. When End < Start the extent rolls over through 0/360, e.g.
// Start=345, End=45 covers 90 degrees.
type AzExtent struct {
	Start float64
	End   float64
}

// Rollover reports whether the extent wraps through 0/360.
func (e AzExtent) Rollover() bool {
	return e.End < e.Start
}

// Width is the angular length of the extent in degrees.
func (e AzExtent) Width() float64 {
	if e.Rollover() {
		return e.End + 360 - e.Start
	}
	return e.End - e.Start
}

// Contains reports whether az (in [0,360)) lies inside the extent. A rolled
// over extent is the union of [Start,360) and [0,End].
func (e AzExtent) Contains(az float64) bool {
	if e.Rollover() {
		return az >= e.Start || az <= e.End
	}
	return az >= e.Start && az <= e.End
}

// At returns the azimuth offset degrees into the extent, wrapped into [0,360).
func (e AzExtent) At(offset float64) float64 {
	return NormalizeAzimuth(e.Start + offset)
}
