package face

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/scan"
)

func testFace(sectors int) *Face {
	cfg := Config{
		Azimuth:       geometry.AzExtent{Start: 0, End: 90},
		Elevation:     geometry.Extent{Min: 0, Max: 60},
		Beamwidth:     geometry.Beamwidth{Azimuth: 2, Elevation: 2},
		MinSNR:        13,
		Frequency:     3e9,
		Bandwidth:     1e6,
		EffectiveArea: 4,
		PeakPower:     20e3,
	}
	var sc []scan.Config
	for i := 0; i < sectors; i++ {
		sc = append(sc, scan.Config{
			Azimuth:     geometry.AzExtent{Start: float64(i * 10), End: float64(i*10 + 10)},
			Elevation:   geometry.Extent{Min: 0, Max: 10},
			Range:       geometry.Extent{Min: 0, Max: 100e3},
			RefreshRate: 1,
		})
	}
	return New(cfg, sc, 1000)
}

func TestRoundRobin(t *testing.T) {
	t.Parallel()

	f := testFace(3)
	var order []int
	for i := 0; i < 7; i++ {
		order = append(order, f.CurrentSectorIndex())
		f.AdvanceSector()
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2, 0}, order)
}

func TestCurrentSectorIsOwned(t *testing.T) {
	t.Parallel()

	f := testFace(2)
	f.CurrentSector().IncrementBeamPos(2, 2)
	assert.Equal(t, 2.0, f.Sectors[0].ScanPos().Azimuth)
	assert.Equal(t, 10.0, f.Sectors[1].ScanPos().Azimuth)
}

func TestDerivedValues(t *testing.T) {
	t.Parallel()

	f := testFace(1)
	// 20 kW · 1/1 MHz · 1 kHz
	assert.InDelta(t, 20.0, f.AvgPower, 1e-12)
	assert.InDelta(t, 0.0999308, f.Wavelength(), 1e-6)
	require.Len(t, f.Sectors, 1)
	assert.InDelta(t, 1*2*2/100.0, f.Sectors[0].DwellTime, 1e-12)
}

func TestInFOV(t *testing.T) {
	t.Parallel()

	f := testFace(1)
	assert.True(t, f.InFOV(geometry.AzEl{Azimuth: 45, Elevation: 10}))
	assert.False(t, f.InFOV(geometry.AzEl{Azimuth: 95, Elevation: 10}))
	assert.False(t, f.InFOV(geometry.AzEl{Azimuth: 45, Elevation: -1}))

	f.Azimuth = geometry.AzExtent{Start: 350, End: 10}
	assert.True(t, f.InFOV(geometry.AzEl{Azimuth: 355, Elevation: 0}))
	assert.True(t, f.InFOV(geometry.AzEl{Azimuth: 5, Elevation: 0}))
	assert.False(t, f.InFOV(geometry.AzEl{Azimuth: 180, Elevation: 0}))
}

func TestRandomizeStarts(t *testing.T) {
	t.Parallel()

	f := testFace(4)
	f.RandomizeStarts(rand.New(rand.NewPCG(5, 6)))
	for i, s := range f.Sectors {
		p := s.ScanPos()
		assert.True(t, s.Azimuth.Contains(p.Azimuth), "sector %d azimuth %g", i, p.Azimuth)
		assert.True(t, s.Elevation.Contains(p.Elevation), "sector %d elevation %g", i, p.Elevation)
	}
}
