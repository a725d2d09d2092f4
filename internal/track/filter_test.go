package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/phasedarray/internal/geometry"
	"github.com/banshee-data/phasedarray/internal/testutil"
)

var testWeights = Weights{Alpha: 0.5, Beta: 0.4, Gamma: 0.1}

func TestWeightsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, testWeights.Valid())
	assert.False(t, Weights{Alpha: 0, Beta: 0.4, Gamma: 0.1}.Valid())
	assert.False(t, Weights{Alpha: 0.5, Beta: 1, Gamma: 0.1}.Valid())
	assert.False(t, Weights{Alpha: 0.5, Beta: 0.4, Gamma: -0.1}.Valid())
}

func TestInitializeBootstrapsAtRest(t *testing.T) {
	t.Parallel()

	f := NewFilter(testWeights)
	confirm := r3.Vec{X: 20e3, Y: 5e3, Z: 1e3}
	f.Initialize(confirm, 0.25)

	assert.Equal(t, r3.Vec{}, f.EstVel)
	assert.Equal(t, r3.Vec{}, f.EstAcc)
	assert.Equal(t, confirm, f.PredPos)

	want := geometry.ToSpherical(confirm).Pointing()
	assert.Equal(t, want, f.Pointing())
}

func TestUpdateCorrection(t *testing.T) {
	t.Parallel()

	f := NewFilter(testWeights)
	f.Initialize(r3.Vec{X: 1000}, 0)

	// residual of +100 m in X after 2 s
	f.Update(r3.Vec{X: 1100}, 2)

	testutil.AssertVecNear(t, f.EstPos, r3.Vec{X: 1050}, 1e-9) // 1000 + 0.5·100
	testutil.AssertVecNear(t, f.EstVel, r3.Vec{X: 20}, 1e-9)   // 0.4·100/2
	testutil.AssertVecNear(t, f.EstAcc, r3.Vec{X: 5}, 1e-9)    // 0.1·100/2

	// projected 2 s ahead: 1050 + 20·2 + ½·5·4
	testutil.AssertVecNear(t, f.PredPos, r3.Vec{X: 1100}, 1e-9)
	testutil.AssertVecNear(t, f.PredVel, r3.Vec{X: 30}, 1e-9)
	testutil.AssertVecNear(t, f.PredAcc, r3.Vec{X: 5}, 1e-9)
}

func TestUpdateZeroInterval(t *testing.T) {
	t.Parallel()

	f := NewFilter(testWeights)
	f.Initialize(r3.Vec{Y: 500}, 0)
	f.Update(r3.Vec{Y: 600}, 0)

	testutil.AssertVecNear(t, f.EstPos, r3.Vec{Y: 550}, 1e-9)
	assert.Equal(t, r3.Vec{}, f.EstVel)
	assert.Equal(t, r3.Vec{}, f.EstAcc)
}

func TestFilterConvergesOnConstantVelocity(t *testing.T) {
	t.Parallel()

	f := NewFilter(testWeights)
	vel := r3.Vec{X: -150, Y: 80, Z: 5}
	pos := r3.Vec{X: 40e3, Y: 10e3, Z: 2e3}
	f.Initialize(pos, 0)

	const dt = 0.5
	for i := 0; i < 200; i++ {
		pos = r3.Add(pos, r3.Scale(dt, vel))
		f.Update(pos, dt)
	}
	testutil.AssertVecNear(t, f.EstVel, vel, 1e-3)
	testutil.AssertVecNear(t, f.EstAcc, r3.Vec{}, 1e-3)

	next := r3.Add(pos, r3.Scale(dt, vel))
	testutil.AssertVecNear(t, f.PredPos, next, 1e-2)
	assert.InDelta(t, geometry.ToSpherical(next).Azimuth, f.Pointing().Azimuth, 1e-4)
}
