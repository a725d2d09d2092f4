package testutil

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// recorder captures failures instead of failing the real test.
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Errorf(string, ...interface{}) { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }
func (r *recorder) Fatal(...interface{})          { r.failed = true }

func TestAssertNear(t *testing.T) {
	tests := []struct {
		name       string
		got, want  float64
		tol        float64
		wantFailed bool
	}{
		{"exact", 1, 1, Tol, false},
		{"within", 1.0000001, 1, 1e-6, false},
		{"outside", 1.1, 1, 1e-6, true},
		{"nan", math.NaN(), 0, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			AssertNear(r, tt.got, tt.want, tt.tol)
			if r.failed != tt.wantFailed {
				t.Errorf("failed = %v, want %v", r.failed, tt.wantFailed)
			}
		})
	}
}

func TestAssertVecNear(t *testing.T) {
	r := &recorder{TB: t}
	AssertVecNear(r, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1, Y: 2, Z: 3 + 1e-12}, Tol)
	if r.failed {
		t.Error("close vectors reported as different")
	}

	r = &recorder{TB: t}
	AssertVecNear(r, r3.Vec{X: 1}, r3.Vec{Y: 1}, 0.5)
	if !r.failed {
		t.Error("distant vectors not reported")
	}
}

func TestAssertErrors(t *testing.T) {
	r := &recorder{TB: t}
	AssertNoError(r, nil)
	AssertError(r, errors.New("boom"))
	if r.failed {
		t.Error("passing assertions reported a failure")
	}

	r = &recorder{TB: t}
	AssertNoError(r, errors.New("boom"))
	if !r.failed {
		t.Error("AssertNoError ignored an error")
	}

	r = &recorder{TB: t}
	AssertError(r, nil)
	if !r.failed {
		t.Error("AssertError ignored nil")
	}
}
