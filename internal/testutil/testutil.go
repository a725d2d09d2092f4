// Package testutil provides shared test utilities for floating point and
// vector comparisons.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tol is the default absolute tolerance.
const Tol = 1e-9

// AssertNear fails the test if got and want differ by more than tol.
func AssertNear(t testing.TB, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > tol {
		t.Errorf("got %.12g, want %.12g (tol %g)", got, want, tol)
	}
}

// AssertVecNear compares vectors component-wise.
func AssertVecNear(t testing.TB, got, want r3.Vec, tol float64) {
	t.Helper()
	if d := r3.Norm(r3.Sub(got, want)); math.IsNaN(d) || d > tol {
		t.Errorf("got %+v, want %+v (off by %g, tol %g)", got, want, d, tol)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
