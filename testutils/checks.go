// Package testutils contains convenient testing checkers that compare a produced
// value against an expected value (or condition).
// There are value checks like `CheckEqual(expected, produced, t)``, and
// checks that should run deferred like `defer ShouldPanic(t)`.
//
package testutils

import (
	"bytes"
	"errors"
	"reflect"
)

// The T interface is fulfilled by *testing.T but can be implemented by a T mock if needed.
type T interface {
	Helper()
	Fatalf(format string, args ...interface{})
}

// CheckEqual checks if two values are deeply equal and calls t.Fatalf if not
func CheckEqual(expected interface{}, got interface{}, t T) {
	t.Helper()
	if !reflect.DeepEqual(expected, got) {
		t.Fatalf("Expected: %v, got %v", expected, got)
	}
}

// CheckBytes checks that two byte slices have equal content and reports both in hex if not
func CheckBytes(expected []byte, got []byte, t T) {
	t.Helper()
	if !bytes.Equal(expected, got) {
		t.Fatalf("Expected: % x, got % x", expected, got)
	}
}

// CheckNil checks if value is nil
func CheckNil(got interface{}, t T) {
	t.Helper()
	rf := reflect.ValueOf(got)
	if rf.IsValid() && !rf.IsNil() {
		t.Fatalf("Expected: nil, got %v", got)
	}
}

// CheckNotNil checks if value is not nil
func CheckNotNil(got interface{}, t T) {
	t.Helper()
	rf := reflect.ValueOf(got)
	if !rf.IsValid() || rf.IsNil() {
		t.Fatalf("Expected: not nil, got nil")
	}
}

// CheckError checks if there is an error
func CheckError(got error, t T) {
	t.Helper()
	if got == nil {
		t.Fatalf("Expected: error, got %v", got)
	}
}

// CheckErrorIs checks that errors.Is(got, expected) is true
func CheckErrorIs(expected, got error, t T) {
	t.Helper()
	if !errors.Is(got, expected) {
		t.Fatalf("Expected: error matching %v, got %v", expected, got)
	}
}

// CheckNotError checks if error value is not nil
func CheckNotError(got error, t T) {
	t.Helper()
	if got != nil {
		t.Fatalf("Expected: no error, got %v", got)
	}
}

// CheckTrue checks if value is true
func CheckTrue(got bool, t T) {
	t.Helper()
	if !got {
		t.Fatalf("Expected: true, got %v", got)
	}
}

// CheckFalse checks if value is false
func CheckFalse(got bool, t T) {
	t.Helper()
	if got {
		t.Fatalf("Expected: false, got %v", got)
	}
}
