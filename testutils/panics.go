package testutils

import "testing"

// ShouldNotPanic is used to assert that a function does not panic
// Usage: defer testutils.ShouldNotPanic(t) at the point where the rest is expected to not panic
func ShouldNotPanic(t *testing.T) {
	t.Helper()
	if r := recover(); r != nil {
		t.Errorf("Unexpected panic: %v", r)
	}
}

// ShouldPanic is used to assert that a function does panic
// Usage: defer testutils.ShouldPanic(t) at the point where the rest is expected to panic
func ShouldPanic(t *testing.T) {
	t.Helper()
	if r := recover(); r == nil {
		t.Error("Expected panic but got none")
	}
}

// ShouldPanicWith returns a function, suitable for defer, that asserts that a panic occurred and
// that the panic value is accepted by the given check.
func ShouldPanicWith(t *testing.T, check func(r interface{}) bool) func() {
	return func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Error("Expected panic but got none")
			return
		}
		if !check(r) {
			t.Errorf("Unexpected panic value %T: %v", r, r)
		}
	}
}
