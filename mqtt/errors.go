package mqtt

import (
	"errors"
	"fmt"
)

// ErrValueTooLarge is matched by every *ValueTooLargeError using errors.Is
var ErrValueTooLarge = errors.New("value too large")

// A ValueTooLargeError is returned when a string or a packet body does not fit its single byte
// length field. The packet that produced it must be rejected.
type ValueTooLargeError struct {
	// What names the length that overflowed, e.g. "string length" or "remaining length"
	What string

	// Size is the actual size in bytes
	Size int

	// Max is the largest size allowed
	Max int
}

func (e *ValueTooLargeError) Error() string {
	return fmt.Sprintf("%s: %s %d exceeds %d", ErrValueTooLarge, e.What, e.Size, e.Max)
}

// Is makes errors.Is(err, ErrValueTooLarge) true for all instances
func (e *ValueTooLargeError) Is(target error) bool {
	return target == ErrValueTooLarge
}

// A MisuseError is the panic value used when a Packet is used in violation of its contract, e.g.
// when Finalize is called twice or bytes are pushed after Finalize. It signals a programming
// error and should never be recovered as a regular error.
type MisuseError struct {
	Op string
}

func (e *MisuseError) Error() string {
	return "mqtt packet builder misuse: " + e.Op
}
