package mqtt

import "io"

const (
	// MaxStringLength is the largest string that PushString accepts. The length is encoded in one byte.
	MaxStringLength = 0xff

	// MaxRemainingLength is the largest remaining length that Finalize accepts. The remaining length
	// is always encoded in one byte. Note that MQTT decoders treat a value above 127 as the first
	// byte of a variable length integer.
	MaxRemainingLength = 0xff
)

// A Packet accumulates the bytes of one MQTT control packet. The first byte is the packet type and
// flags. Variable header and payload are pushed in protocol order and Finalize then inserts the
// remaining length at index 1.
//
// A Packet is single use. Pushing after Finalize, or calling Finalize twice, panics with a
// *MisuseError.
type Packet struct {
	buf       []byte
	finalized bool
}

// NewPacket creates a packet that starts with the given type byte
func NewPacket(tp byte) *Packet {
	buf := make([]byte, 1, 32)
	buf[0] = tp
	return &Packet{buf: buf}
}

// PushByte appends one byte
func (p *Packet) PushByte(b byte) {
	p.assertOpen("PushByte")
	p.buf = append(p.buf, b)
}

// PushBytes appends the given bytes verbatim. No length prefix is written.
func (p *Packet) PushBytes(bs []byte) {
	p.assertOpen("PushBytes")
	p.buf = append(p.buf, bs...)
}

// PushString appends one length byte followed by the bytes of s. A *ValueTooLargeError is returned
// and nothing is appended when s is longer than MaxStringLength.
func (p *Packet) PushString(s string) error {
	p.assertOpen("PushString")
	t := len(s)
	if t > MaxStringLength {
		return &ValueTooLargeError{What: "string length", Size: t, Max: MaxStringLength}
	}
	p.buf = append(p.buf, byte(t))
	p.buf = append(p.buf, s...)
	return nil
}

// Finalize inserts the remaining length, i.e. the number of bytes that follow the type byte, at
// index 1. A *ValueTooLargeError is returned when that number exceeds MaxRemainingLength. The packet
// is then left unfinalized and must be discarded.
func (p *Packet) Finalize() error {
	p.assertOpen("Finalize")
	rl := len(p.buf) - 1
	if rl > MaxRemainingLength {
		return &ValueTooLargeError{What: "remaining length", Size: rl, Max: MaxRemainingLength}
	}
	p.buf = append(p.buf, 0)
	copy(p.buf[2:], p.buf[1:])
	p.buf[1] = byte(rl)
	p.finalized = true
	return nil
}

// Bytes returns the bytes of the packet. The slice is valid until the next push and must not be
// modified.
func (p *Packet) Bytes() []byte {
	return p.buf
}

// Finalized returns true once Finalize has completed successfully
func (p *Packet) Finalized() bool {
	return p.finalized
}

// Len returns the current number of bytes
func (p *Packet) Len() int {
	return len(p.buf)
}

// RemainingLength returns the remaining length of a finalized packet
func (p *Packet) RemainingLength() int {
	if !p.finalized {
		panic(&MisuseError{Op: "RemainingLength called before Finalize"})
	}
	return int(p.buf[1])
}

// Type returns the type and flags byte
func (p *Packet) Type() byte {
	return p.buf[0]
}

// WriteTo writes the finalized packet on the given writer in one call. It implements io.WriterTo.
func (p *Packet) WriteTo(w io.Writer) (int64, error) {
	if !p.finalized {
		panic(&MisuseError{Op: "WriteTo called before Finalize"})
	}
	n, err := w.Write(p.buf)
	return int64(n), err
}

func (p *Packet) assertOpen(op string) {
	if p.finalized {
		panic(&MisuseError{Op: op + " called after Finalize"})
	}
}
