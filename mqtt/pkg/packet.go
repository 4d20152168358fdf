// Package pkg contains the MQTT packets that a publishing client sends
package pkg

import (
	"fmt"

	"github.com/tada/mqtt-pub/mqtt"
)

const (
	// TpConnect is the MQTT CONNECT type
	TpConnect = 0x10

	// TpPublish is the MQTT PUBLISH type
	TpPublish = 0x30

	// TpDisconnect is the MQTT DISCONNECT type
	TpDisconnect = 0xe0

	// TpMask is bitmask for the MQTT type
	TpMask = 0xf0
)

// The Packet interface is implemented by all MQTT packet types
type Packet interface {
	fmt.Stringer

	// Encode builds and finalizes the wire form of this packet. A mqtt.ErrValueTooLarge is
	// returned when a string or the packet body does not fit its single byte length.
	Encode() (*mqtt.Packet, error)

	// Equals returns true if this packet is equal to the given packet, false if not
	Equals(other Packet) bool

	// Type returns the MQTT packet type
	Type() byte
}

// TypeName returns the name of the MQTT packet type in the high nibble of the given byte
func TypeName(tp byte) string {
	switch tp & TpMask {
	case TpConnect:
		return "CONNECT"
	case TpPublish:
		return "PUBLISH"
	case TpDisconnect:
		return "DISCONNECT"
	default:
		return fmt.Sprintf("TYPE%d", tp>>4)
	}
}

// Bytes encodes the given packet and returns its finalized bytes
func Bytes(p Packet) ([]byte, error) {
	mp, err := p.Encode()
	if err != nil {
		return nil, err
	}
	return mp.Bytes(), nil
}
