package pkg

import (
	"errors"
	"fmt"

	"github.com/tada/mqtt-pub/mqtt"
)

const (
	protoName = "MQTT"

	// ProtocolLevel is the MQTT 3.1.1 protocol level
	ProtocolLevel = byte(0x04)

	// DefaultKeepAlive is the keep alive interval in seconds used unless configured otherwise
	DefaultKeepAlive = uint16(60)

	cleanSessionFlag = byte(0b00000010)

	// connectBodyLength is the remaining length of a CONNECT with an empty client identifier
	connectBodyLength = 12

	// MaxClientIDLength is the longest client identifier that fits in a CONNECT packet
	MaxClientIDLength = mqtt.MaxRemainingLength - connectBodyLength
)

// The Connect type represents the MQTT CONNECT packet. It always requests a clean session and
// carries no will, user name or password.
type Connect struct {
	clientID    string
	keepAlive   uint16
	clientLevel byte
	flags       byte
}

// NewConnect creates a CONNECT packet for the given client identifier and keep alive in seconds
func NewConnect(clientID string, keepAlive uint16) *Connect {
	return &Connect{
		clientID:    clientID,
		keepAlive:   keepAlive,
		clientLevel: ProtocolLevel,
		flags:       cleanSessionFlag,
	}
}

// ConnectPacket returns the finalized bytes of a CONNECT packet
func ConnectPacket(clientID string, keepAlive uint16) ([]byte, error) {
	return Bytes(NewConnect(clientID, keepAlive))
}

// ParseConnect parses the connect packet from the given reader.
func ParseConnect(r *mqtt.Reader, _ byte, pkLen int) (*Connect, error) {
	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	// Protocol Name
	var proto string
	if proto, err = r.ReadString(); err != nil {
		return nil, err
	}
	if proto != protoName {
		return nil, fmt.Errorf(`expected connect packet with protocol name "MQTT", got "%s"`, proto)
	}

	c := &Connect{}

	// Protocol Level
	if c.clientLevel, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if c.clientLevel != ProtocolLevel {
		return nil, fmt.Errorf("unacceptable protocol level %d", c.clientLevel)
	}

	// Connect Flags
	if c.flags, err = r.ReadByte(); err != nil {
		return nil, err
	}
	if c.flags&^cleanSessionFlag != 0 {
		return nil, fmt.Errorf("unsupported connect flags 0x%02x", c.flags)
	}

	// Keep Alive
	if c.keepAlive, err = r.ReadUint16(); err != nil {
		return nil, err
	}

	// Client Identifier
	if c.clientID, err = r.ReadString(); err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		return nil, errors.New("malformed CONNECT, trailing bytes after client identifier")
	}
	return c, nil
}

// Encode builds the CONNECT packet. The zero byte that precedes each string is the high byte
// of its MQTT two byte length.
func (c *Connect) Encode() (*mqtt.Packet, error) {
	p := mqtt.NewPacket(TpConnect)

	// Variable Header
	p.PushByte(0)
	if err := p.PushString(protoName); err != nil {
		return nil, err
	}
	p.PushByte(c.clientLevel)
	p.PushByte(c.flags)
	p.PushByte(byte(c.keepAlive >> 8))
	p.PushByte(byte(c.keepAlive))

	// Payload
	p.PushByte(0)
	if err := p.PushString(c.clientID); err != nil {
		return nil, fmt.Errorf("client identifier: %w", err)
	}
	if err := p.Finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Equals returns true if this packet is equal to the given packet, false if not
func (c *Connect) Equals(p Packet) bool {
	oc, ok := p.(*Connect)
	return ok && *c == *oc
}

// CleanSession returns true if the clean session flag is set
func (c *Connect) CleanSession() bool {
	return (c.flags & cleanSessionFlag) != 0
}

// ClientID returns the client identifier
func (c *Connect) ClientID() string {
	return c.clientID
}

// Flags returns the connect flags
func (c *Connect) Flags() byte {
	return c.flags
}

// KeepAlive returns the keep alive interval in seconds
func (c *Connect) KeepAlive() uint16 {
	return c.keepAlive
}

// ProtocolLevel returns the protocol level
func (c *Connect) ProtocolLevel() byte {
	return c.clientLevel
}

// String returns a brief string representation of the packet. Suitable for logging
func (c *Connect) String() string {
	cs := 0
	if c.CleanSession() {
		cs = 1
	}
	return fmt.Sprintf("CONNECT (c%d, k%d, '%s')", cs, c.keepAlive, c.clientID)
}

// Type returns the MQTT CONNECT type
func (c *Connect) Type() byte {
	return TpConnect
}
