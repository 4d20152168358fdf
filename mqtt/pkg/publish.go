package pkg

import (
	"bytes"
	"fmt"

	"github.com/tada/mqtt-pub/mqtt"
)

// MaxTopicLength is the longest topic that fits in a PUBLISH packet. Such a packet has room for
// an empty payload only.
const MaxTopicLength = mqtt.MaxRemainingLength - 2

// The Publish type represents a QoS 0 MQTT PUBLISH packet without dup and retain flags
type Publish struct {
	name    string
	payload []byte
}

// NewPublish creates a new Publish packet
func NewPublish(topic string, payload []byte) *Publish {
	return &Publish{name: topic, payload: payload}
}

// PublishPacket returns the finalized bytes of a PUBLISH packet
func PublishPacket(topic string, payload []byte) ([]byte, error) {
	return Bytes(NewPublish(topic, payload))
}

// ParsePublish parses the publish packet from the given reader. Only QoS 0 without dup or retain
// is accepted.
func ParsePublish(r *mqtt.Reader, flags byte, pkLen int) (*Publish, error) {
	if flags&^TpMask != 0 {
		return nil, fmt.Errorf("unsupported PUBLISH flags 0x%x", flags&^TpMask)
	}
	var err error
	if r, err = r.ReadPacket(pkLen); err != nil {
		return nil, err
	}

	pp := &Publish{}
	if pp.name, err = r.ReadString(); err != nil {
		return nil, err
	}
	if r.Len() > 0 {
		if pp.payload, err = r.ReadRemainingBytes(); err != nil {
			return nil, err
		}
	}
	return pp, nil
}

// Encode builds the PUBLISH packet. The payload is not length prefixed, its length is implied by
// the remaining length.
func (p *Publish) Encode() (*mqtt.Packet, error) {
	mp := mqtt.NewPacket(TpPublish)
	mp.PushByte(0)
	if err := mp.PushString(p.name); err != nil {
		return nil, fmt.Errorf("topic: %w", err)
	}
	mp.PushBytes(p.payload)
	if err := mp.Finalize(); err != nil {
		return nil, err
	}
	return mp, nil
}

// Equals returns true if this packet is equal to the given packet, false if not
func (p *Publish) Equals(other Packet) bool {
	op, ok := other.(*Publish)
	return ok &&
		p.name == op.name &&
		bytes.Equal(p.payload, op.payload)
}

// IsPrintableASCII returns true if the given bytes are constrained to the ASCII 7-bit character set and
// has no control characters.
func IsPrintableASCII(bs []byte) bool {
	for i := range bs {
		c := bs[i]
		if c < 32 || c > 126 {
			return false
		}
	}
	return true
}

// Payload returns the payload of the published message
func (p *Publish) Payload() []byte {
	return p.payload
}

// String returns a brief string representation of the packet. Suitable for logging. A printable
// payload is included.
func (p *Publish) String() string {
	// layout borrowed from mosquitto_sub log output
	if len(p.payload) > 0 && IsPrintableASCII(p.payload) {
		return fmt.Sprintf("PUBLISH (d0, q0, r0, '%s', '%s' (%d bytes))", p.name, p.payload, len(p.payload))
	}
	return fmt.Sprintf("PUBLISH (d0, q0, r0, '%s', ... (%d bytes))", p.name, len(p.payload))
}

// TopicName returns the name of the topic
func (p *Publish) TopicName() string {
	return p.name
}

// Type returns the MQTT PUBLISH type
func (p *Publish) Type() byte {
	return TpPublish
}
