package pkg

import "github.com/tada/mqtt-pub/mqtt"

// The Disconnect type represents the MQTT DISCONNECT packet
type Disconnect int

// DisconnectSingleton is the one and only instance of the Disconnect type
const DisconnectSingleton = Disconnect(0)

// Encode builds the two byte DISCONNECT packet
func (Disconnect) Encode() (*mqtt.Packet, error) {
	p := mqtt.NewPacket(TpDisconnect)
	if err := p.Finalize(); err != nil {
		return nil, err
	}
	return p, nil
}

// Equals returns true if this packet is equal to the given packet, false if not
func (Disconnect) Equals(p Packet) bool {
	return p == DisconnectSingleton
}

// String returns a brief string representation of the packet. Suitable for logging
func (Disconnect) String() string {
	return "DISCONNECT"
}

// Type returns the MQTT DISCONNECT type
func (Disconnect) Type() byte {
	return TpDisconnect
}
