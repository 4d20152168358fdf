package pkg

import (
	"errors"
	"fmt"
	"io"

	"github.com/tada/mqtt-pub/mqtt"
)

// Parse reads the next packet from the given reader. The remaining length is read as a single
// byte, the same way the packets in this package encode it. An io.EOF is returned when the
// reader is exhausted before a new packet starts.
func Parse(rdr io.Reader) (Packet, error) {
	r, ok := rdr.(*mqtt.Reader)
	if !ok {
		r = mqtt.NewReader(rdr)
	}
	b, rl, err := r.ReadFixedHeader()
	if err != nil {
		return nil, err
	}
	var p Packet
	switch b & TpMask {
	case TpConnect:
		var c *Connect
		if c, err = ParseConnect(r, b, rl); err == nil {
			p = c
		}
	case TpPublish:
		var pp *Publish
		if pp, err = ParsePublish(r, b, rl); err == nil {
			p = pp
		}
	case TpDisconnect:
		if rl != 0 {
			err = errors.New("malformed DISCONNECT")
		} else {
			p = DisconnectSingleton
		}
	default:
		err = fmt.Errorf("received unknown packet type %d", (b&TpMask)>>4)
	}
	return p, err
}
