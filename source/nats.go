package source

import (
	"io"
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/tada/mqtt-pub/mqtt"
)

// pendingMessages is the size of the channel that buffers NATS messages until Next picks them up
const pendingMessages = 64

// NATS reads messages from a NATS subscription. The topic of each message is the MQTT form of the
// NATS subject it was published on.
type NATS struct {
	sub      *nats.Subscription
	msgs     chan *nats.Msg
	done     chan struct{}
	once     sync.Once
	sentinel string
}

// NewNATS subscribes to the given subject. A message with a payload equal to sentinel ends the
// input. The subscription is known to the server when NewNATS returns.
func NewNATS(nc *nats.Conn, subject, sentinel string) (*NATS, error) {
	s := &NATS{
		msgs:     make(chan *nats.Msg, pendingMessages),
		done:     make(chan struct{}),
		sentinel: sentinel,
	}
	var err error
	if s.sub, err = nc.ChanSubscribe(subject, s.msgs); err != nil {
		return nil, err
	}
	if err = nc.Flush(); err != nil {
		_ = s.sub.Unsubscribe()
		return nil, err
	}
	return s, nil
}

// Next returns the next message received from NATS. It returns io.EOF once the sentinel is
// received or Close has been called.
func (s *NATS) Next() (Message, error) {
	select {
	case m := <-s.msgs:
		if string(m.Data) == s.sentinel {
			return Message{}, io.EOF
		}
		return Message{Topic: mqtt.FromNATS(m.Subject), Payload: m.Data}, nil
	case <-s.done:
		return Message{}, io.EOF
	}
}

// Close ends the subscription and releases a blocked Next
func (s *NATS) Close() (err error) {
	s.once.Do(func() {
		close(s.done)
		err = s.sub.Unsubscribe()
	})
	return
}
