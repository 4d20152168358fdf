// Package publisher contains the client that sends CONNECT, PUBLISH and DISCONNECT packets to an
// MQTT broker over an already established transport.
package publisher

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tada/mqtt-pub/config"
	"github.com/tada/mqtt-pub/logger"
	"github.com/tada/mqtt-pub/mqtt"
	"github.com/tada/mqtt-pub/mqtt/pkg"
	"github.com/tada/mqtt-pub/source"
)

// Stats holds the number of packets that were sent, rejected by the encoder, and failed by the
// transport.
type Stats struct {
	Sent     int
	Rejected int
	Failed   int
}

func (s Stats) String() string {
	return fmt.Sprintf("%d sent, %d rejected, %d failed", s.Sent, s.Rejected, s.Failed)
}

// Client writes packets on a transport. It never reads from the broker.
type Client struct {
	logger.Logger
	conn      io.WriteCloser
	clientID  string
	topic     string
	keepAlive uint16
	lock      sync.Mutex
	stats     Stats
	closeOnce sync.Once
	closeErr  error
}

// New creates a Client that writes on the given transport using the client id, topic and keep
// alive from the given configuration.
func New(conn io.WriteCloser, cfg *config.Config, lg logger.Logger) *Client {
	return &Client{
		Logger:    lg,
		conn:      conn,
		clientID:  cfg.ClientID,
		topic:     cfg.Topic,
		keepAlive: uint16(cfg.KeepAlive),
	}
}

// Send encodes the given packet and writes it on the transport. A packet that cannot be encoded is
// rejected and the mqtt.ErrValueTooLarge is returned without anything being written. A failed write
// is logged and returned. There is no retry.
func (c *Client) Send(p pkg.Packet) error {
	kind := pkg.TypeName(p.Type())
	mp, err := p.Encode()
	if err != nil {
		c.count(func(s *Stats) { s.Rejected++ })
		c.Error(kind, "packet rejected:", err)
		return err
	}
	if rl := mp.RemainingLength(); rl > 127 && c.DebugEnabled() {
		c.Debug(kind, "remaining length", rl, "will be read as a multi byte length by the broker")
	}
	if c.DebugEnabled() {
		c.Debug("sending", p)
	}
	if _, err = mp.WriteTo(c.conn); err != nil {
		c.count(func(s *Stats) { s.Failed++ })
		c.Error(kind, "packet send failed:", err)
		return err
	}
	c.count(func(s *Stats) { s.Sent++ })
	c.Info(kind, "packet sent successfully.")
	return nil
}

// Connect sends a CONNECT packet with a clean session
func (c *Client) Connect() error {
	return c.Send(pkg.NewConnect(c.clientID, c.keepAlive))
}

// Publish sends a QoS 0 PUBLISH packet
func (c *Client) Publish(topic string, payload []byte) error {
	return c.Send(pkg.NewPublish(topic, payload))
}

// Disconnect sends a DISCONNECT packet
func (c *Client) Disconnect() error {
	return c.Send(pkg.DisconnectSingleton)
}

// Run sends CONNECT and then one PUBLISH for each message produced by the given source. Messages
// are published on the configured topic. The topic of the message is used only when no topic is
// configured. Packets that cannot be encoded or sent are logged and skipped.
//
// When the source is exhausted, Run sends DISCONNECT and returns nil. A source error other than
// io.EOF is returned after the DISCONNECT. Send failures, including a failed CONNECT, are only
// logged and counted.
func (c *Client) Run(src source.Source) error {
	_ = c.Connect()
	var srcErr error
	for {
		m, err := src.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.Error("input failed:", err)
				srcErr = err
			}
			break
		}
		topic := c.topic
		if topic == "" {
			topic = m.Topic
		}
		if err = mqtt.ValidateTopicName(topic); err != nil {
			c.count(func(s *Stats) { s.Rejected++ })
			c.Error("PUBLISH packet rejected:", err)
			continue
		}
		_ = c.Publish(topic, m.Payload)
	}
	_ = c.Disconnect()
	return srcErr
}

// Close closes the transport. Only the first call has any effect.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

// Stats returns a snapshot of the packet counters
func (c *Client) Stats() Stats {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.stats
}

func (c *Client) count(f func(*Stats)) {
	c.lock.Lock()
	f(&c.stats)
	c.lock.Unlock()
}
