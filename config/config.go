// Package config contains the configuration of the publishing client and its JSON file form
package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/nats-io/nuid"
	"github.com/tada/catch"
	"github.com/tada/catch/pio"
	"github.com/tada/jsonstream"
	"github.com/tada/mqtt-pub/mqtt"
	"github.com/tada/mqtt-pub/mqtt/pkg"
)

const (
	// TransportTCP is a plain TCP connection to the broker
	TransportTCP = "tcp"

	// TransportWebSocket is MQTT over WebSocket
	TransportWebSocket = "ws"

	// ClientIDPrefix is prepended to generated client identifiers
	ClientIDPrefix = "mqtt-pub-"
)

// Config is the configuration of the publishing client. Default returns an instance with all
// fields set to their documented defaults.
type Config struct {
	// Host is the broker host name or IP address. Default "127.0.0.1"
	Host string

	// Port is the broker port. Default 1883
	Port int

	// Transport is either TransportTCP or TransportWebSocket. Default TransportTCP
	Transport string

	// WSPath is the HTTP path used when Transport is TransportWebSocket. Default "/mqtt"
	WSPath string

	// ClientID is the MQTT client identifier. An empty ClientID is replaced with a generated
	// identifier by EnsureClientID. Default "mqtt-pub-client"
	ClientID string

	// Topic is the topic of all published messages. It may be empty when messages carry their own
	// topic. Default "test/topic"
	Topic string

	// KeepAlive is the keep alive interval in seconds sent in the CONNECT packet. Default 60
	KeepAlive int

	// ExitCommand is the input line that ends the session. Default "/exit"
	ExitCommand string

	// DialTimeout is the connection timeout in milliseconds. Default 5000
	DialTimeout int

	// NATSURL is the URL of a NATS server to read messages from instead of the console
	NATSURL string

	// NATSSubject is the NATS subject to subscribe to when NATSURL is set
	NATSSubject string

	// LogLevel is one of "silent", "error", "info", or "debug". Default "info"
	LogLevel string
}

// Default returns a new Config with default values
func Default() *Config {
	return &Config{
		Host:        "127.0.0.1",
		Port:        1883,
		Transport:   TransportTCP,
		WSPath:      "/mqtt",
		ClientID:    "mqtt-pub-client",
		Topic:       "test/topic",
		KeepAlive:   60,
		ExitCommand: "/exit",
		DialTimeout: 5000,
		LogLevel:    "info",
	}
}

// Address returns the host:port of the broker
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Timeout returns the DialTimeout as a time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.DialTimeout) * time.Millisecond
}

// UsesNATS returns true when messages are read from NATS rather than from the console
func (c *Config) UsesNATS() bool {
	return c.NATSURL != "" && c.NATSSubject != ""
}

// EnsureClientID assigns a generated client identifier if ClientID is empty
func (c *Config) EnsureClientID() {
	if c.ClientID == "" {
		c.ClientID = ClientIDPrefix + nuid.Next()
	}
}

// Validate checks that the configuration can be used to connect and publish
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host must not be empty")
	}
	if c.Port <= 0 || c.Port > 0xffff {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	switch c.Transport {
	case TransportTCP, TransportWebSocket:
	default:
		return fmt.Errorf("unknown transport %q, expected %q or %q", c.Transport, TransportTCP, TransportWebSocket)
	}
	if c.KeepAlive < 0 || c.KeepAlive > 0xffff {
		return fmt.Errorf("keep alive %d is out of range", c.KeepAlive)
	}
	if len(c.ClientID) > pkg.MaxClientIDLength {
		return fmt.Errorf("client identifier: %w", &mqtt.ValueTooLargeError{
			What: "client identifier length", Size: len(c.ClientID), Max: pkg.MaxClientIDLength})
	}
	if c.Topic != "" {
		err := mqtt.ValidateTopicName(c.Topic)
		if err == nil && len(c.Topic) > pkg.MaxTopicLength {
			err = &mqtt.ValueTooLargeError{What: "topic length", Size: len(c.Topic), Max: pkg.MaxTopicLength}
		}
		if err != nil {
			return fmt.Errorf("topic: %w", err)
		}
	} else if !c.UsesNATS() {
		return errors.New("topic must not be empty unless messages are read from NATS")
	}
	if (c.NATSURL == "") != (c.NATSSubject == "") {
		return errors.New("NATS URL and NATS subject must be given together")
	}
	if c.ExitCommand == "" {
		return errors.New("exit command must not be empty")
	}
	return nil
}

// MarshalToJSON streams the JSON encoded form of this instance onto the given io.Writer
func (c *Config) MarshalToJSON(w io.Writer) {
	pio.WriteString(`{"host":`, w)
	jsonstream.WriteString(c.Host, w)
	pio.WriteString(`,"port":`, w)
	pio.WriteString(strconv.Itoa(c.Port), w)
	pio.WriteString(`,"transport":`, w)
	jsonstream.WriteString(c.Transport, w)
	pio.WriteString(`,"wsPath":`, w)
	jsonstream.WriteString(c.WSPath, w)
	pio.WriteString(`,"clientId":`, w)
	jsonstream.WriteString(c.ClientID, w)
	pio.WriteString(`,"topic":`, w)
	jsonstream.WriteString(c.Topic, w)
	pio.WriteString(`,"keepAlive":`, w)
	pio.WriteString(strconv.Itoa(c.KeepAlive), w)
	pio.WriteString(`,"exit":`, w)
	jsonstream.WriteString(c.ExitCommand, w)
	pio.WriteString(`,"dialTimeout":`, w)
	pio.WriteString(strconv.Itoa(c.DialTimeout), w)
	if c.NATSURL != "" {
		pio.WriteString(`,"natsUrl":`, w)
		jsonstream.WriteString(c.NATSURL, w)
	}
	if c.NATSSubject != "" {
		pio.WriteString(`,"natsSubject":`, w)
		jsonstream.WriteString(c.NATSSubject, w)
	}
	pio.WriteString(`,"logLevel":`, w)
	jsonstream.WriteString(c.LogLevel, w)
	pio.WriteByte('}', w)
}

// UnmarshalFromJSON initializes this instance from the tokens stream provided by the json.Decoder. The
// first token has already been read and is passed as an argument. Keys that are not present keep their
// current value. An unknown key results in a panic with a catch.Error.
func (c *Config) UnmarshalFromJSON(js jsonstream.Decoder, t json.Token) {
	jsonstream.AssertDelim(t, '{')
	for {
		k, ok := js.ReadStringOrEnd('}')
		if !ok {
			break
		}
		switch k {
		case "host":
			c.Host = js.ReadString()
		case "port":
			c.Port = int(js.ReadInt())
		case "transport":
			c.Transport = js.ReadString()
		case "wsPath":
			c.WSPath = js.ReadString()
		case "clientId":
			c.ClientID = js.ReadString()
		case "topic":
			c.Topic = js.ReadString()
		case "keepAlive":
			c.KeepAlive = int(js.ReadInt())
		case "exit":
			c.ExitCommand = js.ReadString()
		case "dialTimeout":
			c.DialTimeout = int(js.ReadInt())
		case "natsUrl":
			c.NATSURL = js.ReadString()
		case "natsSubject":
			c.NATSSubject = js.ReadString()
		case "logLevel":
			c.LogLevel = js.ReadString()
		default:
			panic(catch.Error(fmt.Errorf("unknown configuration key %q", k)))
		}
	}
}

// Decode reads a JSON object from the given reader into c
func Decode(r io.Reader, c *Config) error {
	return catch.Do(func() {
		jsonstream.NewDecoder(r).ReadConsumer(c)
	})
}

// Encode writes the JSON form of c on the given writer
func Encode(w io.Writer, c *Config) error {
	return catch.Do(func() {
		c.MarshalToJSON(w)
	})
}

// Load reads the file at the given path into c. Values that are not present in the file are left
// untouched.
func Load(path string, c *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	if err = Decode(bufio.NewReader(f), c); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}
	return err
}

// Save writes the JSON form of c to the file at the given path
func Save(path string, c *Config) error {
	buf := bytes.Buffer{}
	err := Encode(&buf, c)
	if err == nil {
		buf.WriteByte('\n')
		err = os.WriteFile(path, buf.Bytes(), 0600)
	}
	return err
}
