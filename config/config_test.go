package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tada/mqtt-pub/mqtt"
	"github.com/tada/mqtt-pub/testutils"
)

func TestDefault(t *testing.T) {
	c := Default()
	testutils.CheckEqual("127.0.0.1:1883", c.Address(), t)
	testutils.CheckEqual(5*time.Second, c.Timeout(), t)
	testutils.CheckEqual("test/topic", c.Topic, t)
	testutils.CheckEqual(60, c.KeepAlive, t)
	testutils.CheckEqual("/exit", c.ExitCommand, t)
	testutils.CheckFalse(c.UsesNATS(), t)
	testutils.CheckNotError(c.Validate(), t)
}

func TestConfig_Address_ipv6(t *testing.T) {
	c := Default()
	c.Host = "::1"
	testutils.CheckEqual("[::1]:1883", c.Address(), t)
}

func TestConfig_EnsureClientID(t *testing.T) {
	c := Default()
	c.EnsureClientID()
	testutils.CheckEqual("mqtt-pub-client", c.ClientID, t)

	c.ClientID = ""
	c.EnsureClientID()
	testutils.CheckTrue(strings.HasPrefix(c.ClientID, ClientIDPrefix), t)
	testutils.CheckTrue(len(c.ClientID) > len(ClientIDPrefix), t)

	o := Default()
	o.ClientID = ""
	o.EnsureClientID()
	testutils.CheckTrue(c.ClientID != o.ClientID, t)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty host", func(c *Config) { c.Host = "" }},
		{"port zero", func(c *Config) { c.Port = 0 }},
		{"port too large", func(c *Config) { c.Port = 70000 }},
		{"bad transport", func(c *Config) { c.Transport = "udp" }},
		{"negative keep alive", func(c *Config) { c.KeepAlive = -1 }},
		{"keep alive too large", func(c *Config) { c.KeepAlive = 0x10000 }},
		{"client id too long", func(c *Config) { c.ClientID = strings.Repeat("c", 256) }},
		{"wildcard topic", func(c *Config) { c.Topic = "a/#" }},
		{"empty topic without NATS", func(c *Config) { c.Topic = "" }},
		{"NATS URL without subject", func(c *Config) { c.NATSURL = "nats://127.0.0.1:4222" }},
		{"empty exit", func(c *Config) { c.ExitCommand = "" }},
	}
	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			testutils.CheckError(c.Validate(), t)
		})
	}
}

func TestConfig_Validate_clientIDTooLarge(t *testing.T) {
	c := Default()
	c.ClientID = strings.Repeat("c", 256)
	testutils.CheckErrorIs(mqtt.ErrValueTooLarge, c.Validate(), t)
}

func TestConfig_Validate_fitsInOnePacket(t *testing.T) {
	c := Default()
	c.ClientID = strings.Repeat("c", 243)
	testutils.CheckNotError(c.Validate(), t)
	c.ClientID = strings.Repeat("c", 244)
	err := c.Validate()
	testutils.CheckErrorIs(mqtt.ErrValueTooLarge, err, t)
	testutils.CheckEqual("client identifier: value too large: client identifier length 244 exceeds 243", err.Error(), t)

	c = Default()
	c.Topic = strings.Repeat("t", 253)
	testutils.CheckNotError(c.Validate(), t)
	c.Topic = strings.Repeat("t", 254)
	err = c.Validate()
	testutils.CheckErrorIs(mqtt.ErrValueTooLarge, err, t)
	testutils.CheckEqual("topic: value too large: topic length 254 exceeds 253", err.Error(), t)
}

func TestConfig_Validate_natsTopicFromSubject(t *testing.T) {
	c := Default()
	c.Topic = ""
	c.NATSURL = "nats://127.0.0.1:4222"
	c.NATSSubject = "sensors.>"
	testutils.CheckTrue(c.UsesNATS(), t)
	testutils.CheckNotError(c.Validate(), t)
}

func TestConfig_json(t *testing.T) {
	c := Default()
	c.Host = "broker.local"
	c.Port = 11883
	c.Transport = TransportWebSocket
	c.ClientID = `the "client"`
	c.NATSURL = "nats://127.0.0.1:4222"
	c.NATSSubject = "a.b"
	c.LogLevel = "debug"

	buf := bytes.Buffer{}
	testutils.CheckNotError(Encode(&buf, c), t)

	c2 := &Config{}
	testutils.CheckNotError(Decode(&buf, c2), t)
	testutils.CheckEqual(c, c2, t)
}

func TestEncode(t *testing.T) {
	buf := bytes.Buffer{}
	testutils.CheckNotError(Encode(&buf, Default()), t)
	testutils.CheckEqual(`{"host":"127.0.0.1","port":1883,"transport":"tcp","wsPath":"/mqtt",`+
		`"clientId":"mqtt-pub-client","topic":"test/topic","keepAlive":60,"exit":"/exit",`+
		`"dialTimeout":5000,"logLevel":"info"}`, buf.String(), t)
}

func TestDecode_partial(t *testing.T) {
	c := Default()
	testutils.CheckNotError(Decode(strings.NewReader(`{"topic":"home/kitchen","port":1884}`), c), t)
	testutils.CheckEqual("home/kitchen", c.Topic, t)
	testutils.CheckEqual(1884, c.Port, t)
	testutils.CheckEqual("127.0.0.1", c.Host, t)
	testutils.CheckEqual("mqtt-pub-client", c.ClientID, t)
}

func TestDecode_unknownKey(t *testing.T) {
	err := Decode(strings.NewReader(`{"topik":"x"}`), Default())
	testutils.CheckError(err, t)
	testutils.CheckTrue(strings.Contains(err.Error(), `unknown configuration key "topik"`), t)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mqtt-pub.json")
	c := Default()
	c.Topic = "saved/topic"
	c.KeepAlive = 30
	testutils.CheckNotError(Save(path, c), t)

	c2 := Default()
	testutils.CheckNotError(Load(path, c2), t)
	testutils.CheckEqual(c, c2, t)
}

func TestLoad_missingFile(t *testing.T) {
	testutils.CheckError(Load(filepath.Join(t.TempDir(), "nope.json"), Default()), t)
}
