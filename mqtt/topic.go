package mqtt

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	dot   = rune('.')
	slash = rune('/')
)

// ValidateTopicName checks that the given string can be used as the topic of a PUBLISH packet. It
// must be non empty valid UTF-8, contain no wildcards or NUL characters, and fit in a string
// pushed by Packet.PushString.
func ValidateTopicName(topic string) error {
	if topic == "" {
		return errors.New("topic name must not be empty")
	}
	if len(topic) > MaxStringLength {
		return &ValueTooLargeError{What: "topic length", Size: len(topic), Max: MaxStringLength}
	}
	if !utf8.ValidString(topic) {
		return errors.New("topic name is not valid UTF-8")
	}
	if strings.ContainsAny(topic, "+#\x00") {
		return errors.New(`topic name must not contain wildcards '+', '#' or NUL`)
	}
	return nil
}

// ToNATS converts an MQTT topic to a NATS subject. The following conversions take place
//
// dots become slashes
// slashes become dots
func ToNATS(mqttTopic string) string {
	r := strings.NewReader(mqttTopic)
	w := strings.Builder{}
	for {
		c, _, err := r.ReadRune()
		if err == io.EOF {
			return w.String()
		}
		switch c {
		case dot:
			c = slash
		case slash:
			c = dot
		}
		_, _ = w.WriteRune(c)
	}
}

// FromNATS converts a NATS subject to a MQTT topic. It is the inverse of ToNATS.
func FromNATS(natsSubject string) string {
	return ToNATS(natsSubject)
}
