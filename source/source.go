// Package source contains the inputs that produce the messages a client publishes
package source

// A Message is one message to publish
type Message struct {
	// Topic is the topic that the message originated from. It is empty for console input.
	Topic string

	// Payload is sent verbatim as the PUBLISH payload
	Payload []byte
}

// A Source produces messages until it is exhausted
type Source interface {
	// Next blocks until the next message is available. It returns io.EOF when the input has ended
	// normally, either because the exit command was received or because the underlying stream ended.
	Next() (Message, error)
}
