package transport

import (
	"errors"
	"io"
	"time"

	"github.com/gorilla/websocket"
)

// WSConn adapts a websocket.Conn to an io.ReadWriteCloser that carries an MQTT byte stream in
// binary messages.
type WSConn struct {
	*websocket.Conn
	r io.Reader
}

// NewWSConn wraps an established websocket connection. It is used on both the client and the
// server side.
func NewWSConn(c *websocket.Conn) *WSConn {
	return &WSConn{Conn: c}
}

// Write sends p as one binary message
func (c *WSConn) Write(p []byte) (int, error) {
	err := c.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close sends a normal closure message to the peer and closes the connection
func (c *WSConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	return c.Conn.Close()
}

// Read reads the byte stream formed by consecutive binary messages. A message of any other type
// results in an error. A normal closure by the peer is reported as io.EOF.
func (c *WSConn) Read(p []byte) (int, error) {
	for {
		if c.r == nil {
			var err error
			var mt int
			if mt, c.r, err = c.NextReader(); err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
					err = io.EOF
				}
				return 0, err
			}
			if mt != websocket.BinaryMessage {
				return 0, errors.New("not binary message")
			}
		}
		n, err := c.r.Read(p)
		if err == io.EOF {
			c.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}
