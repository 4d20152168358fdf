// Package transport dials the byte stream that carries MQTT packets to the broker
package transport

import (
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/gorilla/websocket"
	"github.com/tada/mqtt-pub/config"
)

// SubProtocol is the WebSocket sub protocol required for MQTT over WebSocket
const SubProtocol = "mqtt"

// Dial connects to the broker given by the configuration using its configured transport
func Dial(cfg *config.Config) (io.ReadWriteCloser, error) {
	switch cfg.Transport {
	case config.TransportTCP:
		return net.DialTimeout("tcp", cfg.Address(), cfg.Timeout())
	case config.TransportWebSocket:
		c, err := DialWebSocket(WebSocketURL(cfg), cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}

// WebSocketURL returns the ws:// URL of the broker given by the configuration
func WebSocketURL(cfg *config.Config) string {
	u := url.URL{Scheme: "ws", Host: cfg.Address(), Path: cfg.WSPath}
	return u.String()
}

// DialWebSocket opens a WebSocket connection to the given URL and negotiates the "mqtt" sub
// protocol. The returned connection sends each Write as one binary message.
func DialWebSocket(u string, cfg *config.Config) (*WSConn, error) {
	d := websocket.Dialer{
		Subprotocols:     []string{SubProtocol},
		HandshakeTimeout: cfg.Timeout(),
	}
	conn, resp, err := d.Dial(u, nil)
	if err != nil {
		if resp != nil {
			err = fmt.Errorf("%s: %s: %w", u, resp.Status, err)
		}
		return nil, err
	}
	if conn.Subprotocol() != SubProtocol {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: server did not accept sub protocol %q", u, SubProtocol)
	}
	return NewWSConn(conn), nil
}
