// +build citest

// Package full contains the test utilities that enables full roundtrip testing of the publisher
// with an in-process MQTT broker and a NATS server.
package full

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tada/mqtt-pub/mqtt/pkg"
	"github.com/tada/mqtt-pub/transport"
)

// ExpectTimeout is the time that Expect waits for a packet
const ExpectTimeout = 2 * time.Second

// Broker is a stand-in for an MQTT broker. It accepts one client connection, decodes every packet
// that the client sends, and never responds.
type Broker struct {
	Host    string
	Port    int
	packets chan pkg.Packet
	lock    sync.Mutex
	err     error
	close   func()
}

func newBroker() *Broker {
	return &Broker{packets: make(chan pkg.Packet, 64)}
}

// RunBroker starts a broker that listens for TCP connections on a random port on the loopback
// interface. The broker is closed when the test ends.
func RunBroker(t *testing.T) *Broker {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	b := newBroker()
	b.Host = "127.0.0.1"
	b.Port = l.Addr().(*net.TCPAddr).Port
	b.close = func() { _ = l.Close() }
	go func() {
		conn, err := l.Accept()
		if err != nil {
			b.done(err)
			return
		}
		defer func() {
			_ = conn.Close()
		}()
		b.serve(conn)
	}()
	t.Cleanup(b.close)
	return b
}

// RunWebSocketBroker starts a broker that accepts MQTT over WebSocket on the given path
func RunWebSocketBroker(t *testing.T, path string) *Broker {
	t.Helper()
	b := newBroker()
	up := websocket.Upgrader{Subprotocols: []string{transport.SubProtocol}}
	mux := http.NewServeMux()
	mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			b.done(err)
			return
		}
		wc := transport.NewWSConn(conn)
		defer func() {
			_ = wc.Close()
		}()
		b.serve(wc)
	})
	srv := httptest.NewServer(mux)
	u, err := url.Parse(srv.URL)
	if err == nil {
		b.Host = u.Hostname()
		b.Port, err = strconv.Atoi(u.Port())
	}
	if err != nil {
		srv.Close()
		t.Fatal(err)
	}
	b.close = srv.Close
	t.Cleanup(b.close)
	return b
}

func (b *Broker) serve(r io.Reader) {
	for {
		p, err := pkg.Parse(r)
		if err != nil {
			if err == io.EOF {
				err = nil
			}
			b.done(err)
			return
		}
		b.packets <- p
	}
}

func (b *Broker) done(err error) {
	b.lock.Lock()
	b.err = err
	b.lock.Unlock()
	close(b.packets)
}

// Err returns the error that ended the client connection, or nil if it ended normally or is
// still open.
func (b *Broker) Err() error {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.err
}

// Next waits for the next packet and returns it
func (b *Broker) Next(t *testing.T) pkg.Packet {
	t.Helper()
	select {
	case p, ok := <-b.packets:
		if !ok {
			t.Fatalf("connection ended while waiting for a packet: %v", b.Err())
		}
		return p
	case <-time.After(ExpectTimeout):
		t.Fatal("timeout waiting for a packet")
	}
	return nil
}

// Expect waits for the next packet and checks that it is equal to the given packet
func (b *Broker) Expect(t *testing.T, expected pkg.Packet) {
	t.Helper()
	if p := b.Next(t); !expected.Equals(p) {
		t.Fatalf("expected %s, got %s", expected, p)
	}
}

// ExpectEnd waits for the client connection to end and checks that it ended normally
func (b *Broker) ExpectEnd(t *testing.T) {
	t.Helper()
	select {
	case p, ok := <-b.packets:
		if ok {
			t.Fatalf("expected end of connection, got %s", p)
		}
		if err := b.Err(); err != nil {
			t.Fatal(err)
		}
	case <-time.After(ExpectTimeout):
		t.Fatal("timeout waiting for end of connection")
	}
}
