// +build citest

package full

import (
	"strconv"
	"testing"

	"github.com/nats-io/nats-server/v2/server"
	testserver "github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
)

// NATSServerOnPort will run a server on the given port.
func NATSServerOnPort(port int) *server.Server {
	opts := testserver.DefaultTestOptions
	opts.Port = port
	return testserver.RunServer(&opts)
}

// NATSURL returns the URL of a NATS server on the given port of the default host
func NATSURL(port int) string {
	return "nats://127.0.0.1:" + strconv.Itoa(port)
}

// NatsConnect creates a new NATS connection on the given port.
func NatsConnect(t *testing.T, port int) *nats.Conn {
	t.Helper()
	nc, err := nats.Connect(NATSURL(port))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(nc.Close)
	return nc
}
