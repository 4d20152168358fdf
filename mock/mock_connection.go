// Package mock contains mocking/simulated versions of real runtime types
// primarily used for testing.
//
package mock

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrClosed is returned by Write after Close has been called
var ErrClosed = errors.New("mock connection closed")

// Connection implements io.WriteCloser and records everything written to it.
//
// Writes can be made to fail, either all of them by calling FailWrites, or after a given
// number of successful writes by calling FailAfter.
type Connection struct {
	lock       sync.Mutex
	output     bytes.Buffer
	writes     int
	closeCount int
	failAfter  int
	failErr    error
}

// NewConnection returns a new connection where all writes succeed
func NewConnection() *Connection {
	return &Connection{failAfter: -1}
}

// FailWrites makes all subsequent writes fail with the given error
func (c *Connection) FailWrites(err error) {
	c.FailAfter(0, err)
}

// FailAfter makes writes fail with the given error once n more writes have succeeded
func (c *Connection) FailAfter(n int, err error) {
	c.lock.Lock()
	c.failAfter = c.writes + n
	c.failErr = err
	c.lock.Unlock()
}

// Write records b unless the connection is closed or set up to fail
func (c *Connection) Write(b []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closeCount > 0 {
		return 0, ErrClosed
	}
	if c.failAfter >= 0 && c.writes >= c.failAfter {
		return 0, c.failErr
	}
	c.writes++
	return c.output.Write(b)
}

// Close closes the connection. Subsequent writes fail with ErrClosed.
func (c *Connection) Close() error {
	c.lock.Lock()
	c.closeCount++
	c.lock.Unlock()
	return nil
}

// CloseCount returns the number of times Close has been called
func (c *Connection) CloseCount() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.closeCount
}

// Bytes returns a copy of all bytes written so far
func (c *Connection) Bytes() []byte {
	c.lock.Lock()
	defer c.lock.Unlock()
	return append([]byte(nil), c.output.Bytes()...)
}

// RemoteReader returns a reader positioned at the start of everything written so far
func (c *Connection) RemoteReader() io.Reader {
	return bytes.NewReader(c.Bytes())
}
