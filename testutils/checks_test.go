package testutils

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/tada/mqtt-pub/logger"
)

type mockT struct {
	failed     bool
	msg        string
	logEntries [][]interface{}
}

func (m *mockT) Helper() {
}

func (m *mockT) Fatalf(format string, args ...interface{}) {
	m.failed = true
	m.msg = fmt.Sprintf(format, args...)
}

func (m *mockT) Log(args ...interface{}) {
	m.logEntries = append(m.logEntries, args)
}

func ensureFailed(t *testing.T, f func(mt *mockT)) {
	t.Helper()
	mt := &mockT{}
	f(mt)
	if !mt.failed {
		t.Fatal("expected check to fail")
	}
}

func TestCheckEqual(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckEqual("a", "b", mt)
	})
}

func TestCheckBytes(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckBytes([]byte{0x30, 0}, []byte{0x30}, mt)
	})
	mt := &mockT{}
	CheckBytes([]byte{1, 2}, []byte{1, 2}, mt)
	CheckFalse(mt.failed, t)
}

func TestCheckNil(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckNil([]byte{0}, mt)
	})
	mt := &mockT{}
	CheckNil(nil, mt)
	CheckFalse(mt.failed, t)
}

func TestCheckNotNil(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckNotNil(nil, mt)
	})
}

func TestCheckError(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckError(nil, mt)
	})
}

func TestCheckErrorIs(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckErrorIs(io.EOF, errors.New("other"), mt)
	})
	mt := &mockT{}
	CheckErrorIs(io.EOF, fmt.Errorf("wrapped: %w", io.EOF), mt)
	CheckFalse(mt.failed, t)
}

func TestCheckNotError(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckNotError(io.ErrUnexpectedEOF, mt)
	})
}

func TestCheckTrue(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckTrue(false, mt)
	})
}

func TestCheckFalse(t *testing.T) {
	ensureFailed(t, func(mt *mockT) {
		CheckFalse(true, mt)
	})
}

func TestShouldPanicWith(t *testing.T) {
	defer ShouldPanicWith(t, func(r interface{}) bool {
		return r == "boom"
	})()
	panic("boom")
}

func TestLogger_Debug(t *testing.T) {
	tf := mockT{}
	lg := NewLogger(logger.Debug, &tf)
	CheckTrue(lg.DebugEnabled(), t)
	CheckTrue(lg.InfoEnabled(), t)
	CheckTrue(lg.ErrorEnabled(), t)
	lg.Debug("sending", 3, "bytes")
	CheckEqual(1, len(tf.logEntries), t)
	CheckEqual([]interface{}{"DEBUG sending 3 bytes"}, tf.logEntries[0], t)
	CheckEqual([]string{"DEBUG sending 3 bytes"}, lg.Entries(), t)
}

func TestLogger_Error(t *testing.T) {
	tf := mockT{}
	lg := NewLogger(logger.Error, &tf)
	CheckFalse(lg.DebugEnabled(), t)
	CheckFalse(lg.InfoEnabled(), t)
	CheckTrue(lg.ErrorEnabled(), t)
	lg.Info("dropped")
	lg.Error("PUBLISH", "packet send failed:", errors.New("broken pipe"))
	CheckEqual(1, len(tf.logEntries), t)
	CheckTrue(lg.Logged("ERROR PUBLISH packet send failed: broken pipe"), t)
	CheckFalse(lg.Logged("dropped"), t)
}
