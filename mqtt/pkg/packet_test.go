package pkg_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/tada/mqtt-pub/mqtt/pkg"
	"github.com/tada/mqtt-pub/testutils"
)

func writeReadAndCompare(t *testing.T, p pkg.Packet, ex string) {
	t.Helper()
	bs, err := pkg.Bytes(p)
	testutils.CheckNotError(err, t)
	p2, err := pkg.Parse(bytes.NewReader(bs))
	testutils.CheckNotError(err, t)
	if !p.Equals(p2) {
		t.Fatal(p, "!=", p2)
	}
	ac := p.String()
	if ex != ac {
		t.Errorf("expected '%s' got '%s'", ex, ac)
	}
}

func TestParse_unknownPacket(t *testing.T) {
	_, err := pkg.Parse(bytes.NewReader([]byte{0xf0, 0}))
	testutils.CheckError(err, t)
	testutils.CheckEqual("received unknown packet type 15", err.Error(), t)
}

func TestParse_eof(t *testing.T) {
	_, err := pkg.Parse(bytes.NewReader(nil))
	testutils.CheckEqual(io.EOF, err, t)
}

func TestParse_sequence(t *testing.T) {
	buf := bytes.Buffer{}
	for _, p := range []pkg.Packet{
		pkg.NewConnect("abc", 60),
		pkg.NewPublish("a/b", []byte("one")),
		pkg.NewPublish("a/b", nil),
		pkg.DisconnectSingleton,
	} {
		mp, err := p.Encode()
		testutils.CheckNotError(err, t)
		_, err = mp.WriteTo(&buf)
		testutils.CheckNotError(err, t)
	}
	names := []string{}
	for {
		p, err := pkg.Parse(&buf)
		if err == io.EOF {
			break
		}
		testutils.CheckNotError(err, t)
		names = append(names, pkg.TypeName(p.Type()))
	}
	testutils.CheckEqual([]string{"CONNECT", "PUBLISH", "PUBLISH", "DISCONNECT"}, names, t)
}

func TestTypeName(t *testing.T) {
	testutils.CheckEqual("CONNECT", pkg.TypeName(pkg.TpConnect), t)
	testutils.CheckEqual("PUBLISH", pkg.TypeName(pkg.TpPublish|0x01), t)
	testutils.CheckEqual("DISCONNECT", pkg.TypeName(pkg.TpDisconnect), t)
	testutils.CheckEqual("TYPE2", pkg.TypeName(0x20), t)
}

func TestDisconnect(t *testing.T) {
	bs, err := pkg.Bytes(pkg.DisconnectSingleton)
	testutils.CheckNotError(err, t)
	testutils.CheckBytes([]byte{0xe0, 0x00}, bs, t)
	writeReadAndCompare(t, pkg.DisconnectSingleton, "DISCONNECT")
}

func TestParseDisconnect_badLen(t *testing.T) {
	_, err := pkg.Parse(bytes.NewReader([]byte{0xe0, 1, 0}))
	testutils.CheckError(err, t)
}
