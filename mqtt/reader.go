package mqtt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// A Reader decodes the primitive MQTT types produced by a Packet
type Reader struct {
	io.Reader
}

// NewReader creates a Reader that reads from the given io.Reader
func NewReader(r io.Reader) *Reader {
	return &Reader{r}
}

// ReadByte reads one byte
func (r *Reader) ReadByte() (byte, error) {
	b := []byte{0}
	n, err := r.Read(b)
	if n == 1 {
		return b[0], nil
	}
	if err == nil {
		err = io.ErrNoProgress
	}
	return 0, err
}

// ReadFixedHeader reads the type byte and the single byte remaining length. An io.EOF is returned
// untouched if the stream ends before the type byte. An io.ErrUnexpectedEOF is returned if it ends
// between the two bytes.
func (r *Reader) ReadFixedHeader() (byte, int, error) {
	tp, err := r.ReadByte()
	if err != nil {
		return 0, 0, err
	}
	rl, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, 0, err
	}
	return tp, int(rl), nil
}

// ReadUint16 reads a big endian uint16
func (r *Reader) ReadUint16() (uint16, error) {
	var v uint16
	bs, err := r.ReadExact(2)
	if err == nil {
		v = binary.BigEndian.Uint16(bs)
	}
	return v, err
}

// ReadString reads a big endian uint16 from the stream that denotes the number of bytes
// that will follow. It then reads those bytes and returns them as a UTF8 encoded string.
//
// A zero byte followed by a Packet.PushString length byte is a valid uint16 length.
func (r *Reader) ReadString() (string, error) {
	bs, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bs) {
		return "", errors.New("malformed UTF-8 string")
	}
	return string(bs), nil
}

// ReadBytes reads a big endian uint16 from the stream that denotes the number of bytes
// that will follow. It then reads those bytes and returns them.
func (r *Reader) ReadBytes() ([]byte, error) {
	var bs []byte
	l, err := r.ReadUint16()
	if l > 0 && err == nil {
		bs, err = r.ReadExact(int(l))
	}
	return bs, err
}

// ReadExact reads exactly n bytes. An io.EOF is converted to io.ErrUnexpectedEOF.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	bs := make([]byte, n)
	_, err := io.ReadFull(r, bs)
	if err != nil {
		bs = nil
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
	}
	return bs, err
}

// Len returns the number of unread bytes. It panics unless the Reader was created by ReadPacket.
func (r *Reader) Len() int {
	if br, ok := r.Reader.(*bytes.Reader); ok {
		return br.Len()
	}

	// Reader was not set up to read remaining length
	panic(fmt.Errorf("unsupported operation on %T: Len", r.Reader))
}

// ReadRemainingBytes returns all unread bytes of a Reader created by ReadPacket
func (r *Reader) ReadRemainingBytes() ([]byte, error) {
	return r.ReadExact(r.Len())
}

// ReadPacket reads pkLen bytes in bulk and returns a Reader that is limited to those bytes
func (r *Reader) ReadPacket(pkLen int) (*Reader, error) {
	var rdr *Reader
	pk, err := r.ReadExact(pkLen)
	if err == nil {
		rdr = &Reader{bytes.NewReader(pk)}
	}
	return rdr, err
}
