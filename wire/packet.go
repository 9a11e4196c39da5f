package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrZeroLengthFrame is the protocol error raised when a frame's length
// prefix reads as zero: every valid frame carries at least the one-byte
// kind discriminator.
var ErrZeroLengthFrame = errors.New("wire: zero-length frame")

// Packet is the framer's in-memory representation of one wire message: a
// kind discriminator plus the serialized message body, with no framing
// bytes attached.
type Packet struct {
	Kind PacketKind
	Body []byte
}

// EncodeFrame writes p to w as [len:u32 BE][body][kind:u8], where len
// counts the body plus the trailing kind byte. The kind byte is the last
// byte of whatever gets authenticated (see SecureTransport); the plain
// framer here just places it at the end of the same frame.
func EncodeFrame(w io.Writer, p Packet) error {
	frame := make([]byte, 4+len(p.Body)+1)
	binary.BigEndian.PutUint32(frame[:4], uint32(len(p.Body)+1))
	copy(frame[4:], p.Body)
	frame[len(frame)-1] = byte(p.Kind)
	_, err := w.Write(frame)
	return err
}

// DecodeFrame reads one frame from r: a 4-byte big-endian length L, then
// exactly L bytes, whose last byte is the packet kind and whose leading
// bytes are the body. A length of zero is a protocol error.
func DecodeFrame(r io.Reader) (Packet, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return Packet{}, err
	}
	length := binary.BigEndian.Uint32(lenBuf[:])
	if length == 0 {
		return Packet{}, ErrZeroLengthFrame
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Packet{}, err
	}
	kind := DecodePacketKind(buf[len(buf)-1])
	return Packet{Kind: kind, Body: buf[:len(buf)-1]}, nil
}
