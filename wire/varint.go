package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

// ErrDecode is wrapped by every malformed-input failure the codec produces:
// truncated reads, bad tags, oversized length prefixes.
var ErrDecode = errors.New("wire: malformed message")

// wireType mirrors protobuf's wire-type tag bits; the message grammar is
// protobuf-compatible for interop purposes.
type wireType uint8

const (
	wireVarint      wireType = 0
	wireFixed32     wireType = 5
	wireLenDelim    wireType = 2
	tagFieldShift            = 3
	tagWireTypeMask          = 0x7
)

func encodeTag(fieldNum uint32, wt wireType) uint64 {
	return uint64(fieldNum)<<tagFieldShift | uint64(wt)
}

func sizeVarint(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func putVarint(buf []byte, v uint64) int {
	return binary.PutUvarint(buf, v)
}

func writeVarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := putVarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

// readTag reads a field tag. Unlike readVarint, a clean io.EOF here (no
// bytes at all, i.e. the natural end of the message) is returned as-is so
// callers can distinguish "message complete" from "message truncated".
func readTag(r io.ByteReader) (uint64, error) {
	return binary.ReadUvarint(r)
}

// readVarint reads a field's varint-encoded value. Any error, including
// io.EOF, means the field was announced by its tag but the value is
// missing or truncated, so it is always reported as ErrDecode.
func readVarint(r io.ByteReader) (uint64, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, ErrDecode
	}
	return v, nil
}

func writeFixed32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readFixed32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ErrDecode
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeLenDelim(w io.Writer, data []byte) error {
	if err := writeVarint(w, uint64(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return err
}

// byteReader adapts an io.Reader into the io.ByteReader binary.ReadUvarint
// needs, without requiring every caller to pass a *bufio.Reader.
type byteReader struct {
	io.Reader
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(b.Reader, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// skipField consumes and discards an unknown field so unrecognized fields
// encountered on read never fail decode.
func skipField(r io.Reader, br io.ByteReader, wt wireType) error {
	switch wt {
	case wireVarint:
		_, err := readVarint(br)
		return err
	case wireFixed32:
		_, err := readFixed32(r)
		return err
	case wireLenDelim:
		n, err := readVarint(br)
		if err != nil {
			return err
		}
		_, err = io.CopyN(io.Discard, r, int64(n))
		if err != nil {
			return ErrDecode
		}
		return nil
	default:
		return ErrDecode
	}
}
