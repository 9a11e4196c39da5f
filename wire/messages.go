package wire

import (
	"io"
)

// HandshakeRequest is the client's first message: its self-description plus
// whatever credential the chosen security mode requires.
type HandshakeRequest struct {
	Hostname string
	Version  uint32
	Token    []byte // plain mode: the raw session secret. Secure mode: empty.
	PKey     []byte // secure mode: the client's sealed ephemeral public key. Plain mode: empty.
}

// HandshakeResponse is the server's reply, after verifying the request.
type HandshakeResponse struct {
	Hostname string
	Version  uint32
	PKey     []byte // secure mode: the server's sealed ephemeral public key. Plain mode: empty.
}

// KeyEvent describes one synthesized or relayed keystroke.
type KeyEvent struct {
	Kind      KeyKind
	Key       uint32
	Modifiers uint32
}

// SizeOf returns the exact encoded length of m, matching what Write emits.
func (m *HandshakeRequest) SizeOf() int {
	n := 0
	if m.Hostname != "" {
		n += sizeVarint(encodeTag(1, wireLenDelim)) + sizeVarint(uint64(len(m.Hostname))) + len(m.Hostname)
	}
	if m.Version != 0 {
		n += sizeVarint(encodeTag(2, wireFixed32)) + 4
	}
	if len(m.Token) != 0 {
		n += sizeVarint(encodeTag(3, wireLenDelim)) + sizeVarint(uint64(len(m.Token))) + len(m.Token)
	}
	if len(m.PKey) != 0 {
		n += sizeVarint(encodeTag(4, wireLenDelim)) + sizeVarint(uint64(len(m.PKey))) + len(m.PKey)
	}
	return n
}

// Write encodes m to w in field-number order, omitting zero-valued fields.
func (m *HandshakeRequest) Write(w io.Writer) error {
	if m.Hostname != "" {
		if err := writeVarint(w, encodeTag(1, wireLenDelim)); err != nil {
			return err
		}
		if err := writeLenDelim(w, []byte(m.Hostname)); err != nil {
			return err
		}
	}
	if m.Version != 0 {
		if err := writeVarint(w, encodeTag(2, wireFixed32)); err != nil {
			return err
		}
		if err := writeFixed32(w, m.Version); err != nil {
			return err
		}
	}
	if len(m.Token) != 0 {
		if err := writeVarint(w, encodeTag(3, wireLenDelim)); err != nil {
			return err
		}
		if err := writeLenDelim(w, m.Token); err != nil {
			return err
		}
	}
	if len(m.PKey) != 0 {
		if err := writeVarint(w, encodeTag(4, wireLenDelim)); err != nil {
			return err
		}
		if err := writeLenDelim(w, m.PKey); err != nil {
			return err
		}
	}
	return nil
}

// ReadHandshakeRequest decodes a HandshakeRequest from r, skipping unknown
// fields and failing with ErrDecode on truncation or a malformed tag.
func ReadHandshakeRequest(r io.Reader) (*HandshakeRequest, error) {
	br := byteReader{r}
	m := &HandshakeRequest{}
	for {
		tag, err := readTag(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrDecode
		}
		fieldNum := uint32(tag >> tagFieldShift)
		wt := wireType(tag & tagWireTypeMask)
		switch {
		case fieldNum == 1 && wt == wireLenDelim:
			s, err := readLenDelim(r, br)
			if err != nil {
				return nil, err
			}
			m.Hostname = string(s)
		case fieldNum == 2 && wt == wireFixed32:
			v, err := readFixed32(r)
			if err != nil {
				return nil, err
			}
			m.Version = v
		case fieldNum == 3 && wt == wireLenDelim:
			s, err := readLenDelim(r, br)
			if err != nil {
				return nil, err
			}
			m.Token = s
		case fieldNum == 4 && wt == wireLenDelim:
			s, err := readLenDelim(r, br)
			if err != nil {
				return nil, err
			}
			m.PKey = s
		default:
			if err := skipField(r, br, wt); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *HandshakeResponse) SizeOf() int {
	n := 0
	if m.Hostname != "" {
		n += sizeVarint(encodeTag(1, wireLenDelim)) + sizeVarint(uint64(len(m.Hostname))) + len(m.Hostname)
	}
	if m.Version != 0 {
		n += sizeVarint(encodeTag(2, wireFixed32)) + 4
	}
	if len(m.PKey) != 0 {
		n += sizeVarint(encodeTag(3, wireLenDelim)) + sizeVarint(uint64(len(m.PKey))) + len(m.PKey)
	}
	return n
}

func (m *HandshakeResponse) Write(w io.Writer) error {
	if m.Hostname != "" {
		if err := writeVarint(w, encodeTag(1, wireLenDelim)); err != nil {
			return err
		}
		if err := writeLenDelim(w, []byte(m.Hostname)); err != nil {
			return err
		}
	}
	if m.Version != 0 {
		if err := writeVarint(w, encodeTag(2, wireFixed32)); err != nil {
			return err
		}
		if err := writeFixed32(w, m.Version); err != nil {
			return err
		}
	}
	if len(m.PKey) != 0 {
		if err := writeVarint(w, encodeTag(3, wireLenDelim)); err != nil {
			return err
		}
		if err := writeLenDelim(w, m.PKey); err != nil {
			return err
		}
	}
	return nil
}

func ReadHandshakeResponse(r io.Reader) (*HandshakeResponse, error) {
	br := byteReader{r}
	m := &HandshakeResponse{}
	for {
		tag, err := readTag(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrDecode
		}
		fieldNum := uint32(tag >> tagFieldShift)
		wt := wireType(tag & tagWireTypeMask)
		switch {
		case fieldNum == 1 && wt == wireLenDelim:
			s, err := readLenDelim(r, br)
			if err != nil {
				return nil, err
			}
			m.Hostname = string(s)
		case fieldNum == 2 && wt == wireFixed32:
			v, err := readFixed32(r)
			if err != nil {
				return nil, err
			}
			m.Version = v
		case fieldNum == 3 && wt == wireLenDelim:
			s, err := readLenDelim(r, br)
			if err != nil {
				return nil, err
			}
			m.PKey = s
		default:
			if err := skipField(r, br, wt); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *KeyEvent) SizeOf() int {
	n := 0
	if m.Kind != 0 {
		n += sizeVarint(encodeTag(1, wireVarint)) + sizeVarint(uint64(m.Kind))
	}
	if m.Key != 0 {
		n += sizeVarint(encodeTag(2, wireVarint)) + sizeVarint(uint64(m.Key))
	}
	if m.Modifiers != 0 {
		n += sizeVarint(encodeTag(3, wireVarint)) + sizeVarint(uint64(m.Modifiers))
	}
	return n
}

func (m *KeyEvent) Write(w io.Writer) error {
	if m.Kind != 0 {
		if err := writeVarint(w, encodeTag(1, wireVarint)); err != nil {
			return err
		}
		if err := writeVarint(w, uint64(m.Kind)); err != nil {
			return err
		}
	}
	if m.Key != 0 {
		if err := writeVarint(w, encodeTag(2, wireVarint)); err != nil {
			return err
		}
		if err := writeVarint(w, uint64(m.Key)); err != nil {
			return err
		}
	}
	if m.Modifiers != 0 {
		if err := writeVarint(w, encodeTag(3, wireVarint)); err != nil {
			return err
		}
		if err := writeVarint(w, uint64(m.Modifiers)); err != nil {
			return err
		}
	}
	return nil
}

func ReadKeyEvent(r io.Reader) (*KeyEvent, error) {
	br := byteReader{r}
	m := &KeyEvent{}
	for {
		tag, err := readTag(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ErrDecode
		}
		fieldNum := uint32(tag >> tagFieldShift)
		wt := wireType(tag & tagWireTypeMask)
		switch {
		case fieldNum == 1 && wt == wireVarint:
			v, err := readVarint(br)
			if err != nil {
				return nil, err
			}
			m.Kind = DecodeKeyKind(uint32(v))
		case fieldNum == 2 && wt == wireVarint:
			v, err := readVarint(br)
			if err != nil {
				return nil, err
			}
			m.Key = uint32(v)
		case fieldNum == 3 && wt == wireVarint:
			v, err := readVarint(br)
			if err != nil {
				return nil, err
			}
			m.Modifiers = uint32(v)
		default:
			if err := skipField(r, br, wt); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func readLenDelim(r io.Reader, br io.ByteReader) ([]byte, error) {
	n, err := readVarint(br)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, ErrDecode
	}
	return buf, nil
}
