// Package wire implements the TeleKey binary protocol: the message codec
// (HandshakeRequest, HandshakeResponse, KeyEvent) and the packet framer that
// wraps a message body with a length-prefixed, kind-discriminated frame.
package wire

// KeyKind is the closed enumeration of keys the adapter boundary can
// produce. Wire values are fixed and gaps are intentional: KeyKind must
// never be renumbered, only extended.
type KeyKind uint32

const (
	KeyUnknown   KeyKind = 0
	KeyBackspace KeyKind = 1
	KeyEnter     KeyKind = 2
	KeyLeft      KeyKind = 3
	KeyRight     KeyKind = 4
	KeyUp        KeyKind = 5
	KeyDown      KeyKind = 6
	KeyHome      KeyKind = 7
	KeyEnd       KeyKind = 8
	KeyPageUp    KeyKind = 9
	KeyPageDown  KeyKind = 10
	KeyTab       KeyKind = 11
	// 12 is reserved and unused.
	KeyDelete   KeyKind = 13
	KeyInsert   KeyKind = 14
	KeyFunction KeyKind = 15
	KeyChar     KeyKind = 16
	KeyEsc      KeyKind = 17
	KeyShift    KeyKind = 18
	KeyMeta     KeyKind = 19
)

var keyKindNames = map[KeyKind]string{
	KeyUnknown:   "UNKNOWN",
	KeyBackspace: "BACKSPACE",
	KeyEnter:     "ENTER",
	KeyLeft:      "LEFT",
	KeyRight:     "RIGHT",
	KeyUp:        "UP",
	KeyDown:      "DOWN",
	KeyHome:      "HOME",
	KeyEnd:       "END",
	KeyPageUp:    "PAGEUP",
	KeyPageDown:  "PAGEDOWN",
	KeyTab:       "TAB",
	KeyDelete:    "DELETE",
	KeyInsert:    "INSERT",
	KeyFunction:  "FUNCTION",
	KeyChar:      "CHAR",
	KeyEsc:       "ESC",
	KeyShift:     "SHIFT",
	KeyMeta:      "META",
}

// String renders a human-readable name, falling back to UNKNOWN for any
// wire value this implementation does not recognize.
func (k KeyKind) String() string {
	if name, ok := keyKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// DecodeKeyKind maps a wire value to its KeyKind, defaulting unknown values
// to KeyUnknown rather than failing decode.
func DecodeKeyKind(v uint32) KeyKind {
	if _, ok := keyKindNames[KeyKind(v)]; !ok {
		return KeyUnknown
	}
	return KeyKind(v)
}

// PacketKind is the one-byte discriminator placed as the final byte of the
// authenticated plaintext of every frame.
type PacketKind byte

const (
	PacketHandshake PacketKind = 0
	PacketKeyEvent  PacketKind = 1
	PacketPing      PacketKind = 2
	// PacketUnknown is never sent on the wire; DecodePacketKind returns it
	// for any byte value this implementation doesn't recognize, and it
	// encodes back as 255.
	PacketUnknown PacketKind = 255
)

// DecodePacketKind maps a wire byte to its PacketKind, defaulting to
// PacketUnknown for any value outside {0,1,2}.
func DecodePacketKind(b byte) PacketKind {
	switch PacketKind(b) {
	case PacketHandshake, PacketKeyEvent, PacketPing:
		return PacketKind(b)
	default:
		return PacketUnknown
	}
}

func (k PacketKind) String() string {
	switch k {
	case PacketHandshake:
		return "Handshake"
	case PacketKeyEvent:
		return "KeyEvent"
	case PacketPing:
		return "Ping"
	default:
		return "Unknown"
	}
}
