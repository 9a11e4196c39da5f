package wire

import (
	"bytes"
	"testing"
)

func TestHandshakeRequestRoundTrip(t *testing.T) {
	cases := []*HandshakeRequest{
		{Hostname: "client", Version: 1, Token: bytes.Repeat([]byte{0x42}, 32), PKey: nil},
		{Hostname: "c", Version: 1, Token: nil, PKey: bytes.Repeat([]byte{0x09}, 48)},
		{},
	}
	for i, want := range cases {
		var buf bytes.Buffer
		if err := want.Write(&buf); err != nil {
			t.Fatalf("case %d: write: %v", i, err)
		}
		if buf.Len() != want.SizeOf() {
			t.Fatalf("case %d: SizeOf()=%d but Write emitted %d bytes", i, want.SizeOf(), buf.Len())
		}
		got, err := ReadHandshakeRequest(&buf)
		if err != nil {
			t.Fatalf("case %d: read: %v", i, err)
		}
		if got.Hostname != want.Hostname || got.Version != want.Version ||
			!bytes.Equal(got.Token, want.Token) || !bytes.Equal(got.PKey, want.PKey) {
			t.Fatalf("case %d: round trip mismatch: got %+v want %+v", i, got, want)
		}
	}
}

func TestHandshakeResponseRoundTrip(t *testing.T) {
	want := &HandshakeResponse{Hostname: "server", Version: 1, PKey: bytes.Repeat([]byte{0x7}, 48)}
	var buf bytes.Buffer
	if err := want.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadHandshakeResponse(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Hostname != want.Hostname || got.Version != want.Version || !bytes.Equal(got.PKey, want.PKey) {
		t.Fatalf("mismatch: got %+v want %+v", got, want)
	}
}

func TestKeyEventRoundTripAllKinds(t *testing.T) {
	kinds := []KeyKind{
		KeyUnknown, KeyBackspace, KeyEnter, KeyLeft, KeyRight, KeyUp, KeyDown,
		KeyHome, KeyEnd, KeyPageUp, KeyPageDown, KeyTab, KeyDelete, KeyInsert,
		KeyFunction, KeyChar, KeyEsc, KeyShift, KeyMeta,
	}
	for _, k := range kinds {
		want := &KeyEvent{Kind: k, Key: 97, Modifiers: 0}
		var buf bytes.Buffer
		if err := want.Write(&buf); err != nil {
			t.Fatalf("kind %v: write: %v", k, err)
		}
		got, err := ReadKeyEvent(&buf)
		if err != nil {
			t.Fatalf("kind %v: read: %v", k, err)
		}
		if got.Kind != want.Kind {
			t.Fatalf("kind %v: got %v", k, got.Kind)
		}
		if k != KeyUnknown && got.Key != want.Key {
			t.Fatalf("kind %v: key mismatch got %d want %d", k, got.Key, want.Key)
		}
	}
}

func TestKeyEventUnknownWireValueDecodesToUnknown(t *testing.T) {
	// field 1 (kind), varint wire type, value 12 (the reserved gap).
	var buf bytes.Buffer
	buf.Write([]byte{0x08, 12})
	got, err := ReadKeyEvent(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Kind != KeyUnknown {
		t.Fatalf("expected KeyUnknown for reserved gap 12, got %v", got.Kind)
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	var buf bytes.Buffer
	// unknown field 5, varint wire type, value 99; must be skipped.
	buf.Write([]byte{(5 << 3) | 0, 99})
	want := &KeyEvent{Kind: KeyEnter}
	if err := want.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadKeyEvent(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Kind != KeyEnter {
		t.Fatalf("expected KeyEnter after skipping unknown field, got %v", got.Kind)
	}
}

func TestReadKeyEventTruncatedFails(t *testing.T) {
	// tag announces field 1 varint, but no value byte follows.
	buf := bytes.NewBuffer([]byte{0x08})
	if _, err := ReadKeyEvent(buf); err == nil {
		t.Fatal("expected decode error on truncated varint field")
	}
}

func TestReadHandshakeRequestTruncatedLenDelimFails(t *testing.T) {
	// tag for field 1 (hostname, len-delim), length 10, but no body bytes.
	buf := bytes.NewBuffer([]byte{(1 << 3) | 2, 10})
	if _, err := ReadHandshakeRequest(buf); err == nil {
		t.Fatal("expected decode error on truncated length-delimited field")
	}
}
