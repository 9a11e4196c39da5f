package telekey

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	"telekey/transport"
	"telekey/wire"
)

func TestMeasureLatencyHappyPath(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	clientTr := transport.NewPlainTransport(clientConn)
	serverTr := transport.NewPlainTransport(serverConn)

	done := make(chan struct{})
	go func() {
		defer close(done)
		pkt, err := serverTr.RecvPacket()
		if err != nil || pkt.Kind != wire.PacketPing {
			return
		}
		_ = serverTr.SendPacket(replyToPing())
	}()

	latency, err := measureLatency(clientTr, &fakeLogger{})
	if err != nil {
		t.Fatalf("measureLatency: %v", err)
	}
	<-done
	if latency < 0 {
		t.Fatalf("expected non-negative latency on loopback, got %v", latency)
	}
}

func TestMeasureLatencyFailsOnUnsolicitedPacket(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	clientTr := transport.NewPlainTransport(clientConn)
	serverTr := transport.NewPlainTransport(serverConn)

	go func() {
		if _, err := serverTr.RecvPacket(); err != nil {
			return
		}
		_ = serverTr.SendPacket(wire.Packet{Kind: wire.PacketKeyEvent, Body: nil})
	}()

	if _, err := measureLatency(clientTr, &fakeLogger{}); err == nil {
		t.Fatal("expected error when the reply is not a Ping")
	}
}

// TestMeasureLatencySkipsUnknownPacketKinds checks the client's inbound
// tolerance: an unrecognized packet kind ahead of the Ping reply is
// logged as a runtime warning and skipped, and the probe still succeeds.
func TestMeasureLatencySkipsUnknownPacketKinds(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()
	defer serverConn.Close()

	clientTr := transport.NewPlainTransport(clientConn)
	serverTr := transport.NewPlainTransport(serverConn)

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := serverTr.RecvPacket(); err != nil {
			return
		}
		_ = serverTr.SendPacket(wire.Packet{Kind: wire.PacketUnknown})
		_ = serverTr.SendPacket(replyToPing())
	}()

	logger := &fakeLogger{}
	latency, err := measureLatency(clientTr, logger)
	if err != nil {
		t.Fatalf("measureLatency: %v", err)
	}
	<-done
	if latency < 0 {
		t.Fatalf("expected non-negative latency on loopback, got %v", latency)
	}
	if len(logger.lines) == 0 {
		t.Fatal("expected a runtime warning for the unknown packet kind")
	}
}

func TestReplyToPingBodyShape(t *testing.T) {
	before := time.Now().UnixNano()
	pkt := replyToPing()
	after := time.Now().UnixNano()

	if pkt.Kind != wire.PacketPing {
		t.Fatalf("got kind %s, want Ping", pkt.Kind)
	}
	if len(pkt.Body) != 8 {
		t.Fatalf("got body length %d, want 8", len(pkt.Body))
	}
	mid := int64(binary.BigEndian.Uint64(pkt.Body))
	if mid < before || mid > after {
		t.Fatalf("timestamp %d not within [%d, %d]", mid, before, after)
	}
}

func TestFormatLatency(t *testing.T) {
	if got := FormatLatency(-5 * time.Millisecond); got != "??ms" {
		t.Fatalf("got %q, want ??ms for negative latency", got)
	}
	if got := FormatLatency(12 * time.Millisecond); got != "12ms" {
		t.Fatalf("got %q, want 12ms", got)
	}
}
