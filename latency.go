package telekey

import (
	"encoding/binary"
	"fmt"
	"time"

	"telekey/logging"
	"telekey/transport"
	"telekey/wire"
)

// measureLatency sends an empty Ping, expects the next inbound packet to
// be its reply, and splits the round-trip around the server's mid-point
// timestamp. The ordering assumption that nothing else arrives between
// the probe and its reply holds only because the server never sends
// unsolicited traffic. An unknown packet kind is a runtime warning and is
// skipped; a recognized non-Ping kind is out of protocol and fatal.
func measureLatency(tr transport.Transport, logger logging.Logger) (time.Duration, error) {
	tStart := time.Now().UnixNano()

	if err := tr.SendPacket(wire.Packet{Kind: wire.PacketPing}); err != nil {
		return 0, fmt.Errorf("telekey: send ping: %w", err)
	}

	var pkt wire.Packet
	for {
		var err error
		pkt, err = tr.RecvPacket()
		if err != nil {
			return 0, fmt.Errorf("telekey: recv ping reply: %w", err)
		}
		if pkt.Kind != wire.PacketUnknown {
			break
		}
		logger.Printf("runtime warning: unknown packet kind")
	}
	if pkt.Kind != wire.PacketPing {
		return 0, fmt.Errorf("%w: got %s during latency probe", ErrUnexpectedPacket, pkt.Kind)
	}
	tEnd := time.Now().UnixNano()
	if len(pkt.Body) != 8 {
		return 0, fmt.Errorf("telekey: ping reply body must be 8 bytes, got %d", len(pkt.Body))
	}
	tMid := int64(binary.BigEndian.Uint64(pkt.Body))

	return time.Duration(((tMid - tStart) + (tEnd - tMid)) / 2), nil
}

// replyToPing builds the server's reply body: the current timestamp,
// nanoseconds since the Unix epoch, big-endian.
func replyToPing() wire.Packet {
	body := make([]byte, 8)
	binary.BigEndian.PutUint64(body, uint64(time.Now().UnixNano()))
	return wire.Packet{Kind: wire.PacketPing, Body: body}
}

// FormatLatency renders a measured latency the way the status line
// shows it. A negative duration is possible under clock skew and is
// displayed as "??ms" rather than a misleading negative number.
func FormatLatency(d time.Duration) string {
	if d < 0 {
		return "??ms"
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
