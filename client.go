package telekey

import (
	"bytes"
	"fmt"
	"net"
	"time"

	"telekey/logging"
	"telekey/presentation"
	"telekey/session"
	"telekey/transport"
	"telekey/wire"
)

// sessionState is the client's local Idle/Active variable; the server
// side has no analogous state.
type sessionState int

const (
	stateIdle sessionState = iota
	stateActive
)

// Client drives the client side of a session: connect, handshake, then
// the keystroke input loop with interleaved latency probing.
type Client struct {
	cfg       Config
	presenter presentation.Presenter
	logger    logging.Logger
}

// NewClient builds a Client bound to the given presenter, the operator's
// terminal collaborator.
func NewClient(cfg Config, presenter presentation.Presenter, logger logging.Logger) *Client {
	return &Client{cfg: cfg, presenter: presenter, logger: logger}
}

// Connect dials cfg.TargetAddr, decodes the operator-entered token,
// performs the handshake, and runs the steady-state input loop until the
// connection ends or an error occurs.
func (c *Client) Connect(token string) error {
	secret, err := session.DecodeSecret(token)
	if err != nil {
		return fmt.Errorf("telekey: decode token: %w", err)
	}

	conn, err := net.Dial("tcp", c.cfg.TargetAddr)
	if err != nil {
		return fmt.Errorf("telekey: dial: %w", err)
	}

	plainTr := transport.NewPlainTransport(conn)
	var tr transport.Transport = plainTr
	defer func() { _ = tr.Shutdown() }()

	req := wire.HandshakeRequest{Hostname: c.cfg.Hostname, Version: c.cfg.Version}
	var clientKP session.EphemeralKeyPair
	if c.cfg.Secure {
		clientKP, err = session.NewEphemeralKeyPair()
		if err != nil {
			return fmt.Errorf("telekey: generate ephemeral keypair: %w", err)
		}
		sealedPub, err := session.SealPublicKey(secret, clientKP.Public)
		if err != nil {
			return fmt.Errorf("telekey: seal client public key: %w", err)
		}
		req.PKey = sealedPub
	} else {
		req.Token = secret[:]
	}

	var reqBody bytes.Buffer
	if err := req.Write(&reqBody); err != nil {
		return fmt.Errorf("telekey: encode handshake request: %w", err)
	}
	if err := plainTr.SendPacket(wire.Packet{Kind: wire.PacketHandshake, Body: reqBody.Bytes()}); err != nil {
		return fmt.Errorf("telekey: send handshake request: %w", err)
	}

	respPkt, err := plainTr.RecvPacket()
	if err != nil {
		return fmt.Errorf("telekey: recv handshake response: %w", err)
	}
	if respPkt.Kind != wire.PacketHandshake {
		return fmt.Errorf("%w: expected Handshake, got %s", ErrUnexpectedPacket, respPkt.Kind)
	}
	resp, err := wire.ReadHandshakeResponse(bytes.NewReader(respPkt.Body))
	if err != nil {
		return fmt.Errorf("telekey: decode handshake response: %w", err)
	}

	remote := Remote{Hostname: resp.Hostname, Version: resp.Version, Security: Plain}

	if c.cfg.Secure {
		serverPub, err := session.OpenPublicKey(secret, resp.PKey)
		if err != nil {
			return fmt.Errorf("telekey: open server public key: %w", err)
		}
		shared, err := clientKP.SharedSecret(serverPub)
		if err != nil {
			return fmt.Errorf("telekey: key agreement: %w", err)
		}
		salt := sessionSalt(serverPub, clientKP.Public)
		sendKey, recvKey, err := session.DeriveKeys(shared, salt, false)
		if err != nil {
			return fmt.Errorf("telekey: derive session keys: %w", err)
		}
		sessionID, err := session.DeriveSessionID(shared, salt)
		if err != nil {
			return fmt.Errorf("telekey: derive session id: %w", err)
		}
		secureTr, err := transport.NewSecureTransport(conn, sendKey[:], recvKey[:], sessionID[:])
		if err != nil {
			return fmt.Errorf("telekey: build secure transport: %w", err)
		}
		tr = secureTr
		remote.Security = Secure
	}

	return c.inputLoop(tr, remote)
}

// inputLoop reads keys, relays them as KeyEvent packets, and interleaves
// a latency probe every RefreshLatency keystrokes.
func (c *Client) inputLoop(tr transport.Transport, remote Remote) error {
	state := stateIdle
	history := NewHistory()
	keystrokes := 0
	var lastLatency time.Duration
	haveLatency := false
	peerAddr := tr.PeerAddr()

	for {
		termKey, err := c.presenter.ReadKey()
		if err != nil {
			return fmt.Errorf("telekey: read key: %w", err)
		}

		if state == stateIdle {
			state = stateActive
			c.redraw(remote, peerAddr, state, history, lastLatency, haveLatency)
			continue
		}

		evt := presentation.TermKeyToEvent(termKey)
		var body bytes.Buffer
		if err := evt.Write(&body); err != nil {
			return fmt.Errorf("telekey: encode key event: %w", err)
		}
		if err := tr.SendPacket(wire.Packet{Kind: wire.PacketKeyEvent, Body: body.Bytes()}); err != nil {
			return fmt.Errorf("telekey: send key event: %w", err)
		}

		if c.cfg.UpdateScreen {
			history.Add(evt)
		}

		keystrokes++
		if c.cfg.RefreshLatency > 0 && keystrokes >= c.cfg.RefreshLatency {
			latency, err := measureLatency(tr, c.logger)
			if err != nil {
				return fmt.Errorf("telekey: measure latency: %w", err)
			}
			lastLatency = latency
			haveLatency = true
			keystrokes = 0
		}

		c.redraw(remote, peerAddr, state, history, lastLatency, haveLatency)
	}
}

// redraw repaints the menu after every keystroke. The status line has the
// shape "TeleKey v<N> <peer-addr> (<peer-hostname>) [IDLE|ACTIVE] <latency>".
func (c *Client) redraw(remote Remote, peerAddr string, state sessionState, history *History, latency time.Duration, haveLatency bool) {
	if c.cfg.UpdateScreen {
		c.presenter.ClearScreen()
	} else {
		c.presenter.ClearLastLines(2)
	}

	latencyText := "??ms"
	if haveLatency {
		latencyText = FormatLatency(latency)
	}
	stateText := "IDLE"
	if state == stateActive {
		stateText = "ACTIVE"
	}
	status := fmt.Sprintf("TeleKey v%d %s (%s) [%s] %s",
		remote.Version, peerAddr, remote.Hostname, stateText, latencyText)
	c.presenter.Status(status)

	if c.cfg.UpdateScreen {
		c.presenter.History(history.Events())
	}
}
