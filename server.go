package telekey

import (
	"bytes"
	"context"
	"fmt"
	"net"

	"telekey/logging"
	"telekey/presentation"
	"telekey/session"
	"telekey/transport"
	"telekey/wire"
)

// Server holds the listener and the per-connection handshake and
// steady-state dispatch. At any moment at most one session is active;
// the accept loop is strictly serial.
type Server struct {
	cfg      Config
	injector presentation.KeyInjector
	logger   logging.Logger

	// secretFn generates the per-connection session secret. It is a
	// field, not a direct call to session.GenerateSecret, so tests can
	// inject a deterministic secret.
	secretFn func() ([session.SecretSize]byte, error)
	// announce is called once per connection with the displayed token,
	// defaulting to printing it on the console the way the out-of-band
	// channel requires. Tests substitute a capturing func.
	announce func(token string)
}

// NewServer builds a Server. injector receives every KeyEvent the
// steady-state loop decides is worth delivering; cfg.ColdRun callers
// typically pass presentation.NewStdoutInjector(os.Stdout) instead of a real
// injector.
func NewServer(cfg Config, injector presentation.KeyInjector, logger logging.Logger) *Server {
	return &Server{
		cfg:      cfg,
		injector: injector,
		logger:   logger,
		secretFn: session.GenerateSecret,
		announce: func(token string) { fmt.Println(token) },
	}
}

// Serve binds cfg.BindAddr and runs the accept loop until ctx is
// canceled. Per-session errors are logged and do not stop the loop; only
// a listen/accept failure (or ctx cancellation) returns.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.BindAddr)
	if err != nil {
		return fmt.Errorf("telekey: listen: %w", err)
	}
	return s.serveListener(ctx, ln)
}

func (s *Server) serveListener(ctx context.Context, ln net.Listener) error {
	defer ln.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = ln.Close()
		case <-done:
		}
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("telekey: accept: %w", err)
		}
		if err := s.handleConnection(conn); err != nil {
			s.logger.Printf("session ended: %v", err)
		}
	}
}

func (s *Server) handleConnection(conn net.Conn) error {
	secret, err := s.secretFn()
	if err != nil {
		return fmt.Errorf("telekey: generate session secret: %w", err)
	}
	s.announce(session.EncodeSecret(secret))

	plainTr := transport.NewPlainTransport(conn)
	var tr transport.Transport = plainTr
	defer func() { _ = tr.Shutdown() }()

	pkt, err := plainTr.RecvPacket()
	if err != nil {
		return fmt.Errorf("telekey: recv handshake request: %w", err)
	}
	if pkt.Kind != wire.PacketHandshake {
		return fmt.Errorf("%w: expected Handshake, got %s", ErrUnexpectedPacket, pkt.Kind)
	}
	req, err := wire.ReadHandshakeRequest(bytes.NewReader(pkt.Body))
	if err != nil {
		return fmt.Errorf("telekey: decode handshake request: %w", err)
	}

	secure := len(req.PKey) > 0
	var serverKP session.EphemeralKeyPair

	if secure {
		clientPub, err := session.OpenPublicKey(secret, req.PKey)
		if err != nil {
			return fmt.Errorf("telekey: open client public key: %w", err)
		}
		serverKP, err = session.NewEphemeralKeyPair()
		if err != nil {
			return fmt.Errorf("telekey: generate ephemeral keypair: %w", err)
		}
		shared, err := serverKP.SharedSecret(clientPub)
		if err != nil {
			return fmt.Errorf("telekey: key agreement: %w", err)
		}
		salt := sessionSalt(serverKP.Public, clientPub)
		sendKey, recvKey, err := session.DeriveKeys(shared, salt, true)
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
	} else {
		if !bytes.Equal(req.Token, secret[:]) {
			s.logger.Printf("Invalid secret")
			return ErrInvalidSecret
		}
	}

	resp := wire.HandshakeResponse{Hostname: s.cfg.Hostname, Version: s.cfg.Version}
	if secure {
		sealedPub, err := session.SealPublicKey(secret, serverKP.Public)
		if err != nil {
			return fmt.Errorf("telekey: seal server public key: %w", err)
		}
		resp.PKey = sealedPub
	}
	var body bytes.Buffer
	if err := resp.Write(&body); err != nil {
		return fmt.Errorf("telekey: encode handshake response: %w", err)
	}
	if err := plainTr.SendPacket(wire.Packet{Kind: wire.PacketHandshake, Body: body.Bytes()}); err != nil {
		return fmt.Errorf("telekey: send handshake response: %w", err)
	}

	remote := Remote{Hostname: req.Hostname, Version: req.Version, Security: Plain}
	if secure {
		remote.Security = Secure
	}

	return s.steadyState(tr, remote)
}

// steadyState implements the server's recv-loop dispatch table.
func (s *Server) steadyState(tr transport.Transport, remote Remote) error {
	s.logger.Printf("session established with %s (v%d, %s)", remote.Hostname, remote.Version, remote.Security)
	for {
		pkt, err := tr.RecvPacket()
		if err != nil {
			return fmt.Errorf("telekey: recv: %w", err)
		}
		switch pkt.Kind {
		case wire.PacketHandshake:
			// Ignored silently: exactly one Handshake per direction.
		case wire.PacketKeyEvent:
			evtPtr, err := wire.ReadKeyEvent(bytes.NewReader(pkt.Body))
			if err != nil {
				return fmt.Errorf("telekey: decode key event: %w", err)
			}
			evt := *evtPtr
			if s.cfg.ColdRun {
				if err := s.injector.Inject(evt); err != nil {
					return fmt.Errorf("telekey: cold-run write: %w", err)
				}
				continue
			}
			if !presentation.EventToInjection(evt) {
				s.logger.Printf("runtime warning: unmapped key kind %s", evt.Kind)
				continue
			}
			if err := s.injector.Inject(evt); err != nil {
				return fmt.Errorf("telekey: inject key event: %w", err)
			}
		case wire.PacketPing:
			if err := tr.SendPacket(replyToPing()); err != nil {
				return fmt.Errorf("telekey: send ping reply: %w", err)
			}
		default:
			s.logger.Printf("runtime warning: unknown packet kind")
		}
	}
}

// sessionSalt fixes the HKDF salt both sides agree on without any extra
// round trip: the server's ephemeral public key followed by the
// client's, in that order, on both sides.
func sessionSalt(serverPub, clientPub [32]byte) []byte {
	salt := make([]byte, 0, 64)
	salt = append(salt, serverPub[:]...)
	salt = append(salt, clientPub[:]...)
	return salt
}
