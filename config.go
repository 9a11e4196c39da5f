// Package telekey implements the session state machine: role-specific
// handshake orchestration, the server's steady-state dispatch loop, the
// client's keystroke input loop, and latency probing.
package telekey

// Mode selects which role a process runs as. Set once at startup and
// never changed for the process's lifetime.
type Mode int

const (
	ModeClient Mode = iota
	ModeServer
)

func (m Mode) String() string {
	if m == ModeServer {
		return "server"
	}
	return "client"
}

// SecurityMode records whether a session ended up using the encrypted
// transport or the plain one, as advertised by the peer's handshake.
type SecurityMode int

const (
	Plain SecurityMode = iota
	Secure
)

func (s SecurityMode) String() string {
	if s == Secure {
		return "secure"
	}
	return "plain"
}

// DefaultPort is the TCP port used when an address argument omits one.
const DefaultPort = "8384"

// ProtocolVersion is the fixed handshake version this implementation
// speaks and advertises.
const ProtocolVersion uint32 = 1

// Config is the configuration bundle resolved from CLI flags (or test
// fixtures) before a Server or Client starts.
type Config struct {
	Hostname string

	// Secure selects, on the client, the encrypted transport (true) or the
	// plain, token-compared transport (false). Default true. The server
	// does not read it: it uses the encrypted transport when the client's
	// HandshakeRequest carries a pkey and the plain one otherwise.
	Secure bool

	// UpdateScreen selects full-screen redraw (true) vs. append-only
	// last-two-lines redraw (false). Default true.
	UpdateScreen bool

	// RefreshLatency triggers a ping probe every N keystrokes on the
	// client; 0 disables probing. Default 20.
	RefreshLatency int

	// ColdRun routes the server's received KeyEvents to stdout
	// formatting instead of the key-injector. Default false.
	ColdRun bool

	// BindAddr is the server's listen address; TargetAddr is the
	// client's dial address. Both are IP[:PORT]; a missing port
	// defaults to DefaultPort.
	BindAddr   string
	TargetAddr string

	Version uint32
}

// DefaultConfig returns the startup defaults: secure, full-screen,
// latency probing every 20 keys, warm run.
func DefaultConfig(hostname string) Config {
	return Config{
		Hostname:       hostname,
		Secure:         true,
		UpdateScreen:   true,
		RefreshLatency: 20,
		ColdRun:        false,
		BindAddr:       "0.0.0.0:" + DefaultPort,
		TargetAddr:     "127.0.0.1:" + DefaultPort,
		Version:        ProtocolVersion,
	}
}
