// Package cli turns os.Args into a telekey.Config plus the resolved run
// mode, before main dispatches to a server or client runner.
package cli

import (
	"flag"
	"fmt"
	"io"
	"net"

	"telekey"
)

// Result is what Parse produces: either a fully resolved Mode+Config ready
// to run, or a request to print help/version and exit 0 without running
// anything.
type Result struct {
	Mode        telekey.Mode
	Config      telekey.Config
	ShowHelp    bool
	ShowVersion bool
}

// Parse parses args (normally os.Args[1:]). hostname seeds the default
// config's advertised hostname. output receives -h/--help usage text; it
// is also where the flag package's own parse-error messages go.
func Parse(args []string, hostname string, output io.Writer) (Result, error) {
	fs := flag.NewFlagSet("telekey", flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		serve    string
		target   string
		simple   bool
		coldRun  bool
		unsecure bool
		latency  int
		help     bool
		version  bool
	)

	fs.StringVar(&serve, "s", "", "run as server; bind to given address")
	fs.StringVar(&serve, "serve", "", "run as server; bind to given address")
	fs.StringVar(&target, "t", "", "run as client; connect to given address")
	fs.StringVar(&target, "target-ip", "", "run as client; connect to given address")
	fs.BoolVar(&simple, "m", false, "disable full-screen redraw")
	fs.BoolVar(&simple, "simple-menu", false, "disable full-screen redraw")
	fs.BoolVar(&coldRun, "c", false, "print received keys instead of injecting")
	fs.BoolVar(&coldRun, "cold-run", false, "print received keys instead of injecting")
	fs.BoolVar(&unsecure, "u", false, "disable encryption")
	fs.BoolVar(&unsecure, "unsecure", false, "disable encryption")
	fs.IntVar(&latency, "l", 20, "measure latency every N keystrokes; 0 disables")
	fs.IntVar(&latency, "refresh-latency", 20, "measure latency every N keystrokes; 0 disables")
	fs.BoolVar(&help, "h", false, "print help")
	fs.BoolVar(&help, "help", false, "print help")
	fs.BoolVar(&version, "v", false, "print version")
	fs.BoolVar(&version, "version", false, "print version")

	if err := fs.Parse(args); err != nil {
		return Result{}, fmt.Errorf("cli: parse flags: %w", err)
	}

	if help {
		fmt.Fprintln(output, "Usage: telekey [flags]")
		fs.PrintDefaults()
		return Result{ShowHelp: true}, nil
	}
	if version {
		fmt.Fprintf(output, "telekey v%d\n", telekey.ProtocolVersion)
		return Result{ShowVersion: true}, nil
	}

	cfg := telekey.DefaultConfig(hostname)
	cfg.UpdateScreen = !simple
	cfg.ColdRun = coldRun
	cfg.Secure = !unsecure
	cfg.RefreshLatency = latency

	mode := telekey.ModeClient
	if serve != "" {
		mode = telekey.ModeServer
		cfg.BindAddr = normalizeAddr(serve)
	} else if target != "" {
		cfg.TargetAddr = normalizeAddr(target)
	}

	return Result{Mode: mode, Config: cfg}, nil
}

// normalizeAddr appends telekey.DefaultPort to addr when it carries no
// port of its own.
func normalizeAddr(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, telekey.DefaultPort)
}

// ExitCode maps a run's outcome to the process exit code: help/version
// requests and a nil error both exit 0, everything else exits 1.
func ExitCode(r Result, err error) int {
	if err != nil {
		return 1
	}
	_ = r
	return 0
}
