package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"telekey"
	"telekey/cli"
	"telekey/logging"
	"telekey/presentation"
)

func main() {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "telekey"
	}

	result, err := cli.Parse(os.Args[1:], hostname, os.Stdout)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if result.ShowHelp || result.ShowVersion {
		os.Exit(cli.ExitCode(result, nil))
	}

	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupt received, shutting down...")
		appCtxCancel()
	}()

	logger := logging.NewLogLogger()

	if result.Mode == telekey.ModeServer {
		err = runServer(appCtx, result.Config, logger)
	} else {
		err = runClient(result.Config, logger)
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

// printError writes a one-line failure report with a red ERROR tag.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "\x1b[31mERROR\x1b[0m %v\n", err)
}

func runServer(ctx context.Context, cfg telekey.Config, logger logging.Logger) error {
	var injector presentation.KeyInjector
	if cfg.ColdRun {
		injector = presentation.NewStdoutInjector(os.Stdout)
	} else {
		injector = &presentation.NoopInjector{Logf: logger.Printf}
	}

	srv := telekey.NewServer(cfg, injector, logger)
	fmt.Printf("Listening on %s. Share this token with the client:\n", cfg.BindAddr)
	return srv.Serve(ctx)
}

func runClient(cfg telekey.Config, logger logging.Logger) error {
	fmt.Print("Enter the session token: ")
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("telekey: read token: %w", err)
		}
		return errors.New("telekey: no token entered")
	}
	token := strings.TrimSpace(scanner.Text())

	presenter, err := presentation.NewTcellPresenter()
	if err != nil {
		return fmt.Errorf("telekey: init terminal: %w", err)
	}
	defer presenter.Close()

	client := telekey.NewClient(cfg, presenter, logger)
	return client.Connect(token)
}
