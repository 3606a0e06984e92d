package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bitfsorg/extrinsic-go/config"
	"github.com/bitfsorg/extrinsic-go/internal/logging"
	"github.com/bitfsorg/extrinsic-go/journal"
	"github.com/bitfsorg/extrinsic-go/network"
	"github.com/bitfsorg/extrinsic-go/wallet"
)

// EnvPhrase names the environment variable holding the recovery phrase.
const EnvPhrase = "EXTRINSIC_PHRASE"

var errMissingPhrase = errors.New("no recovery phrase: pass --phrase, set " + EnvPhrase + ", or run interactively")

// app carries the state shared by every command.
type app struct {
	flags struct {
		RPCURL    string
		Network   string
		DataDir   string
		LogLevel  string
		LogFormat string
		NoJournal bool
		JSON      bool
	}

	cfg    config.Config
	logger *slog.Logger

	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	// isTerminal reports whether stdin can prompt for secrets.
	isTerminal func() bool
	// readSecret reads a line from the terminal without echo.
	readSecret func() (string, error)
	closers    []io.Closer
}

func newApp() *app {
	return &app{
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		getenv:     os.Getenv,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		readSecret: func() (string, error) {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			return string(b), err
		},
	}
}

// setup loads the config file, applies flag and environment overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	dataDir := a.flags.DataDir
	if dataDir == "" {
		dataDir = config.DefaultDataDir()
	}

	cfg, err := config.LoadConfig(config.ConfigPath(dataDir))
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return err
	}
	cfg.DataDir = dataDir

	flags := cmd.Flags()
	if flags.Changed("network") {
		cfg.Network = a.flags.Network
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.flags.LogFormat
	}
	switch {
	case a.flags.RPCURL != "":
		cfg.RPCURL = a.flags.RPCURL
	case a.getenv(network.EnvRPCURL) != "":
		cfg.RPCURL = a.getenv(network.EnvRPCURL)
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	out := a.stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.closers = append(a.closers, f)
		out = f
	}
	a.logger, err = logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Out:     out,
		NoColor: cfg.LogFile != "",
	})
	return err
}

func (a *app) teardown() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

// node returns the one-shot RPC client for the configured endpoint.
func (a *app) node() (*network.RPCClient, error) {
	rpcCfg, err := network.ResolveConfig(
		&network.RPCConfig{URL: a.cfg.RPCURL},
		map[string]string{network.EnvRPCURL: a.getenv(network.EnvRPCURL)},
		a.cfg.Network,
	)
	if err != nil {
		return nil, err
	}
	return network.NewRPCClient(*rpcCfg, network.WithLogger(a.logger)), nil
}

// journal opens the submission journal, or returns nil when disabled.
func (a *app) journal() (*journal.Journal, error) {
	if a.flags.NoJournal {
		return nil, nil
	}
	j, err := journal.Open(journal.Path(a.cfg.DataDir))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, j)
	return j, nil
}

// keypair derives the signing key from --phrase, EXTRINSIC_PHRASE or an
// interactive prompt, in that order.
func (a *app) keypair(phrase, password string) (*wallet.Keypair, error) {
	if phrase == "" {
		phrase = a.getenv(EnvPhrase)
	}
	if phrase == "" {
		if !a.isTerminal() {
			return nil, errMissingPhrase
		}
		fmt.Fprint(a.stderr, "Recovery phrase: ")
		p, err := a.readSecret()
		fmt.Fprintln(a.stderr)
		if err != nil {
			return nil, fmt.Errorf("read phrase: %w", err)
		}
		phrase = p
	}
	if strings.TrimSpace(phrase) == "" {
		return nil, errMissingPhrase
	}
	return wallet.KeypairFromPhrase(phrase, password)
}
