// Package cli implements the toybox command-line interface: one command
// group per entity kind, each a thin layer over the shop's stores.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/toybox/pkg/toybox"
	"github.com/mesh-intelligence/toybox/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the collaborators shared by subcommands.
type app struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
	verbose   bool

	// Set by resolveConfig.
	logFormat string
	logLevel  string

	now func() time.Time
}

// NewRootCmd creates the top-level "toybox" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "toybox",
		Short: "Offline tracker for a toy shop",
		Long: "Toybox keeps a toy shop's inventory, customers, and orders on the local\n" +
			"machine. Every change is written to storage immediately.",
		Version:       toybox.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "storage backend: file, sqlite, redis, memory")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(a.newInitCmd())
	root.AddCommand(a.newToyCmd())
	root.AddCommand(a.newCustomerCmd())
	root.AddCommand(a.newOrderCmd())

	return root
}

// Run executes the command line and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "toybox:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}

// withShop opens the configured shop, runs fn, and closes the shop.
func (a *app) withShop(fn func(shop *toybox.Shop) error) error {
	cfg, err := a.resolveConfig()
	if err != nil {
		return err
	}

	logger, err := a.newLogger()
	if err != nil {
		return userError(fmt.Errorf("create logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck

	shop, err := toybox.Open(cfg, toybox.WithLogger(logger))
	if err != nil {
		if isConfigError(err) {
			return userError(err)
		}
		return sysError(fmt.Errorf("open shop: %w", err))
	}
	defer func() {
		if cerr := shop.Close(); cerr != nil {
			logger.Warn("close shop", zap.Error(cerr))
		}
	}()

	return fn(shop)
}

// exitError carries the exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }
func sysError(err error) error  { return &exitError{code: exitSysError, err: err} }

// exitCode maps an error to its exit code. Unclassified errors (flag
// parsing, unknown commands) are user errors.
func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return exitUserError
}

func isConfigError(err error) bool {
	return errors.Is(err, types.ErrBackendEmpty) ||
		errors.Is(err, types.ErrBackendUnknown) ||
		errors.Is(err, types.ErrRedisAddrEmpty)
}
