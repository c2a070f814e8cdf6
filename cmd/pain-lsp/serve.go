package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"pain/internal/lsp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Pain language server over stdio",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

// runServe serves until the client sends "exit". An exit without a prior
// "shutdown" ends with status 1, as the protocol asks.
func runServe(cmd *cobra.Command, _ []string) error {
	opts := serverOptions(settings)
	log.Infof("starting pain-lsp %s (workers=%d)", opts.Version, opts.Workers)
	server := lsp.NewServer(os.Stdin, os.Stdout, opts)
	err := server.Run(cmd.Context())
	switch {
	case err == nil, errors.Is(err, lsp.ErrExit):
		log.Notice("exit")
		return nil
	case errors.Is(err, lsp.ErrExitWithoutShutdown):
		log.Warning("exit without shutdown")
		return exitError{code: 1}
	default:
		return err
	}
}
