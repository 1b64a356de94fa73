package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"plume/internal/playground"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the websocket playground",
	Long: `Serves the lexer and parsers over a websocket.

Endpoints:
  POST /auth     exchange the access key for a session token
  GET  /ws       analysis session (Bearer token when a key hash is set)
  GET  /healthz  liveness

Examples:
  plume serve
  plume serve --addr :8421
  PLUME_PLAYGROUND_KEY_HASH=$(plume hash-key s3cret) PLUME_PLAYGROUND_JWT_SECRET=x plume serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides playground.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	pg := cfg.Playground
	if serveAddr != "" {
		pg.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return playground.New(pg, logger).ListenAndServe(ctx)
}
