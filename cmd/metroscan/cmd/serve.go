package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/metroscan/metroscan/internal/server"
)

// serveCmd serves the decoded data directory over HTTP.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the decoded data directory over HTTP",
	Long: `Serve the decoded data directory over HTTP with health and Prometheus
metrics endpoints.

Endpoints:
  /          data directory file server
  /healthz   health check
  /metrics   Prometheus metrics

Examples:
  metroscan serve
  metroscan serve --port 8443 --data-dir data`,
	SilenceUsage: true,
	RunE:         runServeCommand,
}

func runServeCommand(cmd *cobra.Command, _ []string) error {
	cfg := globalConfig.Server
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg).Start(ctx)
}

func init() {
	serveCmd.Flags().String("host", "", "listen address (default from config)")
	serveCmd.Flags().IntP("port", "p", 0, "listen port (default from config)")
	serveCmd.Flags().String("data-dir", "", "directory to serve (default from config)")

	rootCmd.AddCommand(serveCmd)
}
