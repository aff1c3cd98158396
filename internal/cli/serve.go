package cli

import (
	"github.com/spf13/cobra"

	"essayqa/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP answer API",
	Long: `Start the HTTP server exposing POST /answers, GET /healthz and
GET /metrics.

Examples:
  essayqa serve
  essayqa serve --listen :9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if serveListen != "" {
		cfg.Server.Listen = serveListen
	}
	return server.Run(cfg)
}
