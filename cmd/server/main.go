// server is the authoritative arena server: clients connect over a websocket,
// move an avatar, fight spawned hazards with a sword, and chat through a
// moderated channel.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	server "sword-arena/server"
)

var (
	flagAddr   string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Authoritative multiplayer sword arena server",
	Long: `Run the arena server. Clients connect over a websocket at /ws, the
root path answers a plain liveness string for hosting platforms, and
/diagnostics reports per-room occupancy.

Configuration comes from configs/server.yaml (or --config), with the listen
address overridable via --addr or the PORT environment variable.`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "listen address (host:port), overrides config")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	// Best effort; hosting platforms usually inject PORT directly.
	_ = godotenv.Load()

	cfg, err := server.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.ListenAddr = flagAddr
	}
	if port := os.Getenv("PORT"); port != "" && flagAddr == "" {
		cfg.ListenAddr = ":" + port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
	})

	hub := server.NewHub(cfg, logger)

	stop := make(chan struct{})
	defer close(stop)
	go hub.RunSimulation(stop)
	go hub.RunReminderBot(stop)

	logger.Info("listening", "addr", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, hub.Handler())
}
