package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/relaykit/feishu-relay/internal/api"
	"github.com/relaykit/feishu-relay/internal/config"
	"github.com/relaykit/feishu-relay/internal/feishu"
	"github.com/relaykit/feishu-relay/internal/gateway"
	"github.com/relaykit/feishu-relay/internal/logging"
	"github.com/relaykit/feishu-relay/internal/scheduler"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gateway relay server",
		Long: `Runs the relay as a daemon exposing:
- POST /invoke for gateway tool invocations
- GET /api/health and GET /metrics
- an optional scheduled heartbeat notification`,
		RunE: runServe,
	}

	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	cmd.Flags().String("webhook", "", "Default webhook URL for the heartbeat (overrides config)")
	cmd.Flags().String("token", "", "Bearer token required on /invoke (overrides config)")
	cmd.Flags().String("config", "", "Config file path")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	webhook, _ := cmd.Flags().GetString("webhook")
	token, _ := cmd.Flags().GetString("token")
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if webhook != "" {
		cfg.Webhook.URL = webhook
	}
	if token != "" {
		cfg.Server.Token = token
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	client := feishu.NewClient(logger, cfg.ClientOptions()...)
	gw := gateway.NewHandler(client, logger)
	server := api.NewServer(cfg.Server, gw, logger)

	if cfg.Heartbeat.Enabled {
		sched := scheduler.New(logger)
		job := scheduler.NewHeartbeatJob(client, cfg.Webhook.URL, cfg.Heartbeat.Message, cfg.Heartbeat.Title)
		if err := sched.AddJob(cfg.Heartbeat.Schedule, job); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	httpServer := server.HTTPServer()

	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("relay listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
