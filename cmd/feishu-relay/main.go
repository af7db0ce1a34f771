package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaykit/feishu-relay/internal/api"
	"github.com/relaykit/feishu-relay/internal/cli"
	"github.com/relaykit/feishu-relay/internal/logging"
)

var (
	version = "1.0.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	logging.Init(logging.Config{
		Level:  getEnv("FEISHU_RELAY_LOG_LEVEL", "info"),
		Format: getEnv("FEISHU_RELAY_LOG_FORMAT", "console"),
	})
	api.Version = version

	rootCmd := &cobra.Command{
		Use:   "feishu-relay",
		Short: "feishu-relay - Feishu webhook notifier behind an agent gateway",
		Long: `feishu-relay sends notifications to Feishu custom-bot webhooks and exposes
the sender as a gateway tool for AI agents.

Notifications are validated, posted with bounded retry and exponential
backoff, and every outcome is reported through a structured envelope.`,
		Version: fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
	}

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (console, json)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		if level == "" && format == "" {
			return
		}
		cfg := logging.Config{
			Level:  getEnv("FEISHU_RELAY_LOG_LEVEL", "info"),
			Format: getEnv("FEISHU_RELAY_LOG_FORMAT", "console"),
		}
		if level != "" {
			cfg.Level = level
		}
		if format != "" {
			cfg.Format = format
		}
		logging.Init(cfg)
	}

	rootCmd.AddCommand(cli.NewSendCommand())
	rootCmd.AddCommand(cli.NewServeCommand())
	rootCmd.AddCommand(cli.NewKindsCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
