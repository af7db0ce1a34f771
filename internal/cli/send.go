package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/relaykit/feishu-relay/internal/config"
	"github.com/relaykit/feishu-relay/internal/feishu"
	"github.com/relaykit/feishu-relay/internal/logging"
)

// NewSendCommand creates the send command.
func NewSendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send MESSAGE",
		Short: "Send a notification to a Feishu webhook",
		Long: `Sends a single notification through a Feishu custom-bot webhook and
reports the provider's verdict. Transient failures are retried with
exponential backoff before the command gives up.`,
		Args: cobra.ExactArgs(1),
		RunE: runSend,
	}

	cmd.Flags().String("webhook", "", "Webhook URL (defaults to FEISHU_RELAY_WEBHOOK_URL)")
	cmd.Flags().String("type", "text", "Message type (text, post)")
	cmd.Flags().String("title", "", "Title for post messages")
	cmd.Flags().String("config", "", "Config file path")
	cmd.Flags().Bool("json", false, "Output the result as JSON")

	return cmd
}

type sendOutput struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func runSend(cmd *cobra.Command, args []string) error {
	webhook, _ := cmd.Flags().GetString("webhook")
	msgType, _ := cmd.Flags().GetString("type")
	title, _ := cmd.Flags().GetString("title")
	configPath, _ := cmd.Flags().GetString("config")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if webhook == "" {
		webhook = cfg.Webhook.URL
	}
	if webhook == "" {
		return fmt.Errorf("webhook url required (--webhook or FEISHU_RELAY_WEBHOOK_URL)")
	}

	logger := logging.Default()
	client := feishu.NewClient(logger, cfg.ClientOptions()...)

	result, err := client.Send(cmd.Context(), webhook, args[0], feishu.MessageKind(msgType), title)
	if err != nil {
		return err
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(sendOutput{
			Success: result.Success,
			Code:    result.Code,
			Message: result.Message,
		}); err != nil {
			return err
		}
	}

	if !result.Success {
		return fmt.Errorf("feishu api error (code %d): %s", result.Code, result.Message)
	}
	if !jsonOutput {
		fmt.Println("Notification sent successfully")
	}
	return nil
}
