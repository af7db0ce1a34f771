package scheduler

import (
	"context"
	"fmt"

	"github.com/relaykit/feishu-relay/internal/feishu"
)

// Sender posts a notification and reports the provider's verdict.
type Sender interface {
	Send(ctx context.Context, webhookURL, message string, kind feishu.MessageKind, title string) (*feishu.Result, error)
}

// HeartbeatJob posts a periodic liveness notification to a fixed webhook.
// With a title it sends a post message, otherwise plain text.
type HeartbeatJob struct {
	sender     Sender
	webhookURL string
	message    string
	title      string
}

// NewHeartbeatJob constructs the heartbeat job.
func NewHeartbeatJob(sender Sender, webhookURL, message, title string) *HeartbeatJob {
	return &HeartbeatJob{
		sender:     sender,
		webhookURL: webhookURL,
		message:    message,
		title:      title,
	}
}

// Name implements Job.
func (j *HeartbeatJob) Name() string { return "heartbeat" }

// Execute implements Job.
func (j *HeartbeatJob) Execute(ctx context.Context) error {
	kind := feishu.KindText
	if j.title != "" {
		kind = feishu.KindPost
	}

	result, err := j.sender.Send(ctx, j.webhookURL, j.message, kind, j.title)
	if err != nil {
		return fmt.Errorf("heartbeat send: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("heartbeat rejected: code %d: %s", result.Code, result.Message)
	}
	return nil
}
