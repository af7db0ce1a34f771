package gateway

import (
	"context"
	"fmt"

	"github.com/relaykit/feishu-relay/internal/feishu"
	"github.com/relaykit/feishu-relay/internal/logging"
	"github.com/relaykit/feishu-relay/internal/metrics"
)

// Sender posts a notification and reports the provider's verdict.
// *feishu.Client satisfies this.
type Sender interface {
	Send(ctx context.Context, webhookURL, message string, kind feishu.MessageKind, title string) (*feishu.Result, error)
}

// Handler routes gateway tool invocations to the webhook sender and maps
// every outcome, including panics, onto the response envelope.
type Handler struct {
	sender Sender
	logger *logging.Logger
}

// NewHandler constructs a gateway handler.
func NewHandler(sender Sender, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		sender: sender,
		logger: logger.WithComponent("gateway"),
	}
}

// Invoke executes one tool call. fullToolName is the transport-provided
// identity, target prefix and all; transports with no identity at all should
// pass DefaultToolName. Invoke never returns an error and never panics: every
// outcome is an envelope.
func (h *Handler) Invoke(ctx context.Context, fullToolName string, req Request) (resp Response) {
	tool := ParseToolName(fullToolName)

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error().
				Str("tool", tool).
				Interface("panic", r).
				Msg("tool invocation panicked")
			resp = ErrorResponse(fmt.Sprintf("%v", r), CodeInternalError)
		}
		metrics.InvocationsTotal.WithLabelValues(metricTool(tool), outcome(resp)).Inc()
	}()

	log := h.logger.WithTool(tool)
	log.Info().Msg("invoking tool")

	switch tool {
	case ToolSendNotification:
		resp = h.handleSendNotification(ctx, log, req)
	default:
		log.Warn().Msg("unknown tool requested")
		resp = ErrorResponse("Unknown tool: "+tool, CodeUnknownTool)
	}
	return resp
}

func (h *Handler) handleSendNotification(ctx context.Context, log *logging.Logger, req Request) Response {
	if req.WebhookURL == "" {
		return ErrorResponse("Missing required parameter: webhook_url", CodeValidationError)
	}
	if req.Message == "" {
		return ErrorResponse("Missing required parameter: message", CodeValidationError)
	}
	kind := feishu.MessageKind(req.MsgType)
	if req.MsgType == "" {
		kind = feishu.KindText
	}

	result, err := h.sender.Send(ctx, req.WebhookURL, req.Message, kind, req.Title)
	if err != nil {
		log.Error().
			Err(err).
			Str("webhook", logging.RedactURL(req.WebhookURL)).
			Msg("send failed")
		switch {
		case feishu.IsValidation(err):
			return ErrorResponse(err.Error(), CodeValidationError)
		case feishu.IsNetwork(err):
			return ErrorResponse(err.Error(), CodeNetworkError)
		default:
			return ErrorResponse(err.Error(), CodeInternalError)
		}
	}
	if !result.Success {
		log.Warn().
			Int("code", result.Code).
			Str("msg", result.Message).
			Msg("provider rejected notification")
		return ErrorResponse("Feishu API error: "+result.Message, CodeFeishuAPIError)
	}

	log.Info().Str("webhook", logging.RedactURL(req.WebhookURL)).Msg("notification sent")
	return SuccessResponse(SendData{
		Status:  "sent",
		Message: "Notification sent successfully",
	})
}

// metricTool bounds label cardinality: arbitrary unknown tool names all share
// one label value.
func metricTool(tool string) string {
	if tool == ToolSendNotification {
		return tool
	}
	return "unknown"
}

func outcome(resp Response) string {
	if resp.Success {
		return "success"
	}
	if resp.Error != nil {
		return resp.Error.Code
	}
	return CodeInternalError
}
