package gateway

import "strings"

// ToolNameDelimiter separates the gateway target prefix from the tool name in
// fully qualified identifiers such as "feishu-target___send_feishu_notification".
const ToolNameDelimiter = "___"

// DefaultToolName is assumed when the transport carries no tool identity at
// all. A present-but-empty identity is not defaulted; it routes to the
// unknown-tool error instead.
const DefaultToolName = "send_feishu_notification"

// ToolSendNotification is the only tool this relay exposes.
const ToolSendNotification = "send_feishu_notification"

// Error codes carried in the response envelope.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNetworkError    = "NETWORK_ERROR"
	CodeFeishuAPIError  = "FEISHU_API_ERROR"
	CodeUnknownTool     = "UNKNOWN_TOOL"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ParseToolName strips the gateway target prefix from a fully qualified tool
// name. Only the first delimiter splits, so tool names may themselves contain
// the delimiter. Names without a prefix pass through unchanged.
func ParseToolName(full string) string {
	if _, tool, ok := strings.Cut(full, ToolNameDelimiter); ok {
		return tool
	}
	return full
}

// Request carries the tool parameters of an invocation. MsgType defaults to
// "text" when omitted; Title is only required for post messages.
type Request struct {
	WebhookURL string `json:"webhook_url"`
	Message    string `json:"message"`
	MsgType    string `json:"msg_type,omitempty"`
	Title      string `json:"title,omitempty"`
}

// Response is the envelope returned for every invocation, success or not.
// Exactly one of Data and Error is set.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failed invocation.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendData is the payload of a successful send.
type SendData struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SuccessResponse wraps data in a success envelope.
func SuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// ErrorResponse wraps an error message and code in a failure envelope.
func ErrorResponse(message, code string) Response {
	return Response{Success: false, Error: &ErrorInfo{Code: code, Message: message}}
}
