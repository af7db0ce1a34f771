package gateway

import (
	"context"
	"testing"

	"github.com/relaykit/feishu-relay/internal/feishu"
)

type fakeSender struct {
	result *feishu.Result
	err    error

	calls      int
	gotURL     string
	gotMessage string
	gotKind    feishu.MessageKind
	gotTitle   string
}

func (f *fakeSender) Send(ctx context.Context, webhookURL, message string, kind feishu.MessageKind, title string) (*feishu.Result, error) {
	f.calls++
	f.gotURL = webhookURL
	f.gotMessage = message
	f.gotKind = kind
	f.gotTitle = title
	return f.result, f.err
}

type panicSender struct{}

func (panicSender) Send(ctx context.Context, webhookURL, message string, kind feishu.MessageKind, title string) (*feishu.Result, error) {
	panic("sender exploded")
}

func sendRequest() Request {
	return Request{
		WebhookURL: "https://open.feishu.cn/open-apis/bot/v2/hook/abc",
		Message:    "hello",
	}
}

func TestHandler_Invoke_Success(t *testing.T) {
	sender := &fakeSender{result: &feishu.Result{Success: true, Code: 0}}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), DefaultToolName, sendRequest())
	if !resp.Success {
		t.Fatalf("expected success envelope, got %+v", resp)
	}
	data, ok := resp.Data.(SendData)
	if !ok {
		t.Fatalf("expected SendData, got %T", resp.Data)
	}
	if data.Status != "sent" {
		t.Errorf("expected status sent, got %q", data.Status)
	}
	if data.Message != "Notification sent successfully" {
		t.Errorf("unexpected message %q", data.Message)
	}
	if sender.gotKind != feishu.KindText {
		t.Errorf("expected msg_type to default to text, got %q", sender.gotKind)
	}
}

func TestHandler_Invoke_TargetPrefixStripped(t *testing.T) {
	sender := &fakeSender{result: &feishu.Result{Success: true}}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), "prod-gateway___send_feishu_notification", sendRequest())
	if !resp.Success {
		t.Fatalf("expected prefixed tool name to route, got %+v", resp)
	}
	if sender.calls != 1 {
		t.Errorf("expected 1 send, got %d", sender.calls)
	}
}

func TestHandler_Invoke_PostParameters(t *testing.T) {
	sender := &fakeSender{result: &feishu.Result{Success: true}}
	h := NewHandler(sender, nil)

	req := sendRequest()
	req.MsgType = "post"
	req.Title = "Alert"
	h.Invoke(context.Background(), DefaultToolName, req)

	if sender.gotKind != feishu.KindPost {
		t.Errorf("expected post kind, got %q", sender.gotKind)
	}
	if sender.gotTitle != "Alert" {
		t.Errorf("expected title passed through, got %q", sender.gotTitle)
	}
}

func TestHandler_Invoke_MissingWebhookURL(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, nil)

	req := sendRequest()
	req.WebhookURL = ""
	resp := h.Invoke(context.Background(), DefaultToolName, req)
	if resp.Success {
		t.Fatal("expected error envelope")
	}
	if resp.Error.Code != CodeValidationError {
		t.Errorf("expected VALIDATION_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Message != "Missing required parameter: webhook_url" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
	if sender.calls != 0 {
		t.Errorf("expected sender not to be called, got %d calls", sender.calls)
	}
}

func TestHandler_Invoke_MissingMessage(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, nil)

	req := sendRequest()
	req.Message = ""
	resp := h.Invoke(context.Background(), DefaultToolName, req)
	if resp.Success || resp.Error.Code != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", resp)
	}
	if resp.Error.Message != "Missing required parameter: message" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}

func TestHandler_Invoke_ValidationError(t *testing.T) {
	sender := &fakeSender{err: &feishu.ValidationError{Message: "webhook_url must start with https://"}}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), DefaultToolName, sendRequest())
	if resp.Success || resp.Error.Code != CodeValidationError {
		t.Fatalf("expected VALIDATION_ERROR, got %+v", resp)
	}
	if resp.Error.Message != "webhook_url must start with https://" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}

func TestHandler_Invoke_NetworkError(t *testing.T) {
	sender := &fakeSender{err: &feishu.NetworkError{Message: "all 3 attempts failed: Server error (500): Internal Server Error"}}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), DefaultToolName, sendRequest())
	if resp.Success || resp.Error.Code != CodeNetworkError {
		t.Fatalf("expected NETWORK_ERROR, got %+v", resp)
	}
}

func TestHandler_Invoke_ProviderRejection(t *testing.T) {
	sender := &fakeSender{result: &feishu.Result{Success: false, Code: 19001, Message: "param invalid"}}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), DefaultToolName, sendRequest())
	if resp.Success {
		t.Fatal("expected error envelope for provider rejection")
	}
	if resp.Error.Code != CodeFeishuAPIError {
		t.Errorf("expected FEISHU_API_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Message != "Feishu API error: param invalid" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}

func TestHandler_Invoke_UnknownTool(t *testing.T) {
	sender := &fakeSender{}
	h := NewHandler(sender, nil)

	resp := h.Invoke(context.Background(), "prod-gateway___delete_everything", sendRequest())
	if resp.Success || resp.Error.Code != CodeUnknownTool {
		t.Fatalf("expected UNKNOWN_TOOL, got %+v", resp)
	}
	if resp.Error.Message != "Unknown tool: delete_everything" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
	if sender.calls != 0 {
		t.Error("expected sender not to be called for unknown tool")
	}
}

func TestHandler_Invoke_EmptyToolName(t *testing.T) {
	h := NewHandler(&fakeSender{}, nil)

	resp := h.Invoke(context.Background(), "", sendRequest())
	if resp.Success || resp.Error.Code != CodeUnknownTool {
		t.Fatalf("expected UNKNOWN_TOOL for empty identity, got %+v", resp)
	}
}

func TestHandler_Invoke_PanicRecovery(t *testing.T) {
	h := NewHandler(panicSender{}, nil)

	resp := h.Invoke(context.Background(), DefaultToolName, sendRequest())
	if resp.Success {
		t.Fatal("expected error envelope after panic")
	}
	if resp.Error.Code != CodeInternalError {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Message != "sender exploded" {
		t.Errorf("unexpected message %q", resp.Error.Message)
	}
}
