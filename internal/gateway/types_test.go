package gateway

import (
	"encoding/json"
	"testing"
)

func TestParseToolName(t *testing.T) {
	cases := []struct {
		full string
		want string
	}{
		{"feishu-target___send_feishu_notification", "send_feishu_notification"},
		{"send_feishu_notification", "send_feishu_notification"},
		{"target___tool___extra", "tool___extra"},
		{"target___", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseToolName(tc.full); got != tc.want {
			t.Errorf("ParseToolName(%q): expected %q, got %q", tc.full, tc.want, got)
		}
	}
}

func TestSuccessResponse_JSON(t *testing.T) {
	resp := SuccessResponse(SendData{Status: "sent", Message: "Notification sent successfully"})

	got, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"success":true,"data":{"status":"sent","message":"Notification sent successfully"}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestErrorResponse_JSON(t *testing.T) {
	resp := ErrorResponse("Missing required parameter: webhook_url", CodeValidationError)

	got, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"success":false,"error":{"code":"VALIDATION_ERROR","message":"Missing required parameter: webhook_url"}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
