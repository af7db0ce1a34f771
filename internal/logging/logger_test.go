package logging

import "testing"

func TestRedactURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://open.feishu.cn/open-apis/bot/v2/hook/abc-123", "https://open.feishu.cn/***"},
		{"https://open.feishu.cn", "https://open.feishu.cn"},
		{"https://open.feishu.cn/", "https://open.feishu.cn"},
		{"not a url", "invalid-url"},
		{"", "invalid-url"},
	}

	for _, tt := range tests {
		got := RedactURL(tt.raw)
		if got != tt.expected {
			t.Errorf("RedactURL(%q) = %q, want %q", tt.raw, got, tt.expected)
		}
	}
}

func TestNew_BadLevelFallsBack(t *testing.T) {
	logger := New(Config{Level: "chatty"})
	if logger == nil {
		t.Fatal("expected non-nil logger")
	}
}
