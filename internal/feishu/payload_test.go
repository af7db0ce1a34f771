package feishu

import (
	"encoding/json"
	"testing"
)

func TestBuildPayload_Text(t *testing.T) {
	payload := BuildPayload("hello", KindText, "")

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"msg_type":"text","content":{"text":"hello"}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestBuildPayload_Post(t *testing.T) {
	payload := BuildPayload("disk full", KindPost, "Alert")

	got, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"msg_type":"post","content":{"post":{"zh_cn":{"title":"Alert","content":[[{"tag":"text","text":"disk full"}]]}}}}`
	if string(got) != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestBuildPayload_TextIgnoresTitle(t *testing.T) {
	payload := BuildPayload("hello", KindText, "ignored")

	got, _ := json.Marshal(payload)
	want := `{"msg_type":"text","content":{"text":"hello"}}`
	if string(got) != want {
		t.Errorf("expected title to be dropped for text kind, got %s", got)
	}
}

func TestMessageKind_Valid(t *testing.T) {
	cases := []struct {
		kind  MessageKind
		valid bool
	}{
		{KindText, true},
		{KindPost, true},
		{MessageKind("interactive"), false},
		{MessageKind(""), false},
	}
	for _, tc := range cases {
		if got := tc.kind.Valid(); got != tc.valid {
			t.Errorf("Valid(%q): expected %v, got %v", tc.kind, tc.valid, got)
		}
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(kinds))
	}
	if kinds[0] != KindText || kinds[1] != KindPost {
		t.Errorf("expected [text post], got %v", kinds)
	}
}
