package chatgw

import "testing"

func TestFromOKResponse_SingleChoiceShape(t *testing.T) {
	resp := OKResponse{
		RequestID:        "req-1",
		Model:            "gpt-gateway",
		Output:           "hello there",
		BilledTokenClass: "c512",
	}
	out := FromOKResponse(resp)
	if out.ID != "req-1" || out.Model != "gpt-gateway" {
		t.Fatalf("unexpected header fields: %+v", out)
	}
	if len(out.Choices) != 1 {
		t.Fatalf("expected exactly one choice, got %d", len(out.Choices))
	}
	choice := out.Choices[0]
	if choice.FinishReason != "stop" || choice.Message.Role != "assistant" || choice.Message.Content != "hello there" {
		t.Fatalf("unexpected choice: %+v", choice)
	}
}
