// Package chatgw builds LLM-style chat payloads for the gateway client and
// re-packages a decrypted "ok" reply into a chat-completions-style
// response. It is a consumer of the envelope core, not part of it.
package chatgw

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the plaintext request payload's chat-shaped body.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// OKResponse mirrors the decrypted {kind:"ok", response:{...}} payload's
// inner "response" object.
type OKResponse struct {
	RequestID        string `json:"request_id"`
	Model            string `json:"model"`
	Output           any    `json:"output"`
	BilledTokenClass string `json:"billed_token_class"`
}

// CompletionChoice is a single chat-completions-style choice.
type CompletionChoice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// CompletionResponse is the chat-completions-shaped re-packaging of an
// OKResponse: a single choice, finish_reason "stop", message.role
// "assistant".
type CompletionResponse struct {
	ID      string             `json:"id"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
}

// FromOKResponse re-packages a decrypted "ok" reply into a single-choice
// chat-completions-style object.
func FromOKResponse(resp OKResponse) CompletionResponse {
	content := ""
	if s, ok := resp.Output.(string); ok {
		content = s
	}
	return CompletionResponse{
		ID:    resp.RequestID,
		Model: resp.Model,
		Choices: []CompletionChoice{
			{
				Index: 0,
				Message: Message{
					Role:    "assistant",
					Content: content,
				},
				FinishReason: "stop",
			},
		},
	}
}
