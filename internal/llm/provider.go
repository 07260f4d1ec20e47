package llm

import "context"

// Message is one turn in a chat-style conversation.
type Message struct {
	Role       string // "system" | "user" | "assistant" | "tool"
	Content    string
	ToolCallID string // set on Role == "tool"
	ToolCalls  []ToolCall
}

// Request is a provider-agnostic completion request.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []Tool
	Schema      *Schema // when set, the provider must force structured output
	Temperature float64
}

// Response is a provider-agnostic completion response. Exactly one of
// Content or ToolCalls is populated for a given turn.
type Response struct {
	Content          string
	ToolCalls        []ToolCall
	PromptTokens     int
	CompletionTokens int
}

// Provider is implemented by each LLM backend the pipeline can talk to.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
}

// Select returns the provider that should handle req.Model, auto-detected
// by prefix the way §9 specifies.
func Select(model string, openai, gemini Provider) Provider {
	if IsGeminiModel(model) {
		return gemini
	}
	return openai
}
