package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/tpham/dailycard/internal/telemetry"
)

// OpenAIProvider talks to any OpenAI-chat-completions-compatible endpoint.
type OpenAIProvider struct {
	client *openai.Client
	usage  *telemetry.TokenUsage
}

func NewOpenAIProvider(apiKey string, usage *telemetry.TokenUsage) *OpenAIProvider {
	return &OpenAIProvider{client: openai.NewClient(apiKey), usage: usage}
}

// Complete retries once without the schema if the provider refuses it at
// call time (§4.6 step 4), rather than surfacing a schema-specific rejection
// as a hard failure on the first attempt.
func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := p.complete(ctx, req)
	if err != nil && req.Schema != nil && isSchemaRefusal(err) {
		telemetry.Warnf("llm: openai refused schema, retrying without it: %v", err)
		noSchema := req
		noSchema.Schema = nil
		return p.complete(ctx, noSchema)
	}
	return resp, err
}

func (p *OpenAIProvider) complete(ctx context.Context, req Request) (Response, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		cm := openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
		if m.Role == "tool" {
			cm.ToolCallID = m.ToolCallID
		}
		for _, tc := range m.ToolCalls {
			args, _ := json.Marshal(tc.Arguments)
			cm.ToolCalls = append(cm.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: string(args),
				},
			})
		}
		messages = append(messages, cm)
	}

	creq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
	}

	for _, t := range req.Tools {
		creq.Tools = append(creq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	if req.Schema != nil {
		raw, err := json.Marshal(req.Schema)
		if err != nil {
			return Response{}, fmt.Errorf("llm: marshal schema: %w", err)
		}
		creq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "dailycard_output",
				Schema: json.RawMessage(raw),
				Strict: true,
			},
		}
	}

	t0 := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, creq)
	telemetry.Metrics.LLMLatency.Record(time.Since(t0))
	if err != nil {
		return Response{}, fmt.Errorf("llm: openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("llm: openai returned no choices")
	}

	p.usage.PromptTokens.Add(int64(resp.Usage.PromptTokens))
	p.usage.CompletionTokens.Add(int64(resp.Usage.CompletionTokens))
	p.usage.Calls.Inc()

	choice := resp.Choices[0].Message
	out := Response{
		Content:          choice.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}
	for _, tc := range choice.ToolCalls {
		var args map[string]any
		_ = json.Unmarshal([]byte(tc.Function.Arguments), &args)
		out.ToolCalls = append(out.ToolCalls, ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: args})
	}
	return out, nil
}
