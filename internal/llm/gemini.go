package llm

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/tpham/dailycard/internal/telemetry"
)

// GeminiProvider talks to the Gemini API via the official genai SDK. Wire
// format differs enough from OpenAI's (content "parts" instead of a single
// string, schema keys uppercased, no ToolCallID on function responses) that
// it gets its own translation layer rather than bolting onto openai.go.
type GeminiProvider struct {
	client *genai.Client
	usage  *telemetry.TokenUsage
}

func NewGeminiProvider(ctx context.Context, apiKey string, usage *telemetry.TokenUsage) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("llm: gemini client: %w", err)
	}
	return &GeminiProvider{client: client, usage: usage}, nil
}

// Complete retries once without the schema if the provider refuses it at
// call time (§4.6 step 4), rather than surfacing a schema-specific rejection
// as a hard failure on the first attempt.
func (p *GeminiProvider) Complete(ctx context.Context, req Request) (Response, error) {
	resp, err := p.complete(ctx, req)
	if err != nil && req.Schema != nil && isSchemaRefusal(err) {
		telemetry.Warnf("llm: gemini refused schema, retrying without it: %v", err)
		noSchema := req
		noSchema.Schema = nil
		return p.complete(ctx, noSchema)
	}
	return resp, err
}

func (p *GeminiProvider) complete(ctx context.Context, req Request) (Response, error) {
	var systemInstruction *genai.Content
	var contents []*genai.Content

	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			systemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(req.Temperature)),
		SystemInstruction: systemInstruction,
		MaxOutputTokens:   int32(MaxOutputTokens(EstimateTokens(flattenMessages(req.Messages)))),
	}

	if req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = geminiSchema(req.Schema)
	}

	for _, t := range req.Tools {
		cfg.Tools = append(cfg.Tools, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  geminiSchema(t.Parameters),
			}},
		})
	}

	t0 := time.Now()
	resp, err := p.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	telemetry.Metrics.LLMLatency.Record(time.Since(t0))
	if err != nil {
		return Response{}, fmt.Errorf("llm: gemini completion: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return Response{}, fmt.Errorf("llm: gemini returned no candidates")
	}

	p.usage.PromptTokens.Add(int64(resp.UsageMetadata.PromptTokenCount))
	p.usage.CompletionTokens.Add(int64(resp.UsageMetadata.CandidatesTokenCount))
	p.usage.Calls.Inc()

	out := Response{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			out.Content += part.Text
		}
		if part.FunctionCall != nil {
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        part.FunctionCall.Name,
				Name:      part.FunctionCall.Name,
				Arguments: part.FunctionCall.Args,
			})
		}
	}
	return out, nil
}

func geminiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{Type: genai.Type(toGeminiSchema(s)["type"].(string)), Description: s.Description}
	if len(s.Enum) > 0 {
		for _, e := range s.Enum {
			out.Enum = append(out.Enum, e)
		}
	}
	if s.Items != nil {
		out.Items = geminiSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = geminiSchema(v)
		}
	}
	out.Required = s.Required
	return out
}

func flattenMessages(msgs []Message) string {
	var total string
	for _, m := range msgs {
		total += m.Content
	}
	return total
}
