// Package llm wraps the two LLM provider shapes the pipeline talks to —
// OpenAI-style chat completions and Gemini-style generateContent — behind
// one Provider interface, auto-selected by model name prefix (§9).
package llm

import "strings"

// Schema is a minimal JSON-schema subset: enough to describe the agents'
// structured output contracts without pulling in a full schema library the
// rest of the pack never needed.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Tool is a function the model may call mid-turn (§5 tool catalog).
type Tool struct {
	Name        string
	Description string
	Parameters  *Schema
}

// ToolCall is a model-requested invocation the dispatcher must execute.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// IsGeminiModel returns true when the model name identifies a Gemini
// family model (§9: "auto-detected by model name prefix").
func IsGeminiModel(model string) bool {
	return strings.HasPrefix(strings.ToLower(model), "gemini")
}

// toGeminiSchema rewrites the OpenAI-flavored JSON schema into Gemini's
// dialect: "type" values uppercase, and Gemini reserves the field name
// "type" on its own wire struct so callers must use "type_" internally
// (the google.golang.org/genai SDK handles that renaming for us — this
// function only needs to uppercase the enum-style type tokens).
func toGeminiSchema(s *Schema) map[string]any {
	if s == nil {
		return nil
	}
	out := map[string]any{"type": strings.ToUpper(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		upper := make([]string, len(s.Enum))
		for i, e := range s.Enum {
			upper[i] = strings.ToUpper(e)
		}
		out["enum"] = upper
	}
	if s.Items != nil {
		out["items"] = toGeminiSchema(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for k, v := range s.Properties {
			props[k] = toGeminiSchema(v)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	return out
}
