// Package agent provides the generic LLM-agent execution loop shared by
// every role in the pipeline (Researcher, Model, Picker, President,
// Auditor): send a system+user prompt, dispatch any tool calls the model
// requests, and keep looping until it returns structured output or gives
// up (§5, §9).
package agent

import (
	"context"
	"fmt"

	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/telemetry"
)

const maxToolRounds = 4

// ToolHandler executes one tool call and returns its (already-trimmed)
// result as a string, or an error the model should see verbatim.
type ToolHandler func(ctx context.Context, call llm.ToolCall) (string, error)

// Agent binds a provider, a role's system prompt, its tool catalog, and
// its output schema.
type Agent struct {
	Name        string
	Provider    llm.Provider
	Model       string
	SystemPrompt string
	Tools       []llm.Tool
	Schema      *llm.Schema
	Temperature float64
	Handlers    map[string]ToolHandler
}

// Run drives the tool-call loop: the model may request tools across
// several rounds before settling on a final structured answer. Tool use is
// disabled on the final round per §5 ("confirm or deny further tool use")
// once maxToolRounds is hit, forcing a terminal answer instead of a stall.
func (a *Agent) Run(ctx context.Context, userPrompt string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: a.SystemPrompt},
		{Role: "user", Content: userPrompt},
	}

	for round := 0; round < maxToolRounds; round++ {
		req := llm.Request{
			Model:       a.Model,
			Messages:    messages,
			Temperature: a.Temperature,
		}
		lastRound := round == maxToolRounds-1
		if !lastRound {
			req.Tools = a.Tools
		} else {
			req.Schema = a.Schema
		}
		if lastRound || len(a.Tools) == 0 {
			req.Schema = a.Schema
		}

		resp, err := a.Provider.Complete(ctx, req)
		if err != nil {
			return "", fmt.Errorf("agent %s: %w", a.Name, err)
		}

		if len(resp.ToolCalls) == 0 {
			return resp.Content, nil
		}

		messages = append(messages, llm.Message{Role: "assistant", ToolCalls: resp.ToolCalls})
		results := Dispatch(ctx, resp.ToolCalls, a.Handlers)
		for _, r := range results {
			messages = append(messages, llm.Message{Role: "tool", ToolCallID: r.CallID, Content: r.Content})
		}
		telemetry.Infof("agent %s: round %d dispatched %d tool calls", a.Name, round, len(resp.ToolCalls))
	}

	return "", fmt.Errorf("agent %s: exceeded %d tool-call rounds without a final answer", a.Name, maxToolRounds)
}
