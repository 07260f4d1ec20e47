package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tpham/dailycard/internal/llm"
	"github.com/tpham/dailycard/internal/telemetry"
)

const maxConcurrentTools = 10

// ToolResult carries one dispatched call's outcome back to the caller,
// keyed by the originating call ID so multiple calls to the same
// deduplicated tool+args still get individually addressed tool messages.
type ToolResult struct {
	CallID  string
	Content string
}

// dedupKey canonicalizes a tool call's name and arguments so identical
// calls within one round (a model re-requesting "search same query" twice)
// execute once and share a result (§5, "Tool Dispatcher": dedup by
// canonical argument tuple).
func dedupKey(call llm.ToolCall) string {
	keys := make([]string, 0, len(call.Arguments))
	for k := range call.Arguments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b, _ := json.Marshal(orderedArgs(call.Arguments, keys))
	return call.Name + "|" + string(b)
}

func orderedArgs(args map[string]any, keys []string) []any {
	out := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		out = append(out, k, args[k])
	}
	return out
}

// Dispatch executes every requested tool call, deduplicating identical
// calls and bounding concurrency to maxConcurrentTools workers.
func Dispatch(ctx context.Context, calls []llm.ToolCall, handlers map[string]ToolHandler) []ToolResult {
	telemetry.Metrics.ToolCallsRequested.Add(int64(len(calls)))

	var mu sync.Mutex
	content := make(map[string]string)     // dedupKey -> result content, written exactly once
	claimed := make(map[string]chan struct{}) // dedupKey -> closed once content[key] is ready
	results := make([]ToolResult, len(calls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentTools)

	for i, call := range calls {
		i, call := i, call
		key := dedupKey(call)

		g.Go(func() error {
			mu.Lock()
			ch, alreadyClaimed := claimed[key]
			if alreadyClaimed {
				mu.Unlock()
				<-ch
				mu.Lock()
				c := content[key]
				mu.Unlock()
				results[i] = ToolResult{CallID: call.ID, Content: c}
				return nil
			}
			ch = make(chan struct{})
			claimed[key] = ch
			mu.Unlock()

			var c string
			handler, ok := handlers[call.Name]
			if !ok {
				c = fmt.Sprintf("error: unknown tool %q", call.Name)
			} else {
				telemetry.Metrics.ToolCallsExecuted.Inc()
				out, err := handler(gctx, call)
				if err != nil {
					out = fmt.Sprintf("error: %v", err)
				}
				c = Trim(out)
			}

			mu.Lock()
			content[key] = c
			mu.Unlock()
			close(ch)

			results[i] = ToolResult{CallID: call.ID, Content: c}
			return nil
		})
	}

	_ = g.Wait() // handlers never return a fatal error; failures are encoded in content

	return results
}
