package telemetry

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type Counter struct {
	val atomic.Int64
}

func (c *Counter) Inc()          { c.val.Add(1) }
func (c *Counter) Add(n int64)   { c.val.Add(n) }
func (c *Counter) Value() int64  { return c.val.Load() }

type Gauge struct {
	val atomic.Int64
}

func (g *Gauge) Set(v int64)    { g.val.Store(v) }
func (g *Gauge) Inc()           { g.val.Add(1) }
func (g *Gauge) Dec()           { g.val.Add(-1) }
func (g *Gauge) Value() int64   { return g.val.Load() }

type LatencyTracker struct {
	mu      sync.Mutex
	samples []time.Duration
	maxKeep int
}

func NewLatencyTracker(maxKeep int) *LatencyTracker {
	return &LatencyTracker{maxKeep: maxKeep}
}

func (lt *LatencyTracker) Record(d time.Duration) {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	lt.samples = append(lt.samples, d)
	if len(lt.samples) > lt.maxKeep {
		lt.samples = lt.samples[len(lt.samples)-lt.maxKeep:]
	}
}

func (lt *LatencyTracker) P50() time.Duration { return lt.percentile(0.50) }
func (lt *LatencyTracker) P99() time.Duration { return lt.percentile(0.99) }

func (lt *LatencyTracker) percentile(p float64) time.Duration {
	lt.mu.Lock()
	defer lt.mu.Unlock()
	if len(lt.samples) == 0 {
		return 0
	}
	sorted := make([]time.Duration, len(lt.samples))
	copy(sorted, lt.samples)
	// insertion sort â€” samples are small
	for i := 1; i < len(sorted); i++ {
		key := sorted[i]
		j := i - 1
		for j >= 0 && sorted[j] > key {
			sorted[j+1] = sorted[j]
			j--
		}
		sorted[j+1] = key
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// TokenUsage tracks prompt/completion tokens for one LLM provider client.
// The pipeline coordinator resets these at the start of a run and logs a
// cumulative summary at the end (§4.9).
type TokenUsage struct {
	PromptTokens     Counter
	CompletionTokens Counter
	Calls            Counter
}

func (t *TokenUsage) Reset() {
	t.PromptTokens.val.Store(0)
	t.CompletionTokens.val.Store(0)
	t.Calls.val.Store(0)
}

// Metrics is the global metrics registry.
var Metrics = struct {
	// Cache layer (§4.2)
	CacheHits   Counter
	CacheMisses Counter

	// Tool dispatcher (§4.7)
	ToolCallsRequested Counter
	ToolCallsExecuted  Counter // after dedup — should be <= ToolCallsRequested

	// Batcher (§4.8)
	BatchRetries     Counter
	FallbackRecords  Counter

	// Agent runtime (§4.6)
	ResearcherTokens TokenUsage
	ModelerTokens    TokenUsage
	PickerTokens     TokenUsage
	PresidentTokens  TokenUsage
	AuditorTokens    TokenUsage

	HTTPLatency *LatencyTracker
	LLMLatency  *LatencyTracker
}{
	HTTPLatency: NewLatencyTracker(1000),
	LLMLatency:  NewLatencyTracker(1000),
}

// ResetTokenUsage zeroes every agent's token counters. Called once at the
// start of each daily run (§4.9).
func ResetTokenUsage() {
	Metrics.ResearcherTokens.Reset()
	Metrics.ModelerTokens.Reset()
	Metrics.PickerTokens.Reset()
	Metrics.PresidentTokens.Reset()
	Metrics.AuditorTokens.Reset()
}

// TokenUsageSummary renders a one-line-per-agent cumulative usage report.
func TokenUsageSummary() string {
	agents := []struct {
		name string
		tu   *TokenUsage
	}{
		{"researcher", &Metrics.ResearcherTokens},
		{"modeler", &Metrics.ModelerTokens},
		{"picker", &Metrics.PickerTokens},
		{"president", &Metrics.PresidentTokens},
		{"auditor", &Metrics.AuditorTokens},
	}
	out := "token usage:"
	for _, a := range agents {
		out += fmt.Sprintf(" %s(calls=%d prompt=%d completion=%d)",
			a.name, a.tu.Calls.Value(), a.tu.PromptTokens.Value(), a.tu.CompletionTokens.Value())
	}
	return out
}
