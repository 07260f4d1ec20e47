// Package batch implements the batch-with-retry-and-fallback discipline
// every pipeline stage uses when calling out to an LLM or a flaky data
// source (§4.7, §4.8): process items batch_size at a time in a single call,
// retry a batch up to max_retries for whichever items are still missing,
// and synthesize a fallback record for anything that never succeeds so
// |output| == |input| always holds.
package batch

import (
	"context"

	"github.com/tpham/dailycard/internal/telemetry"
)

const (
	DefaultBatchSize  = 5
	DefaultMaxRetries = 2
)

// IDFunc extracts the identifier used to match an input item to the result
// it eventually produces, independent of slice position or count.
type IDFunc[T any] func(item T) string

// ResultIDFunc extracts the identifier a produced result belongs to.
type ResultIDFunc[R any] func(result R) string

// Processor turns a chunk of inputs into results. It is not required to
// return one result per item — a partial response (some game_ids present,
// others missing) is expected and handled by Process, not treated as a
// failure on its own. A returned error means the call itself failed.
type Processor[T any, R any] func(ctx context.Context, items []T) ([]R, error)

// Fallback synthesizes a placeholder result for an item whose id never
// appeared in any attempt's results, so the output slice never comes up
// short.
type Fallback[T any, R any] func(item T) R

// Process runs items through proc in batches of batchSize, retrying a batch
// up to maxRetries times for whatever items are still unaccounted for, and
// falling back only the items genuinely missing once retries are exhausted.
// Items already produced by an earlier attempt are kept even if a later
// attempt on the same chunk errors or returns an incomplete set. The
// returned slice always has exactly len(items) elements in the same order.
func Process[T any, R any](ctx context.Context, items []T, batchSize, maxRetries int, idOf IDFunc[T], resultID ResultIDFunc[R], proc Processor[T, R], fallback Fallback[T, R]) []R {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if maxRetries < 0 {
		maxRetries = DefaultMaxRetries
	}

	out := make([]R, 0, len(items))
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		chunk := items[start:end]
		out = append(out, processChunk(ctx, chunk, maxRetries, idOf, resultID, proc, fallback)...)
	}
	return out
}

func processChunk[T any, R any](ctx context.Context, chunk []T, maxRetries int, idOf IDFunc[T], resultID ResultIDFunc[R], proc Processor[T, R], fallback Fallback[T, R]) []R {
	produced := make(map[string]R, len(chunk))
	remaining := chunk
	var lastErr error

	for attempt := 0; attempt <= maxRetries && len(remaining) > 0; attempt++ {
		results, err := proc(ctx, remaining)
		if err != nil {
			lastErr = err
		}
		for _, r := range results {
			produced[resultID(r)] = r
		}
		remaining = missingItems(chunk, produced, idOf)
		if len(remaining) > 0 && attempt < maxRetries {
			telemetry.Metrics.BatchRetries.Inc()
			telemetry.Warnf("batch: %d/%d item(s) missing after attempt %d/%d (%v), retrying",
				len(remaining), len(chunk), attempt+1, maxRetries+1, lastErr)
		}
	}

	if len(remaining) > 0 {
		telemetry.Warnf("batch: %d item(s) exhausted retries, inserting fallback records", len(remaining))
		for _, item := range remaining {
			telemetry.Metrics.FallbackRecords.Inc()
			produced[idOf(item)] = fallback(item)
		}
	}

	out := make([]R, len(chunk))
	for i, item := range chunk {
		out[i] = produced[idOf(item)]
	}
	return out
}

func missingItems[T any, R any](chunk []T, produced map[string]R, idOf IDFunc[T]) []T {
	var out []T
	for _, item := range chunk {
		if _, ok := produced[idOf(item)]; !ok {
			out = append(out, item)
		}
	}
	return out
}
