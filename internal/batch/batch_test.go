package batch

import (
	"context"
	"errors"
	"strconv"
	"testing"
)

func TestProcessPreservesLengthOnSuccess(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	proc := func(_ context.Context, chunk []int) ([]int, error) {
		out := make([]int, len(chunk))
		for i, v := range chunk {
			out[i] = v * 2
		}
		return out, nil
	}
	fallback := func(v int) int { return -1 }

	idOf := func(v int) string { return strconv.Itoa(v) }
	resultID := func(r int) string { return strconv.Itoa(r / 2) }
	out := Process(context.Background(), items, 3, 2, idOf, resultID, proc, fallback)
	if len(out) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(out))
	}
	for i, v := range items {
		if out[i] != v*2 {
			t.Errorf("item %d: expected %d, got %d", i, v*2, out[i])
		}
	}
}

func TestProcessInsertsFallbackOnPersistentFailure(t *testing.T) {
	items := []int{1, 2, 3}
	calls := 0
	proc := func(_ context.Context, chunk []int) ([]int, error) {
		calls++
		return nil, errors.New("boom")
	}
	fallback := func(v int) int { return -1 }

	idOf := func(v int) string { return strconv.Itoa(v) }
	resultID := func(r int) string { return strconv.Itoa(r) }
	out := Process(context.Background(), items, 5, 2, idOf, resultID, proc, fallback)
	if len(out) != len(items) {
		t.Fatalf("expected %d results (fallback), got %d", len(items), len(out))
	}
	for _, v := range out {
		if v != -1 {
			t.Errorf("expected fallback value -1, got %d", v)
		}
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts (1 + 2 retries), got %d", calls)
	}
}
