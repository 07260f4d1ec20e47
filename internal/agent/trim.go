package agent

import (
	"encoding/json"
	"strings"
)

// Trim enforces the §5 result-size discipline: a tool result can blow the
// context budget long before the model ever uses most of it, so results
// are capped hard rather than summarized.
const (
	maxResultBytes  = 8 * 1024
	maxContentBytes = 2 * 1024
	maxStringBytes  = 1 * 1024
	maxArrayItems   = 20
)

const truncationSentinel = "…[truncated]"

// Trim caps a raw tool result string to maxResultBytes. If it decodes as
// JSON, per-field caps are applied first (strings, then arrays) so the
// truncation falls on the least useful part of the payload instead of
// slicing the raw bytes mid-structure.
func Trim(raw string) string {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		trimmed := trimValue(parsed, "")
		if b, err := json.Marshal(trimmed); err == nil {
			raw = string(b)
		}
	}

	if len(raw) <= maxResultBytes {
		return raw
	}
	return raw[:maxResultBytes] + truncationSentinel
}

func trimValue(v any, fieldName string) any {
	switch t := v.(type) {
	case string:
		return trimString(t, fieldName)
	case []any:
		return trimArray(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = trimValue(val, k)
		}
		return out
	default:
		return v
	}
}

// trimString caps the content field at maxContentBytes and every other
// string field at maxStringBytes (§4.7).
func trimString(s, fieldName string) string {
	cap := maxStringBytes
	if fieldName == "content" {
		cap = maxContentBytes
	}
	if len(s) <= cap {
		return s
	}
	return s[:cap] + truncationSentinel
}

// trimArray cuts an oversized array down to maxArrayItems, preferring items
// flagged as advanced-stats content over the rest (§4.7) since those are
// what the Model agent actually reasons over.
func trimArray(items []any) []any {
	ordered := items
	if len(items) > maxArrayItems {
		ordered = prioritizeAdvancedStats(items)
	}
	n := len(ordered)
	if n > maxArrayItems {
		n = maxArrayItems
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = trimValue(ordered[i], "")
	}
	return out
}

// prioritizeAdvancedStats reorders items so ones flagged as advanced-stats
// content sort ahead of everything else, without otherwise disturbing
// relative order within each group.
func prioritizeAdvancedStats(items []any) []any {
	out := make([]any, 0, len(items))
	var rest []any
	for _, it := range items {
		if isAdvancedStats(it) {
			out = append(out, it)
		} else {
			rest = append(rest, it)
		}
	}
	return append(out, rest...)
}

func isAdvancedStats(v any) bool {
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	for k, val := range m {
		lk := strings.ToLower(k)
		if strings.Contains(lk, "advanced") || strings.Contains(lk, "stats") {
			return true
		}
		if s, ok := val.(string); ok && strings.Contains(strings.ToLower(s), "advanced stat") {
			return true
		}
	}
	return false
}
