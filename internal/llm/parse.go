package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/tpham/dailycard/internal/telemetry"
)

var fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// ParseStructured runs the model's raw text content through the §9 recovery
// ladder: a well-behaved model response parses on stage one, and each later
// stage only fires because the one before it failed.
//
//  1. direct json.Unmarshal
//  2. the first {...} object, scanning outer to inner, that has requiredKey
//     as a top-level key, by brace scanning
//  3. the first fenced ```json code block
//  4. structural repair (unbalanced braces, trailing commas, unquoted keys)
//
// If every stage fails, out stays at its zero value and the caller is
// responsible for logging the raw content and marking the record
// data_unavailable.
func ParseStructured(raw string, requiredKey string, out any) bool {
	if json.Unmarshal([]byte(raw), out) == nil {
		return true
	}

	if obj := extractInnermostObject(raw, requiredKey); obj != "" {
		if json.Unmarshal([]byte(obj), out) == nil {
			return true
		}
	}

	if m := fencedBlockRe.FindStringSubmatch(raw); len(m) == 2 {
		candidate := strings.TrimSpace(m[1])
		if json.Unmarshal([]byte(candidate), out) == nil {
			return true
		}
		if repaired, err := jsonrepair.RepairJSON(candidate); err == nil {
			if json.Unmarshal([]byte(repaired), out) == nil {
				return true
			}
		}
	}

	if repaired, err := jsonrepair.RepairJSON(raw); err == nil {
		if json.Unmarshal([]byte(repaired), out) == nil {
			return true
		}
	}

	telemetry.Warnf("llm: all parse stages failed, raw content: %s", truncateForLog(raw))
	return false
}

// extractInnermostObject scans for the first { that opens a brace-balanced
// object whose decoded top-level keys include requiredKey. A wrapper object
// that only nests the key deeper is skipped, so the scan reaches the inner
// object a naive greedy regex would miss on nested JSON.
func extractInnermostObject(raw, requiredKey string) string {
	for start := 0; start < len(raw); start++ {
		if raw[start] != '{' {
			continue
		}
		depth := 0
		inString := false
		escaped := false
		for end := start; end < len(raw); end++ {
			c := raw[end]
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
				// inside a string literal, braces don't count
			case c == '{':
				depth++
			case c == '}':
				depth--
				if depth == 0 {
					candidate := raw[start : end+1]
					if requiredKey == "" {
						return candidate
					}
					var keys map[string]json.RawMessage
					if json.Unmarshal([]byte(candidate), &keys) == nil {
						if _, ok := keys[requiredKey]; ok {
							return candidate
						}
					}
					goto nextStart
				}
			}
		}
	nextStart:
	}
	return ""
}

func truncateForLog(s string) string {
	const max = 2000
	if len(s) <= max {
		return s
	}
	return s[:max] + "…[truncated]"
}
