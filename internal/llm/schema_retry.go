package llm

import "strings"

// isSchemaRefusal reports whether err looks like the provider rejected the
// structured-output schema itself, rather than failing for some unrelated
// reason, so the caller can retry once without a schema instead of treating
// it as a hard failure (§4.6 step 4).
func isSchemaRefusal(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"schema", "response_format", "responseschema", "json_schema"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
