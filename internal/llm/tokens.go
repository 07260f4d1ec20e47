package llm

// MaxOutputTokens picks an output budget tiered by prompt size (§9): small
// prompts get a small ceiling so a runaway completion doesn't silently
// double the token bill, while research-heavy prompts get room to answer.
func MaxOutputTokens(promptTokens int) int {
	switch {
	case promptTokens <= 10_000:
		return 8_000
	case promptTokens <= 20_000:
		return 12_000
	default:
		return 16_000
	}
}

// EstimateTokens is a cheap stand-in for a real tokenizer: ~4 characters
// per token holds up well enough across the prompt shapes this pipeline
// sends (mostly English prose and JSON) to size the output budget above.
func EstimateTokens(text string) int {
	return len(text) / 4
}
