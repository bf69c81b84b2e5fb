package tokenizer

import (
	"strings"
)

// Tokenize converts a string into a slice of tokens.
// It lowercases the string, splits it on whitespace and trims each token.
func Tokenize(text string) []string {
	split := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(split)) // Initialize as empty slice, not nil
	for _, s := range split {
		s = strings.TrimSpace(s)
		if s != "" { // Filter out empty strings
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// TokenizeAll tokenizes every text and returns the distinct tokens in first-seen order.
func TokenizeAll(texts ...string) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{})

	for _, text := range texts {
		for _, token := range Tokenize(text) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			result = append(result, token)
		}
	}
	return result
}

// NGrams returns the set of contiguous length-n substrings of s (sliding window, no wraparound).
// Strings shorter than n produce an empty set.
func NGrams(s string, n int) map[string]struct{} {
	runes := []rune(s)
	grams := make(map[string]struct{})
	if n <= 0 || len(runes) < n {
		return grams
	}
	for i := 0; i+n <= len(runes); i++ {
		grams[string(runes[i:i+n])] = struct{}{}
	}
	return grams
}
