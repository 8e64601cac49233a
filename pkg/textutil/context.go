package textutil

import (
	"regexp"
	"strings"
)

// FuzzyMatchThreshold is the default similarity required for a fuzzy match.
const FuzzyMatchThreshold = 0.8

//nolint:gochecknoglobals // compiled once
var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// FuzzyMatch reports whether keyword appears in text, either verbatim
// (case-insensitive) or as a sliding word window whose bigram similarity to
// the keyword meets threshold. It returns the matching span when found.
func FuzzyMatch(text, keyword string, threshold float64) (found bool, match string) {
	if keyword == "" || text == "" {
		return found, match
	}

	if strings.Contains(strings.ToLower(text), strings.ToLower(keyword)) {
		found = true
		match = keyword
		return found, match
	}

	keywordWords := strings.Fields(keyword)

	for _, sentence := range sentenceSplit.Split(text, -1) {
		words := strings.Fields(sentence)
		windowSize := len(keywordWords) + 2
		if windowSize > len(words) {
			windowSize = len(words)
		}
		if windowSize == 0 {
			continue
		}

		for i := 0; i+windowSize <= len(words); i++ {
			window := strings.Join(words[i:i+windowSize], " ")
			if bigramSimilarity(strings.ToLower(window), strings.ToLower(keyword)) >= threshold {
				found = true
				match = window
				return found, match
			}
		}
	}

	return found, match
}

// bigramSimilarity computes the Dice coefficient over character bigrams.
func bigramSimilarity(a, b string) (similarity float64) {
	if a == b {
		similarity = 1.0
		return similarity
	}
	if len(a) < 2 || len(b) < 2 {
		return similarity
	}

	bigrams := make(map[string]int)
	for i := 0; i+2 <= len(a); i++ {
		bigrams[a[i:i+2]]++
	}

	matches := 0
	for i := 0; i+2 <= len(b); i++ {
		if bigrams[b[i:i+2]] > 0 {
			bigrams[b[i:i+2]]--
			matches++
		}
	}

	similarity = 2.0 * float64(matches) / float64(len(a)+len(b)-2)
	return similarity
}

// ExtractContext returns up to contextSize characters of surrounding text on
// each side of the first occurrence of keyword, with ellipses marking
// truncation. Falls back to fuzzy matching when the keyword is not present
// verbatim. Returns an empty string when no match exists.
func ExtractContext(text, keyword string, contextSize int) (context string) {
	textLower := strings.ToLower(text)
	keywordLower := strings.ToLower(keyword)

	if !strings.Contains(textLower, keywordLower) {
		found, match := FuzzyMatch(text, keyword, FuzzyMatchThreshold)
		if !found {
			return context
		}
		keywordLower = strings.ToLower(match)
	}

	pos := strings.Index(textLower, keywordLower)
	if pos < 0 {
		return context
	}

	start := pos - contextSize
	if start < 0 {
		start = 0
	}
	end := pos + len(keywordLower) + contextSize
	if end > len(text) {
		end = len(text)
	}

	context = text[start:end]
	if start > 0 {
		context = "..." + context
	}
	if end < len(text) {
		context += "..."
	}

	return context
}
