package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Synthetic score ramps for regex-extracted keywords. Position in the
// length-sorted list stands in for model-assessed importance.
const (
	regexHighCount   = 5
	regexMediumCount = 10
	regexHighBase    = 0.95
	regexHighStep    = 0.05
	regexMediumBase  = 0.75
	regexMediumStep  = 0.02
	regexLowBase     = 0.50
	regexLowStep     = 0.01
	regexScoreFloor  = 0.1
)

//nolint:gochecknoglobals
var wordPattern = regexp.MustCompile(`\b[a-z0-9][\w\-.]+[a-z0-9]\b`)

//nolint:gochecknoglobals
var regexStopWords = map[string]bool{
	"and": true, "the": true, "to": true, "of": true, "in": true, "for": true,
	"with": true, "on": true, "at": true, "from": true, "by": true, "about": true,
	"as": true, "an": true, "are": true, "be": true, "been": true, "being": true,
	"was": true, "were": true, "is": true, "am": true, "has": true, "have": true,
	"had": true, "do": true, "does": true, "did": true, "but": true, "or": true,
	"if": true, "then": true, "else": true, "when": true, "up": true, "down": true,
	"out": true, "off": true, "over": true, "under": true, "again": true,
	"further": true, "once": true, "here": true, "there": true, "all": true,
	"any": true, "both": true, "each": true, "few": true, "more": true,
	"most": true, "other": true, "some": true, "such": true, "no": true,
	"nor": true, "not": true, "only": true, "own": true, "same": true,
	"so": true, "than": true, "too": true, "very": true, "can": true,
	"will": true, "just": true, "should": true, "now": true, "a": true,
	"i": true, "you": true, "he": true, "she": true, "it": true, "we": true,
	"they": true, "this": true, "that": true, "these": true, "those": true,
}

// RegexExtract is the deterministic last-resort extractor used when no
// completion-based extraction yields keywords. It pulls single words and
// short phrases from the text and assigns synthetic scores by position, so
// the rest of the pipeline always has a PrioritySet to work with.
func RegexExtract(text string) (set *PrioritySet, flat []string) {
	lowered := strings.ToLower(text)
	words := wordPattern.FindAllString(lowered, -1)

	seen := map[string]bool{}
	for _, word := range words {
		if regexStopWords[word] || len(word) <= 2 {
			continue
		}
		if !seen[word] {
			seen[word] = true
			flat = append(flat, word)
		}
	}

	for _, phrase := range extractPhrases(words) {
		if !seen[phrase] {
			seen[phrase] = true
			flat = append(flat, phrase)
		}
	}

	// Longest first so the most specific terms land in the highest tiers.
	// Ties break lexicographically to keep the output deterministic.
	sort.SliceStable(flat, func(i, j int) bool {
		if len(flat[i]) != len(flat[j]) {
			return len(flat[i]) > len(flat[j])
		}
		return flat[i] < flat[j]
	})

	set = &PrioritySet{}
	for i, keyword := range flat {
		switch {
		case i < regexHighCount:
			score := regexHighBase - float64(i)*regexHighStep
			set.HighPriority = append(set.HighPriority, Record{Keyword: keyword, Score: score})
		case i < regexHighCount+regexMediumCount:
			score := regexMediumBase - float64(i-regexHighCount)*regexMediumStep
			set.MediumPriority = append(set.MediumPriority, Record{Keyword: keyword, Score: score})
		default:
			score := regexLowBase - float64(i-regexHighCount-regexMediumCount)*regexLowStep
			if score < regexScoreFloor {
				score = regexScoreFloor
			}
			set.LowPriority = append(set.LowPriority, Record{Keyword: keyword, Score: score})
		}
	}

	return set, flat
}

// extractPhrases walks consecutive word runs producing 2-gram and 3-gram
// phrases whose constituent words all survive the stop word filter.
func extractPhrases(words []string) (phrases []string) {
	usable := func(word string) bool {
		return !regexStopWords[word] && len(word) > 2
	}

	for i := 0; i < len(words)-1; i++ {
		if !usable(words[i]) || !usable(words[i+1]) {
			continue
		}
		phrases = append(phrases, words[i]+" "+words[i+1])
		if i+2 < len(words) && usable(words[i+2]) {
			phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
		}
	}

	return phrases
}
