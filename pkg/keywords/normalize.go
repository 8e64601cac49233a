package keywords

import (
	"fmt"
	"strings"
)

// Default scores assigned when a tier entry arrives without a usable score.
const (
	defaultHighScore   = 0.9
	defaultMediumScore = 0.7
	defaultLowScore    = 0.4
)

// Normalize converts a repaired JSON object into a PrioritySet. Model output
// varies in shape: tiers may live at the top level or under a "keywords"
// wrapper, and tier entries may be objects or bare strings. Normalization
// happens exactly once, here, so downstream code only ever sees the
// canonical shape. Tier exclusivity is enforced with high winning over
// medium winning over low.
func Normalize(obj map[string]interface{}) (set *PrioritySet) {
	set = &PrioritySet{}
	if obj == nil {
		set.ErrorMessage = "no content to normalize"
		return set
	}

	source := obj
	if wrapped, ok := obj["keywords"].(map[string]interface{}); ok {
		source = wrapped
	}

	seen := map[string]bool{}
	set.HighPriority = normalizeTier(source["high_priority"], defaultHighScore, seen)
	set.MediumPriority = normalizeTier(source["medium_priority"], defaultMediumScore, seen)
	set.LowPriority = normalizeTier(source["low_priority"], defaultLowScore, seen)

	if fallback, ok := obj["fallback_extraction"].(map[string]interface{}); ok {
		set.FallbackExtraction = map[string]string{}
		for k, v := range fallback {
			set.FallbackExtraction[k] = fmt.Sprintf("%v", v)
		}
	}

	if msg, ok := obj["error"].(string); ok {
		set.ErrorMessage = msg
	}
	if raw, ok := obj["raw_content"].(string); ok {
		set.RawContent = raw
	}

	return set
}

// normalizeTier accepts a tier value in any of the shapes models produce
// and returns clean records, skipping entries already claimed by a higher
// tier.
func normalizeTier(value interface{}, defaultScore float64, seen map[string]bool) (records []Record) {
	entries, ok := value.([]interface{})
	if !ok {
		return records
	}

	for _, entry := range entries {
		record, ok := normalizeEntry(entry, defaultScore)
		if !ok {
			continue
		}

		key := normalizeForCompare(record.Keyword)
		if seen[key] {
			continue
		}
		seen[key] = true

		records = append(records, record)
	}

	return records
}

func normalizeEntry(entry interface{}, defaultScore float64) (record Record, ok bool) {
	switch v := entry.(type) {
	case string:
		record.Keyword = strings.TrimSpace(v)
		record.Score = defaultScore
	case map[string]interface{}:
		keyword, _ := v["keyword"].(string)
		record.Keyword = strings.TrimSpace(keyword)
		record.Score = numericField(v["score"], defaultScore)
		if priority, isString := v["priority"].(string); isString {
			record.Priority = priority
		}
		if userAdded, isBool := v["user_added"].(bool); isBool {
			record.UserAdded = userAdded
		}
	default:
		return record, false
	}

	if record.Keyword == "" {
		return record, false
	}

	record.Score = clampScore(record.Score)
	ok = true
	return record, ok
}

func numericField(value interface{}, fallback float64) (score float64) {
	switch v := value.(type) {
	case float64:
		score = v
	case int:
		score = float64(v)
	case string:
		if _, err := fmt.Sscanf(v, "%f", &score); err != nil {
			score = fallback
		}
	default:
		score = fallback
	}
	return score
}

func clampScore(score float64) (clamped float64) {
	clamped = score
	if clamped < 0 {
		clamped = 0
	}
	if clamped > 1 {
		clamped = 1
	}
	return clamped
}
