package repair

import (
	"regexp"
	"strconv"
)

//nolint:gochecknoglobals // compiled once
var (
	// Tolerates the missing-comma variant between "keyword" and "score".
	keywordFragmentPattern = regexp.MustCompile(`\{\s*"keyword"\s*:\s*"([^"]+)"\s*,?\s*"score"\s*:\s*([\d.]+)\s*\}`)
	keyValuePattern        = regexp.MustCompile(`"([^"]+)"\s*:\s*"([^"]+)"`)
)

// reconstruct is the last rung: scan the raw text for keyword/score shaped
// fragments and rebuild a priority structure from whatever survived. With no
// such fragments, any quoted key/value pairs land in a fallback_extraction
// bucket; with nothing at all, an error object is returned. Always succeeds.
func (e *Engine) reconstruct(raw string) (obj map[string]interface{}, ok bool) {
	ok = true

	high := []interface{}{}
	medium := []interface{}{}
	low := []interface{}{}

	matches := keywordFragmentPattern.FindAllStringSubmatch(raw, -1)
	for _, m := range matches {
		score, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		record := map[string]interface{}{"keyword": m[1], "score": score}
		switch {
		case score >= e.thresholds.High:
			high = append(high, record)
		case score >= e.thresholds.Medium:
			medium = append(medium, record)
		default:
			low = append(low, record)
		}
	}

	if len(high)+len(medium)+len(low) > 0 {
		obj = map[string]interface{}{
			"high_priority":   high,
			"medium_priority": medium,
			"low_priority":    low,
		}
		return obj, ok
	}

	kvMatches := keyValuePattern.FindAllStringSubmatch(raw, -1)
	if len(kvMatches) > 0 {
		fallback := map[string]interface{}{}
		for _, m := range kvMatches {
			fallback[m[1]] = m[2]
		}
		obj = map[string]interface{}{
			"high_priority":       high,
			"medium_priority":     medium,
			"low_priority":        low,
			"fallback_extraction": fallback,
		}
		return obj, ok
	}

	obj = errorObject(raw)
	return obj, ok
}
