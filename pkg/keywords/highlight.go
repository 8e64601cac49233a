package keywords

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// CSS classes emitted per tier.
const (
	highPriorityClass   = "high-priority-keyword"
	mediumPriorityClass = "medium-priority-keyword"
	lowPriorityClass    = "low-priority-keyword"
)

//nolint:gochecknoglobals
var markSpanPattern = regexp.MustCompile(`<mark\b[^>]*>.*?</mark>`)

func tierClass(tier string) (class string) {
	switch tier {
	case TierHigh:
		class = highPriorityClass
	case TierMedium:
		class = mediumPriorityClass
	default:
		class = lowPriorityClass
	}
	return class
}

// HighlightByPriority wraps every keyword from the set that occurs in text
// with an HTML mark tag carrying its tier class and score. Tiers are
// processed high to medium to low. Within a tier, longer keywords are
// wrapped first so a short keyword cannot be spuriously matched inside a
// longer phrase, with score breaking length ties. Matching is word-bounded
// and case-insensitive. As a side effect the set's FoundKeywords records
// which keywords matched, per tier. Newlines in the result become <br>
// tags.
func HighlightByPriority(text string, set *PrioritySet) (marked string) {
	marked = text
	found := &TierRecords{}
	anyFound := false

	for _, view := range set.tiers() {
		records := make([]Record, len(view.records))
		copy(records, view.records)

		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Score > records[j].Score
		})
		sort.SliceStable(records, func(i, j int) bool {
			return len(records[i].Keyword) > len(records[j].Keyword)
		})

		class := tierClass(view.name)
		for _, record := range records {
			keyword := strings.TrimSpace(record.Keyword)
			if keyword == "" {
				continue
			}

			pattern, err := keywordPattern(keyword)
			if err != nil {
				continue
			}

			replacement := `<mark class="` + class + `" data-score="` +
				strconv.FormatFloat(record.Score, 'g', -1, 64) + `">` + keyword + `</mark>`
			var matched bool
			marked, matched = replaceOutsideMarks(marked, pattern, replacement)
			if !matched {
				continue
			}

			anyFound = true
			switch view.name {
			case TierHigh:
				found.HighPriority = append(found.HighPriority, record)
			case TierMedium:
				found.MediumPriority = append(found.MediumPriority, record)
			default:
				found.LowPriority = append(found.LowPriority, record)
			}
		}
	}

	// Last resort when no tiered keyword matched: bare marks for the flat
	// missing list.
	if !anyFound {
		for _, record := range set.MissingKeywords {
			keyword := strings.TrimSpace(record.Keyword)
			if keyword == "" {
				continue
			}
			pattern, err := keywordPattern(keyword)
			if err != nil {
				continue
			}
			marked, _ = replaceOutsideMarks(marked, pattern, "<mark>"+keyword+"</mark>")
		}
	}

	set.FoundKeywords = found
	marked = strings.ReplaceAll(marked, "\n", "<br>")
	return marked
}

// HighlightFound wraps the keywords the FoundMap marks true, using the
// tier class from the set when the keyword belongs to one and the medium
// class otherwise. Newlines become <br> tags before matching so highlight
// spans never cross them.
func HighlightFound(text string, found FoundMap, set *PrioritySet) (marked string) {
	marked = strings.ReplaceAll(text, "\n", "<br>")

	// Deterministic iteration: longest keywords first, then lexicographic.
	keywordList := make([]string, 0, len(found))
	for keyword, ok := range found {
		if ok {
			keywordList = append(keywordList, keyword)
		}
	}
	sort.SliceStable(keywordList, func(i, j int) bool {
		if len(keywordList[i]) != len(keywordList[j]) {
			return len(keywordList[i]) > len(keywordList[j])
		}
		return keywordList[i] < keywordList[j]
	})

	for _, keyword := range keywordList {
		tier := TierMedium
		if set != nil {
			if t, ok := set.TierOf(keyword); ok {
				tier = t
			}
		}

		pattern, err := keywordPattern(keyword)
		if err != nil {
			continue
		}
		replacement := `<mark class="` + tierClass(tier) + `">` + keyword + `</mark>`
		marked, _ = replaceOutsideMarks(marked, pattern, replacement)
	}

	return marked
}

func keywordPattern(keyword string) (pattern *regexp.Regexp, err error) {
	pattern, err = regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	return pattern, err
}

// replaceOutsideMarks applies pattern replacement only to the stretches of
// text not already inside a mark tag, so a short keyword never matches
// within a longer phrase that was wrapped earlier (or within the tag's own
// attributes).
func replaceOutsideMarks(text string, pattern *regexp.Regexp, replacement string) (result string, matched bool) {
	spans := markSpanPattern.FindAllStringIndex(text, -1)

	var sb strings.Builder
	prev := 0
	for _, span := range spans {
		segment := text[prev:span[0]]
		if pattern.MatchString(segment) {
			matched = true
		}
		sb.WriteString(pattern.ReplaceAllLiteralString(segment, replacement))
		sb.WriteString(text[span[0]:span[1]])
		prev = span[1]
	}

	tail := text[prev:]
	if pattern.MatchString(tail) {
		matched = true
	}
	sb.WriteString(pattern.ReplaceAllLiteralString(tail, replacement))

	result = sb.String()
	return result, matched
}
