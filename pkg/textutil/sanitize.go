package textutil

import (
	"regexp"
	"strings"
)

//nolint:gochecknoglobals // compiled once
var whitespaceRun = regexp.MustCompile(`\s+`)

// Sanitize normalizes free text for embedding in prompts and for regex work
// that assumes single-line input. Newlines and carriage returns become spaces,
// embedded double quotes and backslashes are escaped, whitespace runs collapse
// to single spaces, and the ends are trimmed. Empty input yields an empty
// string. Sanitize is idempotent: already-escaped sequences are left alone.
func Sanitize(text string) (sanitized string) {
	if text == "" {
		return sanitized
	}

	sanitized = strings.ReplaceAll(text, "\n", " ")
	sanitized = strings.ReplaceAll(sanitized, "\r", " ")

	sanitized = escapeQuotesAndBackslashes(sanitized)

	sanitized = whitespaceRun.ReplaceAllString(sanitized, " ")
	sanitized = strings.TrimSpace(sanitized)

	return sanitized
}

// escapeQuotesAndBackslashes escapes quotes and backslashes in a single pass.
// An existing `\"` or `\\` pair is treated as a unit and copied through, which
// keeps the whole transform idempotent.
func escapeQuotesAndBackslashes(text string) (escaped string) {
	var sb strings.Builder
	sb.Grow(len(text) + 8)

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch ch {
		case '\\':
			if i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\') {
				// Already an escape pair.
				sb.WriteRune(ch)
				sb.WriteRune(runes[i+1])
				i++
				continue
			}
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		default:
			sb.WriteRune(ch)
		}
	}

	escaped = sb.String()
	return escaped
}

// ExpandKeyword returns basic variations and components of a keyword: the
// keyword itself, its lowercase form, the individual words of a compound
// phrase, and a reversed word order for two- and three-word phrases.
// Duplicates and empty strings are removed; the original keyword comes first.
func ExpandKeyword(keyword string) (variations []string) {
	seen := make(map[string]bool)

	add := func(v string) {
		if v == "" || seen[v] {
			return
		}
		seen[v] = true
		variations = append(variations, v)
	}

	add(keyword)
	add(strings.ToLower(keyword))

	if strings.Contains(keyword, " ") {
		components := strings.Fields(keyword)
		for _, c := range components {
			add(c)
		}

		if len(components) == 2 || len(components) == 3 {
			reversed := make([]string, len(components))
			for i, c := range components {
				reversed[len(components)-1-i] = c
			}
			add(strings.Join(reversed, " "))
		}
	}

	return variations
}
