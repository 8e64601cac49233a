package repair

import (
	"regexp"
	"strings"
)

// transform is one search-and-fix rule for a JSON mistake models make.
type transform struct {
	name  string
	apply func(text string) (fixed string)
}

//nolint:gochecknoglobals // compiled once
var (
	bareKeyPattern        = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)(\s*):`)
	trailingCommaPattern  = regexp.MustCompile(`,(\s*[\]}])`)
	bareValuePattern      = regexp.MustCompile(`:(\s*)([A-Za-z][^",:{}\[\]]*?)(\s*[,}\]])`)
	adjacentObjectPattern = regexp.MustCompile(`}(\s*){`)
	adjacentStringPattern = regexp.MustCompile(`"(\s+)"`)
	numberBeforeBrace     = regexp.MustCompile(`(\d)(\s*){`)
	numberBeforeQuote     = regexp.MustCompile(`(\d)(\s+)"`)
	danglingPairPattern   = regexp.MustCompile(`"[^"]+"\s*:\s*("[^"]*"|[\d.]+)\s*$`)
	tierArrayPattern      = regexp.MustCompile(`"(high|medium|low)_priority"\s*:\s*\[`)
)

// transforms returns the repair battery in application order. Each rule
// targets a malformation observed in truncated or sloppy model output.
func transforms() (battery []transform) {
	battery = []transform{
		{name: "balance delimiters", apply: balanceDelimiters},
		{name: "single to double quotes", apply: func(s string) string {
			return strings.ReplaceAll(s, "'", `"`)
		}},
		{name: "quote bare keys", apply: func(s string) string {
			return bareKeyPattern.ReplaceAllString(s, `$1"$2"$3:`)
		}},
		{name: "strip trailing commas", apply: func(s string) string {
			return trailingCommaPattern.ReplaceAllString(s, `$1`)
		}},
		{name: "quote bare values", apply: quoteBareValues},
		{name: "comma between objects", apply: func(s string) string {
			return adjacentObjectPattern.ReplaceAllString(s, `},$1{`)
		}},
		{name: "comma between strings", apply: func(s string) string {
			return adjacentStringPattern.ReplaceAllString(s, `",$1"`)
		}},
		{name: "comma after number", apply: func(s string) string {
			s = numberBeforeBrace.ReplaceAllString(s, `$1,$2{`)
			return numberBeforeQuote.ReplaceAllString(s, `$1,$2"`)
		}},
		{name: "close unterminated string", apply: closeUnterminatedString},
		{name: "close dangling pair", apply: closeDanglingPair},
		{name: "truncate tier array", apply: truncateTierArray},
	}
	return battery
}

// balanceDelimiters appends closers for any surplus of openers than closers.
func balanceDelimiters(text string) (fixed string) {
	fixed = text

	inString := false
	escaped := false
	braces := 0
	brackets := 0

	for _, ch := range text {
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '{':
			if !inString {
				braces++
			}
		case '}':
			if !inString {
				braces--
			}
		case '[':
			if !inString {
				brackets++
			}
		case ']':
			if !inString {
				brackets--
			}
		}
	}

	for ; brackets > 0; brackets-- {
		fixed += "]"
	}
	for ; braces > 0; braces-- {
		fixed += "}"
	}

	return fixed
}

// quoteBareValues wraps unquoted scalar values in quotes, leaving JSON
// literals alone.
func quoteBareValues(text string) (fixed string) {
	fixed = bareValuePattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := bareValuePattern.FindStringSubmatch(m)
		value := strings.TrimSpace(sub[2])
		if value == "true" || value == "false" || value == "null" {
			return m
		}
		return ":" + sub[1] + `"` + value + `"` + sub[3]
	})
	return fixed
}

// closeUnterminatedString appends a closing quote when the text ends inside a
// string literal.
func closeUnterminatedString(text string) (fixed string) {
	fixed = text

	inString := false
	escaped := false
	for _, ch := range text {
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		}
	}

	if inString {
		fixed += `"`
	}

	return fixed
}

// closeDanglingPair closes a trailing key/value pair or a trailing opener
// that the model never finished.
func closeDanglingPair(text string) (fixed string) {
	fixed = strings.TrimRight(text, " \t\n\r")

	switch {
	case danglingPairPattern.MatchString(fixed):
		fixed += "}"
	case strings.HasSuffix(fixed, ","):
		fixed = strings.TrimSuffix(fixed, ",") + "}"
	case strings.HasSuffix(fixed, "{"):
		fixed += "}"
	case strings.HasSuffix(fixed, "["):
		fixed += "]"
	}

	return fixed
}

// truncateTierArray handles output cut off mid-array inside a priority tier:
// the array is wound back to its last complete element, then the array and
// the enclosing object are closed.
func truncateTierArray(text string) (fixed string) {
	fixed = text

	loc := tierArrayPattern.FindStringIndex(text)
	if loc == nil {
		return fixed
	}

	remaining := text[loc[0]:]
	if strings.Count(remaining, "[") <= strings.Count(remaining, "]") {
		return fixed
	}

	lastComplete := strings.LastIndex(text, "}")
	if lastComplete <= loc[0] {
		return fixed
	}

	fixed = text[:lastComplete+1] + "]}"
	return fixed
}
