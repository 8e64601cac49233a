// Package repair coerces malformed or truncated JSON from a language model
// into a usable object. Parsing degrades through four tiers: strict parse,
// syntactic repair, extraction of the largest object span, and minimal
// reconstruction by pattern matching. The engine never fails; the worst case
// is an object carrying an error marker and the raw content.
package repair

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/tidwall/gjson"
)

// Thresholds classifies reconstructed keyword records into priority tiers by
// score. The defaults mirror the scoring convention used by the extraction
// prompts; they are policy, not law.
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns the standard tier classification policy.
func DefaultThresholds() (th Thresholds) {
	th = Thresholds{High: 0.9, Medium: 0.6}
	return th
}

// Engine repairs structured model output.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates a repair engine with the given tier thresholds.
func NewEngine(th Thresholds) (engine *Engine) {
	engine = &Engine{thresholds: th}
	return engine
}

// ParseStructured parses raw with the default engine. See Engine.Parse.
func ParseStructured(raw string) (obj map[string]interface{}) {
	obj = NewEngine(DefaultThresholds()).Parse(raw)
	return obj
}

// strategy is one named rung of the repair ladder.
type strategy struct {
	name string
	run  func(raw string) (obj map[string]interface{}, ok bool)
}

// Parse always returns a non-nil object. Valid JSON objects come back
// exactly as encoding/json would decode them; anything else goes through the
// repair ladder until some strategy produces an object.
func (e *Engine) Parse(raw string) (obj map[string]interface{}) {
	strategies := []strategy{
		{name: "strict", run: parseStrict},
		{name: "syntactic", run: repairSyntax},
		{name: "extract", run: extractObjectSpan},
		{name: "reconstruct", run: e.reconstruct},
	}

	for _, s := range strategies {
		var ok bool
		obj, ok = s.run(raw)
		if ok {
			if s.name != "strict" {
				slog.Debug("repaired malformed model output", "strategy", s.name)
			}
			return obj
		}
	}

	// reconstruct is total; this is unreachable. Keep a hard floor anyway.
	obj = errorObject(raw)
	return obj
}

// parseStrict attempts a direct JSON parse.
func parseStrict(raw string) (obj map[string]interface{}, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed[0] != '{' {
		return obj, ok
	}

	err := json.Unmarshal([]byte(trimmed), &obj)
	if err != nil {
		obj = nil
		return obj, ok
	}

	ok = true
	return obj, ok
}

// repairSyntax applies the transform battery cumulatively, re-attempting a
// parse after each transform.
func repairSyntax(raw string) (obj map[string]interface{}, ok bool) {
	text := strings.TrimSpace(raw)

	for _, t := range transforms() {
		text = t.apply(text)

		obj, ok = parseStrict(text)
		if ok {
			slog.Debug("syntactic repair succeeded", "transform", t.name)
			return obj, ok
		}
	}

	return obj, ok
}

// extractObjectSpan locates the largest {...} span by greedy bracket matching
// and parses that substring, re-running the transform battery on it when the
// direct parse fails. It always works from the original raw text so that
// earlier lossy transforms cannot cascade.
func extractObjectSpan(raw string) (obj map[string]interface{}, ok bool) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last <= first {
		return obj, ok
	}

	candidate := raw[first : last+1]

	// Cheap validity probe before committing to a decode.
	if gjson.Valid(candidate) {
		obj, ok = parseStrict(candidate)
		if ok {
			return obj, ok
		}
	}

	obj, ok = repairSyntax(candidate)
	return obj, ok
}

// errorObject is the absolute floor: an error marker plus the head of the
// raw content for diagnosis.
func errorObject(raw string) (obj map[string]interface{}) {
	head := []rune(raw)
	if len(head) > 500 {
		head = head[:500]
	}

	obj = map[string]interface{}{
		"error":       "could not extract structured data from response",
		"raw_content": string(head),
	}
	return obj
}
