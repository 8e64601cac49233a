package keywords

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nikogura/resume-optimizer/pkg/llm"
	"github.com/nikogura/resume-optimizer/pkg/repair"
	"github.com/nikogura/resume-optimizer/pkg/textutil"
)

// Completion budgets for matching and citation calls.
const (
	matchMaxTokens            = 800
	citationMaxTokens         = 1500
	citationFallbackMaxTokens = 1000
	matchTemperature          = 0.3

	// Reduced-payload limits for the citation fallback call.
	citationFallbackKeywordLimit = 20
	citationFallbackResumeLimit  = 3500
)

// Matcher answers which keywords a resume evidences and where.
type Matcher struct {
	client Completer
	engine *repair.Engine
}

// NewMatcher creates a Matcher backed by the given completion client.
func NewMatcher(client Completer) (matcher *Matcher) {
	matcher = &Matcher{
		client: client,
		engine: repair.NewEngine(repair.DefaultThresholds()),
	}
	return matcher
}

// FindInResume reports, for every keyword, whether the resume evidences it.
// The result covers every input keyword exactly, keyed by the original
// keyword text. Matching is semantic via the model; when the model is
// unreachable it degrades to case-insensitive fuzzy text checks and the
// error is absorbed.
func (m *Matcher) FindInResume(ctx context.Context, keywordList []string, resumeText string) (found FoundMap) {
	found = FoundMap{}
	if len(keywordList) == 0 {
		return found
	}

	sanitized := sanitizeAll(keywordList)
	prompt := matchPrompt(sanitized, textutil.Sanitize(resumeText))

	text, err := m.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: matchSystemMessage},
			{Role: "user", Content: prompt},
		},
		WantJSON:    true,
		MaxTokens:   matchMaxTokens,
		Temperature: matchTemperature,
	})
	if err != nil {
		slog.Warn("keyword match call failed, falling back to fuzzy text search", "error", err)
		for _, keyword := range keywordList {
			found[keyword], _ = textutil.FuzzyMatch(resumeText, keyword, textutil.FuzzyMatchThreshold)
		}
		return found
	}

	obj := m.engine.Parse(text)
	for i, keyword := range keywordList {
		found[keyword] = booleanField(obj, keyword, sanitized[i])
	}

	return found
}

// booleanField looks a keyword up under both its original and sanitized
// spellings and coerces the model's value to a bool. Absent keywords are
// not found.
func booleanField(obj map[string]interface{}, keyword, sanitized string) (result bool) {
	value, ok := obj[keyword]
	if !ok {
		value, ok = obj[sanitized]
	}
	if !ok {
		return false
	}

	switch v := value.(type) {
	case bool:
		result = v
	case string:
		result = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	return result
}

// FindCitations asks the model for supporting evidence for every keyword in
// the set and buckets the results by tier. Citation lookup never fails the
// caller: transport errors trigger one reduced-payload fallback call, and
// if that fails too the result carries an error marker in its fallback
// bucket.
func (m *Matcher) FindCitations(ctx context.Context, set *PrioritySet, resumeText string) (citations *CitationSet) {
	citations = NewCitationSet()

	flat := set.Flatten()
	if len(flat) == 0 {
		return citations
	}

	sanitized := sanitizeAll(flat)
	sanitizedResume := textutil.Sanitize(resumeText)

	text, err := m.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: citationSystemMessage},
			{Role: "user", Content: citationPrompt(sanitized, sanitizedResume)},
		},
		MaxTokens:   citationMaxTokens,
		Temperature: matchTemperature,
	})
	if err != nil {
		slog.Warn("citation call failed, retrying with reduced payload", "error", err)
		return m.findCitationsFallback(ctx, set, sanitized, sanitizedResume)
	}

	parseCitationBlock(text, set, citations)
	return citations
}

// FindCitationsForKeywords is FindCitations for a bare keyword list with no
// priority information. All keywords are treated as medium priority.
func (m *Matcher) FindCitationsForKeywords(ctx context.Context, keywordList []string, resumeText string) (citations *CitationSet) {
	set := &PrioritySet{}
	for _, keyword := range keywordList {
		set.MediumPriority = append(set.MediumPriority, Record{Keyword: keyword, Score: defaultMediumScore})
	}
	citations = m.FindCitations(ctx, set, resumeText)
	return citations
}

func (m *Matcher) findCitationsFallback(ctx context.Context, set *PrioritySet, sanitized []string, sanitizedResume string) (citations *CitationSet) {
	citations = NewCitationSet()

	if len(sanitized) > citationFallbackKeywordLimit {
		sanitized = sanitized[:citationFallbackKeywordLimit]
	}
	if len(sanitizedResume) > citationFallbackResumeLimit {
		sanitizedResume = sanitizedResume[:citationFallbackResumeLimit]
	}

	text, err := m.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: citationFallbackSystem},
			{Role: "user", Content: citationFallbackPrompt(sanitized, sanitizedResume)},
		},
		MaxTokens:   citationFallbackMaxTokens,
		Temperature: matchTemperature,
	})
	if err != nil {
		slog.Warn("citation fallback call failed", "error", err)
		citations.FallbackExtraction["error"] = Citation{Citation: "failed to extract citations"}
		return citations
	}

	parseCitationBlock(text, set, citations)
	return citations
}

// parseCitationBlock walks the model's line-oriented KEYWORD/CITATION/
// EXACT_PHRASE output. A record is complete once it has both a keyword and
// a citation. Repeated CITATION or EXACT_PHRASE markers overwrite the
// pending value, a new KEYWORD marker flushes any complete pending record
// and discards an incomplete one, and unmarked lines extend the pending
// citation. Markers with no pending keyword are ignored.
func parseCitationBlock(response string, set *PrioritySet, citations *CitationSet) {
	var keyword, citation, exactPhrase string

	flush := func() {
		if keyword == "" || citation == "" {
			return
		}
		phrase := exactPhrase
		if phrase == "" {
			phrase = keyword
		}
		citations.place(set, keyword, Citation{Citation: citation, ExactPhrase: phrase})
		keyword, citation, exactPhrase = "", "", ""
	}

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "KEYWORD:"):
			flush()
			keyword = strings.TrimSpace(strings.TrimPrefix(line, "KEYWORD:"))
			citation, exactPhrase = "", ""
		case strings.HasPrefix(line, "CITATION:"):
			if keyword != "" {
				citation = strings.TrimSpace(strings.TrimPrefix(line, "CITATION:"))
			}
		case strings.HasPrefix(line, "EXACT_PHRASE:"):
			if keyword != "" {
				exactPhrase = strings.TrimSpace(strings.TrimPrefix(line, "EXACT_PHRASE:"))
			}
		default:
			if keyword != "" && citation != "" {
				citation += " " + line
			}
		}
	}

	flush()
}

func sanitizeAll(keywordList []string) (sanitized []string) {
	sanitized = make([]string, len(keywordList))
	for i, keyword := range keywordList {
		sanitized[i] = textutil.Sanitize(keyword)
	}
	return sanitized
}
