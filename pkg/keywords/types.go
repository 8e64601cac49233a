// Package keywords implements the priority keyword pipeline: extraction from
// job descriptions, matching and citation lookup against a resume, and
// priority-tagged highlighting.
package keywords

import (
	"context"
	"strings"

	"github.com/nikogura/resume-optimizer/pkg/llm"
)

// Tier names used across the pipeline.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// Completer is the completion capability the pipeline consumes.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (text string, err error)
}

// Record is a single extracted keyword with its relative importance.
type Record struct {
	Keyword   string  `json:"keyword"`
	Score     float64 `json:"score"`
	Priority  string  `json:"priority,omitempty"` // set on missing-keyword copies
	UserAdded bool    `json:"user_added,omitempty"`
}

// TierRecords groups records by priority tier.
type TierRecords struct {
	HighPriority   []Record `json:"high_priority"`
	MediumPriority []Record `json:"medium_priority"`
	LowPriority    []Record `json:"low_priority"`
}

// PrioritySet is the normalized three-tier keyword structure. A keyword
// appears in at most one tier. Derived fields are attached after matching.
type PrioritySet struct {
	HighPriority   []Record `json:"high_priority"`
	MediumPriority []Record `json:"medium_priority"`
	LowPriority    []Record `json:"low_priority"`

	FoundKeywords             *TierRecords `json:"found_keywords,omitempty"`
	MissingKeywords           []Record     `json:"missing_keywords,omitempty"`
	MissingKeywordsByPriority *TierRecords `json:"missing_keywords_by_priority,omitempty"`

	// Populated only on degraded parses.
	FallbackExtraction map[string]string `json:"fallback_extraction,omitempty"`
	ErrorMessage       string            `json:"error,omitempty"`
	RawContent         string            `json:"raw_content,omitempty"`
}

// FoundMap records, per queried keyword, whether the resume evidences it.
// Total coverage: every queried keyword has an entry.
type FoundMap map[string]bool

// tierView pairs a tier name with its records for iteration in priority
// order.
type tierView struct {
	name    string
	records []Record
}

func (s *PrioritySet) tiers() (views []tierView) {
	views = []tierView{
		{name: TierHigh, records: s.HighPriority},
		{name: TierMedium, records: s.MediumPriority},
		{name: TierLow, records: s.LowPriority},
	}
	return views
}

// Flatten returns all keywords ordered high, medium, low, preserving
// within-tier order.
func (s *PrioritySet) Flatten() (flat []string) {
	for _, tier := range s.tiers() {
		for _, r := range tier.records {
			flat = append(flat, r.Keyword)
		}
	}
	return flat
}

// IsEmpty reports whether the set holds no keywords in any tier.
func (s *PrioritySet) IsEmpty() (empty bool) {
	empty = len(s.HighPriority)+len(s.MediumPriority)+len(s.LowPriority) == 0
	return empty
}

// HasError reports whether the set is a degraded parse result.
func (s *PrioritySet) HasError() (degraded bool) {
	degraded = s.ErrorMessage != ""
	return degraded
}

// TierOf returns the tier containing keyword, matching exactly first and
// falling back to a whitespace-normalized comparison.
func (s *PrioritySet) TierOf(keyword string) (tier string, ok bool) {
	for _, view := range s.tiers() {
		for _, r := range view.records {
			if r.Keyword == keyword {
				tier = view.name
				ok = true
				return tier, ok
			}
		}
	}

	norm := normalizeForCompare(keyword)
	for _, view := range s.tiers() {
		for _, r := range view.records {
			if normalizeForCompare(r.Keyword) == norm {
				tier = view.name
				ok = true
				return tier, ok
			}
		}
	}

	return tier, ok
}

func normalizeForCompare(keyword string) (norm string) {
	norm = strings.ToLower(strings.Join(strings.Fields(keyword), " "))
	return norm
}

// Citation is a piece of evidence for one keyword: a short excerpt plus the
// literal phrase in the resume that matches. Citations are best-effort,
// unverified model output.
type Citation struct {
	Citation    string `json:"citation"`
	ExactPhrase string `json:"exact_phrase,omitempty"`
}

// CitationSet groups citations by the tier of their keyword, with a fallback
// bucket for keywords no tier claims.
type CitationSet struct {
	HighPriority       map[string]Citation `json:"high_priority"`
	MediumPriority     map[string]Citation `json:"medium_priority"`
	LowPriority        map[string]Citation `json:"low_priority"`
	FallbackExtraction map[string]Citation `json:"fallback_extraction"`
}

// NewCitationSet creates an empty citation set with all buckets allocated.
func NewCitationSet() (citations *CitationSet) {
	citations = &CitationSet{
		HighPriority:       map[string]Citation{},
		MediumPriority:     map[string]Citation{},
		LowPriority:        map[string]Citation{},
		FallbackExtraction: map[string]Citation{},
	}
	return citations
}

// Has reports whether any bucket holds a citation for keyword.
func (c *CitationSet) Has(keyword string) (found bool) {
	norm := normalizeForCompare(keyword)
	for _, bucket := range c.buckets() {
		for k := range bucket {
			if k == keyword || normalizeForCompare(k) == norm {
				found = true
				return found
			}
		}
	}
	return found
}

// Count returns the total number of citations across buckets.
func (c *CitationSet) Count() (n int) {
	for _, bucket := range c.buckets() {
		n += len(bucket)
	}
	return n
}

func (c *CitationSet) buckets() (buckets []map[string]Citation) {
	buckets = []map[string]Citation{
		c.HighPriority,
		c.MediumPriority,
		c.LowPriority,
		c.FallbackExtraction,
	}
	return buckets
}

// place stores a citation in the tier that claims keyword, or the fallback
// bucket when none does.
func (c *CitationSet) place(set *PrioritySet, keyword string, citation Citation) {
	tier, ok := "", false
	if set != nil {
		tier, ok = set.TierOf(keyword)
	}
	if !ok {
		c.FallbackExtraction[keyword] = citation
		return
	}

	switch tier {
	case TierHigh:
		c.HighPriority[keyword] = citation
	case TierMedium:
		c.MediumPriority[keyword] = citation
	default:
		c.LowPriority[keyword] = citation
	}
}
