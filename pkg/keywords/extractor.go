package keywords

import (
	"context"
	"log/slog"

	"github.com/nikogura/resume-optimizer/pkg/llm"
	"github.com/nikogura/resume-optimizer/pkg/repair"
	"github.com/pkg/errors"
)

// Completion budgets for extraction calls.
const (
	extractionMaxTokens   = 1000
	extractionTemperature = 0.3
	retryTemperature      = 0.2
)

// Extractor pulls prioritized keywords out of a job description and, when a
// resume is supplied, cross-references them against it.
type Extractor struct {
	client  Completer
	matcher *Matcher
	engine  *repair.Engine
}

// NewExtractor creates an Extractor backed by the given completion client.
func NewExtractor(client Completer) (extractor *Extractor) {
	extractor = &Extractor{
		client:  client,
		matcher: NewMatcher(client),
		engine:  repair.NewEngine(repair.DefaultThresholds()),
	}
	return extractor
}

// ExtractRequest carries the inputs for one extraction run. JobDescription
// is required. ResumeText, when present, triggers citation lookup and
// missing-keyword computation. The remaining fields are optional context
// passed through to the model.
type ExtractRequest struct {
	JobDescription string
	ResumeText     string
	JobTitle       string
	CompanyName    string
	Industry       string
}

// ExtractResult is the outcome of one extraction run. Set is never nil on a
// nil error. Citations is nil unless a resume was supplied.
type ExtractResult struct {
	Set       *PrioritySet
	Flat      []string
	Citations *CitationSet
}

// Extract runs the full extraction ladder: a detailed prompt, then a
// simplified retry when the first response yields no keywords, then the
// deterministic regex extractor as a last resort. Transport and auth
// failures propagate to the caller. Malformed model output does not fail
// the run.
func (x *Extractor) Extract(ctx context.Context, req ExtractRequest) (result ExtractResult, err error) {
	if req.JobDescription == "" {
		err = errors.New("job description is required")
		return result, err
	}

	prompt := extractionPrompt(req.JobDescription, req.ResumeText, req.JobTitle, req.CompanyName, req.Industry)
	text, err := x.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: extractionSystemMessage},
			{Role: "user", Content: prompt},
		},
		WantJSON:    true,
		MaxTokens:   extractionMaxTokens,
		Temperature: extractionTemperature,
	})
	if err != nil {
		err = errors.Wrapf(err, "failed extracting keywords")
		return result, err
	}

	result.Set = Normalize(x.engine.Parse(text))
	result.Flat = result.Set.Flatten()

	if result.Set.IsEmpty() || result.Set.HasError() {
		slog.Debug("no keywords in structured response, retrying with simplified prompt")
		result.Set, result.Flat, err = x.retrySimplified(ctx, req.JobDescription)
		if err != nil {
			return result, err
		}
	}

	if result.Set.IsEmpty() {
		slog.Debug("still no keywords, falling back to regex extraction")
		result.Set, result.Flat = RegexExtract(req.JobDescription)
	}

	if req.ResumeText != "" && len(result.Flat) > 0 {
		result.Citations = x.matcher.FindCitations(ctx, result.Set, req.ResumeText)
		attachMissingKeywords(result.Set, result.Citations)
		slog.Debug("citation lookup complete",
			"keywords", len(result.Flat),
			"citations", result.Citations.Count(),
			"missing", len(result.Set.MissingKeywords))
	}

	return result, nil
}

func (x *Extractor) retrySimplified(ctx context.Context, jobDescription string) (set *PrioritySet, flat []string, err error) {
	text, err := x.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: simplifiedSystemMessage},
			{Role: "user", Content: simplifiedExtractionPrompt(jobDescription)},
		},
		WantJSON:    true,
		MaxTokens:   extractionMaxTokens,
		Temperature: retryTemperature,
	})
	if err != nil {
		err = errors.Wrapf(err, "failed extracting keywords on retry")
		return set, flat, err
	}

	set = Normalize(x.engine.Parse(text))
	flat = set.Flatten()
	return set, flat, nil
}

// attachMissingKeywords records, per tier and flat, every extracted keyword
// that citation lookup produced no evidence for. Each missing record carries
// its tier name so flat consumers keep the priority information.
func attachMissingKeywords(set *PrioritySet, citations *CitationSet) {
	missing := &TierRecords{}

	for _, view := range set.tiers() {
		for _, record := range view.records {
			if citations.Has(record.Keyword) {
				continue
			}

			tagged := record
			tagged.Priority = view.name

			switch view.name {
			case TierHigh:
				missing.HighPriority = append(missing.HighPriority, tagged)
			case TierMedium:
				missing.MediumPriority = append(missing.MediumPriority, tagged)
			default:
				missing.LowPriority = append(missing.LowPriority, tagged)
			}

			set.MissingKeywords = append(set.MissingKeywords, tagged)
		}
	}

	set.MissingKeywordsByPriority = missing
}
