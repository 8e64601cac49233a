// Package generate produces tailored resume content from a job description
// and a master resume: a one sentence career profile and a core
// competencies list, each with supporting citations.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikogura/resume-optimizer/pkg/keywords"
	"github.com/nikogura/resume-optimizer/pkg/llm"
	"github.com/nikogura/resume-optimizer/pkg/repair"
	"github.com/nikogura/resume-optimizer/pkg/textutil"
	"github.com/pkg/errors"
)

// Completion budgets for generation calls.
const (
	generationMaxTokens   = 150
	generationTemperature = 0.7
	citationMaxTokens     = 800
	citationTemperature   = 0.3
)

// Defaults substituted into prompts when job context is absent.
const (
	defaultJobTitle = "the position"
	defaultCompany  = "the company"
)

// Caps on the keyword lists echoed back with generation results.
const (
	profileKeywordLimit      = 20
	competenciesKeywordLimit = 15
)

// Generator produces career profiles and core competencies.
type Generator struct {
	client    keywords.Completer
	extractor *keywords.Extractor
	engine    *repair.Engine
}

// New creates a Generator backed by the given completion client.
func New(client keywords.Completer) (generator *Generator) {
	generator = &Generator{
		client:    client,
		extractor: keywords.NewExtractor(client),
		engine:    repair.NewEngine(repair.DefaultThresholds()),
	}
	return generator
}

// Request carries the inputs for one generation run. JobDescription and
// ResumeText are required. Keywords and Citations, when present, skip the
// extraction pass and reuse prior results.
type Request struct {
	JobDescription string
	ResumeText     string
	JobTitle       string
	CompanyName    string
	Industry       string
	Keywords       *keywords.PrioritySet
	Citations      *keywords.CitationSet
}

// ProfileResult is the outcome of career profile generation.
type ProfileResult struct {
	Profile     string
	Highlighted string
	Keywords    []string
	Citations   map[string]string
}

// CompetenciesResult is the outcome of core competencies generation.
// Competencies holds the raw comma-separated model output, List the parsed
// entries.
type CompetenciesResult struct {
	Competencies string
	List         []string
	Keywords     []string
	Citations    map[string]string
}

// CareerProfile generates a one sentence career profile tailored to the job
// description, highlights it against the extracted keyword set, and
// resolves citations for its competencies. Transport failures on the
// generation call propagate; citation lookup degrades to an empty map.
func (g *Generator) CareerProfile(ctx context.Context, req Request) (result ProfileResult, err error) {
	set, flat, citations, err := g.resolveKeywords(ctx, req)
	if err != nil {
		return result, err
	}

	jobTitle, companyName := applyContextDefaults(req.JobTitle, req.CompanyName)

	prompt := profilePrompt(req.JobDescription, req.ResumeText, jobTitle, companyName, req.Industry)
	profile, err := g.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: profileSystemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		err = errors.Wrapf(err, "failed generating career profile")
		return result, err
	}

	result.Profile = profile
	result.Highlighted = keywords.HighlightByPriority(profile, set)
	result.Keywords = capList(flat, profileKeywordLimit)

	if citations != nil {
		slog.Debug("reusing existing citations for career profile")
		result.Citations = flattenCitations(citations)
	} else {
		result.Citations = g.findCitations(ctx,
			profileCitationsPrompt(textutil.Sanitize(profile), textutil.Sanitize(req.ResumeText), jobTitle, companyName, req.Industry))
	}

	return result, nil
}

// CoreCompetencies generates a comma-separated list of up to 15
// competencies evidenced by both the job description and the resume.
func (g *Generator) CoreCompetencies(ctx context.Context, req Request) (result CompetenciesResult, err error) {
	_, flat, citations, err := g.resolveKeywords(ctx, req)
	if err != nil {
		return result, err
	}

	jobTitle, companyName := applyContextDefaults(req.JobTitle, req.CompanyName)

	prompt := competenciesPrompt(req.JobDescription, req.ResumeText, jobTitle, companyName, req.Industry)
	competencies, err := g.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: competenciesSystemMessage},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   generationMaxTokens,
		Temperature: generationTemperature,
	})
	if err != nil {
		err = errors.Wrapf(err, "failed generating core competencies")
		return result, err
	}

	result.Competencies = competencies
	result.List = splitCompetencies(competencies)
	result.Keywords = capList(flat, competenciesKeywordLimit)

	if citations != nil {
		slog.Debug("reusing existing citations for core competencies")
		result.Citations = flattenCitations(citations)
	} else {
		result.Citations = g.findCitations(ctx,
			competenciesCitationsPrompt(textutil.Sanitize(competencies), textutil.Sanitize(req.ResumeText), jobTitle, companyName, req.Industry))
	}

	return result, nil
}

// resolveKeywords returns the keyword set and flat list for the request,
// extracting them when the caller supplied none. User-added keywords float
// to the front of the flat list.
func (g *Generator) resolveKeywords(ctx context.Context, req Request) (set *keywords.PrioritySet, flat []string, citations *keywords.CitationSet, err error) {
	if req.JobDescription == "" {
		err = errors.New("job description is required")
		return set, flat, citations, err
	}
	if req.ResumeText == "" {
		err = errors.New("resume text is required")
		return set, flat, citations, err
	}

	set = req.Keywords
	citations = req.Citations

	if set == nil {
		var extracted keywords.ExtractResult
		extracted, err = g.extractor.Extract(ctx, keywords.ExtractRequest{
			JobDescription: req.JobDescription,
			ResumeText:     req.ResumeText,
			JobTitle:       req.JobTitle,
			CompanyName:    req.CompanyName,
			Industry:       req.Industry,
		})
		if err != nil {
			return set, flat, citations, err
		}
		set = extracted.Set
		if citations == nil {
			citations = extracted.Citations
		}
	}

	flat = prioritizeUserAdded(set)
	return set, flat, citations, nil
}

// prioritizeUserAdded flattens the set with user-added keywords first,
// preserving tier order within each group.
func prioritizeUserAdded(set *keywords.PrioritySet) (flat []string) {
	var rest []string
	for _, tier := range [][]keywords.Record{set.HighPriority, set.MediumPriority, set.LowPriority} {
		for _, record := range tier {
			if record.UserAdded {
				flat = append(flat, record.Keyword)
			} else {
				rest = append(rest, record.Keyword)
			}
		}
	}
	flat = append(flat, rest...)
	return flat
}

// findCitations runs a JSON citation lookup and coerces the repaired
// object into a competency-to-excerpt map. Failures degrade to an empty
// map rather than failing generation.
func (g *Generator) findCitations(ctx context.Context, prompt string) (citations map[string]string) {
	citations = map[string]string{}

	text, err := g.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "system", Content: citationSystemMessage},
			{Role: "user", Content: prompt},
		},
		WantJSON:    true,
		MaxTokens:   citationMaxTokens,
		Temperature: citationTemperature,
	})
	if err != nil {
		slog.Warn("citation lookup failed", "error", err)
		return citations
	}

	obj := g.engine.Parse(text)
	for key, value := range obj {
		switch v := value.(type) {
		case string:
			citations[key] = v
		case map[string]interface{}:
			if excerpt, ok := v["citation"].(string); ok {
				citations[key] = excerpt
			}
		default:
			citations[key] = fmt.Sprintf("%v", v)
		}
	}

	// Degraded parses are markers, not evidence.
	delete(citations, "error")
	delete(citations, "raw_content")

	return citations
}

// flattenCitations reduces a tiered citation set to a keyword-to-excerpt
// map, high tier winning on duplicate keywords.
func flattenCitations(set *keywords.CitationSet) (flat map[string]string) {
	flat = map[string]string{}
	for _, bucket := range []map[string]keywords.Citation{
		set.FallbackExtraction,
		set.LowPriority,
		set.MediumPriority,
		set.HighPriority,
	} {
		for keyword, citation := range bucket {
			flat[keyword] = citation.Citation
		}
	}
	return flat
}

func splitCompetencies(competencies string) (list []string) {
	for _, entry := range strings.Split(competencies, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			list = append(list, entry)
		}
	}
	return list
}

func applyContextDefaults(jobTitle, companyName string) (title, company string) {
	title = jobTitle
	if title == "" {
		title = defaultJobTitle
	}
	company = companyName
	if company == "" {
		company = defaultCompany
	}
	return title, company
}

func capList(list []string, limit int) (capped []string) {
	capped = list
	if len(capped) > limit {
		capped = capped[:limit]
	}
	return capped
}
