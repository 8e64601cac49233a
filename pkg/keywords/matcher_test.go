package keywords

import (
	"context"
	"fmt"
	"testing"

	"github.com/nikogura/resume-optimizer/pkg/llm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter replays scripted responses in call order.
type stubCompleter struct {
	responses []string
	errs      []error
	calls     []llm.CompletionRequest
}

func (s *stubCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (text string, err error) {
	i := len(s.calls)
	s.calls = append(s.calls, req)

	if i < len(s.errs) && s.errs[i] != nil {
		err = s.errs[i]
		return text, err
	}
	if i < len(s.responses) {
		text = s.responses[i]
		return text, err
	}

	err = errors.New("no scripted response")
	return text, err
}

func TestFindInResume(t *testing.T) {
	stub := &stubCompleter{
		responses: []string{`{"Kubernetes": true, "Terraform": false, "Unrequested": true}`},
	}
	matcher := NewMatcher(stub)

	found := matcher.FindInResume(context.Background(),
		[]string{"Kubernetes", "Terraform", "Leadership"}, "resume text")

	// Total coverage: every queried keyword, nothing else.
	require.Len(t, found, 3)
	assert.True(t, found["Kubernetes"])
	assert.False(t, found["Terraform"])
	assert.False(t, found["Leadership"])
	_, present := found["Unrequested"]
	assert.False(t, present)
}

func TestFindInResumeStringBooleans(t *testing.T) {
	stub := &stubCompleter{
		responses: []string{`{"Go": "true", "Rust": "false"}`},
	}
	matcher := NewMatcher(stub)

	found := matcher.FindInResume(context.Background(), []string{"Go", "Rust"}, "resume")

	assert.True(t, found["Go"])
	assert.False(t, found["Rust"])
}

func TestFindInResumeFuzzyFallback(t *testing.T) {
	stub := &stubCompleter{
		errs: []error{errors.New("connection refused")},
	}
	matcher := NewMatcher(stub)

	found := matcher.FindInResume(context.Background(),
		[]string{"Kubernetes", "Quantum"}, "Operated KUBERNETES clusters in production")

	require.Len(t, found, 2)
	assert.True(t, found["Kubernetes"])
	assert.False(t, found["Quantum"])
}

func TestFindInResumeEmptyKeywords(t *testing.T) {
	stub := &stubCompleter{}
	matcher := NewMatcher(stub)

	found := matcher.FindInResume(context.Background(), nil, "resume")

	assert.Empty(t, found)
	assert.Empty(t, stub.calls, "no completion call for an empty keyword list")
}

func TestFindCitations(t *testing.T) {
	response := `KEYWORD: Team Leadership
CITATION: Led a team of eight engineers
EXACT_PHRASE: Led a team

KEYWORD: Budgeting
CITATION: Managed a $2M annual budget

KEYWORD: Unknown Skill
CITATION: Some evidence
`

	stub := &stubCompleter{responses: []string{response}}
	matcher := NewMatcher(stub)

	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "Team Leadership", Score: 0.9}},
		MediumPriority: []Record{{Keyword: "Budgeting", Score: 0.7}},
	}

	citations := matcher.FindCitations(context.Background(), set, "resume text")
	require.NotNil(t, citations)

	require.Contains(t, citations.HighPriority, "Team Leadership")
	assert.Equal(t, "Led a team of eight engineers", citations.HighPriority["Team Leadership"].Citation)
	assert.Equal(t, "Led a team", citations.HighPriority["Team Leadership"].ExactPhrase)

	// Missing EXACT_PHRASE defaults to the keyword.
	require.Contains(t, citations.MediumPriority, "Budgeting")
	assert.Equal(t, "Budgeting", citations.MediumPriority["Budgeting"].ExactPhrase)

	// Keywords no tier claims land in the fallback bucket.
	assert.Contains(t, citations.FallbackExtraction, "Unknown Skill")

	assert.Equal(t, 3, citations.Count())
}

func TestFindCitationsContinuationLines(t *testing.T) {
	response := `KEYWORD: Strategic Planning
CITATION: Built the three year roadmap
and presented it to the board
EXACT_PHRASE: three year roadmap
`

	stub := &stubCompleter{responses: []string{response}}
	matcher := NewMatcher(stub)

	set := &PrioritySet{HighPriority: []Record{{Keyword: "Strategic Planning", Score: 0.9}}}

	citations := matcher.FindCitations(context.Background(), set, "resume")

	require.Contains(t, citations.HighPriority, "Strategic Planning")
	assert.Equal(t, "Built the three year roadmap and presented it to the board",
		citations.HighPriority["Strategic Planning"].Citation)
}

func TestFindCitationsIncompleteRecordDiscarded(t *testing.T) {
	response := `KEYWORD: Orphaned Keyword
KEYWORD: Complete Keyword
CITATION: Real evidence here
`

	stub := &stubCompleter{responses: []string{response}}
	matcher := NewMatcher(stub)

	set := &PrioritySet{
		MediumPriority: []Record{
			{Keyword: "Orphaned Keyword", Score: 0.7},
			{Keyword: "Complete Keyword", Score: 0.7},
		},
	}

	citations := matcher.FindCitations(context.Background(), set, "resume")

	assert.NotContains(t, citations.MediumPriority, "Orphaned Keyword")
	assert.Contains(t, citations.MediumPriority, "Complete Keyword")
}

func TestFindCitationsDuplicateMarkerOverwrites(t *testing.T) {
	response := `KEYWORD: Mentoring
CITATION: First attempt
CITATION: Mentored four junior engineers
`

	stub := &stubCompleter{responses: []string{response}}
	matcher := NewMatcher(stub)

	set := &PrioritySet{MediumPriority: []Record{{Keyword: "Mentoring", Score: 0.7}}}

	citations := matcher.FindCitations(context.Background(), set, "resume")

	require.Contains(t, citations.MediumPriority, "Mentoring")
	assert.Equal(t, "Mentored four junior engineers", citations.MediumPriority["Mentoring"].Citation)
}

func TestFindCitationsFallbackReducesPayload(t *testing.T) {
	flat := make([]Record, 0, 30)
	for i := 0; i < 30; i++ {
		flat = append(flat, Record{Keyword: fmt.Sprintf("keyword%02d", i), Score: 0.7})
	}
	set := &PrioritySet{MediumPriority: flat}

	stub := &stubCompleter{
		errs:      []error{errors.New("rate limited"), nil},
		responses: []string{"", "KEYWORD: keyword00\nCITATION: evidence\n"},
	}
	matcher := NewMatcher(stub)

	citations := matcher.FindCitations(context.Background(), set, "resume")

	require.Len(t, stub.calls, 2)
	assert.Contains(t, citations.MediumPriority, "keyword00")
	assert.NotContains(t, stub.calls[1].Messages[1].Content, "keyword25",
		"fallback call truncates the keyword list")
}

func TestFindCitationsTotalFailure(t *testing.T) {
	stub := &stubCompleter{
		errs: []error{errors.New("down"), errors.New("still down")},
	}
	matcher := NewMatcher(stub)

	set := &PrioritySet{HighPriority: []Record{{Keyword: "Anything", Score: 0.9}}}

	citations := matcher.FindCitations(context.Background(), set, "resume")

	require.NotNil(t, citations)
	require.Contains(t, citations.FallbackExtraction, "error")
	assert.Equal(t, "failed to extract citations", citations.FallbackExtraction["error"].Citation)
}

func TestFindCitationsEmptySet(t *testing.T) {
	stub := &stubCompleter{}
	matcher := NewMatcher(stub)

	citations := matcher.FindCitations(context.Background(), &PrioritySet{}, "resume")

	require.NotNil(t, citations)
	assert.Zero(t, citations.Count())
	assert.Empty(t, stub.calls)
}

func TestFindCitationsForKeywords(t *testing.T) {
	stub := &stubCompleter{
		responses: []string{"KEYWORD: Budgeting\nCITATION: evidence\n"},
	}
	matcher := NewMatcher(stub)

	citations := matcher.FindCitationsForKeywords(context.Background(), []string{"Budgeting"}, "resume")

	assert.Contains(t, citations.MediumPriority, "Budgeting")
}
