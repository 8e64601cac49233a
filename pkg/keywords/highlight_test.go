package keywords

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightByPriority(t *testing.T) {
	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "Kubernetes", Score: 0.95}},
		MediumPriority: []Record{{Keyword: "Terraform", Score: 0.7}},
		LowPriority:    []Record{{Keyword: "Jira", Score: 0.4}},
	}

	marked := HighlightByPriority("Ran Kubernetes and Terraform, tracked work in Jira", set)

	assert.Contains(t, marked, `<mark class="high-priority-keyword" data-score="0.95">Kubernetes</mark>`)
	assert.Contains(t, marked, `<mark class="medium-priority-keyword" data-score="0.7">Terraform</mark>`)
	assert.Contains(t, marked, `<mark class="low-priority-keyword" data-score="0.4">Jira</mark>`)

	require.NotNil(t, set.FoundKeywords)
	require.Len(t, set.FoundKeywords.HighPriority, 1)
	assert.Equal(t, "Kubernetes", set.FoundKeywords.HighPriority[0].Keyword)
	require.Len(t, set.FoundKeywords.MediumPriority, 1)
	require.Len(t, set.FoundKeywords.LowPriority, 1)
}

func TestHighlightByPriorityLongestFirst(t *testing.T) {
	set := &PrioritySet{
		HighPriority: []Record{
			{Keyword: "Team", Score: 0.95},
			{Keyword: "Team Leadership", Score: 0.9},
		},
	}

	marked := HighlightByPriority("Known for Team Leadership", set)

	// The phrase wins the overlap; the short keyword must not split it.
	assert.Contains(t, marked, `>Team Leadership</mark>`)
	assert.NotContains(t, marked, `>Team</mark> Leadership`)
}

func TestHighlightByPriorityNoRematchInsideMarks(t *testing.T) {
	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "Priority Queue", Score: 0.9}},
		MediumPriority: []Record{{Keyword: "priority", Score: 0.7}},
	}

	marked := HighlightByPriority("Implemented a priority queue", set)

	// "priority" appears in the high tier's class attribute and inside the
	// wrapped phrase; neither may be wrapped again.
	assert.Equal(t,
		`Implemented a <mark class="high-priority-keyword" data-score="0.9">Priority Queue</mark>`,
		marked)
}

func TestHighlightByPriorityCaseInsensitive(t *testing.T) {
	set := &PrioritySet{
		MediumPriority: []Record{{Keyword: "Python", Score: 0.7}},
	}

	marked := HighlightByPriority("Wrote python daily", set)

	assert.Contains(t, marked, `>Python</mark>`)
	assert.NotContains(t, marked, "python daily")
}

func TestHighlightByPriorityWordBoundary(t *testing.T) {
	set := &PrioritySet{
		MediumPriority: []Record{{Keyword: "Java", Score: 0.7}},
	}

	marked := HighlightByPriority("Shipped JavaScript features", set)

	assert.NotContains(t, marked, "<mark")
	assert.Empty(t, set.FoundKeywords.MediumPriority)
}

func TestHighlightByPriorityMissingFallback(t *testing.T) {
	set := &PrioritySet{
		HighPriority:    []Record{{Keyword: "Quantum Computing", Score: 0.9}},
		MissingKeywords: []Record{{Keyword: "mentoring", Score: 0.7}},
	}

	marked := HighlightByPriority("Focused on mentoring juniors", set)

	assert.Contains(t, marked, "<mark>mentoring</mark>")
}

func TestHighlightByPriorityNewlines(t *testing.T) {
	set := &PrioritySet{
		MediumPriority: []Record{{Keyword: "Go", Score: 0.7}},
	}

	marked := HighlightByPriority("First line\nWrote Go services", set)

	assert.Contains(t, marked, "First line<br>")
	assert.NotContains(t, marked, "\n")
}

func TestHighlightFound(t *testing.T) {
	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "Kubernetes", Score: 0.9}},
		MediumPriority: []Record{{Keyword: "Terraform", Score: 0.7}},
	}
	found := FoundMap{
		"Kubernetes": true,
		"Terraform":  false,
		"Ansible":    true,
	}

	marked := HighlightFound("Kubernetes and Terraform and Ansible", found, set)

	assert.Contains(t, marked, `<mark class="high-priority-keyword">Kubernetes</mark>`)
	// Not matched in the resume, so not highlighted.
	assert.NotContains(t, marked, ">Terraform</mark>")
	// No tier claims it, so it defaults to medium.
	assert.Contains(t, marked, `<mark class="medium-priority-keyword">Ansible</mark>`)
}

func TestHighlightFoundNilSet(t *testing.T) {
	found := FoundMap{"Docker": true}

	marked := HighlightFound("Containerized with Docker", found, nil)

	assert.Contains(t, marked, `<mark class="medium-priority-keyword">Docker</mark>`)
}

func TestHighlightFoundNewlinesBeforeMatching(t *testing.T) {
	found := FoundMap{"release process": true}

	marked := HighlightFound("release\nprocess", found, nil)

	// The phrase is split by the line break, so it must not match across it.
	assert.Equal(t, "release<br>process", marked)
}

func TestReplaceOutsideMarks(t *testing.T) {
	pattern, err := keywordPattern("go")
	require.NoError(t, err)

	text := `Wrote <mark class="high-priority-keyword">Go services</mark> in go`
	result, matched := replaceOutsideMarks(text, pattern, "<mark>Go</mark>")

	assert.True(t, matched)
	assert.Equal(t,
		`Wrote <mark class="high-priority-keyword">Go services</mark> in <mark>Go</mark>`,
		result)

	result, matched = replaceOutsideMarks("nothing here", pattern, "<mark>Go</mark>")
	assert.False(t, matched)
	assert.Equal(t, "nothing here", result)

	if strings.Contains(result, "<mark>") {
		t.Fatal("replacement applied without a match")
	}
}
