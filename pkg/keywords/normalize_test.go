package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeObjectEntries(t *testing.T) {
	obj := map[string]interface{}{
		"high_priority": []interface{}{
			map[string]interface{}{"keyword": "Kubernetes", "score": 0.95},
		},
		"medium_priority": []interface{}{
			map[string]interface{}{"keyword": "Terraform", "score": 0.7},
		},
		"low_priority": []interface{}{},
	}

	set := Normalize(obj)
	require.NotNil(t, set)

	require.Len(t, set.HighPriority, 1)
	assert.Equal(t, "Kubernetes", set.HighPriority[0].Keyword)
	assert.InDelta(t, 0.95, set.HighPriority[0].Score, 0.0001)

	require.Len(t, set.MediumPriority, 1)
	assert.Empty(t, set.LowPriority)
	assert.False(t, set.HasError())
}

func TestNormalizeWrappedKeywords(t *testing.T) {
	obj := map[string]interface{}{
		"keywords": map[string]interface{}{
			"high_priority": []interface{}{
				map[string]interface{}{"keyword": "Go", "score": 0.9},
			},
		},
	}

	set := Normalize(obj)

	require.Len(t, set.HighPriority, 1)
	assert.Equal(t, "Go", set.HighPriority[0].Keyword)
}

func TestNormalizeStringEntries(t *testing.T) {
	obj := map[string]interface{}{
		"high_priority":   []interface{}{"Leadership"},
		"medium_priority": []interface{}{"Mentoring"},
		"low_priority":    []interface{}{"Scheduling"},
	}

	set := Normalize(obj)

	require.Len(t, set.HighPriority, 1)
	assert.InDelta(t, defaultHighScore, set.HighPriority[0].Score, 0.0001)
	require.Len(t, set.MediumPriority, 1)
	assert.InDelta(t, defaultMediumScore, set.MediumPriority[0].Score, 0.0001)
	require.Len(t, set.LowPriority, 1)
	assert.InDelta(t, defaultLowScore, set.LowPriority[0].Score, 0.0001)
}

func TestNormalizeTierExclusivity(t *testing.T) {
	obj := map[string]interface{}{
		"high_priority": []interface{}{
			map[string]interface{}{"keyword": "Leadership", "score": 0.9},
		},
		"medium_priority": []interface{}{
			map[string]interface{}{"keyword": "leadership", "score": 0.7},
		},
		"low_priority": []interface{}{
			map[string]interface{}{"keyword": "  Leadership ", "score": 0.3},
		},
	}

	set := Normalize(obj)

	assert.Len(t, set.HighPriority, 1)
	assert.Empty(t, set.MediumPriority)
	assert.Empty(t, set.LowPriority)
}

func TestNormalizeClampsScores(t *testing.T) {
	obj := map[string]interface{}{
		"high_priority": []interface{}{
			map[string]interface{}{"keyword": "A", "score": 1.5},
			map[string]interface{}{"keyword": "B", "score": -0.2},
		},
	}

	set := Normalize(obj)

	require.Len(t, set.HighPriority, 2)
	assert.InDelta(t, 1.0, set.HighPriority[0].Score, 0.0001)
	assert.InDelta(t, 0.0, set.HighPriority[1].Score, 0.0001)
}

func TestNormalizeSkipsMalformedEntries(t *testing.T) {
	obj := map[string]interface{}{
		"high_priority": []interface{}{
			map[string]interface{}{"keyword": "", "score": 0.9},
			map[string]interface{}{"score": 0.9},
			42,
			map[string]interface{}{"keyword": "Valid", "score": 0.9},
		},
	}

	set := Normalize(obj)

	require.Len(t, set.HighPriority, 1)
	assert.Equal(t, "Valid", set.HighPriority[0].Keyword)
}

func TestNormalizeCarriesDegradedFields(t *testing.T) {
	obj := map[string]interface{}{
		"error":       "could not extract structured data from response",
		"raw_content": "garbage",
		"fallback_extraction": map[string]interface{}{
			"name": "Alice",
		},
	}

	set := Normalize(obj)

	assert.True(t, set.HasError())
	assert.Equal(t, "garbage", set.RawContent)
	assert.Equal(t, "Alice", set.FallbackExtraction["name"])
	assert.True(t, set.IsEmpty())
}

func TestNormalizeNil(t *testing.T) {
	set := Normalize(nil)

	require.NotNil(t, set)
	assert.True(t, set.HasError())
}

func TestFlattenOrder(t *testing.T) {
	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "A"}, {Keyword: "B"}},
		MediumPriority: []Record{{Keyword: "C"}},
		LowPriority:    []Record{{Keyword: "D"}},
	}

	assert.Equal(t, []string{"A", "B", "C", "D"}, set.Flatten())
}

func TestTierOf(t *testing.T) {
	set := &PrioritySet{
		HighPriority:   []Record{{Keyword: "Team Leadership"}},
		MediumPriority: []Record{{Keyword: "Mentoring"}},
	}

	tier, ok := set.TierOf("Team Leadership")
	assert.True(t, ok)
	assert.Equal(t, TierHigh, tier)

	// Whitespace and case differences still resolve.
	tier, ok = set.TierOf("team   leadership")
	assert.True(t, ok)
	assert.Equal(t, TierHigh, tier)

	_, ok = set.TierOf("Unknown")
	assert.False(t, ok)
}
