package repair

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValidObjectPassthrough(t *testing.T) {
	raw := `{"high_priority": [{"keyword": "Go", "score": 0.95}], "medium_priority": []}`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	high, ok := obj["high_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, high, 1)

	record, ok := high[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Go", record["keyword"])
	assert.InDelta(t, 0.95, record["score"], 0.0001)

	_, hasError := obj["error"]
	assert.False(t, hasError)
}

func TestParseNeverNil(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"[1, 2",
		"null",
		"complete nonsense with no structure",
		"{{{{",
		"\x00\xff",
	}

	for _, raw := range inputs {
		obj := ParseStructured(raw)
		assert.NotNil(t, obj, "input %q produced a nil object", raw)
	}
}

func TestParseTruncatedTierArray(t *testing.T) {
	raw := `{"high_priority": [{"keyword": "Budgeting", "score": 0.9}], "medium_priority": [], "low_priority": [`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	_, hasError := obj["error"]
	require.False(t, hasError, "repair should recover truncated tier output")

	high, ok := obj["high_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, high, 1)

	low, ok := obj["low_priority"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, low)
}

func TestParseSingleQuotes(t *testing.T) {
	raw := `{'status': 'complete'}`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)
	assert.Equal(t, "complete", obj["status"])
}

func TestParseObjectEmbeddedInProse(t *testing.T) {
	raw := "Here are the keywords you asked for:\n\n" +
		`{"high_priority": [{"keyword": "Kubernetes", "score": 0.92}]}` +
		"\n\nLet me know if you need anything else."

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	high, ok := obj["high_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, high, 1)
}

func TestParseReconstructFromFragments(t *testing.T) {
	raw := `keywords found: {"keyword": "Go", "score": 0.95} ` +
		`{"keyword": "Docker", "score": 0.7} {"keyword": "Git", "score": 0.3} END`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	high, ok := obj["high_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, high, 1)

	medium, ok := obj["medium_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, medium, 1)

	low, ok := obj["low_priority"].([]interface{})
	require.True(t, ok)
	require.Len(t, low, 1)

	record, ok := high[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Go", record["keyword"])
}

func TestParseRepairsMissingCommaInSpan(t *testing.T) {
	raw := `broken {"keyword": "Terraform" "score": 0.8} broken`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	assert.Equal(t, "Terraform", obj["keyword"])
	assert.InDelta(t, 0.8, obj["score"], 0.0001)
}

func TestParseKeyValueFallback(t *testing.T) {
	raw := `"name": "Alice" "city": "Paris"`

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	fallback, ok := obj["fallback_extraction"].(map[string]interface{})
	require.True(t, ok, "expected fallback_extraction bucket, got %v", obj)
	assert.Equal(t, "Alice", fallback["name"])
	assert.Equal(t, "Paris", fallback["city"])
}

func TestParseErrorObjectFloor(t *testing.T) {
	raw := strings.Repeat("x", 600)

	obj := ParseStructured(raw)
	require.NotNil(t, obj)

	assert.Equal(t, "could not extract structured data from response", obj["error"])

	content, ok := obj["raw_content"].(string)
	require.True(t, ok)
	assert.Len(t, content, 500)
}

func TestThresholdClassification(t *testing.T) {
	engine := NewEngine(Thresholds{High: 0.8, Medium: 0.5})

	raw := `junk {"keyword": "A", "score": 0.85} {"keyword": "B", "score": 0.6} {"keyword": "C", "score": 0.2} junk`

	obj := engine.Parse(raw)
	require.NotNil(t, obj)

	high, _ := obj["high_priority"].([]interface{})
	medium, _ := obj["medium_priority"].([]interface{})
	low, _ := obj["low_priority"].([]interface{})

	assert.Len(t, high, 1)
	assert.Len(t, medium, 1)
	assert.Len(t, low, 1)
}
