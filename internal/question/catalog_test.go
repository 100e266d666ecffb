package question

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(defs []Definition) []string {
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Key
	}
	return out
}

func TestParseFiltersAndSorts(t *testing.T) {
	raw := `
- key: school
  question_text: "La ce școală învață?"
  order: 2
- key: hobby
  question_text: "Ce îi place să deseneze?"
  order: "1"
- key: inactive
  question_text: "Nu se afișează"
  is_active: false
- key: ""
  question_text: "Fără cheie"
- key: no_text
  question_text: "   "
- key: Bad-Key
  question_text: "Cheie invalidă"
- key: allergy
  question_text: "Alergii?"
  required: false
  order: 1.9
- "not a mapping"
- key: weird_order
  question_text: "x"
  order: [1, 2]
`
	defs, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"allergy", "hobby", "school"}, keys(defs))
	assert.False(t, defs[0].Required)
	assert.True(t, defs[1].Required, "required defaults to true")
	assert.True(t, defs[1].IsActive, "is_active defaults to true")
	assert.Equal(t, 1, defs[0].Order, "float order truncates")
}

func TestParseAcceptsJSONAndBlocks(t *testing.T) {
	raw := `[
	  {"type": "question", "value": {"key": "a", "question_text": "A?"}},
	  {"type": "paragraph", "value": {"key": "b", "question_text": "B?"}},
	  {"key": "c", "question_text": "C?", "order": -1}
	]`
	defs, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, keys(defs))
}

func TestResolveDeduplicatesAfterSort(t *testing.T) {
	defs := Resolve([]any{
		map[string]any{"key": "dup", "question_text": "late", "order": 5},
		map[string]any{"key": "dup", "question_text": "early", "order": 1},
	})
	require.Len(t, defs, 1)
	assert.Equal(t, "early", defs[0].QuestionText)
}

func TestResolveOrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	letters := []string{"a", "b", "c", "d", "e", "f"}

	for round := 0; round < 50; round++ {
		var entries []any
		for i := 0; i < 12; i++ {
			entries = append(entries, map[string]any{
				"key":           letters[rng.Intn(len(letters))],
				"question_text": "q",
				"order":         rng.Intn(4),
				"is_active":     rng.Intn(5) != 0,
			})
		}
		defs := Resolve(entries)

		assert.True(t, sort.SliceIsSorted(defs, func(i, j int) bool {
			if defs[i].Order != defs[j].Order {
				return defs[i].Order < defs[j].Order
			}
			return defs[i].Key < defs[j].Key
		}))
		seen := map[string]bool{}
		for _, d := range defs {
			assert.False(t, seen[d.Key], "duplicate key %s", d.Key)
			seen[d.Key] = true
			assert.True(t, d.IsActive)
		}
	}
}

func TestFromSettingsFailOpen(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, FromSettings(ctx, map[string]string{}))
	assert.Empty(t, FromSettings(ctx, map[string]string{SettingsKey: "{not: [a list"}))
	assert.Empty(t, FromSettings(ctx, map[string]string{SettingsKey: "key: value"}))

	defs := FromSettings(ctx, map[string]string{SettingsKey: `[{"key":"x","question_text":"X?"}]`})
	assert.Equal(t, []string{"x"}, keys(defs))
}
