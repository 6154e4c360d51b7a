package knowledge

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mindease/internal/models"
)

type fixedPicker int

func (f fixedPicker) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestNew_LoadsEmbeddedBase(t *testing.T) {
	e, err := New(fixedPicker(0))
	require.NoError(t, err)
	assert.Len(t, e.categories, 13)
	assert.Len(t, e.generic, 7)
	assert.Equal(t, "greetings", e.categories[0].ID)
	assert.Equal(t, "positive", e.categories[len(e.categories)-1].ID)
}

func TestMatch_ExamIsAcademicStress(t *testing.T) {
	e := MustNew(fixedPicker(1))

	id, score := e.Classify("I have an exam tomorrow")
	assert.Equal(t, "academic_stress", id)
	assert.Equal(t, 3, score)

	r := e.Match("I have an exam tomorrow")
	assert.Equal(t, models.MoodAnxious, r.Mood)
	assert.Equal(t, e.categories[1].Responses[1], r.Text)
	assert.False(t, r.IsCrisis)
}

func TestMatch_NoKeywordFallsBackToGeneric(t *testing.T) {
	e := MustNew(fixedPicker(2))

	id, score := e.Classify("zzzz")
	assert.Empty(t, id)
	assert.Zero(t, score)

	r := e.Match("zzzz")
	assert.Equal(t, models.MoodNeutral, r.Mood)
	assert.Equal(t, e.generic[2], r.Text)
}

func TestScoring_WholeWordBeatsSubstring(t *testing.T) {
	e, err := NewFromCategories([]models.KnowledgeCategory{
		{ID: "substring", Keywords: []string{"test"}, Responses: []string{"a"}, Mood: models.MoodSad},
		{ID: "whole", Keywords: []string{"greatest"}, Responses: []string{"b"}, Mood: models.MoodHappy},
	}, []string{"g"}, fixedPicker(0))
	require.NoError(t, err)

	id, score := e.Classify("The GREATEST day")
	assert.Equal(t, "whole", id)
	assert.Equal(t, 3, score)

	id, score = e.Classify("unittesting")
	assert.Equal(t, "substring", id)
	assert.Equal(t, 1, score)
}

func TestScoring_TieGoesToFirstRegistered(t *testing.T) {
	e, err := NewFromCategories([]models.KnowledgeCategory{
		{ID: "first", Keywords: []string{"tired"}, Responses: []string{"one"}, Mood: models.MoodCalm},
		{ID: "second", Keywords: []string{"Tired"}, Responses: []string{"two"}, Mood: models.MoodSad},
	}, []string{"g"}, fixedPicker(0))
	require.NoError(t, err)

	r := e.Match("so tired")
	assert.Equal(t, "one", r.Text)
	assert.Equal(t, models.MoodCalm, r.Mood)
}

func TestScoring_KeywordCountsOnce(t *testing.T) {
	e, err := NewFromCategories([]models.KnowledgeCategory{
		{ID: "repeat", Keywords: []string{"sad"}, Responses: []string{"r"}},
		{ID: "pair", Keywords: []string{"cry", "tears"}, Responses: []string{"p"}},
	}, []string{"g"}, fixedPicker(0))
	require.NoError(t, err)

	id, score := e.Classify("sad sad sad, cry and tears")
	assert.Equal(t, "pair", id)
	assert.Equal(t, 6, score)
}

func TestMatch_CategoryStableAcrossRandomPicks(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		e := MustNew(rand.New(rand.NewPCG(seed, seed*7+1)))
		r := e.Match("I have an exam tomorrow")
		assert.Equal(t, models.MoodAnxious, r.Mood)
		assert.True(t, slices.Contains(e.categories[1].Responses, r.Text), "seed %d gave %q", seed, r.Text)
	}
}

func TestMatch_IsTotal(t *testing.T) {
	e := MustNew(nil)
	for _, in := range []string{"", "   ", "🙂🙂", "(((", "\\b[", "I feel lonely and tired", "a.b*c+"} {
		r := e.Match(in)
		assert.NotEmpty(t, r.Text, "input %q", in)
		assert.NotEmpty(t, r.Mood, "input %q", in)
	}
}

func TestNewFromCategories_Validation(t *testing.T) {
	_, err := NewFromCategories(nil, nil, nil)
	require.Error(t, err)

	_, err = NewFromCategories([]models.KnowledgeCategory{{ID: "empty"}}, []string{"g"}, nil)
	require.Error(t, err)
}

func TestParse_RejectsBrokenYAML(t *testing.T) {
	_, err := parse([]byte("categories: [unclosed"))
	require.Error(t, err)
}
