package transfer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hferris/tabula/internal/domain"
)

func TestPreprocessSingleObject(t *testing.T) {
	docs, err := Preprocess(`{"listName": "To Do", "cards": [{"title": "Ship it"}]}`)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, "To Do", docs[0].ListName)
	require.Len(t, docs[0].Cards, 1)
	assert.Equal(t, "Ship it", docs[0].Cards[0].Title)
	assert.Equal(t, "", docs[0].Cards[0].Description)
	assert.Empty(t, docs[0].Cards[0].Labels)
	assert.Empty(t, docs[0].Cards[0].Checklists)
}

func TestPreprocessArray(t *testing.T) {
	docs, err := Preprocess(`[{"listName": "A"}, {"listName": "B", "cards": []}]`)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].ListName)
	assert.Equal(t, "B", docs[1].ListName)
	assert.Empty(t, docs[1].Cards)
}

func TestPreprocessInvalidJSON(t *testing.T) {
	_, err := Preprocess(`{"listName": `)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestPreprocessNonObjectTopLevel(t *testing.T) {
	for _, payload := range []string{`"hello"`, `42`, `null`, `true`} {
		_, err := Preprocess(payload)
		assert.Error(t, err, "payload %s should be rejected", payload)
	}
}

func TestPreprocessMissingListNameIsFatal(t *testing.T) {
	_, err := Preprocess(`[{"cards": []}]`)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Issues, 1)
	assert.Equal(t, "lists[0].listName", verr.Issues[0].Path)
}

func TestPreprocessBlankListNameIsFatal(t *testing.T) {
	_, err := Preprocess(`[{"listName": "   "}]`)
	require.Error(t, err)
}

func TestPreprocessNonObjectCardIsFatal(t *testing.T) {
	_, err := Preprocess(`[{"listName": "A", "cards": ["nope"]}]`)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "lists[0].cards[0]", verr.Issues[0].Path)
}

func TestPreprocessNonArrayCardsIsFatal(t *testing.T) {
	_, err := Preprocess(`[{"listName": "A", "cards": {"title": "x"}}]`)
	require.Error(t, err)
}

func TestPreprocessAggregatesFatalIssues(t *testing.T) {
	_, err := Preprocess(`[{"cards": []}, "nope", {"listName": "ok"}]`)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Issues, 2)
}

func TestPreprocessCoercesCardFields(t *testing.T) {
	docs, err := Preprocess(`[{
		"listName": "A",
		"cards": [{
			"title": "Card",
			"description": 42,
			"labels": ["keep", 7, "also"],
			"checklists": [
				{"name": "Steps", "items": [
					{"title": "one", "completed": "yes"},
					{"title": "two", "completed": true},
					{"completed": true}
				]},
				{"items": [{"title": "orphan"}]},
				"garbage"
			]
		}]
	}]`)
	require.NoError(t, err)

	card := docs[0].Cards[0]
	assert.Equal(t, "", card.Description, "non-string description falls back to empty")
	assert.Equal(t, []string{"keep", "also"}, card.Labels, "non-string labels are dropped")

	require.Len(t, card.Checklists, 1, "checklists without a string name are dropped")
	checklist := card.Checklists[0]
	assert.Equal(t, "Steps", checklist.Name)
	require.Len(t, checklist.Items, 2, "items without a string title are dropped")
	assert.False(t, checklist.Items[0].Completed, "non-bool completed falls back to false")
	assert.True(t, checklist.Items[1].Completed)
}
