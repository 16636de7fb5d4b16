package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grantboard/internal/models"
)

func TestFieldThreeStateDecoding(t *testing.T) {
	t.Run("AbsentKeyLeavesFieldUnset", func(t *testing.T) {
		var update models.FoundationUpdate
		require.NoError(t, json.Unmarshal([]byte(`{}`), &update))

		assert.False(t, update.FitScore.Set)
		assert.False(t, update.Notes.Set)
		assert.False(t, update.ApplicationDeadline.Set)
		assert.True(t, update.Empty())
	})

	t.Run("NullIsSetButInvalid", func(t *testing.T) {
		var update models.FoundationUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"fit_score": null}`), &update))

		assert.True(t, update.FitScore.Set)
		assert.False(t, update.FitScore.Valid)
		assert.False(t, update.Empty())
	})

	t.Run("ValueIsSetAndValid", func(t *testing.T) {
		var update models.FoundationUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"fit_score": 7, "notes": "call them"}`), &update))

		assert.True(t, update.FitScore.Set)
		assert.True(t, update.FitScore.Valid)
		assert.Equal(t, 7, update.FitScore.Value)
		assert.True(t, update.Notes.Valid)
		assert.Equal(t, "call them", update.Notes.Value)
	})

	t.Run("NullStatusDoesNotCountAsProvided", func(t *testing.T) {
		var update models.FoundationUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"status": null}`), &update))

		assert.False(t, update.HasStatus())
		assert.True(t, update.Empty())
	})

	t.Run("DeadlineDecodesCalendarDate", func(t *testing.T) {
		var update models.FoundationUpdate
		require.NoError(t, json.Unmarshal([]byte(`{"application_deadline": "2026-06-21"}`), &update))

		require.True(t, update.ApplicationDeadline.Valid)
		assert.Equal(t, "2026-06-21", update.ApplicationDeadline.Value.String())
	})

	t.Run("MalformedValueErrors", func(t *testing.T) {
		var update models.FoundationUpdate
		err := json.Unmarshal([]byte(`{"fit_score": "high"}`), &update)
		assert.Error(t, err)
	})
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := models.NewDate(2026, 6, 21)

	encoded, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-06-21"`, string(encoded))

	var decoded models.Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.True(t, decoded.Equal(d.Time))
}

func TestDateRejectsTimestamps(t *testing.T) {
	var d models.Date
	err := json.Unmarshal([]byte(`"2026-06-21T10:00:00Z"`), &d)
	assert.Error(t, err)
}
