package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	var payload struct {
		Start Date `json:"start_date"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start_date":"2025-01-03"}`), &payload))
	assert.Equal(t, NewDate(2025, time.January, 3), payload.Start)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start_date":"2025-01-03"}`, string(out))
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"01/03/2025"`), &d))
}

func TestDate_DaysUntil(t *testing.T) {
	start := NewDate(2025, time.January, 1)
	assert.Equal(t, 3, start.DaysUntil(NewDate(2025, time.January, 3)))
	assert.Equal(t, 1, start.DaysUntil(start))
	assert.Equal(t, 2, NewDate(2024, time.February, 28).DaysUntil(NewDate(2024, time.February, 29)))
	assert.Equal(t, NewDate(2025, time.March, 1), NewDate(2025, time.February, 28).AddDays(1))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 5, 6, 13, 0, 0, 0, time.Local)))
	assert.Equal(t, "2025-05-06", d.String())

	require.NoError(t, d.Scan("2025-07-08T00:00:00Z"))
	assert.Equal(t, "2025-07-08", d.String())

	require.NoError(t, d.Scan([]byte("2025-09-10")))
	assert.Equal(t, "2025-09-10", d.String())

	assert.Error(t, d.Scan(42))
}
