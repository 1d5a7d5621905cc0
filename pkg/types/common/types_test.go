package common

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewID().Validate())
	assert.Error(t, ID("").Validate())
	assert.Error(t, ID("not-a-uuid").Validate())
}

func TestTimestamp_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	now := Timestamp(time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC))
	data, err := json.Marshal(now)
	require.NoError(t, err)

	var back Timestamp
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, time.Time(now).Equal(time.Time(back)))
}

func TestTimestamp_UnmarshalWithoutFraction(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T12:30:00Z"`), &ts))
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), time.Time(ts))
}

func TestTimestamp_UnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()

	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`42`), &ts))
}

//Personal.AI order the ending
