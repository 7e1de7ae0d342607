package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return v
}

func summer() *Offer {
	return &Offer{
		ID:        "1",
		Title:     "Summer Special Collection",
		IsActive:  true,
		StartDate: "2023-06-01T00:00:00.000Z",
		EndDate:   "2023-08-31T00:00:00.000Z",
	}
}

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2023-06-01T00:00:00.000Z":  "2023-06-01T00:00:00Z",
		"2023-06-01T02:00:00+02:00": "2023-06-01T00:00:00Z",
		"2023-06-01T00:00:00":       "2023-06-01T00:00:00Z",
		"2023-06-01":                "2023-06-01T00:00:00Z",
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, at(t, want).Equal(got), in)
	}

	_, err := ParseDate("June 1st")
	assert.Error(t, err)
}

func TestIsOfferActive(t *testing.T) {
	o := summer()

	assert.True(t, IsOfferActive(o, at(t, "2023-07-01T00:00:00Z")))
	assert.False(t, IsOfferActive(o, at(t, "2023-09-01T00:00:00Z")))
	assert.False(t, IsOfferActive(o, at(t, "2023-05-31T23:59:59Z")))
}

func TestIsOfferActive_BoundsInclusive(t *testing.T) {
	o := summer()

	assert.True(t, IsOfferActive(o, at(t, "2023-06-01T00:00:00Z")))
	assert.True(t, IsOfferActive(o, at(t, "2023-08-31T00:00:00Z")))
	assert.False(t, IsOfferActive(o, at(t, "2023-08-31T00:00:01Z")))
}

func TestIsOfferActive_FlagOff(t *testing.T) {
	o := summer()
	o.IsActive = false

	assert.False(t, IsOfferActive(o, at(t, "2023-07-01T00:00:00Z")))
}

func TestIsOfferActive_BadDates(t *testing.T) {
	o := summer()
	o.EndDate = "later"

	assert.False(t, IsOfferActive(o, at(t, "2023-07-01T00:00:00Z")))
}
