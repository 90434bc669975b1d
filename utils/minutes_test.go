package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00":    0,
		"09:30":    570,
		"9:05":     545,
		"23:59":    1439,
		"12:00 AM": 0,
		"12:15am":  15,
		"01:00 PM": 780,
		"12:30PM":  750,
		"11:45 pm": 1425,
	}
	for in, want := range cases {
		got, err := ToMinutes(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestToMinutesRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "24:00", "10:60", "13:00 PM", "00:30 AM", "noon", "10-30"} {
		_, err := ToMinutes(in)
		assert.Error(t, err, in)
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for m := 0; m < 1440; m++ {
		got, err := ToMinutes(FromMinutes(m))
		require.NoError(t, err)
		require.Equal(t, m, got)
	}
	assert.Equal(t, "09:05", FromMinutes(545))
	assert.Equal(t, "24:30", FromMinutes(1470))
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90, ParseDuration("90 min", 60))
	assert.Equal(t, 120, ParseDuration("2 hours", 60))
	assert.Equal(t, 60, ParseDuration("1 hour", 30))
	assert.Equal(t, 45, ParseDuration("45 Minutes", 30))
	assert.Equal(t, 0, ParseDuration("", 60))
	assert.Equal(t, 0, ParseDuration(nil, 60))
	assert.Equal(t, 60, ParseDuration("garbage", 60))
	assert.Equal(t, 35, ParseDuration(35, 60))
	assert.Equal(t, 40, ParseDuration(40.0, 60))
	assert.Equal(t, 25, ParseDuration("25", 60))
	assert.Equal(t, 60, ParseDuration([]string{"x"}, 60))
}
