package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayIsMidnightUTC(t *testing.T) {
	today := Today()

	assert.Equal(t, time.UTC, today.Location())
	assert.Zero(t, today.Hour())
	assert.Zero(t, today.Minute())
	assert.Zero(t, today.Second())
	assert.Equal(t, Today(), today)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2025, 6, 20, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 20, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(morning, evening))
	assert.False(t, SameDay(morning, nextDay))
}
