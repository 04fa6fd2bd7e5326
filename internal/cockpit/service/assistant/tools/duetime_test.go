package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Wednesday afternoon, a known fixed point.
var dueNow = time.Date(2026, time.August, 26, 14, 30, 0, 0, time.Local)

func TestParseDueTimeTomorrow(t *testing.T) {
	got := ParseDueTime("tomorrow", dueNow)
	assert.Equal(t, time.Date(2026, time.August, 27, 9, 0, 0, 0, time.Local), got)
}

func TestParseDueTimeRelativeDays(t *testing.T) {
	// "in N days" keeps the current time of day; only named days snap to 9am.
	got := ParseDueTime("in 3 days", dueNow)
	assert.Equal(t, time.Date(2026, time.August, 29, 14, 30, 0, 0, time.Local), got)
}

func TestParseDueTimeRelativeHours(t *testing.T) {
	got := ParseDueTime("in 2 hours", dueNow)
	assert.Equal(t, dueNow.Add(2*time.Hour), got)
}

func TestParseDueTimeRelativeWeeks(t *testing.T) {
	got := ParseDueTime("in 1 week", dueNow)
	assert.Equal(t, time.Date(2026, time.September, 2, 14, 30, 0, 0, time.Local), got)
}

func TestParseDueTimeNextWeek(t *testing.T) {
	// Next Monday after Wednesday the 26th.
	got := ParseDueTime("next week", dueNow)
	assert.Equal(t, time.Date(2026, time.August, 31, 9, 0, 0, 0, time.Local), got)
}

func TestParseDueTimeWeekdayName(t *testing.T) {
	got := ParseDueTime("friday", dueNow)
	assert.Equal(t, time.Date(2026, time.August, 28, 9, 0, 0, 0, time.Local), got)

	// "next wednesday" on a Wednesday means a week out, not today.
	got = ParseDueTime("next wednesday", dueNow)
	assert.Equal(t, time.Date(2026, time.September, 2, 9, 0, 0, 0, time.Local), got)
}

func TestParseDueTimeUnparseableFallsBack(t *testing.T) {
	tomorrow9 := time.Date(2026, time.August, 27, 9, 0, 0, 0, time.Local)

	assert.Equal(t, tomorrow9, ParseDueTime("", dueNow))
	assert.Equal(t, tomorrow9, ParseDueTime("whenever you get a chance", dueNow))
}

func TestParseDueTimeISODate(t *testing.T) {
	got := ParseDueTime("2026-09-15", dueNow)
	assert.Equal(t, time.Date(2026, time.September, 15, 9, 0, 0, 0, time.Local), got)
}
