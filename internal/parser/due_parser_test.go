package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDateISO(t *testing.T) {
	due, err := ParseDueDate("2026-03-15")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 15, due.Day())
}

func TestParseDueDateSlash(t *testing.T) {
	due, err := ParseDueDate("15/03/2026")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.Equal(t, 2026, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 15, due.Day())
}

func TestParseDueDateRelative(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tests := []struct {
		input string
		want  time.Time
	}{
		{"today", today},
		{"tomorrow", today.AddDate(0, 0, 1)},
		{"3 days", today.AddDate(0, 0, 3)},
		{"2 weeks", today.AddDate(0, 0, 14)},
		{"1 day", today.AddDate(0, 0, 1)},
		{"1 week", today.AddDate(0, 0, 7)},
	}

	for _, tt := range tests {
		due, err := ParseDueDate(tt.input)
		require.NoError(t, err, tt.input)
		require.NotNil(t, due, tt.input)
		assert.True(t, due.Equal(tt.want), "%s: got %v want %v", tt.input, due, tt.want)
	}
}

func TestParseDueDateEmpty(t *testing.T) {
	due, err := ParseDueDate("  ")
	require.NoError(t, err)
	assert.Nil(t, due)
}

func TestParseDueDateInvalid(t *testing.T) {
	for _, input := range []string{
		"soon",
		"2026-13-01",
		"32/01/2026",
		"31/02/2026",
		"0 days",
		"400 days",
		"53 weeks",
		"3 months",
	} {
		_, err := ParseDueDate(input)
		assert.Error(t, err, input)
	}
}

func TestFormatDueDate(t *testing.T) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	yesterday := today.AddDate(0, 0, -1)
	assert.Contains(t, FormatDueDate(&yesterday), "OVERDUE")

	assert.Contains(t, FormatDueDate(&today), "due today")

	tomorrow := today.AddDate(0, 0, 1)
	assert.Contains(t, FormatDueDate(&tomorrow), "due tomorrow")

	soon := today.AddDate(0, 0, 4)
	assert.Contains(t, FormatDueDate(&soon), "in 4 days")

	assert.Equal(t, "", FormatDueDate(nil))
}
