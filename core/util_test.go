package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	tests := []struct {
		name    string
		s       string
		want    time.Time
		wantErr bool
	}{
		{name: "date", s: "2024-01-10", want: time.Date(2024, time.January, 10, 0, 0, 0, 0, pkt)},
		{name: "padded", s: " 2024-01-10 ", want: time.Date(2024, time.January, 10, 0, 0, 0, 0, pkt)},
		{name: "timestamp", s: "2024-01-31T20:00:00Z", want: time.Date(2024, time.February, 1, 1, 0, 0, 0, pkt)},
		{name: "empty", s: "", wantErr: true},
		{name: "garbage", s: "10/01/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.s, pkt)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDateInMonth(t *testing.T) {
	now := time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		date string
		want bool
	}{
		{date: "2024-01-01", want: true},
		{date: "2024-01-31", want: true},
		{date: "2023-12-31", want: false},
		{date: "2024-02-01", want: false},
		{date: "2023-01-15", want: false},
		{date: "", want: false},
		{date: "someday", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			assert.Equal(t, tt.want, DateInMonth(tt.date, now))
		})
	}
}

func TestIsDate(t *testing.T) {
	assert.True(t, IsDate("2024-02-29"))
	assert.False(t, IsDate("2023-02-29"))
	assert.False(t, IsDate("2024-1-5"))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "January 2024", MonthLabel(time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Ali Khan", CleanString("  Ali Khan\n"))
	assert.Equal(t, "cash", CleanString(" Cash ", true))
}
