package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NewestFirstInput(t *testing.T) {
	// Storage returns rows newest first; output must be chronological
	records := []RawRecord{
		{Timestamp: "2026-08-03T00:00:00Z", Price: 103.0},
		{Timestamp: "2026-08-02T00:00:00Z", Price: 102.0},
		{Timestamp: "2026-08-01T00:00:00Z", Price: 101.0},
	}

	points := Parse(records)
	require.Len(t, points, 3)

	assert.Equal(t, 101.0, points[0].Price)
	assert.Equal(t, 102.0, points[1].Price)
	assert.Equal(t, 103.0, points[2].Price)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Time.Before(points[i].Time))
	}
}

func TestParse_OldestFirstInput(t *testing.T) {
	// Already chronological input must stay chronological
	records := []RawRecord{
		{Timestamp: "2026-08-01T00:00:00Z", Price: 101.0},
		{Timestamp: "2026-08-02T00:00:00Z", Price: 102.0},
		{Timestamp: "2026-08-03T00:00:00Z", Price: 103.0},
	}

	points := Parse(records)
	require.Len(t, points, 3)

	assert.Equal(t, 101.0, points[0].Price)
	assert.Equal(t, 103.0, points[2].Price)
}

func TestParse_TimestampFormats(t *testing.T) {
	now := time.Date(2026, 8, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   interface{}
		want time.Time
	}{
		{name: "RFC3339", ts: "2026-08-15T12:30:00Z", want: now},
		{name: "ISO without zone", ts: "2026-08-15T12:30:00", want: now},
		{name: "space separated", ts: "2026-08-15 12:30:00", want: now},
		{name: "date only", ts: "2026-08-15", want: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
		{name: "time.Time value", ts: now, want: now},
		{name: "time.Time pointer", ts: &now, want: now},
		{name: "surrounding whitespace", ts: "  2026-08-15  ", want: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := Parse([]RawRecord{{Timestamp: tt.ts, Price: 1.0}})
			require.Len(t, points, 1)
			assert.True(t, tt.want.Equal(points[0].Time))
		})
	}
}

func TestParse_DropsBadRecords(t *testing.T) {
	var nilTime *time.Time

	records := []RawRecord{
		{Timestamp: "2026-08-03T00:00:00Z", Price: 103.0},
		{Timestamp: "not a date", Price: 99.0},
		{Timestamp: "2026-08-02T00:00:00Z", Price: "garbage"},
		{Timestamp: "2026-08-02T00:00:00Z", Price: nil},
		{Timestamp: nilTime, Price: 50.0},
		{Timestamp: 12345, Price: 50.0},
		{Timestamp: "2026-08-01T00:00:00Z", Price: "101.5"},
	}

	points := Parse(records)
	require.Len(t, points, 2)

	// Numeric string prices coerce
	assert.Equal(t, 101.5, points[0].Price)
	assert.Equal(t, 103.0, points[1].Price)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(nil))
	assert.Empty(t, Parse([]RawRecord{}))
}

func TestParse_SingleRecord(t *testing.T) {
	points := Parse([]RawRecord{{Timestamp: "2026-08-01", Price: 42}})
	require.Len(t, points, 1)
	assert.Equal(t, 42.0, points[0].Price)
}

func TestParse_AllRecordsBad(t *testing.T) {
	records := []RawRecord{
		{Timestamp: "nope", Price: 1.0},
		{Timestamp: "2026-08-01", Price: "nope"},
	}
	assert.Empty(t, Parse(records))
}
