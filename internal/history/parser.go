package history

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// RawRecord is one stored history row before parsing. Timestamp and price
// arrive in whatever representation the storage or feed produced: strings in
// several date-time formats, already-resolved instants, numbers or numeric
// strings for the price.
type RawRecord struct {
	Timestamp interface{} `json:"timestamp"`
	Price     interface{} `json:"price"`
}

// Point is a canonical time-series point, timestamp in UTC.
type Point struct {
	Time  time.Time `json:"timestamp"`
	Price float64   `json:"price"`
}

// timestampLayouts are tried in order for string timestamps. RFC3339 covers
// the ISO-8601 form with a trailing Z or explicit offset.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse converts raw records into chronological points.
//
// Input is consumed in reverse of arrival order, which turns the storage
// layer's newest-first rows into an oldest-to-newest series. If the input was
// already chronological the output is flipped back, so for any consistent
// input order the result is ascending by timestamp. Records that yield no
// parseable timestamp or price are dropped; the batch itself never fails.
func Parse(records []RawRecord) []Point {
	points := make([]Point, 0, len(records))

	for i := len(records) - 1; i >= 0; i-- {
		p, ok := parseRecord(records[i])
		if !ok {
			continue
		}
		points = append(points, p)
	}

	if !isAscending(points) && isDescending(points) {
		reverse(points)
	}

	return points
}

// parseRecord converts one raw record; ok is false when it must be dropped
func parseRecord(rec RawRecord) (Point, bool) {
	ts, ok := parseTimestamp(rec.Timestamp)
	if !ok {
		return Point{}, false
	}

	if rec.Price == nil {
		return Point{}, false
	}
	price, err := cast.ToFloat64E(rec.Price)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return Point{}, false
	}

	return Point{Time: ts, Price: price}, true
}

func parseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func isAscending(points []Point) bool {
	return sort.SliceIsSorted(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})
}

func isDescending(points []Point) bool {
	return sort.SliceIsSorted(points, func(i, j int) bool {
		return points[j].Time.Before(points[i].Time)
	})
}

func reverse(points []Point) {
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
}
