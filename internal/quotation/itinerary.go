package quotation

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used across the form.
const DateLayout = "2006-01-02"

// DateKey encodes a calendar date as a sortable YYYYMMDD integer.
// A date that does not parse encodes to 0.
func DateKey(date string) int {
	t, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return 0
	}
	key, _ := strconv.Atoi(t.Format("20060102"))
	return key
}

// ReconcileItinerary returns the itinerary adjusted to match the trip
// duration field. Missing days are appended with calendar dates following
// the travel start date (or now when no start date is set); excess days
// are trimmed from the tail only, so earlier days an agent already edited
// survive a shortened trip. Day numbers are re-derived from position.
//
// A duration that is empty or parses to less than one clamps to a single
// day: once an itinerary exists it never shrinks to nothing.
func ReconcileItinerary(days []ItineraryDay, duration, travelDate string, now time.Time) []ItineraryDay {
	target := parseDuration(duration)

	base, err := time.Parse(DateLayout, strings.TrimSpace(travelDate))
	if err != nil {
		base = now
	}

	out := append([]ItineraryDay(nil), days...)

	for i := len(out); i < target; i++ {
		date := base.AddDate(0, 0, i).Format(DateLayout)
		out = append(out, ItineraryDay{
			Date:    date,
			DateKey: DateKey(date),
		})
	}
	if len(out) > target {
		out = out[:target]
	}

	for i := range out {
		out[i].DayNumber = i + 1
	}
	return out
}

func parseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
