// File: /utils/dates.go
package utils

import (
	"fmt"
	"time"

	"fleetexpense-api/models"
)

const dateLayout = "2006-01-02"

// ParseDate accepts a plain date (2006-01-02, read as UTC midnight) or an
// RFC 3339 timestamp, returned in UTC. The second result reports whether the value was a
// plain date.
func ParseDate(value string) (time.Time, bool, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", value)
	}
	return t.UTC(), false, nil
}

// ParseDateRange builds an inclusive window from optional start and end
// strings. Both empty means no window. A missing side is left open. A plain
// end date covers the whole day.
func ParseDateRange(start, end string) (*models.DateRange, error) {
	if start == "" && end == "" {
		return nil, nil
	}

	window := &models.DateRange{
		Start: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC),
	}

	if start != "" {
		t, _, err := ParseDate(start)
		if err != nil {
			return nil, err
		}
		window.Start = t.UTC()
	}

	if end != "" {
		t, dateOnly, err := ParseDate(end)
		if err != nil {
			return nil, err
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		window.End = t.UTC()
	}

	if window.End.Before(window.Start) {
		return nil, fmt.Errorf("endDate must not be before startDate")
	}
	return window, nil
}
