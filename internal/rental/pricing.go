package rental

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of rental dates.
const DateLayout = "2006-01-02"

// ParseDate parses a rental date in DateLayout.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", value)
	}
	return t, nil
}

// RentalDays computes the billed rental duration in days. A span of exactly
// zero bills as one day (minimum one billable day); partial days round up;
// negative spans bill as zero.
func RentalDays(start, end time.Time) int {
	span := end.Sub(start).Hours() / 24
	if span == 0 {
		span = 1
	}
	days := math.Ceil(span)
	if days < 0 {
		days = 0
	}
	return int(days)
}

// TotalPrice computes the rental price for a billed duration.
func TotalPrice(days int, rentRate float64) float64 {
	return float64(days) * rentRate
}

// FormatTime12Hour converts a 24-hour "HH:MM" time to its 12-hour display
// form: hour 0 becomes 12, hours 12-23 drop 12, minutes are zero-padded.
func FormatTime12Hour(value string) (string, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q: want HH:MM", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", value)
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period), nil
}
