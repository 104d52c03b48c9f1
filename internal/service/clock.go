package service

import (
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current time. Production services use time.Now;
// tests inject a fixed instant.
type Clock func() time.Time

const dateLayout = "2006-01-02"

// minuteOfDay converts an "HH:MM" wall-clock string to minutes since
// midnight. The format is validated at the request boundary.
func minuteOfDay(clock string) int {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0
	}

	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	return hours*60 + minutes
}

// timesOverlap applies the half-open interval test: [s1,e1) and
// [s2,e2) overlap iff s1 < e2 and e1 > s2.
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, e1 := minuteOfDay(start1), minuteOfDay(end1)
	s2, e2 := minuteOfDay(start2), minuteOfDay(end2)

	return s1 < e2 && e1 > s2
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format(dateLayout)
}
