package recommend

import "time"

// Coping durations (minutes) offered on each kind of day. Hardcoded policy
// carried over from the original product; not configurable per deployment.
var (
	weekdayDurations = []int{10, 60, 180}
	weekendDurations = []int{60, 180, 200}
)

// DurationsFor returns the coping duration triple for the given calendar day:
// Mon–Fri → (10, 60, 180), Sat/Sun → (60, 180, 200).
func DurationsFor(day time.Time) []int {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return weekendDurations
	default:
		return weekdayDurations
	}
}
