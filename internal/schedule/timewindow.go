package schedule

import "time"

// ReferenceZone is the fixed east-coast wall-clock zone used for
// date-window semantics across the pipeline (§4.3, §4.4).
const ReferenceZone = "America/New_York"

// DateWindowUTC converts a target date's wall-clock start and end, in the
// reference zone, to UTC bounds — used both to filter the schedule feed's
// events to that day and to bound the odds vendor's UTC commence_time
// query to that same day (§4.4, §8 invariant 10).
func DateWindowUTC(target time.Time) (start, end time.Time, err error) {
	loc, err := time.LoadLocation(ReferenceZone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, d := target.Date()
	startLocal := time.Date(y, m, d, 0, 0, 0, 0, loc)
	endLocal := time.Date(y, m, d, 23, 59, 59, 0, loc)
	return startLocal.UTC(), endLocal.UTC(), nil
}

// InWindow reports whether t (assumed UTC) falls within [start, end].
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
