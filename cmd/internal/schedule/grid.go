package schedule

import "time"

const (
	// Clinic hours, UTC. 09:00 is the first slot start, 17:00 is exclusive.
	openingHour = 9
	closingHour = 17

	SlotDuration = 30 * time.Minute
	SlotsPerDay  = 16
)

// Range is one slot-sized interval of the grid.
type Range struct {
	Start time.Time
	End   time.Time
}

// Generate returns the slot grid for `days` consecutive UTC calendar days
// beginning on the day containing startDay. Pure and deterministic: the same
// inputs always yield the same ascending sequence, so callers can replay it
// against FindOrCreate without producing duplicates. days <= 0 yields nil.
func Generate(startDay time.Time, days int) []Range {
	if days <= 0 {
		return nil
	}

	startDay = startDay.UTC()
	grid := make([]Range, 0, days*SlotsPerDay)

	for d := 0; d < days; d++ {
		day := time.Date(startDay.Year(), startDay.Month(), startDay.Day()+d, 0, 0, 0, 0, time.UTC)
		open := day.Add(openingHour * time.Hour)
		close := day.Add(closingHour * time.Hour)

		for start := open; start.Before(close); start = start.Add(SlotDuration) {
			grid = append(grid, Range{Start: start, End: start.Add(SlotDuration)})
		}
	}
	return grid
}
