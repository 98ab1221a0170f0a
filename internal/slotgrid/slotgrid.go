// Package slotgrid produces the discrete candidate time-slot set from a
// weekday list crossed with an hour-period list.
package slotgrid

import (
	"fmt"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
)

// Period is a (start, end) hour pair in minute-of-day clock time.
type Period struct {
	Start domain.ClockTime
	End   domain.ClockTime
}

// DefaultDays is Monday through Friday, the default weekday list.
func DefaultDays() []domain.Weekday {
	return []domain.Weekday{domain.Monday, domain.Tuesday, domain.Wednesday, domain.Thursday, domain.Friday}
}

// DefaultPeriods is ten hourly periods, 08:00 to 18:00.
func DefaultPeriods() []Period {
	periods := make([]Period, 0, 10)
	for hour := 8; hour < 18; hour++ {
		periods = append(periods, Period{
			Start: domain.NewClockTime(hour, 0),
			End:   domain.NewClockTime(hour+1, 0),
		})
	}
	return periods
}

// Generate returns the Cartesian product of days x periods as a
// deterministic, duplicate-free sequence of TimeSlots, in the order of the
// day list and, within a day, the order of the period list.
func Generate(days []domain.Weekday, periods []Period) ([]domain.TimeSlot, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("slotgrid: day list must not be empty")
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("slotgrid: period list must not be empty")
	}

	seen := make(map[domain.TimeSlot]struct{}, len(days)*len(periods))
	slots := make([]domain.TimeSlot, 0, len(days)*len(periods))
	for _, day := range days {
		for _, period := range periods {
			slot, err := domain.NewTimeSlot(day, period.Start, period.End)
			if err != nil {
				return nil, fmt.Errorf("slotgrid: %w", err)
			}
			if _, dup := seen[slot]; dup {
				continue
			}
			seen[slot] = struct{}{}
			slots = append(slots, slot)
		}
	}
	return slots, nil
}
