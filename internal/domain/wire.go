package domain

import "encoding/json"

// timeSlotWire is the wire form of a TimeSlot: day name plus HH:MM-encoded
// clock times, the shape export adapters and external callers consume.
type timeSlotWire struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// assignmentWire is the wire form of an Assignment: an entity snapshot
// under each of four keys, with the slot reduced to its wire form.
type assignmentWire struct {
	Course    Course       `json:"course"`
	Faculty   Faculty      `json:"faculty"`
	Classroom Classroom    `json:"classroom"`
	TimeSlot  timeSlotWire `json:"time_slot"`
}

// MarshalJSON renders the Assignment as {course, faculty, classroom,
// time_slot}, with time_slot as {day, start_time, end_time} in HH:MM form.
func (a Assignment) MarshalJSON() ([]byte, error) {
	return json.Marshal(assignmentWire{
		Course:    a.Course,
		Faculty:   a.Faculty,
		Classroom: a.Classroom,
		TimeSlot: timeSlotWire{
			Day:       a.Slot.Day.String(),
			StartTime: a.Slot.Start.String(),
			EndTime:   a.Slot.End.String(),
		},
	})
}

// UnmarshalJSON parses the wire form produced by MarshalJSON back into an
// Assignment. It is the inverse of MarshalJSON: day, times (to the minute)
// and entity ids round-trip exactly.
func (a *Assignment) UnmarshalJSON(data []byte) error {
	var wire assignmentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	day, err := ParseWeekday(wire.TimeSlot.Day)
	if err != nil {
		return err
	}
	start, err := ParseClockTime(wire.TimeSlot.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClockTime(wire.TimeSlot.EndTime)
	if err != nil {
		return err
	}
	slot, err := NewTimeSlot(day, start, end)
	if err != nil {
		return err
	}
	a.Course = wire.Course
	a.Faculty = wire.Faculty
	a.Classroom = wire.Classroom
	a.Slot = slot
	return nil
}
