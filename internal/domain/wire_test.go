package domain

import (
	"encoding/json"
	"testing"
)

func TestAssignmentMarshalJSONUsesWireShape(t *testing.T) {
	slot, err := NewTimeSlot(Wednesday, NewClockTime(9, 5), NewClockTime(10, 35))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := Assignment{
		Course:    Course{ID: "c1", Code: "CS101"},
		Faculty:   Faculty{ID: "f1", Name: "Dr. Ada"},
		Classroom: Classroom{ID: "r1", Name: "Hall A"},
		Slot:      slot,
	}

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"course", "faculty", "classroom", "time_slot"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("expected wire form to carry key %q, got %s", key, raw)
		}
	}

	var slotWire timeSlotWire
	if err := json.Unmarshal(decoded["time_slot"], &slotWire); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slotWire.Day != "Wednesday" || slotWire.StartTime != "09:05" || slotWire.EndTime != "10:35" {
		t.Fatalf("unexpected time_slot wire form: %+v", slotWire)
	}
}

func TestAssignmentRoundTripsThroughJSON(t *testing.T) {
	tests := []struct {
		name string
		a    Assignment
	}{
		{
			name: "start-of-day slot",
			a: Assignment{
				Course:    Course{ID: "c1", Code: "CS101", Name: "Intro to Algorithms", HoursPerWeek: 3},
				Faculty:   Faculty{ID: "f1", Name: "Dr. Ada Lovelace", Expertise: tagSet("AI", "Algorithms")},
				Classroom: Classroom{ID: "r1", Name: "Hall A", Capacity: 40, Facilities: tagSet("Projector")},
			},
		},
		{
			name: "midnight-adjacent slot",
			a: Assignment{
				Course:    Course{ID: "c2", Code: "CS999"},
				Faculty:   Faculty{ID: "f2", Name: "Dr. Grace Hopper"},
				Classroom: Classroom{ID: "r2", Name: "Lab 1"},
			},
		},
	}

	starts := []ClockTime{NewClockTime(0, 0), NewClockTime(23, 0)}
	ends := []ClockTime{NewClockTime(0, 30), NewClockTime(23, 59)}
	days := []Weekday{Sunday, Monday, Saturday}

	for i, tt := range tests {
		day := days[i%len(days)]
		slot, err := NewTimeSlot(day, starts[i%len(starts)], ends[i%len(ends)])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tt.a.Slot = slot

		t.Run(tt.name, func(t *testing.T) {
			raw, err := json.Marshal(tt.a)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var decoded Assignment
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !decoded.Slot.Equal(tt.a.Slot) {
				t.Fatalf("slot did not round-trip: got %v, want %v", decoded.Slot, tt.a.Slot)
			}
			if decoded.Course.ID != tt.a.Course.ID || decoded.Faculty.ID != tt.a.Faculty.ID || decoded.Classroom.ID != tt.a.Classroom.ID {
				t.Fatalf("entity ids did not round-trip: got %+v", decoded)
			}
			if decoded.Course.Name != tt.a.Course.Name || decoded.Course.HoursPerWeek != tt.a.Course.HoursPerWeek {
				t.Fatalf("course snapshot did not round-trip: got %+v, want %+v", decoded.Course, tt.a.Course)
			}
		})
	}
}

func TestAssignmentUnmarshalJSONRejectsMalformedClockTime(t *testing.T) {
	raw := []byte(`{"course":{},"faculty":{},"classroom":{},"time_slot":{"day":"Monday","start_time":"9am","end_time":"10:00"}}`)
	var a Assignment
	if err := json.Unmarshal(raw, &a); err == nil {
		t.Fatalf("expected error for malformed start_time")
	}
}

func TestAssignmentUnmarshalJSONRejectsUnknownWeekday(t *testing.T) {
	raw := []byte(`{"course":{},"faculty":{},"classroom":{},"time_slot":{"day":"Funday","start_time":"09:00","end_time":"10:00"}}`)
	var a Assignment
	if err := json.Unmarshal(raw, &a); err == nil {
		t.Fatalf("expected error for unknown weekday")
	}
}

func tagSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}
