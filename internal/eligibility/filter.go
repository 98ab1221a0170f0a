// Package eligibility decides, for each (course, faculty, classroom, slot)
// tuple, whether a binding is admissible under the hard unary/binary
// constraints: expertise, capacity, room type, facilities, and availability.
package eligibility

import (
	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
)

// Binding is a candidate (course, faculty, classroom, slot) tuple that
// survived the filter. Each binding gets exactly one decision variable in
// the constraint model.
type Binding struct {
	Course    domain.Course
	Faculty   domain.Faculty
	Classroom domain.Classroom
	Slot      domain.TimeSlot
}

// MatchesExpertise reports whether faculty is eligible to teach course
// under the *any*-match semantics: if the course requires no expertise,
// every faculty qualifies; otherwise the faculty must cover at least one
// of the required tags. See DESIGN.md for why any-match was chosen over
// all-match.
func MatchesExpertise(course domain.Course, faculty domain.Faculty) bool {
	if len(course.FacultyRequirements) == 0 {
		return true
	}
	for tag := range course.FacultyRequirements {
		if faculty.HasExpertise(tag) {
			return true
		}
	}
	return false
}

// admissible reports whether a single (course, faculty, classroom, slot)
// tuple satisfies every hard unary/binary predicate.
func admissible(course domain.Course, faculty domain.Faculty, room domain.Classroom, slot domain.TimeSlot) bool {
	if !MatchesExpertise(course, faculty) {
		return false
	}
	if room.Capacity < course.MinCapacity {
		return false
	}
	if room.RoomType != course.RequiredRoomType {
		return false
	}
	if !room.HasAllFacilities(course.RequiredFacilities) {
		return false
	}
	if faculty.IsUnavailable(slot) {
		return false
	}
	if room.IsUnavailable(slot) {
		return false
	}
	return true
}

// Build emits the candidate binding set B over courses x faculty x
// classrooms x slots. Any tuple not in B is implicitly forbidden: its
// variable is never created by the constraint model builder.
func Build(courses []domain.Course, faculty []domain.Faculty, rooms []domain.Classroom, slots []domain.TimeSlot) []Binding {
	bindings := make([]Binding, 0)
	for _, course := range courses {
		for _, f := range faculty {
			if !MatchesExpertise(course, f) {
				continue
			}
			for _, room := range rooms {
				if room.Capacity < course.MinCapacity || room.RoomType != course.RequiredRoomType {
					continue
				}
				if !room.HasAllFacilities(course.RequiredFacilities) {
					continue
				}
				for _, slot := range slots {
					if !admissible(course, f, room, slot) {
						continue
					}
					bindings = append(bindings, Binding{Course: course, Faculty: f, Classroom: room, Slot: slot})
				}
			}
		}
	}
	return bindings
}

// BindingsForCourse filters bindings down to those mentioning the given
// course, by course ID. Nothing in this module calls it; the constraint
// builder and the repair planner group bindings by course themselves.
func BindingsForCourse(bindings []Binding, courseID string) []Binding {
	out := make([]Binding, 0)
	for _, b := range bindings {
		if b.Course.ID == courseID {
			out = append(out, b)
		}
	}
	return out
}
