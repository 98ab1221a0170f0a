package eligibility

import (
	"testing"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
)

func tagSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func TestMatchesExpertiseAnyMatch(t *testing.T) {
	course := domain.Course{FacultyRequirements: tagSet("AI", "Databases")}
	f := domain.Faculty{Expertise: tagSet("Databases")}
	if !MatchesExpertise(course, f) {
		t.Fatalf("expected any-match expertise semantics to accept a partial overlap")
	}
	empty := domain.Faculty{Expertise: tagSet("Networking")}
	if MatchesExpertise(course, empty) {
		t.Fatalf("expected no match when faculty covers none of the required tags")
	}
}

func TestMatchesExpertiseNoRequirement(t *testing.T) {
	course := domain.Course{}
	f := domain.Faculty{Expertise: tagSet()}
	if !MatchesExpertise(course, f) {
		t.Fatalf("a course with no expertise requirement admits any faculty")
	}
}

func TestBuildFiltersByFacilityAndCapacity(t *testing.T) {
	slot, _ := domain.NewTimeSlot(domain.Monday, domain.NewClockTime(9, 0), domain.NewClockTime(10, 0))
	course := domain.Course{
		ID:                 "CS101",
		RequiredRoomType:   domain.RoomLecture,
		RequiredFacilities: tagSet("Projector"),
		MinCapacity:        10,
	}
	f := domain.Faculty{ID: "F1", WeeklyHoursCap: 5}
	small := domain.Classroom{ID: "R1", Capacity: 5, RoomType: domain.RoomLecture, Facilities: tagSet("Projector")}
	noProjector := domain.Classroom{ID: "R2", Capacity: 30, RoomType: domain.RoomLecture, Facilities: tagSet()}
	ok := domain.Classroom{ID: "R3", Capacity: 30, RoomType: domain.RoomLecture, Facilities: tagSet("Projector")}

	bindings := Build([]domain.Course{course}, []domain.Faculty{f}, []domain.Classroom{small, noProjector, ok}, []domain.TimeSlot{slot})
	if len(bindings) != 1 {
		t.Fatalf("expected exactly 1 admissible binding, got %d", len(bindings))
	}
	if bindings[0].Classroom.ID != "R3" {
		t.Fatalf("expected binding to use R3, got %s", bindings[0].Classroom.ID)
	}
}

func TestBuildExcludesUnavailableSlots(t *testing.T) {
	blocked, _ := domain.NewTimeSlot(domain.Monday, domain.NewClockTime(8, 0), domain.NewClockTime(18, 0))
	slot, _ := domain.NewTimeSlot(domain.Monday, domain.NewClockTime(9, 0), domain.NewClockTime(10, 0))
	course := domain.Course{ID: "CS101", RequiredRoomType: domain.RoomLecture, RequiredFacilities: tagSet(), MinCapacity: 1}
	f := domain.Faculty{ID: "F1", UnavailableSlots: []domain.TimeSlot{blocked}}
	room := domain.Classroom{ID: "R1", Capacity: 30, RoomType: domain.RoomLecture, Facilities: tagSet()}

	bindings := Build([]domain.Course{course}, []domain.Faculty{f}, []domain.Classroom{room}, []domain.TimeSlot{slot})
	if len(bindings) != 0 {
		t.Fatalf("expected no bindings when faculty is unavailable for the only slot")
	}
}
