package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/repair"
	"github.com/ruthvika-29-11/AI-TimeTable/internal/solverbackend/greedy"
)

func mondaySlotEntities() (domain.Course, domain.Faculty, domain.Classroom) {
	course := domain.Course{
		ID: "c1", Code: "CS101", Name: "Intro to CS", DepartmentID: "dept1",
		HoursPerWeek: 2, RequiredRoomType: domain.RoomLecture, MinCapacity: 10,
	}
	faculty := domain.Faculty{ID: "f1", Name: "Dr. Ada", DepartmentID: "dept1", WeeklyHoursCap: 5}
	room := domain.Classroom{ID: "r1", Name: "Hall A", Capacity: 30, RoomType: domain.RoomLecture}
	return course, faculty, room
}

func newTestScheduler(t *testing.T, courses []domain.Course, faculty []domain.Faculty, rooms []domain.Classroom) *Scheduler {
	t.Helper()
	s, err := New(faculty, rooms, courses, nil, Options{
		Backend:     greedy.New(),
		BackendName: "greedy",
	})
	require.NoError(t, err)
	return s
}

func TestSchedulerGenerateBaselineProducesExactDemand(t *testing.T) {
	course, faculty, room := mondaySlotEntities()
	s := newTestScheduler(t, []domain.Course{course}, []domain.Faculty{faculty}, []domain.Classroom{room})

	assignments, err := s.Generate(context.Background(), GenerateConfig{})
	require.NoError(t, err)
	assert.Len(t, assignments, 2)
	for _, a := range assignments {
		assert.Equal(t, "CS101", a.Course.Code)
		assert.Equal(t, "f1", a.Faculty.ID)
		assert.Equal(t, "r1", a.Classroom.ID)
	}
	if assignments[0].Slot.Equal(assignments[1].Slot) {
		t.Fatalf("expected distinct slots, got %v twice", assignments[0].Slot)
	}
}

func TestSchedulerGenerateEmptyCoursesIsNotAnError(t *testing.T) {
	_, faculty, room := mondaySlotEntities()
	s := newTestScheduler(t, nil, []domain.Faculty{faculty}, []domain.Classroom{room})

	assignments, err := s.Generate(context.Background(), GenerateConfig{})
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestSchedulerRepairWithEmptyMutationReturnsPriorUnchanged(t *testing.T) {
	course, faculty, room := mondaySlotEntities()
	s := newTestScheduler(t, []domain.Course{course}, []domain.Faculty{faculty}, []domain.Classroom{room})

	prior, err := s.Generate(context.Background(), GenerateConfig{})
	require.NoError(t, err)

	result, err := s.Repair(context.Background(), prior, repair.Mutation{})
	require.NoError(t, err)
	assert.ElementsMatch(t, prior, result.Assignments)
}

func TestNewRejectsFacultyMissingID(t *testing.T) {
	_, faculty, room := mondaySlotEntities()
	faculty.ID = ""
	_, err := New([]domain.Faculty{faculty}, []domain.Classroom{room}, nil, nil, Options{
		Backend:     greedy.New(),
		BackendName: "greedy",
	})
	require.Error(t, err)
}

func TestSchedulerRepairReschedulesAroundUnavailableFaculty(t *testing.T) {
	course, faculty, room := mondaySlotEntities()
	otherFaculty := domain.Faculty{ID: "f2", Name: "Dr. Grace", DepartmentID: "dept1", WeeklyHoursCap: 5}
	s := newTestScheduler(t, []domain.Course{course}, []domain.Faculty{faculty, otherFaculty}, []domain.Classroom{room})

	prior, err := s.Generate(context.Background(), GenerateConfig{})
	require.NoError(t, err)
	require.Len(t, prior, 2)

	result, err := s.Repair(context.Background(), prior, repair.Mutation{UnavailableFacultyIDs: []string{"f1"}})
	require.NoError(t, err)
	assert.Empty(t, result.UnscheduledCourseIDs)
	for _, a := range result.Assignments {
		assert.NotEqual(t, "f1", a.Faculty.ID)
	}
}
