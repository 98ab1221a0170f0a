package export

import (
	"testing"

	"github.com/ruthvika-29-11/AI-TimeTable/internal/domain"
)

func slot(day domain.Weekday, startHour int) domain.TimeSlot {
	s, _ := domain.NewTimeSlot(day, domain.NewClockTime(startHour, 0), domain.NewClockTime(startHour+1, 0))
	return s
}

func TestBuildDatasetOrdersByDayThenStartThenCourseCode(t *testing.T) {
	assignments := []domain.Assignment{
		{Course: domain.Course{Code: "CS102"}, Slot: slot(domain.Monday, 9)},
		{Course: domain.Course{Code: "CS101"}, Slot: slot(domain.Monday, 9)},
		{Course: domain.Course{Code: "CS201"}, Slot: slot(domain.Monday, 8)},
		{Course: domain.Course{Code: "CS301"}, Slot: slot(domain.Tuesday, 8)},
	}

	data := BuildDataset(assignments)
	if len(data.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(data.Rows))
	}

	got := make([]string, len(data.Rows))
	for i, row := range data.Rows {
		got[i] = row["course_code"]
	}
	want := []string{"CS201", "CS101", "CS102", "CS301"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: got %q, want %q (full order: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBuildDatasetHeadersCoverExportFields(t *testing.T) {
	data := BuildDataset(nil)
	want := []string{"day", "start", "end", "course_code", "course_name", "faculty_name", "classroom_name", "building", "department_id"}
	if len(data.Headers) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(data.Headers))
	}
	for i := range want {
		if data.Headers[i] != want[i] {
			t.Fatalf("header %d: got %q, want %q", i, data.Headers[i], want[i])
		}
	}
}
